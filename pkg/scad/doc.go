// Package scad turns solids into files: OpenSCAD source on disk, and
// rendered artifacts (STL, PNG, G-code) produced by shelling out to
// OpenSCAD and a slicer.
//
// # Writing Source
//
// [Write] renders a solid and writes the OpenSCAD text to a file, appending
// the ".scad" suffix when the name carries none:
//
//	err := scad.Write(model, "output")        // writes output.scad
//	err := scad.Write(model, "output.scad")   // same effect
//
// # Exporting Artifacts
//
// An [Exporter] invokes OpenSCAD on the generated source. Rendering is
// expensive, so exports are cached by the hash of the source text and the
// export options; an unchanged model is rendered once:
//
//	exp := scad.NewExporter(
//		scad.WithCache(fileCache, nil),
//		scad.WithLogger(logger),
//	)
//	err := exp.STL(ctx, model, "part.stl")
//
// The OpenSCAD binary is located by probing the usual install locations and
// PATH; WithOpenSCADPath pins an explicit binary. G-code export additionally
// needs a slicer (WithSlicerPath).
package scad
