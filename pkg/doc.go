// Package pkg provides the core libraries for scadkit solid modeling.
//
// # Overview
//
// scadkit composes solid models as Go values and emits OpenSCAD source,
// which locally installed tools render to printable artifacts. The pkg
// directory is organized into four main areas:
//
//  1. [solid] - The modeling core (primitives, transforms, boolean algebra)
//  2. [parts] - Parametric building blocks (screw columns, enclosures)
//  3. [scad] - Output (source files, STL/PNG/G-code exports)
//  4. [gallery] - Named demo models used by the CLI and preview server
//
// # Architecture
//
// The typical data flow through scadkit:
//
//	[solid] package (compose primitives and transforms)
//	         ↓
//	[parts] / [gallery] packages (assemble designs)
//	         ↓
//	[scad] package (emit OpenSCAD source, invoke tools)
//	         ↓
//	.scad / STL / PNG / G-code output
//
// # Quick Start
//
// Compose a model and write its OpenSCAD source:
//
//	import (
//	    "github.com/matzehuels/scadkit/pkg/scad"
//	    "github.com/matzehuels/scadkit/pkg/solid"
//	    "github.com/matzehuels/scadkit/pkg/vector"
//	)
//
//	// 1. Create a builder with the facet settings
//	b := solid.NewBuilder(solid.DefaultSettings())
//
//	// 2. Compose solids
//	wall := b.Box(20, 20, 10)
//	bore, _ := b.Cylinder(10, solid.Radius(3))
//	bore = solid.Translate(vector.XY(10, 10)).Apply(bore)
//
//	// 3. Subtract with a dominant negative so later unions keep the hole
//	model := wall.Difference(solid.Negative().Apply(bore))
//
//	// 4. Write the OpenSCAD source
//	_ = scad.Write(model, "bracket")
//
// # Main Packages
//
// [solid] - The modeling core. A Solid carries a positive and a negative
// fragment; the negative is a dominant hole that survives later unions and
// is subtracted only when the model is rendered. Primitives come from a
// Builder so they share facet settings, and transforms are values applied
// with Apply.
//
// [vector] - Small 2D/3D vectors with the formatting the emitted source
// uses, plus axis helpers (Right, Up, Back, ...).
//
// [parts] - Parametric printable building blocks: screw-and-nut columns,
// hollow boxes, split enclosures. Parts validate their dimensions and
// return infeasible-geometry errors.
//
// [gallery] - The built-in demo models. Each model is a named build
// function exercised by the CLI, the preview server, and the tests.
//
// [scad] - Source output and artifact export. The Exporter invokes
// OpenSCAD for STL and PNG and a slicer for G-code, with caching keyed by
// the hash of the generated source.
//
// ## Infrastructure
//
// [cache] - Artifact caching with file and Redis backends, shared by the
// CLI and the preview server.
//
// [config] - TOML configuration with working defaults for facets, tool
// paths, caching, and the preview server.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Pluggable hooks for export and cache events.
//
// [buildinfo] - Version information injected at build time.
//
// # Common Workflows
//
// Build a demo model:
//
//	model, _ := gallery.Lookup("dice")
//	s, _ := model.Build(solid.NewBuilder(solid.DefaultSettings()))
//
// Export to STL with caching:
//
//	c, _ := cache.NewFileCache(cfg.CacheDir())
//	e := scad.NewExporter(scad.WithCache(c, nil))
//	_ = e.STL(ctx, s, "dice.stl")
//
// Repeat a feature across corners:
//
//	column, _ := parts.ScrewAndNutColumn(b, 20, parts.M3x12)
//	corners := solid.Repeat4(vector.XY(40, 25)).Apply(column)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/solid/...    # Specific package
//	go test -run Example       # Examples only
//
// [solid]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/solid
// [vector]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/vector
// [parts]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/parts
// [gallery]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/gallery
// [scad]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/scad
// [cache]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/scadkit/pkg/buildinfo
package pkg
