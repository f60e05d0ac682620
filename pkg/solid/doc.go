// Package solid builds 2D and 3D models as OpenSCAD text.
//
// # Overview
//
// A [Solid] is an immutable pair of OpenSCAD fragments: material that is
// present, and a dominant emptiness that stays empty through any further
// union. Leaf solids come from a [Builder] (Box, Sphere, Cylinder, Cone,
// Rectangle, Circle, Polygon, Text); composite solids come from Union,
// Difference and Intersect; and a [Transform] reshapes a solid without
// mutating it. [Raw] is the escape hatch for OpenSCAD features the package
// does not cover.
//
// # Basic Usage
//
// Create a builder, construct leaves, combine them, and render the result
// with String:
//
//	b := solid.NewBuilder(solid.DefaultSettings())
//	s, err := b.Sphere(solid.Radius(10))
//	if err != nil {
//		return err
//	}
//	model := b.Box(20, 20, 20).Difference(
//		solid.Translate(vector.Dup3(10)).Apply(s))
//	fmt.Println(model.String())
//
// Round features take a [Dim], created with [Radius] or [Diameter]; the
// zero Dim is rejected, so a missing size is caught at construction time.
//
// # Dominant Negatives
//
// The [Negative] transform turns a solid into space that stays empty no
// matter what is unioned over it later, which is how the interior of a pipe
// survives crossing another pipe. [Positive] neutralizes the emptiness so
// new material can be placed there. String resolves the pending emptiness
// into a difference() exactly once, at render time.
//
// # Facets
//
// The facet counts that control curve approximation live in a [Settings]
// value bound to the builder. Fragments are baked when a leaf is
// constructed, so changing settings never affects an existing solid.
package solid
