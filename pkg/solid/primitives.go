package solid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/scadkit/pkg/vector"
)

// =============================================================================
// Leaf Constructors
// =============================================================================
//
// Every leaf constructor bakes its OpenSCAD fragment at call time from the
// numeric parameters and the builder's facet settings. Changing the settings
// afterwards never affects a solid that already exists.

// Box creates a rectangular cuboid with the given sizes and its lower-left
// corner at the origin. WithRounding rounds its corners and edges.
func (b *Builder) Box(x, y, z float64, opts ...Option) *Solid {
	return b.BoxVec(vector.XYZ(x, y, z), opts...)
}

// BoxVec is Box with the three sizes given as a vector.
func (b *Builder) BoxVec(size vector.Vector, opts ...Option) *Solid {
	o := b.buildOptions(opts)
	if o.rounding == 0 {
		return Raw(fmt.Sprintf("cube( %s );", size), "")
	}
	return b.roundedBox(size, o)
}

// Rectangle creates a flat rectangle with the given sizes and its lower-left
// corner at the origin. WithRounding rounds its corners.
func (b *Builder) Rectangle(x, y float64, opts ...Option) *Solid {
	return b.RectangleVec(vector.XY(x, y), opts...)
}

// RectangleVec is Rectangle with both sizes given as a vector.
func (b *Builder) RectangleVec(size vector.Vector, opts ...Option) *Solid {
	o := b.buildOptions(opts)
	if o.rounding == 0 {
		return Raw(fmt.Sprintf("square( %s );", size), "")
	}
	return b.roundedRectangle(size, o)
}

// Circle creates a flat circle in the x-y plane, centered at the origin.
// The size must be specified as either a radius or a diameter.
func (b *Builder) Circle(d Dim, opts ...Option) (*Solid, error) {
	o := b.buildOptions(opts)
	r, err := d.radius("circle")
	if err != nil {
		return nil, err
	}
	return circleFragment(r, o.circleFacets(b.set)), nil
}

// Sphere creates a sphere centered at the origin.
// The size must be specified as either a radius or a diameter.
func (b *Builder) Sphere(d Dim, opts ...Option) (*Solid, error) {
	o := b.buildOptions(opts)
	r, err := d.radius("sphere")
	if err != nil {
		return nil, err
	}
	return sphereFragment(r, o.sphereFacets(b.set)), nil
}

// Cylinder creates a vertical cylinder with its base centered at the origin.
// The radius must be specified as either a radius or a diameter.
// WithRoundedTop finishes the top with a half sphere of the same radius,
// which shortens the cylindrical part accordingly.
func (b *Builder) Cylinder(height float64, d Dim, opts ...Option) (*Solid, error) {
	o := b.buildOptions(opts)
	r, err := d.radius("cylinder")
	if err != nil {
		return nil, err
	}
	facets := o.circleFacets(b.set)
	if !o.roundedTop {
		return cylinderFragment(height, r, facets), nil
	}
	shaft := cylinderFragment(height-r, r, facets)
	cap := Translate(vector.Up(height - r)).Apply(sphereFragment(r, o.sphereFacets(b.set)))
	return shaft.Union(cap), nil
}

// Cone creates a vertical cone (or truncated cone) with its base centered at
// the origin. Base and top sizes must each be specified as either a radius
// or a diameter.
func (b *Builder) Cone(height float64, base, top Dim, opts ...Option) (*Solid, error) {
	o := b.buildOptions(opts)
	r1, err := base.radius("cone base")
	if err != nil {
		return nil, err
	}
	r2, err := top.radius("cone top")
	if err != nil {
		return nil, err
	}
	return Raw(fmt.Sprintf("cylinder( h=%f, r1=%f, r2=%f, $fn=%d );",
		height, r1, r2, o.circleFacets(b.set)), ""), nil
}

// Polygon creates a flat polygon from its edge points in order.
func (b *Builder) Polygon(points []vector.Vector) *Solid {
	var sb strings.Builder
	for _, p := range points {
		fmt.Fprintf(&sb, "[%f,%f],", p.X(), p.Y())
	}
	return Raw(fmt.Sprintf("polygon( [ %s ] );", sb.String()), "")
}

// Text creates a flat text solid. The horizontal size depends on the text
// and the font, which makes it hard to predict; the Resize transform is
// useful to scale a text to a known size. WithHeight sets the letter height,
// WithArgs passes extra OpenSCAD text() arguments verbatim.
func (b *Builder) Text(txt string, opts ...Option) *Solid {
	o := b.buildOptions(opts)
	args := o.args
	if args != "" {
		args = ", " + strings.ReplaceAll(args, "'", `"`)
	}
	return Raw(fmt.Sprintf("text( \"%s\", %f, $fn=%d %s );",
		txt, o.height, o.textFacets(b.set), args), "")
}

// =============================================================================
// Fragment Helpers
// =============================================================================

func circleFragment(r float64, facets int) *Solid {
	return Raw(fmt.Sprintf("circle( r=%f, $fn=%d );", r, facets), "")
}

func sphereFragment(r float64, facets int) *Solid {
	return Raw(fmt.Sprintf("sphere( r=%f, $fn=%d );", r, facets), "")
}

func cylinderFragment(h, r float64, facets int) *Solid {
	return Raw(fmt.Sprintf("cylinder( h=%f, r=%f, $fn=%d );", h, r, facets), "")
}

// roundedRectangle composes a rounded rectangle from four corner circles and
// two overlapping sharp rectangles shrunk by the rounding radius.
func (b *Builder) roundedRectangle(size vector.Vector, o options) *Solid {
	x, y, r := size.X(), size.Y(), o.rounding
	corners := Translate(vector.Dup2(r)).Apply(
		Repeat4(size.Sub(vector.Dup2(r).Scale(2))).Apply(
			circleFragment(r, o.circleFacets(b.set))))
	return Union(
		corners,
		Translate(vector.XY(0, r)).Apply(b.RectangleVec(vector.XY(x, y-2*r))),
		Translate(vector.XY(r, 0)).Apply(b.RectangleVec(vector.XY(x-2*r, y))),
	)
}

// roundedBox composes a rounded box from eight corner spheres and three
// extruded rounded rectangles, one per axis.
func (b *Builder) roundedBox(size vector.Vector, o options) *Solid {
	x, y := size.X(), size.Y()
	z, _ := size.Z()
	r := o.rounding

	facets := o.extrudeFacets(b.set)
	rounded := func(w, h float64) *Solid {
		return b.RectangleVec(vector.XY(w, h), WithRounding(r), WithFacets(o.circleFacets(b.set)))
	}

	corners := Translate(vector.Dup3(r)).Apply(
		Repeat8(size.Sub(vector.Dup3(r).Scale(2))).Apply(
			sphereFragment(r, o.sphereFacets(b.set))))

	return Union(
		corners,
		Translate(vector.XYZ(0, 0, r)).Apply(
			extrudeTransform(z-2*r, 0, 1, facets).Apply(rounded(x, y))),
		Translate(vector.XYZ(0, y-r, 0)).Apply(
			Rotate(90, 0, 0).Apply(
				extrudeTransform(y-2*r, 0, 1, facets).Apply(rounded(x, z)))),
		Translate(vector.XYZ(x-r, 0, 0)).Apply(
			Rotate(0, -90, 0).Apply(
				extrudeTransform(x-2*r, 0, 1, facets).Apply(rounded(z, y)))),
	)
}
