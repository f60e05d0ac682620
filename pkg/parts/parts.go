// Package parts provides parametric building blocks for printable designs:
// screw-and-nut columns, hollow boxes, and two-part project enclosures.
//
// Every part takes the solid.Builder it should construct leaves with, so a
// part inherits the caller's facet settings. Parts validate their parameters
// and return an infeasible-geometry error when the requested dimensions
// cannot be printed (a column too short for its recesses, a screw longer
// than the column).
package parts

import (
	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/solid"
	"github.com/matzehuels/scadkit/pkg/vector"
)

// MScrew describes a metric screw by its thread diameter and length, both
// in millimeters.
type MScrew struct {
	Diameter float64
	Thread   float64
}

// Common M3 screw sizes.
var (
	M3x5  = MScrew{Diameter: 3, Thread: 5}
	M3x10 = MScrew{Diameter: 3, Thread: 10}
	M3x12 = MScrew{Diameter: 3, Thread: 12}
	M3x15 = MScrew{Diameter: 3, Thread: 15}
	M3x20 = MScrew{Diameter: 3, Thread: 20}
	M3x30 = MScrew{Diameter: 3, Thread: 30}
	M3x40 = MScrew{Diameter: 3, Thread: 40}
)

// Option adjusts a part.
type Option func(*options)

type options struct {
	wall     float64
	rounding float64
	gap      vector.Vector
}

func buildOptions(opts []Option) options {
	o := options{
		wall: 1,
		gap:  vector.XY(5, 0),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithWall sets the wall thickness in millimeters (default 1).
func WithWall(w float64) Option {
	return func(o *options) { o.wall = w }
}

// WithRounding rounds the outer corners and edges with the given radius.
func WithRounding(r float64) Option {
	return func(o *options) { o.rounding = r }
}

// WithGap sets the distance between the two halves of a split box. Exactly
// one of x and y must be non-zero; the default is 5 mm in the x direction.
func WithGap(gap vector.Vector) Option {
	return func(o *options) { o.gap = gap }
}

// ScrewAndNutColumn builds a vertical column that keeps the two halves of
// an enclosure together with a flat screw and a hex nut. The column is
// meant to be split into top and bottom parts along with the enclosure:
// the screw recess sits at the top, the nut recess at the bottom, and both
// shaft holes are dominant negatives so the column can be unioned onto the
// enclosure walls before the split.
func ScrewAndNutColumn(b *solid.Builder, height float64, screw MScrew, opts ...Option) (*solid.Solid, error) {
	o := buildOptions(opts)

	h := height
	s := screw.Thread
	m := screw.Diameter
	w := o.wall

	// 4/5th of the thread diameter is a good estimate of the screw head
	// recess depth.
	sh := 4.0 / 5.0 * m

	// The column must fit both recesses plus two walls.
	if minHeight := 2*m + 2*w; h < minHeight {
		return nil, errors.New(errors.ErrCodeInfeasibleGeometry,
			"column height %f must be at least %f", h, minHeight)
	}

	maxScrew := h - sh
	minScrew := m + 2*w
	if s > maxScrew || s < minScrew {
		return nil, errors.New(errors.ErrCodeInfeasibleGeometry,
			"screw thread %f would stick out, must be %f..%f", s, minScrew, maxScrew)
	}

	// The nut recess depth matches the screw thread length.
	nh := h - sh - s + m

	// Chamfer height of the recess cones.
	const ch = 1

	var r *solid.Solid

	// Screw head recess, upside down at the top of the column.
	head, err := ring(b, sh+w, sh, m+w, m)
	if err != nil {
		return nil, err
	}
	r = r.Union(solid.Translate(vector.Up(h)).Apply(
		solid.Rotate(180, 0, 0).Apply(head)))

	// Recess cone at the top.
	cone, err := b.Cone(ch, solid.Radius(w+m), solid.Radius(w+m+ch))
	if err != nil {
		return nil, err
	}
	r = r.Union(solid.Translate(vector.Up(h - w)).Apply(cone))

	// Support cone under the head recess.
	cone, err = b.Cone(m, solid.Radius(m/2+w), solid.Radius(m+w))
	if err != nil {
		return nil, err
	}
	r = r.Union(solid.Translate(vector.Up(h - sh - w - m)).Apply(cone))

	// Shaft with a dominant negative bore for the screw.
	shaft, err := ring(b, h, h, w+m/2, m/2)
	if err != nil {
		return nil, err
	}
	r = r.Union(shaft)

	// Hex nut recess at the bottom.
	nut, err := b.Cylinder(nh+w, solid.Radius(w+m))
	if err != nil {
		return nil, err
	}
	hex, err := b.Cylinder(nh, solid.Radius(m), solid.WithFacets(6))
	if err != nil {
		return nil, err
	}
	r = r.Union(nut.Difference(solid.Negative().Apply(hex)))

	// Recess cone at the bottom.
	cone, err = b.Cone(ch, solid.Radius(w+m+ch), solid.Radius(w+m))
	if err != nil {
		return nil, err
	}
	r = r.Union(solid.Translate(vector.Up(o.wall)).Apply(cone))

	// Support cone above the nut recess.
	cone, err = b.Cone(m, solid.Radius(m+w), solid.Radius(m/2+w))
	if err != nil {
		return nil, err
	}
	r = r.Union(solid.Translate(vector.Up(nh + w)).Apply(cone))

	return r, nil
}

// ring builds a cylinder of outer radius ro and height ho with a dominant
// negative bore of radius ri and height hi.
func ring(b *solid.Builder, ho, hi, ro, ri float64) (*solid.Solid, error) {
	outer, err := b.Cylinder(ho, solid.Radius(ro))
	if err != nil {
		return nil, err
	}
	bore, err := b.Cylinder(hi, solid.Radius(ri))
	if err != nil {
		return nil, err
	}
	return outer.Difference(solid.Negative().Apply(bore)), nil
}

// HollowBox builds a box with the given outer size whose interior is left
// empty, keeping walls of the given thickness on all six sides. Use
// ScrewAndNutColumn to place screw columns, and SplitBox to separate it
// into top and bottom parts.
func HollowBox(b *solid.Builder, size vector.Vector, opts ...Option) *solid.Solid {
	o := buildOptions(opts)
	walls := vector.Dup3(o.wall)

	outer := b.BoxVec(size, solid.WithRounding(o.rounding))
	inner := b.BoxVec(size.Sub(walls.Scale(2)))
	return outer.Difference(solid.Translate(walls).Apply(inner))
}

// SplitBox splits an enclosure of the given size into a bottom and a top
// part, cut at the given height, and places the parts next to each other.
// The gap option controls the direction and the distance between them;
// exactly one of its x and y components must be non-zero.
func SplitBox(b *solid.Builder, box *solid.Solid, size vector.Vector, height float64, opts ...Option) (*solid.Solid, error) {
	o := buildOptions(opts)

	var shift vector.Vector
	switch {
	case o.gap.X() != 0:
		shift = vector.Right(size.X() + o.gap.X())
	case o.gap.Y() != 0:
		shift = vector.Back(size.Y() + o.gap.Y())
	default:
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"split gap: both x and y distances are 0")
	}

	z, _ := size.Z()

	// Bottom part: everything below the cut.
	bottom := box.Difference(solid.Translate(vector.Up(height)).Apply(b.BoxVec(size)))

	// Top part: everything above the cut, flipped onto its lid so both
	// parts print without support.
	top := solid.Translate(vector.XYZ(size.X(), 0, z)).Apply(
		solid.Rotate(0, 180, 0).Apply(
			box.Difference(b.Box(size.X(), size.Y(), height))))

	return bottom.Union(solid.Translate(shift).Apply(top)), nil
}

// ProjectEnclosure builds a simple two-part project enclosure: a hollow box
// split at half height into a bottom tub and a top lid placed next to it.
func ProjectEnclosure(b *solid.Builder, size vector.Vector, opts ...Option) (*solid.Solid, error) {
	box := HollowBox(b, size, opts...)
	z, _ := size.Z()
	return SplitBox(b, box, size, z/2, opts...)
}
