package solid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/scadkit/pkg/vector"
)

// transformKind discriminates the Transform variants. Most transforms wrap
// both fragments in a single OpenSCAD operation; the rest need their own
// evaluation rule.
type transformKind int

const (
	kindWrap      transformKind = iota // wrap both fragments in op
	kindNegative                       // resolve, move into the negative slot
	kindPositive                       // resolve, move into the positive slot
	kindMinkowski                      // merge a union group under minkowski()
	kindRepeat                         // union of translated copies
)

// Transform is a reusable solid-to-solid mapping: translation, rotation,
// mirroring, scaling, extrusion, coloring, repetition, or the dominant
// negative/positive manipulations. A Transform is a value; applying it never
// changes the subject, and applying it to nil yields nil.
//
// Transforms wrap BOTH fragments of their subject, so a dominant emptiness
// moves along with the material it was carved from.
type Transform struct {
	kind    transformKind
	op      string          // kindWrap: the OpenSCAD operation text
	offsets []vector.Vector // kindRepeat: translation offsets
	bare    bool            // kindRepeat: include an untranslated copy
}

// Apply applies the transform to a solid, returning a new solid.
// A nil subject propagates as nil.
func (t Transform) Apply(s *Solid) *Solid {
	if s == nil {
		return nil
	}
	switch t.kind {
	case kindNegative:
		return Raw("", s.String())
	case kindPositive:
		return Raw(s.String(), "")
	case kindMinkowski:
		// Minkowski applies to a sum of solids; on anything else it is
		// a no-op, like the original.
		if s.items != nil {
			return s.mergeAs("minkowski()")
		}
		return s
	case kindRepeat:
		var acc *Solid
		if t.bare {
			acc = s
		}
		for _, v := range t.offsets {
			acc = acc.Union(Translate(v).Apply(s))
		}
		return acc
	default:
		return wrap(t.op, s)
	}
}

// wrapTransform builds the common variant: both fragments wrapped in op.
func wrapTransform(op string) Transform {
	return Transform{kind: kindWrap, op: op}
}

// Translate displaces a solid by the given vector. This is the transform a
// bare vector stands for in model code.
func Translate(v vector.Vector) Transform {
	return wrapTransform(fmt.Sprintf("translate( %s )", v))
}

// Rotate rotates a solid around one or more axes by the given amounts
// in degrees.
func Rotate(x, y, z float64) Transform {
	return RotateVec(vector.XYZ(x, y, z))
}

// RotateVec is Rotate with the three angles given as a vector.
func RotateVec(angles vector.Vector) Transform {
	return wrapTransform(fmt.Sprintf("rotate( %s )", angles))
}

// Mirror mirrors a solid in the plane through the origin whose normal is
// the given vector.
func Mirror(x, y, z float64) Transform {
	return MirrorVec(vector.XYZ(x, y, z))
}

// MirrorVec is Mirror with the normal given as a vector.
func MirrorVec(normal vector.Vector) Transform {
	return wrapTransform(fmt.Sprintf("mirror( %s )", normal))
}

// Scale scales a solid by the given factors per direction. A factor of 1
// keeps the original size in that direction.
func Scale(x, y, z float64) Transform {
	return ScaleVec(vector.XYZ(x, y, z))
}

// ScaleVec is Scale with the factors given as a vector.
func ScaleVec(factors vector.Vector) Transform {
	return wrapTransform(fmt.Sprintf("scale( %s )", factors))
}

// Resize resizes a solid to the given sizes per direction. An axis the
// vector does not carry (a missing z) is marked "auto" and scales in
// proportion with the other axes.
func Resize(sizes vector.Vector) Transform {
	auto := fmt.Sprintf("[%v, %v, %v]", false, false, !sizes.Is3D())
	return wrapTransform(fmt.Sprintf("resize( %s, auto=%s )", sizes, auto))
}

// Hull creates the convex hull around its subject, 2D or 3D.
func Hull() Transform {
	return wrapTransform("hull()")
}

// Minkowski computes the Minkowski sum of two or more solids. It must be
// applied to a union of solids; applied to anything else it is a no-op.
func Minkowski() Transform {
	return Transform{kind: kindMinkowski}
}

// Negative turns its subject into a dominant emptiness: space that stays
// empty through any further union, until neutralized by Positive. The
// subject is resolved first, so an emptiness it already carried is folded in.
func Negative() Transform {
	return Transform{kind: kindNegative}
}

// Positive neutralizes the dominant emptiness of its subject: the resolved
// rendering becomes plain material and the negative slot is cleared, so new
// material can be placed where the emptiness was. Re-applying Positive wraps
// the already resolved rendering again without changing the geometry.
func Positive() Transform {
	return Transform{kind: kindPositive}
}

// Repeat2 repeats its subject twice: once at the original location and once
// shifted by the given vector.
func Repeat2(v vector.Vector) Transform {
	return Transform{kind: kindRepeat, bare: true, offsets: []vector.Vector{v}}
}

// Repeat4 repeats its subject at the four corners of the rectangle spanned
// by the given vector.
func Repeat4(v vector.Vector) Transform {
	return Transform{kind: kindRepeat, offsets: []vector.Vector{
		vector.XY(0, 0),
		vector.XY(v.X(), 0),
		vector.XY(0, v.Y()),
		vector.XY(v.X(), v.Y()),
	}}
}

// Repeat8 repeats its subject at the eight corners of the box spanned by
// the given vector.
func Repeat8(v vector.Vector) Transform {
	z, _ := v.Z()
	return Transform{kind: kindRepeat, offsets: []vector.Vector{
		vector.XYZ(0, 0, 0),
		vector.XYZ(v.X(), 0, 0),
		vector.XYZ(0, v.Y(), 0),
		vector.XYZ(v.X(), v.Y(), 0),
		vector.XYZ(0, 0, z),
		vector.XYZ(v.X(), 0, z),
		vector.XYZ(0, v.Y(), z),
		vector.XYZ(v.X(), v.Y(), z),
	}}
}

// ColorRGB colors a solid with 0..255 channel values and an alpha in 0..1.
// An alpha of 1 is a solid color; lower values make the color fainter.
// Colors are visible in the OpenSCAD preview, not in rendered exports.
func ColorRGB(r, g, b, alpha float64) Transform {
	c := vector.XYZ(r, g, b).Div(255)
	return wrapTransform(fmt.Sprintf("color( %s, %f )", c, alpha))
}

// ColorName colors a solid with a named SVG color, passed through to
// OpenSCAD verbatim.
func ColorName(name string) Transform {
	return wrapTransform(fmt.Sprintf("color( \"%s\" )", name))
}

// Custom wraps both fragments of a solid in an arbitrary OpenSCAD operation.
// It is the transform-level escape hatch for operations the library does not
// cover. Single quotes in the text are replaced by double quotes for
// convenience (OpenSCAD requires double quotes).
func Custom(text string) Transform {
	return wrapTransform(strings.ReplaceAll(text, "'", `"`))
}

// Extrude extends a 2D solid into a 3D one by extruding it in the
// z direction, optionally twisting it along the way (WithTwist) or scaling
// it towards the top (WithScaleTo).
func (b *Builder) Extrude(height float64, opts ...Option) Transform {
	o := b.buildOptions(opts)
	return extrudeTransform(height, o.twist, o.scaleTo, o.extrudeFacets(b.set))
}

// RotateExtrude sweeps a 2D solid around the z axis, by a full turn unless
// WithAngle says otherwise.
func (b *Builder) RotateExtrude(opts ...Option) Transform {
	o := b.buildOptions(opts)
	return wrapTransform(fmt.Sprintf("rotate_extrude( angle=%f, convexity=%d, $fn=%d )\n",
		o.angle, o.convexity, o.extrudeFacets(b.set)))
}

func extrudeTransform(height, twist, scaleTo float64, facets int) Transform {
	return wrapTransform(fmt.Sprintf("linear_extrude( height=%f, twist=%f, scale=%f, $fn=%d )\n",
		height, twist, scaleTo, facets))
}
