package solid

import "strings"

// Solid is an immutable 2D or 3D shape, represented as a pair of OpenSCAD
// text fragments: the positive fragment describes material that is present,
// the negative fragment describes a dominant emptiness - space that stays
// empty through any further union until it is explicitly neutralized by the
// Positive transform.
//
// Solids are combined with Union, Difference and Intersect, and reshaped by
// applying a Transform. Every operation returns a new Solid; no Solid is ever
// mutated after construction.
//
// A nil *Solid is the "none" element: Union treats it as identity and
// transforms propagate it. This makes incremental assembly natural:
//
//	var r *solid.Solid
//	r = r.Union(part1)
//	r = r.Union(part2)
//
// String resolves the deferred negative fragment into real geometry exactly
// once; Positive and Negative return the raw fragments.
type Solid struct {
	positive string
	negative string

	// items is non-nil for a flattening union group. Unions gather their
	// operands into one flat list instead of nesting binary unions, which
	// keeps the emitted OpenSCAD readable. The group is merged into a
	// single fragment pair lazily, when the fragments are read.
	items []*Solid
}

// Raw wraps pre-rendered OpenSCAD fragments in a Solid. It is the escape
// hatch for OpenSCAD features the library does not cover directly: the
// positive text is emitted as material, the negative text as a dominant
// emptiness. Both may be empty.
func Raw(positive, negative string) *Solid {
	return &Solid{positive: positive, negative: negative}
}

// Empty returns a solid with no material and no emptiness.
func Empty() *Solid {
	return &Solid{}
}

// Positive returns the OpenSCAD text of the solid's positive parts.
// Union groups are merged first. A nil solid yields "".
func (s *Solid) Positive() string {
	if s == nil {
		return ""
	}
	if s.items != nil {
		return s.mergeAs("union()").positive
	}
	return s.positive
}

// Negative returns the OpenSCAD text of the solid's dominant negative parts.
// Union groups are merged first. A nil solid yields "".
func (s *Solid) Negative() string {
	if s == nil {
		return ""
	}
	if s.items != nil {
		return s.mergeAs("union()").negative
	}
	return s.negative
}

// String returns the OpenSCAD representation of the solid: the positive
// fragment with the dominant negative subtracted away. This is where deferred
// negatives become real geometry, exactly once.
func (s *Solid) String() string {
	if s == nil {
		return ""
	}
	return s.Difference(Raw(s.Negative(), "")).Positive()
}

// Union combines two solids into one. The operands are gathered into a flat
// list rather than a nested binary union; order is insertion order, which is
// irrelevant to the final geometry but keeps the output readable.
// A nil operand on either side is the identity.
func (s *Solid) Union(rhs *Solid) *Solid {
	if rhs == nil {
		return s
	}
	if s == nil {
		return rhs
	}
	g := &Solid{items: make([]*Solid, 0, 2)}
	g.gather(s)
	g.gather(rhs)
	return g
}

// Union folds any number of solids into one, skipping nil operands.
// Union() with no operands returns nil.
func Union(solids ...*Solid) *Solid {
	var acc *Solid
	for _, s := range solids {
		acc = acc.Union(s)
	}
	return acc
}

// Difference subtracts rhs from s. The positive fragments combine under
// difference(), but the negative fragments of BOTH operands combine under
// union(): a dominant emptiness survives subtraction symmetrically on both
// sides. Subtracting nil is the identity.
func (s *Solid) Difference(rhs *Solid) *Solid {
	if rhs == nil {
		return s
	}
	return combine("difference()", "union()", s, rhs)
}

// Intersect intersects two solids. Positive fragments combine under
// intersection(), negative fragments under union(), mirroring Difference.
func (s *Solid) Intersect(rhs *Solid) *Solid {
	return combine("intersection()", "union()", s, rhs)
}

// gather appends x to the group, splicing in the items of x when x is
// itself a group, so groups stay flat.
func (s *Solid) gather(x *Solid) {
	if x.items != nil {
		s.items = append(s.items, x.items...)
		return
	}
	s.items = append(s.items, x)
}

// mergeAs folds a group into a single fragment pair under the given
// OpenSCAD operation (union() everywhere except the Minkowski transform).
func (s *Solid) mergeAs(op string) *Solid {
	var pos, neg strings.Builder
	for _, it := range s.items {
		pos.WriteString(it.Positive())
		neg.WriteString(it.Negative())
	}
	return &Solid{
		positive: op + "{\n" + indent(pos.String()) + "}",
		negative: op + "{\n" + indent(neg.String()) + "}",
	}
}

// combine applies a binary OpenSCAD operation to two solids: posOp to the
// positive fragments, negOp to the negative fragments. Nil operands
// contribute empty fragments.
func combine(posOp, negOp string, a, b *Solid) *Solid {
	return &Solid{
		positive: posOp + "{\n" + indent(a.Positive()+"\n"+b.Positive()+"\n") + "}",
		negative: negOp + "{\n" + indent(a.Negative()+"\n"+b.Negative()+"\n") + "}",
	}
}

// wrap applies a unary OpenSCAD operation to both fragments of a solid.
// A nil subject propagates as nil.
func wrap(op string, s *Solid) *Solid {
	if s == nil {
		return nil
	}
	return &Solid{
		positive: op + "{\n" + indent(s.Positive()+"\n") + "}",
		negative: op + "{\n" + indent(s.Negative()+"\n") + "}",
	}
}

// indent shifts every non-blank line of text one indent step (three spaces)
// to the right. Blank lines are dropped.
func indent(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("   ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
