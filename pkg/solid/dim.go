package solid

import "github.com/matzehuels/scadkit/pkg/errors"

// Dim specifies the size of a round feature as either a radius or a
// diameter. Exactly one of the two can be carried: the type makes the
// "both given" mistake unrepresentable, and the zero Dim means
// "unspecified", which is rejected where a dimension is required.
type Dim struct {
	r  float64
	ok bool
}

// Radius creates a Dim from a radius.
func Radius(v float64) Dim { return Dim{r: v, ok: true} }

// Diameter creates a Dim from a diameter.
func Diameter(v float64) Dim { return Dim{r: v / 2, ok: true} }

// IsSet reports whether the dimension was specified.
func (d Dim) IsSet() bool { return d.ok }

// radius returns the dimension as a radius, or an invalid-argument error
// naming the shape when the dimension was never specified.
func (d Dim) radius(shape string) (float64, error) {
	if !d.ok {
		return 0, errors.New(errors.ErrCodeInvalidDimension,
			"%s: specify either a radius or a diameter", shape)
	}
	return d.r, nil
}
