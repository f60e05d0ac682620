// Package vector provides the immutable 2D/3D vector type used throughout
// scadkit to describe sizes, locations and displacements.
//
// A vector holds x and y values and an optional z value. A vector without a
// z value is two-dimensional; most operations keep that distinction:
//
//   - Add and Sub treat a missing z as 0 when the other operand is 3D,
//     so mixing a 2D and a 3D vector yields a 3D result.
//   - Scale and Div keep a missing z missing, regardless of the scalar.
//
// The asymmetry between the two rules is deliberate and matches the text the
// vectors eventually render to: a 2D displacement shifted in 3D space gains
// a zero z, but scaling a 2D size must never invent a third dimension.
//
// String renders the vector as an OpenSCAD vector literal with six-decimal
// floats, e.g. "[ 10.000000, 20.000000 ]".
package vector

import "fmt"

// Vector is an immutable 2D or 3D vector. The zero value is the 2D origin.
type Vector struct {
	x, y, z float64
	has3D   bool
}

// XY creates a 2D vector.
func XY(x, y float64) Vector {
	return Vector{x: x, y: y}
}

// XYZ creates a 3D vector.
func XYZ(x, y, z float64) Vector {
	return Vector{x: x, y: y, z: z, has3D: true}
}

// X returns the first component.
func (v Vector) X() float64 { return v.x }

// Y returns the second component.
func (v Vector) Y() float64 { return v.y }

// Z returns the third component and whether it is present.
// For a 2D vector it returns (0, false).
func (v Vector) Z() (float64, bool) { return v.z, v.has3D }

// Is3D reports whether the vector has a z component.
func (v Vector) Is3D() bool { return v.has3D }

// Add returns the member-wise sum of two vectors.
// Adding two 2D vectors yields a 2D vector; adding two 3D vectors yields a
// 3D vector. When a 2D and a 3D vector are added, the missing z is taken
// to be 0 and the result is 3D.
func (v Vector) Add(o Vector) Vector {
	return Vector{
		x:     v.x + o.x,
		y:     v.y + o.y,
		z:     v.z + o.z,
		has3D: v.has3D || o.has3D,
	}
}

// Sub returns the member-wise difference of two vectors.
// The z handling follows the same rule as Add: a missing z counts as 0,
// and the result is 3D if either operand is.
func (v Vector) Sub(o Vector) Vector {
	return Vector{
		x:     v.x - o.x,
		y:     v.y - o.y,
		z:     v.z - o.z,
		has3D: v.has3D || o.has3D,
	}
}

// Scale returns the vector multiplied member-wise by a scalar.
// A missing z stays missing: scaling never turns a 2D vector into a 3D one.
func (v Vector) Scale(k float64) Vector {
	return Vector{
		x:     v.x * k,
		y:     v.y * k,
		z:     v.z * k,
		has3D: v.has3D,
	}
}

// Div returns the vector divided member-wise by a scalar.
// Like Scale, a missing z stays missing.
func (v Vector) Div(k float64) Vector {
	return Vector{
		x:     v.x / k,
		y:     v.y / k,
		z:     v.z / k,
		has3D: v.has3D,
	}
}

// String renders the vector as an OpenSCAD vector literal:
// "[ x, y ]" for 2D vectors and "[ x, y, z ]" for 3D vectors,
// with six-decimal floats.
func (v Vector) String() string {
	if !v.has3D {
		return fmt.Sprintf("[ %f, %f ]", v.x, v.y)
	}
	return fmt.Sprintf("[ %f, %f, %f ]", v.x, v.y, v.z)
}

// Identity is the 3D zero displacement.
var Identity = XYZ(0, 0, 0)

// Dup2 returns a 2D vector with both components set to v.
func Dup2(v float64) Vector { return XY(v, v) }

// Dup3 returns a 3D vector with all three components set to v.
func Dup3(v float64) Vector { return XYZ(v, v, v) }

// Right returns a displacement of v along the positive x axis.
func Right(v float64) Vector { return XYZ(v, 0, 0) }

// Left returns a displacement of v along the negative x axis.
func Left(v float64) Vector { return XYZ(-v, 0, 0) }

// Back returns a displacement of v along the positive y axis (away from the viewer).
func Back(v float64) Vector { return XYZ(0, v, 0) }

// Front returns a displacement of v along the negative y axis (towards the viewer).
func Front(v float64) Vector { return XYZ(0, -v, 0) }

// Up returns a displacement of v along the positive z axis.
func Up(v float64) Vector { return XYZ(0, 0, v) }

// Down returns a displacement of v along the negative z axis.
func Down(v float64) Vector { return XYZ(0, 0, -v) }
