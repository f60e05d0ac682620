package solid

import (
	"strings"
	"testing"

	"github.com/matzehuels/scadkit/pkg/errors"
	"github.com/matzehuels/scadkit/pkg/vector"
)

func testBuilder() *Builder {
	return NewBuilder(DefaultSettings())
}

func TestBoxSharp(t *testing.T) {
	b := testBuilder()
	want := "cube( [ 10.000000, 20.000000, 5.000000 ] );"
	if got := b.Box(10, 20, 5).Positive(); got != want {
		t.Errorf("Box(10, 20, 5) = %q, want %q", got, want)
	}
	if got := b.BoxVec(vector.XYZ(10, 20, 5)).Positive(); got != want {
		t.Errorf("BoxVec = %q, want %q", got, want)
	}
}

func TestRectangleSharp(t *testing.T) {
	b := testBuilder()
	want := "square( [ 4.000000, 3.000000 ] );"
	if got := b.Rectangle(4, 3).Positive(); got != want {
		t.Errorf("Rectangle(4, 3) = %q, want %q", got, want)
	}
}

func TestCircle(t *testing.T) {
	b := testBuilder()

	tests := []struct {
		name string
		d    Dim
		opts []Option
		want string
	}{
		{
			name: "radius",
			d:    Radius(5),
			want: "circle( r=5.000000, $fn=32 );",
		},
		{
			name: "diameter",
			d:    Diameter(5),
			want: "circle( r=2.500000, $fn=32 );",
		},
		{
			name: "facet override",
			d:    Radius(5),
			opts: []Option{WithFacets(6)},
			want: "circle( r=5.000000, $fn=6 );",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := b.Circle(tt.d, tt.opts...)
			if err != nil {
				t.Fatalf("Circle() error = %v", err)
			}
			if got := c.Positive(); got != tt.want {
				t.Errorf("Circle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCircleUnspecifiedDim(t *testing.T) {
	b := testBuilder()
	_, err := b.Circle(Dim{})
	if err == nil {
		t.Fatal("Circle(Dim{}) expected error, got nil")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimension)
	}
	if !strings.Contains(err.Error(), "circle") {
		t.Errorf("error %q does not name the shape", err.Error())
	}
}

func TestSphere(t *testing.T) {
	b := testBuilder()
	s, err := b.Sphere(Diameter(20))
	if err != nil {
		t.Fatalf("Sphere() error = %v", err)
	}
	want := "sphere( r=10.000000, $fn=32 );"
	if got := s.Positive(); got != want {
		t.Errorf("Sphere() = %q, want %q", got, want)
	}
}

func TestCylinder(t *testing.T) {
	b := testBuilder()
	c, err := b.Cylinder(12, Radius(4))
	if err != nil {
		t.Fatalf("Cylinder() error = %v", err)
	}
	want := "cylinder( h=12.000000, r=4.000000, $fn=32 );"
	if got := c.Positive(); got != want {
		t.Errorf("Cylinder() = %q, want %q", got, want)
	}
}

func TestCylinderRoundedTop(t *testing.T) {
	b := testBuilder()
	c, err := b.Cylinder(12, Radius(4), WithRoundedTop())
	if err != nil {
		t.Fatalf("Cylinder() error = %v", err)
	}
	got := c.Positive()

	// The shaft is shortened by the cap radius, the cap sits on top of it.
	if !strings.Contains(got, "cylinder( h=8.000000, r=4.000000") {
		t.Errorf("Positive() = %q, want shortened shaft", got)
	}
	if !strings.Contains(got, "sphere( r=4.000000") {
		t.Errorf("Positive() = %q, want sphere cap", got)
	}
	if !strings.Contains(got, "translate( [ 0.000000, 0.000000, 8.000000 ] )") {
		t.Errorf("Positive() = %q, want cap raised to the shaft top", got)
	}
}

func TestCone(t *testing.T) {
	b := testBuilder()
	c, err := b.Cone(10, Radius(6), Diameter(4))
	if err != nil {
		t.Fatalf("Cone() error = %v", err)
	}
	want := "cylinder( h=10.000000, r1=6.000000, r2=2.000000, $fn=32 );"
	if got := c.Positive(); got != want {
		t.Errorf("Cone() = %q, want %q", got, want)
	}

	if _, err := b.Cone(10, Dim{}, Radius(2)); !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("Cone with unspecified base: error = %v, want invalid dimension", err)
	}
}

func TestPolygon(t *testing.T) {
	b := testBuilder()
	p := b.Polygon([]vector.Vector{
		vector.XY(0, 0),
		vector.XY(10, 0),
		vector.XY(0, 10),
	})
	want := "polygon( [ [0.000000,0.000000],[10.000000,0.000000],[0.000000,10.000000], ] );"
	if got := p.Positive(); got != want {
		t.Errorf("Polygon() = %q, want %q", got, want)
	}
}

func TestText(t *testing.T) {
	b := testBuilder()

	tests := []struct {
		name string
		txt  string
		opts []Option
		want string
	}{
		{
			name: "defaults",
			txt:  "Hi",
			want: "text( \"Hi\", 5.000000, $fn=32  );",
		},
		{
			name: "height",
			txt:  "Hi",
			opts: []Option{WithHeight(8)},
			want: "text( \"Hi\", 8.000000, $fn=32  );",
		},
		{
			name: "extra args with quote replacement",
			txt:  "Hi",
			opts: []Option{WithArgs("font='Arial'")},
			want: "text( \"Hi\", 5.000000, $fn=32 , font=\"Arial\" );",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Text(tt.txt, tt.opts...).Positive(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundedRectangle(t *testing.T) {
	b := testBuilder()
	got := b.Rectangle(20, 10, WithRounding(2)).Positive()

	// Four corner circles shifted inwards, plus two shrunk sharp rectangles.
	if n := strings.Count(got, "circle( r=2.000000"); n != 4 {
		t.Errorf("corner circles = %d, want 4; output %q", n, got)
	}
	if !strings.Contains(got, "square( [ 20.000000, 6.000000 ] );") {
		t.Errorf("Positive() = %q, want vertically shrunk rectangle", got)
	}
	if !strings.Contains(got, "square( [ 16.000000, 10.000000 ] );") {
		t.Errorf("Positive() = %q, want horizontally shrunk rectangle", got)
	}
}

func TestRoundedBox(t *testing.T) {
	b := testBuilder()
	got := b.Box(20, 15, 10, WithRounding(2)).Positive()

	if n := strings.Count(got, "sphere( r=2.000000"); n != 8 {
		t.Errorf("corner spheres = %d, want 8", n)
	}
	if n := strings.Count(got, "linear_extrude("); n != 3 {
		t.Errorf("extruded faces = %d, want 3", n)
	}
	if !strings.Contains(got, "linear_extrude( height=6.000000, twist=0.000000, scale=1.000000, $fn=32 )") {
		t.Errorf("Positive() = %q, want z extrusion shortened by both roundings", got)
	}
}

func TestBuilderSettingsIsolation(t *testing.T) {
	coarse := NewBuilder(DefaultSettings().WithFacets(8))
	fine := testBuilder()

	c1, err := coarse.Circle(Radius(1))
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}
	if got := c1.Positive(); !strings.Contains(got, "$fn=8") {
		t.Errorf("coarse builder: %q, want $fn=8", got)
	}

	// A solid built earlier keeps its facets; builders never share state.
	c2, err := fine.Circle(Radius(1))
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}
	if got := c2.Positive(); !strings.Contains(got, "$fn=32") {
		t.Errorf("default builder: %q, want $fn=32", got)
	}
	if got := c1.Positive(); !strings.Contains(got, "$fn=8") {
		t.Errorf("existing solid changed: %q, want $fn=8", got)
	}
}
