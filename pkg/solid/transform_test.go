package solid

import (
	"strings"
	"testing"

	"github.com/matzehuels/scadkit/pkg/vector"
)

func TestTranslate(t *testing.T) {
	s := Translate(vector.Right(5)).Apply(Raw("cube( 1 );", ""))
	want := "translate( [ 5.000000, 0.000000, 0.000000 ] ){\n   cube( 1 );\n}"
	if got := s.Positive(); got != want {
		t.Errorf("Positive() = %q, want %q", got, want)
	}
}

func TestWrapTransformsBothFragments(t *testing.T) {
	s := Translate(vector.Up(3)).Apply(Raw("pos;", "neg;"))
	wantPos := "translate( [ 0.000000, 0.000000, 3.000000 ] ){\n   pos;\n}"
	wantNeg := "translate( [ 0.000000, 0.000000, 3.000000 ] ){\n   neg;\n}"
	if got := s.Positive(); got != wantPos {
		t.Errorf("Positive() = %q, want %q", got, wantPos)
	}
	if got := s.Negative(); got != wantNeg {
		t.Errorf("Negative() = %q, want %q", got, wantNeg)
	}
}

func TestTransformNilPropagates(t *testing.T) {
	transforms := []struct {
		name string
		tr   Transform
	}{
		{"translate", Translate(vector.Up(1))},
		{"rotate", Rotate(90, 0, 0)},
		{"negative", Negative()},
		{"positive", Positive()},
		{"minkowski", Minkowski()},
		{"repeat2", Repeat2(vector.Right(1))},
		{"hull", Hull()},
	}
	for _, tt := range transforms {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(nil); got != nil {
				t.Errorf("Apply(nil) = %v, want nil", got)
			}
		})
	}
}

func TestWrapOps(t *testing.T) {
	s := Raw("s;", "")

	tests := []struct {
		name string
		tr   Transform
		want string
	}{
		{
			name: "rotate",
			tr:   Rotate(90, 0, 45),
			want: "rotate( [ 90.000000, 0.000000, 45.000000 ] ){\n   s;\n}",
		},
		{
			name: "mirror",
			tr:   Mirror(1, 0, 0),
			want: "mirror( [ 1.000000, 0.000000, 0.000000 ] ){\n   s;\n}",
		},
		{
			name: "scale",
			tr:   Scale(1, 2, 2),
			want: "scale( [ 1.000000, 2.000000, 2.000000 ] ){\n   s;\n}",
		},
		{
			name: "hull",
			tr:   Hull(),
			want: "hull(){\n   s;\n}",
		},
		{
			name: "custom with quote replacement",
			tr:   Custom("color( 'red' )"),
			want: "color( \"red\" ){\n   s;\n}",
		},
		{
			name: "color name",
			tr:   ColorName("SteelBlue"),
			want: "color( \"SteelBlue\" ){\n   s;\n}",
		},
		{
			name: "color rgb",
			tr:   ColorRGB(255, 0, 0, 1),
			want: "color( [ 1.000000, 0.000000, 0.000000 ], 1.000000 ){\n   s;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.Apply(s).Positive(); got != tt.want {
				t.Errorf("Positive() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResizeAutoFlags(t *testing.T) {
	s := Raw("s;", "")

	got := Resize(vector.XY(30, 10)).Apply(s).Positive()
	want := "resize( [ 30.000000, 10.000000 ], auto=[false, false, true] ){\n   s;\n}"
	if got != want {
		t.Errorf("2D Resize = %q, want %q", got, want)
	}

	got = Resize(vector.XYZ(30, 10, 5)).Apply(s).Positive()
	want = "resize( [ 30.000000, 10.000000, 5.000000 ], auto=[false, false, false] ){\n   s;\n}"
	if got != want {
		t.Errorf("3D Resize = %q, want %q", got, want)
	}
}

func TestNegativeResolvesSubject(t *testing.T) {
	// A subject that already carries an emptiness is rendered first, so
	// the inner emptiness is folded into the new negative fragment.
	inner := Raw("a;", "hole;")
	n := Negative().Apply(inner)
	if got := n.Positive(); got != "" {
		t.Errorf("Positive() = %q, want \"\"", got)
	}
	neg := n.Negative()
	if !strings.Contains(neg, "a;") || !strings.Contains(neg, "hole;") {
		t.Errorf("Negative() = %q, want the resolved subject", neg)
	}
}

func TestRepeat2(t *testing.T) {
	s := Raw("s;", "")
	got := Repeat2(vector.XYZ(5, 0, 0)).Apply(s).Positive()

	// One bare copy plus one translated copy.
	if n := strings.Count(got, "s;"); n != 2 {
		t.Errorf("copies = %d, want 2; output %q", n, got)
	}
	if n := strings.Count(got, "translate("); n != 1 {
		t.Errorf("translated copies = %d, want 1; output %q", n, got)
	}
	if !strings.HasPrefix(got, "union(){") {
		t.Errorf("Positive() = %q, want a union", got)
	}
}

func TestRepeat4(t *testing.T) {
	s := Raw("s;", "")
	got := Repeat4(vector.XY(10, 20)).Apply(s).Positive()

	if n := strings.Count(got, "s;"); n != 4 {
		t.Errorf("copies = %d, want 4", n)
	}
	// All four copies are wrapped, including the one at the origin.
	if n := strings.Count(got, "translate("); n != 4 {
		t.Errorf("translated copies = %d, want 4", n)
	}
	for _, v := range []string{
		"translate( [ 0.000000, 0.000000 ] )",
		"translate( [ 10.000000, 0.000000 ] )",
		"translate( [ 0.000000, 20.000000 ] )",
		"translate( [ 10.000000, 20.000000 ] )",
	} {
		if !strings.Contains(got, v) {
			t.Errorf("Positive() missing %q", v)
		}
	}
}

func TestRepeat8(t *testing.T) {
	s := Raw("s;", "")
	got := Repeat8(vector.XYZ(10, 20, 30)).Apply(s).Positive()

	if n := strings.Count(got, "s;"); n != 8 {
		t.Errorf("copies = %d, want 8", n)
	}
	if !strings.Contains(got, "translate( [ 10.000000, 20.000000, 30.000000 ] )") {
		t.Errorf("Positive() missing far corner; output %q", got)
	}
}

func TestMinkowski(t *testing.T) {
	a := Raw("a;", "")
	b := Raw("b;", "")

	got := Minkowski().Apply(a.Union(b)).Positive()
	want := "minkowski(){\n   a;b;\n}"
	if got != want {
		t.Errorf("Positive() = %q, want %q", got, want)
	}

	// Applied to anything but a union it is a no-op.
	if got := Minkowski().Apply(a); got != a {
		t.Errorf("Minkowski on a plain solid = %v, want the subject", got)
	}
}

func TestExtrude(t *testing.T) {
	b := testBuilder()
	s := Raw("square( 1 );", "")

	got := b.Extrude(10).Apply(s).Positive()
	want := "linear_extrude( height=10.000000, twist=0.000000, scale=1.000000, $fn=32 )\n{\n   square( 1 );\n}"
	if got != want {
		t.Errorf("Extrude = %q, want %q", got, want)
	}

	got = b.Extrude(10, WithTwist(90), WithScaleTo(0.5), WithFacets(100)).Apply(s).Positive()
	if !strings.Contains(got, "twist=90.000000") ||
		!strings.Contains(got, "scale=0.500000") ||
		!strings.Contains(got, "$fn=100") {
		t.Errorf("Extrude with options = %q", got)
	}
}

func TestRotateExtrude(t *testing.T) {
	b := testBuilder()
	s := Raw("square( 1 );", "")

	got := b.RotateExtrude().Apply(s).Positive()
	if !strings.HasPrefix(got, "rotate_extrude( angle=360.000000, convexity=2, $fn=32 )\n{") {
		t.Errorf("RotateExtrude = %q", got)
	}

	got = b.RotateExtrude(WithAngle(180), WithConvexity(4)).Apply(s).Positive()
	if !strings.Contains(got, "angle=180.000000, convexity=4") {
		t.Errorf("RotateExtrude with options = %q", got)
	}
}
