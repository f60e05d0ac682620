package solid

import (
	"strings"
	"testing"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "single line", in: "cube( 1 );", want: "   cube( 1 );\n"},
		{name: "trailing newline", in: "cube( 1 );\n", want: "   cube( 1 );\n"},
		{name: "blank lines dropped", in: "a;\n\nb;\n", want: "   a;\n   b;\n"},
		{name: "nested", in: "union(){\n   a;\n}", want: "   union(){\n      a;\n   }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indent(tt.in); got != tt.want {
				t.Errorf("indent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnionFlattens(t *testing.T) {
	a := Raw("a;", "")
	b := Raw("b;", "")
	c := Raw("c;", "")

	left := a.Union(b).Union(c)
	right := a.Union(b.Union(c))

	want := "union(){\n   a;b;c;\n}"
	if got := left.Positive(); got != want {
		t.Errorf("left association: Positive() = %q, want %q", got, want)
	}
	if got := right.Positive(); got != want {
		t.Errorf("right association: Positive() = %q, want %q", got, want)
	}
}

func TestUnionNilIdentity(t *testing.T) {
	s := Raw("cube( 1 );", "")

	if got := (*Solid)(nil).Union(s); got != s {
		t.Errorf("nil.Union(s) = %v, want s", got)
	}
	if got := s.Union(nil); got != s {
		t.Errorf("s.Union(nil) = %v, want s", got)
	}
	if got := Union(); got != nil {
		t.Errorf("Union() = %v, want nil", got)
	}
	if got := Union(nil, s, nil); got != s {
		t.Errorf("Union(nil, s, nil) = %v, want s", got)
	}
}

func TestNilSolidRenders(t *testing.T) {
	var s *Solid
	if got := s.String(); got != "" {
		t.Errorf("nil String() = %q, want \"\"", got)
	}
	if got := s.Positive(); got != "" {
		t.Errorf("nil Positive() = %q, want \"\"", got)
	}
	if got := s.Negative(); got != "" {
		t.Errorf("nil Negative() = %q, want \"\"", got)
	}
}

func TestDifference(t *testing.T) {
	a := Raw("a;", "")
	b := Raw("b;", "")

	d := a.Difference(b)
	wantPos := "difference(){\n   a;\n   b;\n}"
	if got := d.Positive(); got != wantPos {
		t.Errorf("Positive() = %q, want %q", got, wantPos)
	}
	wantNeg := "union(){\n}"
	if got := d.Negative(); got != wantNeg {
		t.Errorf("Negative() = %q, want %q", got, wantNeg)
	}

	if got := a.Difference(nil); got != a {
		t.Errorf("a.Difference(nil) = %v, want a", got)
	}
}

func TestIntersect(t *testing.T) {
	d := Raw("a;", "").Intersect(Raw("b;", ""))
	want := "intersection(){\n   a;\n   b;\n}"
	if got := d.Positive(); got != want {
		t.Errorf("Positive() = %q, want %q", got, want)
	}
}

func TestStringResolvesNegative(t *testing.T) {
	body := Raw("B;", "")
	hole := Negative().Apply(Raw("H;", ""))

	u := body.Union(hole)

	// The emptiness is carried in the negative fragment, not the material.
	wantNeg := "union(){\n   difference(){\n      H;\n   }\n}"
	if got := u.Negative(); got != wantNeg {
		t.Errorf("Negative() = %q, want %q", got, wantNeg)
	}

	want := "difference(){\n" +
		"   union(){\n" +
		"      B;\n" +
		"   }\n" +
		"   union(){\n" +
		"      difference(){\n" +
		"         H;\n" +
		"      }\n" +
		"   }\n" +
		"}"
	if got := u.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNegativeSurvivesLaterUnion(t *testing.T) {
	pipe := Raw("outer;", "").Union(Negative().Apply(Raw("bore;", "")))
	axle := Raw("axle;", "")

	// The bore stays subtracted even when the axle is added afterwards.
	got := pipe.Union(axle).String()
	i := strings.Index(got, "axle;")
	j := strings.Index(got, "bore;")
	if i == -1 || j == -1 || i > j {
		t.Fatalf("String() = %q, want axle material before the subtracted bore", got)
	}

	// Neutralizing first protects the axle.
	solidPipe := Positive().Apply(pipe)
	if got := solidPipe.Negative(); got != "" {
		t.Errorf("Negative() after Positive = %q, want \"\"", got)
	}
}

func TestPositiveResolves(t *testing.T) {
	s := Raw("a;", "b;")
	once := Positive().Apply(s)

	// The resolved rendering becomes plain material; the emptiness is gone.
	if got := once.Positive(); got != s.String() {
		t.Errorf("Positive() = %q, want resolved rendering %q", got, s.String())
	}
	if got := once.Negative(); got != "" {
		t.Errorf("Negative() = %q, want \"\"", got)
	}

	// Re-applying wraps the already resolved rendering in a fresh
	// difference; no geometry changes and the negative slot stays cleared.
	twice := Positive().Apply(once)
	if got := twice.Positive(); got != once.String() {
		t.Errorf("Positive() after second apply = %q, want %q", got, once.String())
	}
	if got := twice.Negative(); got != "" {
		t.Errorf("Negative() after second apply = %q, want \"\"", got)
	}
}

func TestEmptySolid(t *testing.T) {
	want := "difference(){\n}"
	if got := Empty().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRawBothFragments(t *testing.T) {
	s := Raw("pos;", "neg;")
	if got := s.Positive(); got != "pos;" {
		t.Errorf("Positive() = %q, want %q", got, "pos;")
	}
	if got := s.Negative(); got != "neg;" {
		t.Errorf("Negative() = %q, want %q", got, "neg;")
	}
}
