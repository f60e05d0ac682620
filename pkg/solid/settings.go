package solid

// DefaultFacets is the default polygon-approximation step count for circles,
// spheres, text and extrusions. 32 is a compromise between render speed and
// accuracy; for quick previews of complex designs a much lower value (10, or
// even 5) is appropriate.
const DefaultFacets = 32

// Settings holds the facet counts used by leaf constructors. It is a plain
// value bound to a Builder at the start of a build, so two builds never share
// hidden state and a settings change can never affect a solid that was
// already constructed (fragments are baked at construction time).
type Settings struct {
	CircleFacets  int
	SphereFacets  int
	TextFacets    int
	ExtrudeFacets int
}

// DefaultSettings returns settings with all facet counts at DefaultFacets.
func DefaultSettings() Settings {
	return Settings{
		CircleFacets:  DefaultFacets,
		SphereFacets:  DefaultFacets,
		TextFacets:    DefaultFacets,
		ExtrudeFacets: DefaultFacets,
	}
}

// WithFacets returns a copy of the settings with every facet count set to n.
func (s Settings) WithFacets(n int) Settings {
	s.CircleFacets = n
	s.SphereFacets = n
	s.TextFacets = n
	s.ExtrudeFacets = n
	return s
}

// Builder constructs leaf solids and facet-dependent transforms with a fixed
// set of facet defaults. Builders are cheap; create one per build:
//
//	b := solid.NewBuilder(solid.DefaultSettings())
//	c, err := b.Circle(solid.Radius(5))
//
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	set Settings
}

// NewBuilder returns a builder bound to the given settings.
func NewBuilder(set Settings) *Builder {
	return &Builder{set: set}
}

// Settings returns the settings the builder was created with.
func (b *Builder) Settings() Settings { return b.set }
