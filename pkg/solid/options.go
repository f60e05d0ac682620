package solid

// Option adjusts a single leaf-constructor or transform call.
type Option func(*options)

// options collects the per-call knobs of the leaf constructors and the
// facet-dependent transforms. Zero values mean "use the default".
type options struct {
	facets     int     // 0: use the builder's settings
	rounding   float64 // corner/edge rounding radius for boxes and rectangles
	roundedTop bool    // cylinder: finish the top with a half sphere
	height     float64 // text: letter height
	twist      float64 // extrude: rotation along the z axis over the height
	scaleTo    float64 // extrude: relative size at full height
	angle      float64 // rotate-extrude: swept angle
	convexity  int     // rotate-extrude: convexity hint
	args       string  // text: extra OpenSCAD arguments, verbatim
}

func (b *Builder) buildOptions(opts []Option) options {
	o := options{
		scaleTo:   1,
		angle:     360,
		convexity: 2,
		height:    5,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithFacets overrides the facet count for this call only.
func WithFacets(n int) Option {
	return func(o *options) { o.facets = n }
}

// WithRounding rounds the corners and edges of a box or rectangle with the
// given radius. The default (0) yields sharp boundaries.
func WithRounding(r float64) Option {
	return func(o *options) { o.rounding = r }
}

// WithRoundedTop finishes a cylinder with a half sphere of the same radius.
func WithRoundedTop() Option {
	return func(o *options) { o.roundedTop = true }
}

// WithHeight sets the letter height of a text solid (default 5).
func WithHeight(h float64) Option {
	return func(o *options) { o.height = h }
}

// WithTwist sets the degrees over which an extrusion rotates its subject
// along the z axis over the extrusion height (default 0).
func WithTwist(deg float64) Option {
	return func(o *options) { o.twist = deg }
}

// WithScaleTo sets the relative size of an extruded subject at its maximum
// extrusion height (default 1).
func WithScaleTo(s float64) Option {
	return func(o *options) { o.scaleTo = s }
}

// WithAngle sets the swept angle of a rotational extrusion (default 360).
func WithAngle(deg float64) Option {
	return func(o *options) { o.angle = deg }
}

// WithConvexity sets the convexity hint of a rotational extrusion (default 2).
func WithConvexity(n int) Option {
	return func(o *options) { o.convexity = n }
}

// WithArgs appends extra arguments to a text solid, verbatim. Single quotes
// are replaced by double quotes for convenience (OpenSCAD requires double
// quotes). Check the OpenSCAD documentation for the possible arguments.
func WithArgs(args string) Option {
	return func(o *options) { o.args = args }
}

// facet count resolution: a per-call WithFacets wins over the builder's
// settings.

func (o options) circleFacets(set Settings) int {
	if o.facets != 0 {
		return o.facets
	}
	return set.CircleFacets
}

func (o options) sphereFacets(set Settings) int {
	if o.facets != 0 {
		return o.facets
	}
	return set.SphereFacets
}

func (o options) textFacets(set Settings) int {
	if o.facets != 0 {
		return o.facets
	}
	return set.TextFacets
}

func (o options) extrudeFacets(set Settings) int {
	if o.facets != 0 {
		return o.facets
	}
	return set.ExtrudeFacets
}
