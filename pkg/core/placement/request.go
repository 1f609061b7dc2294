package placement

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/text"
)

// GlyphNode is one positioned character of a placement. X and Y are the
// glyph's baseline origin relative to the placement start, in device units.
type GlyphNode struct {
	Char  rune
	X, Y  float64
	Angle float64
}

// AcceptedPlacement is one committed label instance.
type AcceptedPlacement struct {
	Start orb.Point
	Nodes []GlyphNode
}

// Request is the working state for placing one label.
//
// The geometry, text, and transforms are borrowed: the caller keeps
// ownership and must not modify them until the search is done. The text's
// aggregate dimensions are overwritten when horizontal layout wraps it.
type Request struct {
	// Label identifies the text for minimum-distance checks. NewRequest
	// sets it to the measured string.
	Label  string
	Policy Policy

	geometry geom.Geometry
	text     *text.MeasuredText
	proj     geom.Projection
	view     *geom.ViewTransform

	tolerance float64

	path     []orb.Point
	total    float64
	pathDone bool

	placements []AcceptedPlacement
}

// NewRequest builds a request. A nil proj means identity.
func NewRequest(g geom.Geometry, t *text.MeasuredText, proj geom.Projection, view *geom.ViewTransform, policy Policy) *Request {
	if proj == nil {
		proj = geom.Identity{}
	}
	return &Request{
		Label:    t.String(),
		Policy:   policy,
		geometry: g,
		text:     t,
		proj:     proj,
		view:     view,
	}
}

// Geometry returns the borrowed geometry.
func (r *Request) Geometry() geom.Geometry { return r.geometry }

// Text returns the borrowed measured text.
func (r *Request) Text() *text.MeasuredText { return r.text }

// Placements returns the accepted placements in the order they were found.
func (r *Request) Placements() []AcceptedPlacement { return r.placements }

// EffectiveTolerance returns the search half-window used by the last
// candidate generation, which is the policy tolerance or, if that is zero,
// half the candidate spacing.
func (r *Request) EffectiveTolerance() float64 { return r.tolerance }

// devicePath maps the geometry's vertices into device space once and caches
// the result together with its length.
func (r *Request) devicePath() []orb.Point {
	if r.pathDone {
		return r.path
	}
	r.path = make([]orb.Point, 0, r.geometry.NumPoints())
	for v := range r.geometry.Vertices() {
		p := r.proj.Backward(v)
		if r.view != nil {
			p = r.view.Forward(p)
		}
		r.path = append(r.path, p)
	}
	for i := 1; i < len(r.path); i++ {
		r.total += segmentLength(r.path[i-1], r.path[i])
	}
	r.pathDone = true
	return r.path
}

// TotalDistance returns the device-space length of the geometry. It is
// computed on first use; later changes to the geometry are not observed.
func (r *Request) TotalDistance() float64 {
	r.devicePath()
	return r.total
}

// PositionAtDistance returns the device point at distance d along the path.
// Distances past the end yield the last vertex.
func (r *Request) PositionAtDistance(d float64) orb.Point {
	path := r.devicePath()
	if len(path) == 0 {
		return orb.Point{}
	}
	var walked float64
	for i := 1; i < len(path); i++ {
		l := segmentLength(path[i-1], path[i])
		if l == 0 {
			continue
		}
		walked += l
		if walked > d {
			return interpolate(path[i-1], path[i], (walked-d)/l)
		}
	}
	return path[len(path)-1]
}

// interpolate returns the point lying back from b toward a by the fraction
// t of the segment.
func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{
		b[0] - (b[0]-a[0])*t,
		b[1] - (b[1]-a[1])*t,
	}
}

func segmentLength(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}
