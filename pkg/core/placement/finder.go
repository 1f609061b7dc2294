package placement

import (
	"slices"

	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/collision"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/observability"
)

// Finder searches for label placements against a shared collision detector.
// A Finder is not safe for concurrent use.
type Finder struct {
	detector collision.Detector
	extent   geom.Envelope
	hooks    observability.PlacementHooks
}

// NewFinder returns a finder registering placements with detector. extent is
// the device-space view used by AvoidEdges.
func NewFinder(detector collision.Detector, extent geom.Envelope) *Finder {
	return &Finder{
		detector: detector,
		extent:   extent,
		hooks:    observability.Placement(),
	}
}

// Detector returns the finder's collision detector.
func (f *Finder) Detector() collision.Detector { return f.detector }

// attempt is the scratch state of one builder invocation. Nothing in it is
// visible outside the finder until commit.
type attempt struct {
	start orb.Point
	nodes []GlyphNode
	boxes []geom.Envelope
}

func (a *attempt) reset() {
	a.start = orb.Point{}
	a.nodes = a.nodes[:0]
	a.boxes = a.boxes[:0]
}

// FindPlacements searches for placements of r and reports whether at least
// one was accepted. Accepted placements are appended to r and their boxes
// inserted into the detector.
func (f *Finder) FindPlacements(r *Request) bool {
	before := len(r.placements)
	defer func() {
		f.hooks.OnPlaced(r.Label, len(r.placements)-before)
	}()

	if r.text.Len() == 0 || r.geometry.NumPoints() == 0 {
		return false
	}

	var a attempt

	// A single anchor does not depend on the distance searched.
	if r.geometry.NumPoints() == 1 ||
		(r.Policy.Placement == PointPlacement && r.geometry.Type() != geom.LineString) {
		f.try(r, &a, 0)
		return len(r.placements) > before
	}

	candidates := r.idealPlacements()
	if len(candidates) == 0 {
		f.hooks.OnAttempt(strategyFor(r), 0, string(ReasonTooLong))
		return false
	}

	distance := r.TotalDistance()
	tolerance := r.tolerance
	delta := max(1, tolerance/100)

	for _, d := range candidates {
		for i := 0.0; i == 0 || i < tolerance; i += delta {
			if f.tryAt(r, &a, d+i, distance) {
				break
			}
			if i > 0 && f.tryAt(r, &a, d-i, distance) {
				break
			}
		}
	}
	return len(r.placements) > before
}

func (f *Finder) tryAt(r *Request, a *attempt, target, distance float64) bool {
	if target < 0 || target > distance {
		return false
	}
	return f.try(r, a, target)
}

func strategyFor(r *Request) string {
	if r.Policy.Placement == LinePlacement && r.geometry.NumPoints() > 1 {
		return StrategyFollow
	}
	return StrategyHorizontal
}

// try runs one builder at target and commits on success.
func (f *Finder) try(r *Request, a *attempt, target float64) bool {
	a.reset()

	strategy := strategyFor(r)
	var why Reason
	if strategy == StrategyFollow {
		why = f.buildPathFollow(r, a, target)
	} else {
		why = f.buildPathHorizontal(r, a, target)
	}
	f.hooks.OnAttempt(strategy, target, string(why))
	if why != "" {
		return false
	}
	f.commit(r, a)
	return true
}

func (f *Finder) commit(r *Request, a *attempt) {
	r.placements = append(r.placements, AcceptedPlacement{
		Start: a.start,
		Nodes: slices.Clone(a.nodes),
	})
	for _, box := range a.boxes {
		f.detector.Insert(box, r.Label)
	}
}

// check validates one candidate box against the view and the detector.
func (f *Finder) check(r *Request, box geom.Envelope) Reason {
	if r.Policy.AvoidEdges && !f.extent.Contains(box) {
		return ReasonOutOfBounds
	}
	if !r.Policy.AllowOverlap && !f.detector.HasPlacement(box, r.Label, r.Policy.MinimumDistance) {
		return ReasonCollision
	}
	return ""
}

// fixedBox returns the policy's fixed-size box centred on p.
func fixedBox(p Policy, at orb.Point) geom.Envelope {
	hw, hh := p.Dimensions[0]/2, p.Dimensions[1]/2
	return geom.NewEnvelope(at[0]-hw, at[1]-hh, at[0]+hw, at[1]+hh)
}
