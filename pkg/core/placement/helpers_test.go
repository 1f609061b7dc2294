package placement

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/collision"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/text"
	"github.com/matzehuels/maplabel/pkg/observability"
)

var testExtent = geom.NewEnvelope(0, 0, 200, 200)

// mono measures s with every character w wide and h tall.
func mono(s string, w, h float64) *text.MeasuredText {
	var chars []text.CharacterInfo
	for _, r := range s {
		chars = append(chars, text.CharacterInfo{Char: r, Width: w, Height: h})
	}
	return text.New(chars)
}

func mustGeom(t *testing.T, g orb.Geometry) geom.Geometry {
	t.Helper()
	out, err := geom.FromOrb(g)
	if err != nil {
		t.Fatalf("FromOrb(%v) error = %v", g, err)
	}
	return out
}

// newRequest builds a request whose geometry is already in device space.
func newRequest(t *testing.T, g orb.Geometry, label string, policy Policy) *Request {
	t.Helper()
	return NewRequest(mustGeom(t, g), mono(label, 10, 10), nil, nil, policy)
}

type attemptEvent struct {
	strategy string
	distance float64
	reason   string
}

type recorder struct {
	observability.NoopPlacementHooks
	attempts []attemptEvent
	placed   []int
}

func (r *recorder) OnAttempt(strategy string, distance float64, reason string) {
	r.attempts = append(r.attempts, attemptEvent{strategy, distance, reason})
}

func (r *recorder) OnPlaced(_ string, n int) { r.placed = append(r.placed, n) }

// newFinder returns a finder over an empty quadtree with hooks recorded.
func newFinder(t *testing.T) (*Finder, *collision.Quadtree, *recorder) {
	t.Helper()
	rec := &recorder{}
	observability.SetPlacementHooks(rec)
	t.Cleanup(observability.Reset)
	d := collision.NewQuadtree(testExtent)
	return NewFinder(d, testExtent), d, rec
}
