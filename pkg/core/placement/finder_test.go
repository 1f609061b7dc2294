package placement

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/collision"
	"github.com/matzehuels/maplabel/pkg/core/geom"
)

func TestFindPlacementsSingleVertex(t *testing.T) {
	tests := []struct {
		name string
		g    orb.Geometry
		mode Mode
	}{
		{"point in point mode", orb.Point{100, 100}, PointPlacement},
		{"point in line mode", orb.Point{100, 100}, LinePlacement},
		{"one vertex line in line mode", orb.LineString{{100, 100}}, LinePlacement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, rec := newFinder(t)
			r := newRequest(t, tt.g, "ab", Policy{Placement: tt.mode, Spacing: 10})

			if !f.FindPlacements(r) {
				t.Fatalf("FindPlacements() = false, want true")
			}
			want := []attemptEvent{{StrategyHorizontal, 0, ""}}
			if diff := cmp.Diff(want, rec.attempts, cmp.AllowUnexported(attemptEvent{})); diff != "" {
				t.Errorf("attempts mismatch (-want +got):\n%s", diff)
			}
			if got := r.Placements()[0].Start; got != (orb.Point{100, 100}) {
				t.Errorf("Start = %v, want [100 100]", got)
			}
		})
	}
}

func TestFindPlacementsInsertsExactlyAttemptBoxes(t *testing.T) {
	f, d, _ := newFinder(t)
	r := newRequest(t, orb.Point{50, 50}, "ab", Policy{})

	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false, want true")
	}

	want := []collision.Entry{
		{Box: geom.NewEnvelope(40, 45, 50, 55), Label: "ab"},
		{Box: geom.NewEnvelope(50, 45, 60, 55), Label: "ab"},
	}
	if diff := cmp.Diff(want, d.Boxes()); diff != "" {
		t.Errorf("detector boxes mismatch (-want +got):\n%s", diff)
	}

	wantNodes := []GlyphNode{
		{Char: 'a', X: -10, Y: 5},
		{Char: 'b', X: 0, Y: 5},
	}
	if diff := cmp.Diff(wantNodes, r.Placements()[0].Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPlacementsSameLabelRejectedWithoutChange(t *testing.T) {
	f, d, _ := newFinder(t)
	policy := Policy{MinimumDistance: 10}

	if !f.FindPlacements(newRequest(t, orb.Point{50, 50}, "ab", policy)) {
		t.Fatal("first FindPlacements() = false, want true")
	}
	before := d.Boxes()

	r := newRequest(t, orb.Point{50, 50}, "ab", policy)
	if f.FindPlacements(r) {
		t.Fatal("second FindPlacements() = true, want false")
	}
	if len(r.Placements()) != 0 {
		t.Errorf("Placements() = %v, want none", r.Placements())
	}
	if diff := cmp.Diff(before, d.Boxes()); diff != "" {
		t.Errorf("detector changed (-before +after):\n%s", diff)
	}
}

func TestFindPlacementsMinimumDistance(t *testing.T) {
	f, _, _ := newFinder(t)

	if !f.FindPlacements(newRequest(t, orb.Point{50, 50}, "ab", Policy{})) {
		t.Fatal("first FindPlacements() = false")
	}

	// 25 units to the right does not overlap the first label's boxes.
	near := newRequest(t, orb.Point{75, 50}, "ab", Policy{MinimumDistance: 20})
	if f.FindPlacements(near) {
		t.Error("same label within minimum distance placed")
	}
	other := newRequest(t, orb.Point{75, 50}, "cd", Policy{MinimumDistance: 20})
	if !f.FindPlacements(other) {
		t.Error("different label near first one rejected")
	}
}

func TestFindPlacementsAvoidEdges(t *testing.T) {
	f, d, rec := newFinder(t)

	r := newRequest(t, orb.Point{2, 50}, "ab", Policy{AvoidEdges: true})
	if f.FindPlacements(r) {
		t.Fatal("FindPlacements() = true for a label crossing the edge")
	}
	if got := rec.attempts[0].reason; got != string(ReasonOutOfBounds) {
		t.Errorf("reason = %q, want %q", got, ReasonOutOfBounds)
	}
	if d.Len() != 0 {
		t.Errorf("detector Len() = %d, want 0", d.Len())
	}

	if !f.FindPlacements(newRequest(t, orb.Point{2, 50}, "ab", Policy{})) {
		t.Error("FindPlacements() without AvoidEdges = false, want true")
	}
}

func TestFindPlacementsAllowOverlap(t *testing.T) {
	f, d, _ := newFinder(t)
	d.Insert(geom.NewEnvelope(0, 0, 200, 200), "background")

	if f.FindPlacements(newRequest(t, orb.Point{50, 50}, "ab", Policy{})) {
		t.Fatal("FindPlacements() over occupied area = true")
	}
	if !f.FindPlacements(newRequest(t, orb.Point{50, 50}, "ab", Policy{AllowOverlap: true})) {
		t.Fatal("FindPlacements() with AllowOverlap = false")
	}
	if d.Len() != 3 {
		t.Errorf("detector Len() = %d, want 3", d.Len())
	}
}

func TestFindPlacementsFixedDimensions(t *testing.T) {
	f, d, _ := newFinder(t)
	r := newRequest(t, orb.Point{50, 50}, "abc", Policy{Dimensions: [2]float64{40, 20}})

	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	want := []collision.Entry{{Box: geom.NewEnvelope(30, 40, 70, 60), Label: "abc"}}
	if diff := cmp.Diff(want, d.Boxes()); diff != "" {
		t.Errorf("detector boxes mismatch (-want +got):\n%s", diff)
	}
	if n := len(r.Placements()[0].Nodes); n != 3 {
		t.Errorf("len(Nodes) = %d, want 3", n)
	}
}

func TestFindPlacementsDisplacement(t *testing.T) {
	f, _, _ := newFinder(t)
	r := newRequest(t, orb.Point{50, 50}, "ab", Policy{Displacement: [2]float64{5, -10}})

	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	if got := r.Placements()[0].Start; got != (orb.Point{55, 40}) {
		t.Errorf("Start = %v, want [55 40]", got)
	}
}

func TestFindPlacementsPointModeOnLine(t *testing.T) {
	f, _, rec := newFinder(t)
	r := newRequest(t, orb.LineString{{0, 50}, {200, 50}}, "ab", Policy{Placement: PointPlacement})

	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	if got := r.Placements()[0].Start; got != (orb.Point{100, 50}) {
		t.Errorf("Start = %v, want [100 50]", got)
	}
	if rec.attempts[0].strategy != StrategyHorizontal {
		t.Errorf("strategy = %q, want %q", rec.attempts[0].strategy, StrategyHorizontal)
	}
}

func TestFindPlacementsSearchesAroundObstacle(t *testing.T) {
	f, d, _ := newFinder(t)
	d.Insert(geom.NewEnvelope(70, 40, 130, 60), "obstacle")

	r := newRequest(t, orb.LineString{{0, 50}, {200, 50}}, "abcde", Policy{Placement: LinePlacement})
	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	if got := len(r.Placements()); got != 1 {
		t.Fatalf("len(Placements()) = %d, want 1", got)
	}
	start := r.Placements()[0].Start
	if math.Abs(start[0]-130) > 1e-9 || math.Abs(start[1]-50) > 1e-9 {
		t.Errorf("Start = %v, want [130 50]", start)
	}
}

func TestFindPlacementsRepeatsAlongLine(t *testing.T) {
	f, _, rec := newFinder(t)
	r := newRequest(t, orb.LineString{{0, 50}, {200, 50}}, "ab", Policy{Placement: LinePlacement, Spacing: 30})

	// n = floor(200 / (30 + 20)) = 4 candidates, all free.
	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	if got := len(r.Placements()); got != 4 {
		t.Errorf("len(Placements()) = %d, want 4", got)
	}
	if got := rec.placed; len(got) != 1 || got[0] != 4 {
		t.Errorf("OnPlaced counts = %v, want [4]", got)
	}
}

func TestFindPlacementsTooLong(t *testing.T) {
	f, d, rec := newFinder(t)
	r := newRequest(t, orb.LineString{{0, 50}, {30, 50}}, "abcdef", Policy{Placement: LinePlacement})

	if f.FindPlacements(r) {
		t.Fatal("FindPlacements() = true for text longer than the line")
	}
	if len(rec.attempts) != 1 || rec.attempts[0].reason != string(ReasonTooLong) {
		t.Errorf("attempts = %v, want one %q", rec.attempts, ReasonTooLong)
	}
	if d.Len() != 0 {
		t.Errorf("detector Len() = %d, want 0", d.Len())
	}
}

func TestFindPlacementsEmptyText(t *testing.T) {
	f, _, _ := newFinder(t)
	if f.FindPlacements(newRequest(t, orb.Point{50, 50}, "", Policy{})) {
		t.Error("FindPlacements() with empty text = true")
	}
}

func TestFindPlacementsProjectedPoint(t *testing.T) {
	merc := geom.WebMercator{}
	center := merc.Backward(orb.Point{10, 50})
	extent := geom.NewEnvelope(center[0]-1000, center[1]-1000, center[0]+1000, center[1]+1000)
	view, err := geom.NewViewTransform(200, 200, extent)
	if err != nil {
		t.Fatal(err)
	}

	f, _, _ := newFinder(t)
	r := NewRequest(mustGeom(t, orb.Point{10, 50}), mono("ab", 10, 10), merc, view, Policy{})
	if !f.FindPlacements(r) {
		t.Fatal("FindPlacements() = false")
	}
	start := r.Placements()[0].Start
	if math.Abs(start[0]-100) > 1e-6 || math.Abs(start[1]-100) > 1e-6 {
		t.Errorf("Start = %v, want view centre [100 100]", start)
	}
}
