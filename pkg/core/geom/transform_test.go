package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func near(a, b orb.Point, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps && math.Abs(a[1]-b[1]) <= eps
}

func TestViewTransform(t *testing.T) {
	vt, err := NewViewTransform(200, 100, NewEnvelope(0, 0, 100, 50))
	if err != nil {
		t.Fatalf("NewViewTransform() error = %v", err)
	}

	tests := []struct {
		name string
		in   orb.Point
		want orb.Point
	}{
		{"top left", orb.Point{0, 50}, orb.Point{0, 0}},
		{"bottom right", orb.Point{100, 0}, orb.Point{200, 100}},
		{"center", orb.Point{50, 25}, orb.Point{100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vt.Forward(tt.in)
			if !near(got, tt.want, 1e-9) {
				t.Errorf("Forward(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if back := vt.Backward(got); !near(back, tt.in, 1e-9) {
				t.Errorf("Backward(Forward(%v)) = %v", tt.in, back)
			}
		})
	}

	if want := (Envelope{MaxX: 200, MaxY: 100}); vt.Extent() != want {
		t.Errorf("Extent() = %v, want %v", vt.Extent(), want)
	}
}

func TestNewViewTransformRejectsEmpty(t *testing.T) {
	if _, err := NewViewTransform(0, 100, NewEnvelope(0, 0, 1, 1)); err == nil {
		t.Error("NewViewTransform(0 width) error = nil")
	}
	if _, err := NewViewTransform(100, 100, NewEnvelope(0, 0, 0, 1)); err == nil {
		t.Error("NewViewTransform(empty extent) error = nil")
	}
}

func TestProjectionFor(t *testing.T) {
	p, err := ProjectionFor("", SRSWebMercator)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(Identity); !ok {
		t.Errorf("ProjectionFor(empty) = %T, want Identity", p)
	}

	p, err = ProjectionFor(SRSWGS84, SRSWebMercator)
	if err != nil {
		t.Fatal(err)
	}
	lonlat := orb.Point{13.4, 52.5}
	merc := p.Backward(lonlat)
	if merc[0] < 1.4e6 || merc[0] > 1.6e6 {
		t.Errorf("Backward(%v) x = %v, want about 1.49e6", lonlat, merc[0])
	}
	if back := p.Forward(merc); !near(back, lonlat, 1e-6) {
		t.Errorf("Forward(Backward(%v)) = %v", lonlat, back)
	}

	if _, err := ProjectionFor("EPSG:2056", SRSWebMercator); err == nil {
		t.Error("ProjectionFor(unknown) error = nil")
	}
}
