package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNewEnvelopeNormalizes(t *testing.T) {
	e := NewEnvelope(10, 5, 0, -5)
	want := Envelope{MinX: 0, MinY: -5, MaxX: 10, MaxY: 5}
	if e != want {
		t.Errorf("NewEnvelope() = %v, want %v", e, want)
	}
	if e.Width() != 10 || e.Height() != 10 {
		t.Errorf("size = %vx%v, want 10x10", e.Width(), e.Height())
	}
}

func TestEnvelopeIntersects(t *testing.T) {
	base := NewEnvelope(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Envelope
		want  bool
	}{
		{"overlap", NewEnvelope(5, 5, 15, 15), true},
		{"inside", NewEnvelope(2, 2, 3, 3), true},
		{"touching edge", NewEnvelope(10, 0, 20, 10), false},
		{"touching corner", NewEnvelope(10, 10, 20, 20), false},
		{"disjoint", NewEnvelope(11, 11, 20, 20), false},
		{"enclosing", NewEnvelope(-1, -1, 11, 11), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvelopeContains(t *testing.T) {
	base := NewEnvelope(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Envelope
		want  bool
	}{
		{"inside", NewEnvelope(1, 1, 9, 9), true},
		{"same", base, true},
		{"crossing", NewEnvelope(5, 5, 11, 9), false},
		{"outside", NewEnvelope(20, 20, 30, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Contains(tt.other); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvelopeExpandAndUnion(t *testing.T) {
	e := NewEnvelope(0, 0, 1, 1)
	e.ExpandToInclude(-2, 3)
	if want := (Envelope{MinX: -2, MinY: 0, MaxX: 1, MaxY: 3}); e != want {
		t.Errorf("ExpandToInclude() = %v, want %v", e, want)
	}

	u := NewEnvelope(0, 0, 1, 1).Union(NewEnvelope(5, -1, 6, 0))
	if want := (Envelope{MinX: 0, MinY: -1, MaxX: 6, MaxY: 1}); u != want {
		t.Errorf("Union() = %v, want %v", u, want)
	}
}

func TestEnvelopePadCenterBound(t *testing.T) {
	e := NewEnvelope(0, 0, 4, 2).Pad(1)
	if want := (Envelope{MinX: -1, MinY: -1, MaxX: 5, MaxY: 3}); e != want {
		t.Errorf("Pad() = %v, want %v", e, want)
	}
	if c := e.Center(); c != (orb.Point{2, 1}) {
		t.Errorf("Center() = %v, want [2 1]", c)
	}
	if b := e.Bound(); EnvelopeFromBound(b) != e {
		t.Errorf("EnvelopeFromBound(Bound()) = %v, want %v", EnvelopeFromBound(b), e)
	}
}
