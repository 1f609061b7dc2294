package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Envelope is an axis-aligned bounding box. All coordinates are in device
// units unless stated otherwise.
type Envelope struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewEnvelope returns the envelope spanning the two corners, ensuring
// min ≤ max on both axes.
func NewEnvelope(x0, y0, x1, y1 float64) Envelope {
	return Envelope{
		MinX: min(x0, x1),
		MinY: min(y0, y1),
		MaxX: max(x0, x1),
		MaxY: max(y0, y1),
	}
}

// EnvelopeFromBound converts an orb bound into an envelope.
func EnvelopeFromBound(b orb.Bound) Envelope {
	return NewEnvelope(b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
}

// ExpandToInclude grows e so that it contains the point (x, y).
func (e *Envelope) ExpandToInclude(x, y float64) {
	e.MinX = min(e.MinX, x)
	e.MinY = min(e.MinY, y)
	e.MaxX = max(e.MaxX, x)
	e.MaxY = max(e.MaxY, y)
}

// Union returns the smallest envelope enclosing e and o.
func (e Envelope) Union(o Envelope) Envelope {
	return Envelope{
		MinX: min(e.MinX, o.MinX),
		MinY: min(e.MinY, o.MinY),
		MaxX: max(e.MaxX, o.MaxX),
		MaxY: max(e.MaxY, o.MaxY),
	}
}

// Contains reports whether o lies entirely within e. Shared edges count as
// contained.
func (e Envelope) Contains(o Envelope) bool {
	return o.MinX >= e.MinX && o.MaxX <= e.MaxX &&
		o.MinY >= e.MinY && o.MaxY <= e.MaxY
}

// ContainsPoint reports whether (x, y) lies within e, edges included.
func (e Envelope) ContainsPoint(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// Intersects reports whether the interiors of e and o overlap. Envelopes
// that merely touch along an edge do not intersect.
func (e Envelope) Intersects(o Envelope) bool {
	return e.MinX < o.MaxX && o.MinX < e.MaxX &&
		e.MinY < o.MaxY && o.MinY < e.MaxY
}

// Pad returns e grown by d on every side.
func (e Envelope) Pad(d float64) Envelope {
	return Envelope{MinX: e.MinX - d, MinY: e.MinY - d, MaxX: e.MaxX + d, MaxY: e.MaxY + d}
}

func (e Envelope) Width() float64  { return e.MaxX - e.MinX }
func (e Envelope) Height() float64 { return e.MaxY - e.MinY }

// Center returns the midpoint of the envelope.
func (e Envelope) Center() orb.Point {
	return orb.Point{(e.MinX + e.MaxX) / 2, (e.MinY + e.MaxY) / 2}
}

// Bound returns e as an orb bound.
func (e Envelope) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

func (e Envelope) String() string {
	return fmt.Sprintf("[%g %g, %g %g]", e.MinX, e.MinY, e.MaxX, e.MaxY)
}
