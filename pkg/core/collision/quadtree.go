package collision

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"github.com/matzehuels/maplabel/pkg/core/geom"
)

// entry adapts an Entry to orb.Pointer, keyed by the box centre.
type entry struct {
	Entry
	center orb.Point
}

func (e *entry) Point() orb.Point { return e.center }

// Quadtree is a Detector backed by an orb quadtree over the given extent.
// Boxes whose centre falls outside the extent are kept in a linear overflow
// list so that nothing is silently dropped. It is not safe for concurrent
// use; see [Locked].
type Quadtree struct {
	extent   geom.Envelope
	tree     *quadtree.Quadtree
	overflow []*entry
	entries  []*entry

	// Largest half extents seen so far; a stored box can only overlap the
	// query if its centre lies within these of the query box.
	maxHalfW, maxHalfH float64

	buf []orb.Pointer
}

// NewQuadtree returns an empty detector indexing boxes over extent, usually
// the device extent of the map.
func NewQuadtree(extent geom.Envelope) *Quadtree {
	return &Quadtree{
		extent: extent,
		tree:   quadtree.New(extent.Bound()),
	}
}

// HasPlacement implements Detector.
func (q *Quadtree) HasPlacement(box geom.Envelope, label string, minDistance float64) bool {
	reach := box
	if minDistance > 0 && label != "" {
		reach = box.Pad(minDistance)
	}
	query := geom.Envelope{
		MinX: reach.MinX - q.maxHalfW,
		MinY: reach.MinY - q.maxHalfH,
		MaxX: reach.MaxX + q.maxHalfW,
		MaxY: reach.MaxY + q.maxHalfH,
	}

	q.buf = q.tree.InBound(q.buf[:0], query.Bound())
	for _, p := range q.buf {
		if !allowed(p.(*entry), box, reach, label) {
			return false
		}
	}
	for _, e := range q.overflow {
		if !allowed(e, box, reach, label) {
			return false
		}
	}
	return true
}

func allowed(e *entry, box, reach geom.Envelope, label string) bool {
	if e.Box.Intersects(box) {
		return false
	}
	if label != "" && e.Label == label && e.Box.Intersects(reach) {
		return false
	}
	return true
}

// Insert implements Detector.
func (q *Quadtree) Insert(box geom.Envelope, label string) {
	e := &entry{Entry: Entry{Box: box, Label: label}, center: box.Center()}
	q.entries = append(q.entries, e)
	q.maxHalfW = max(q.maxHalfW, box.Width()/2)
	q.maxHalfH = max(q.maxHalfH, box.Height()/2)
	if err := q.tree.Add(e); err != nil {
		q.overflow = append(q.overflow, e)
	}
}

// Clear implements Detector.
func (q *Quadtree) Clear() {
	q.tree = quadtree.New(q.extent.Bound())
	q.overflow = nil
	q.entries = nil
	q.maxHalfW, q.maxHalfH = 0, 0
}

// Len returns the number of stored boxes.
func (q *Quadtree) Len() int { return len(q.entries) }

// Boxes returns the stored boxes in insertion order.
func (q *Quadtree) Boxes() []Entry {
	out := make([]Entry, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.Entry
	}
	return out
}
