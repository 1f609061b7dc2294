package collision

import (
	"sync"

	"github.com/matzehuels/maplabel/pkg/core/geom"
)

// Detector is the occupancy store consulted during placement.
type Detector interface {
	// HasPlacement reports whether box may be placed. It is false when box
	// overlaps any stored box, or when minDistance > 0 and box comes within
	// minDistance of a stored box with the same non-empty label.
	HasPlacement(box geom.Envelope, label string, minDistance float64) bool
	// Insert records box as occupied.
	Insert(box geom.Envelope, label string)
	// Clear forgets all stored boxes.
	Clear()
}

// Entry is one occupied region.
type Entry struct {
	Box   geom.Envelope
	Label string
}

// Snapshot is implemented by detectors that can list their contents.
type Snapshot interface {
	Boxes() []Entry
}

// Locked wraps a Detector with a mutex. Each call is atomic, but a
// check-then-insert sequence spanning several calls is not.
type Locked struct {
	mu sync.Mutex
	d  Detector
}

// NewLocked returns d guarded by a mutex.
func NewLocked(d Detector) *Locked {
	return &Locked{d: d}
}

func (l *Locked) HasPlacement(box geom.Envelope, label string, minDistance float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.d.HasPlacement(box, label, minDistance)
}

func (l *Locked) Insert(box geom.Envelope, label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.d.Insert(box, label)
}

func (l *Locked) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.d.Clear()
}

// Boxes returns the wrapped detector's entries, or nil when it cannot list
// them.
func (l *Locked) Boxes() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.d.(Snapshot); ok {
		return s.Boxes()
	}
	return nil
}
