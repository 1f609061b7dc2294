// Package collision tracks the regions already occupied by placed labels.
//
// A [Detector] answers one question for the placement finder: may a new box
// be placed here? It refuses boxes whose interior overlaps an occupied box,
// and, when a minimum distance is requested, boxes that come closer than
// that distance to another box carrying the same label text.
//
// [Quadtree] is the default implementation, indexing box centres in an
// orb quadtree. [Locked] serialises access for callers that share one
// detector between goroutines.
package collision
