package render

import (
	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/collision"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/placement"
)

// Scene is everything a sink needs to draw one map.
type Scene struct {
	Width  float64
	Height float64

	// Font is the TTF/OTF data labels were measured with. Sinks embed it so
	// the drawn glyphs match the measured advances.
	Font []byte

	Layers []Layer

	// Boxes are the collision boxes registered while placing, for debug
	// output. Empty unless requested.
	Boxes []collision.Entry
}

// Layer groups the shapes and labels of one configured layer.
type Layer struct {
	Name     string
	Fill     string
	FontSize float64
	Shapes   []Shape
	Labels   []Label
}

// Shape is a source geometry part in device coordinates.
type Shape struct {
	Type   geom.Type
	Points []orb.Point
}

// Label is one feature part's text with all of its accepted placements.
type Label struct {
	Text       string
	Feature    string
	Placements []placement.AcceptedPlacement
}

// NumLabels returns the number of placed labels across all layers.
func (s *Scene) NumLabels() int {
	var n int
	for _, l := range s.Layers {
		n += len(l.Labels)
	}
	return n
}

// NumPlacements returns the number of accepted placements across all layers.
// Repeated line labels count once per repetition.
func (s *Scene) NumPlacements() int {
	var n int
	for _, l := range s.Layers {
		for _, lb := range l.Labels {
			n += len(lb.Placements)
		}
	}
	return n
}
