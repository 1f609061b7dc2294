package sink

import (
	"encoding/json"

	"github.com/matzehuels/maplabel/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	boxes bool
	runID string
}

// WithJSONBoxes includes the registered collision boxes.
func WithJSONBoxes() JSONOption { return func(r *jsonRenderer) { r.boxes = true } }

// WithJSONRunID records the pipeline run that produced the scene.
func WithJSONRunID(id string) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

type jsonOutput struct {
	RunID  string      `json:"run_id,omitempty"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Layers []jsonLayer `json:"layers"`
	Boxes  []jsonBox   `json:"boxes,omitempty"`
}

type jsonLayer struct {
	Name     string      `json:"name"`
	Fill     string      `json:"fill"`
	FontSize float64     `json:"font_size"`
	Labels   []jsonLabel `json:"labels"`
}

type jsonLabel struct {
	Text       string          `json:"text"`
	Feature    string          `json:"feature,omitempty"`
	Placements []jsonPlacement `json:"placements"`
}

type jsonPlacement struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Glyphs []jsonGlyph `json:"glyphs"`
}

type jsonGlyph struct {
	Char  string  `json:"char"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type jsonBox struct {
	Label string  `json:"label,omitempty"`
	MinX  float64 `json:"min_x"`
	MinY  float64 `json:"min_y"`
	MaxX  float64 `json:"max_x"`
	MaxY  float64 `json:"max_y"`
}

// RenderJSON exports the placements as a pretty-printed JSON document, for
// consumers that draw the glyphs themselves. Glyph positions are relative to
// their placement's anchor; angles are radians, counter-clockwise on screen.
func RenderJSON(s *render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		RunID:  r.runID,
		Width:  s.Width,
		Height: s.Height,
		Layers: make([]jsonLayer, 0, len(s.Layers)),
	}
	for _, l := range s.Layers {
		out.Layers = append(out.Layers, buildJSONLayer(l))
	}
	if r.boxes {
		for _, b := range s.Boxes {
			out.Boxes = append(out.Boxes, jsonBox{
				Label: b.Label,
				MinX:  b.Box.MinX,
				MinY:  b.Box.MinY,
				MaxX:  b.Box.MaxX,
				MaxY:  b.Box.MaxY,
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONLayer(l render.Layer) jsonLayer {
	jl := jsonLayer{
		Name:     l.Name,
		Fill:     l.Fill,
		FontSize: l.FontSize,
		Labels:   make([]jsonLabel, 0, len(l.Labels)),
	}
	for _, lb := range l.Labels {
		jb := jsonLabel{
			Text:       lb.Text,
			Feature:    lb.Feature,
			Placements: make([]jsonPlacement, 0, len(lb.Placements)),
		}
		for _, p := range lb.Placements {
			jp := jsonPlacement{X: p.Start[0], Y: p.Start[1], Glyphs: make([]jsonGlyph, 0, len(p.Nodes))}
			for _, n := range p.Nodes {
				jp.Glyphs = append(jp.Glyphs, jsonGlyph{Char: string(n.Char), X: n.X, Y: n.Y, Angle: n.Angle})
			}
			jb.Placements = append(jb.Placements, jp)
		}
		jl.Labels = append(jl.Labels, jb)
	}
	return jl
}
