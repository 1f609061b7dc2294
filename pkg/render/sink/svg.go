package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"unicode"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/fonts"
	"github.com/matzehuels/maplabel/pkg/render"
)

const (
	shapeStyle    = "fill:none;stroke:#9aa5b1;stroke-width:1"
	polygonStyle  = "fill:#e4e7eb;fill-opacity:0.5;stroke:#9aa5b1;stroke-width:1"
	pointStyle    = "fill:#616e7c"
	boxStyle      = "fill:none;stroke:#e12d39;stroke-width:0.5"
	pointRadius   = 2
	labelFontName = "maplabel"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	boxes      bool
	shapes     bool
	embedFont  bool
	background string
}

// WithBoxes draws the registered collision boxes over the labels.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

// WithoutShapes leaves out the source geometries.
func WithoutShapes() SVGOption { return func(r *svgRenderer) { r.shapes = false } }

// WithoutFont references the font by family name instead of embedding it.
func WithoutFont() SVGOption { return func(r *svgRenderer) { r.embedFont = false } }

// WithBackground fills the map with a CSS color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG draws the scene. Each glyph is emitted as its own text element
// positioned and rotated exactly as placed.
func RenderSVG(s *render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{shapes: true, embedFont: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	c := svg.New(&buf)
	w, h := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	c.Startview(w, h, 0, 0, w, h)

	family := fonts.FallbackFontFamily
	if r.embedFont {
		c.Def()
		c.Style("text/css", fontFaceCSS(s.Font))
		c.DefEnd()
		family = "'" + labelFontName + "', " + fonts.FallbackFontFamily
	}
	if r.background != "" {
		c.Rect(0, 0, w, h, "fill:"+r.background)
	}

	for _, l := range s.Layers {
		c.Gid("layer-" + l.Name)
		if r.shapes {
			renderShapes(c, l.Shapes)
		}
		c.Gstyle(fmt.Sprintf("font-family:%s;font-size:%.2fpx;fill:%s", family, l.FontSize, l.Fill))
		for _, lb := range l.Labels {
			renderLabel(c, lb)
		}
		c.Gend()
		c.Gend()
	}

	if r.boxes && len(s.Boxes) > 0 {
		c.Gstyle(boxStyle)
		for _, b := range s.Boxes {
			c.Rect(round(b.Box.MinX), round(b.Box.MinY), round(b.Box.Width()), round(b.Box.Height()))
		}
		c.Gend()
	}

	c.End()
	return buf.Bytes()
}

func fontFaceCSS(data []byte) string {
	encoded := fonts.GoRegularBase64()
	if len(data) > 0 {
		encoded = base64.StdEncoding.EncodeToString(data)
	}
	return fmt.Sprintf("@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }",
		labelFontName, encoded)
}

func renderShapes(c *svg.SVG, shapes []render.Shape) {
	for _, sh := range shapes {
		if len(sh.Points) == 0 {
			continue
		}
		xs := make([]int, len(sh.Points))
		ys := make([]int, len(sh.Points))
		for i, p := range sh.Points {
			xs[i], ys[i] = round(p[0]), round(p[1])
		}
		switch sh.Type {
		case geom.Point:
			c.Circle(xs[0], ys[0], pointRadius, pointStyle)
		case geom.Polygon:
			c.Polygon(xs, ys, polygonStyle)
		default:
			c.Polyline(xs, ys, shapeStyle)
		}
	}
}

func renderLabel(c *svg.SVG, lb render.Label) {
	for _, p := range lb.Placements {
		for _, n := range p.Nodes {
			if unicode.IsSpace(n.Char) {
				continue
			}
			c.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.2f)",
				p.Start[0]+n.X, p.Start[1]+n.Y, screenDegrees(n.Angle)))
			c.Text(0, 0, string(n.Char))
			c.Gend()
		}
	}
}

// screenDegrees converts a counter-clockwise angle in radians into the
// clockwise degrees of SVG and canvas rotations.
func screenDegrees(rad float64) float64 {
	if rad == 0 {
		return 0
	}
	return -rad * 180 / math.Pi
}

func round(v float64) int { return int(math.Round(v)) }
