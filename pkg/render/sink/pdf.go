package sink

import (
	"bytes"
	"image/color"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/maplabel/pkg/buildinfo"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/fonts"
	"github.com/matzehuels/maplabel/pkg/render"
)

// mmPerUnit maps device units, taken as typographic points, onto canvas
// millimetres.
const mmPerUnit = 25.4 / 72

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	boxes  bool
	shapes bool
	title  string
}

// WithPDFBoxes draws the registered collision boxes over the labels.
func WithPDFBoxes() PDFOption { return func(r *pdfRenderer) { r.boxes = true } }

// WithoutPDFShapes leaves out the source geometries.
func WithoutPDFShapes() PDFOption { return func(r *pdfRenderer) { r.shapes = false } }

// WithPDFTitle sets the document title.
func WithPDFTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// RenderPDF draws the scene on a single page, one device unit per point.
// The scene font is embedded; Go Regular is used when the scene has none.
func RenderPDF(s *render.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{shapes: true}
	for _, opt := range opts {
		opt(&r)
	}

	data := s.Font
	if len(data) == 0 {
		data = fonts.GoRegularTTF()
	}
	family := canvas.NewFontFamily(labelFontName)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "load pdf font")
	}

	w, h := s.Width*mmPerUnit, s.Height*mmPerUnit
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(r.title, "", "", "", buildinfo.Creator())

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	for _, l := range s.Layers {
		if r.shapes {
			drawShapes(ctx, l.Shapes)
		}
		face := family.Face(l.FontSize, canvas.Hex(l.Fill), canvas.FontRegular, canvas.FontNormal)
		for _, lb := range l.Labels {
			drawLabel(ctx, face, lb)
		}
	}
	if r.boxes {
		drawBoxes(ctx, s)
	}

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func drawShapes(ctx *canvas.Context, shapes []render.Shape) {
	ctx.SetStrokeColor(canvas.Hex("#9aa5b1"))
	ctx.SetStrokeWidth(0.3)
	for _, sh := range shapes {
		if len(sh.Points) == 0 {
			continue
		}
		if sh.Type == geom.Point {
			ctx.SetFillColor(canvas.Hex("#616e7c"))
			ctx.DrawPath(sh.Points[0][0]*mmPerUnit, sh.Points[0][1]*mmPerUnit, canvas.Circle(pointRadius*mmPerUnit))
			continue
		}

		p := &canvas.Path{}
		p.MoveTo(sh.Points[0][0]*mmPerUnit, sh.Points[0][1]*mmPerUnit)
		for _, pt := range sh.Points[1:] {
			p.LineTo(pt[0]*mmPerUnit, pt[1]*mmPerUnit)
		}
		if sh.Type == geom.Polygon {
			p.Close()
			ctx.SetFillColor(canvas.Hex("#e4e7eb80"))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.DrawPath(0, 0, p)
	}
}

func drawLabel(ctx *canvas.Context, face *canvas.FontFace, lb render.Label) {
	for _, p := range lb.Placements {
		for _, n := range p.Nodes {
			if unicode.IsSpace(n.Char) {
				continue
			}
			ctx.Push()
			ctx.Translate((p.Start[0]+n.X)*mmPerUnit, (p.Start[1]+n.Y)*mmPerUnit)
			ctx.Rotate(screenDegrees(n.Angle))
			ctx.DrawText(0, 0, canvas.NewTextLine(face, string(n.Char), canvas.Left))
			ctx.Pop()
		}
	}
}

func drawBoxes(ctx *canvas.Context, s *render.Scene) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(canvas.Hex("#e12d39"))
	ctx.SetStrokeWidth(0.15)
	for _, b := range s.Boxes {
		ctx.DrawPath(b.Box.MinX*mmPerUnit, b.Box.MinY*mmPerUnit,
			canvas.Rectangle(b.Box.Width()*mmPerUnit, b.Box.Height()*mmPerUnit))
	}
}
