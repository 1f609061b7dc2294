package placement

import (
	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/text"
)

// textLine is a run of characters [start, end) forming one wrapped line.
type textLine struct {
	start, end    int
	width, height float64
}

// wrapColumn picks the maximum line width for horizontal text.
func wrapColumn(p Policy, width, height float64, chars int) float64 {
	if p.WrapWidth <= 0 || width <= p.WrapWidth {
		return width + 1
	}
	if p.TextRatio > 0 && height > 0 {
		for i := 1; i <= chars; i++ {
			col := width / float64(i)
			if col/(height*float64(i)) <= p.TextRatio && col <= p.WrapWidth {
				return col
			}
		}
	}
	return p.WrapWidth
}

// wrapLines breaks t greedily at spaces so that no line is wider than
// wrapAt, unless it holds a single word that is wider on its own. Words are
// never split; the run of spaces at each break belongs to neither line.
func wrapLines(t *text.MeasuredText, wrapAt float64) []textLine {
	n := t.Len()
	var lines []textLine

	lineStart, lineEnd := 0, 0
	var lineWidth float64
	for i := 0; i < n; {
		gapStart := i
		var gapWidth float64
		for i < n && t.At(i).Char == ' ' {
			gapWidth += t.At(i).Width
			i++
		}
		wordStart := i
		var wordWidth float64
		for i < n && t.At(i).Char != ' ' {
			wordWidth += t.At(i).Width
			i++
		}
		if i > wordStart && lineEnd > lineStart && lineWidth+gapWidth+wordWidth > wrapAt {
			lines = append(lines, measureLine(t, lineStart, gapStart))
			lineStart, lineWidth, gapWidth = wordStart, 0, 0
		}
		lineWidth += gapWidth + wordWidth
		lineEnd = i
	}
	return append(lines, measureLine(t, lineStart, n))
}

// measureLine returns the line of characters [start, end) of t.
func measureLine(t *text.MeasuredText, start, end int) textLine {
	ln := textLine{start: start, end: end}
	for k := start; k < end; k++ {
		c := t.At(k)
		ln.width += c.Width
		ln.height = max(ln.height, c.Height)
	}
	return ln
}

// buildPathHorizontal lays the text out as a centred, possibly wrapped block
// around the anchor at target.
func (f *Finder) buildPathHorizontal(r *Request, a *attempt, target float64) Reason {
	t := r.text
	p := r.Policy

	width, height := t.Natural()
	lines := wrapLines(t, wrapColumn(p, width, height, t.Len()))

	var blockW, blockH float64
	for _, ln := range lines {
		blockW = max(blockW, ln.width)
		blockH += ln.height
	}
	t.SetDimensions(blockW, blockH)

	anchor := r.anchor(target)
	a.start = anchor

	if p.HasDimensions() {
		box := fixedBox(p, anchor)
		if why := f.check(r, box); why != "" {
			return why
		}
		a.boxes = append(a.boxes, box)
	}

	y := -blockH / 2
	for _, ln := range lines {
		x := -ln.width / 2
		y += ln.height
		for k := ln.start; k < ln.end; k++ {
			c := t.At(k)
			// Zero-advance glyphs such as combining marks get no box.
			if !p.HasDimensions() && c.Width > 0 {
				box := geom.NewEnvelope(
					anchor[0]+x, anchor[1]+y-c.Height,
					anchor[0]+x+c.Width, anchor[1]+y,
				)
				if why := f.check(r, box); why != "" {
					return why
				}
				a.boxes = append(a.boxes, box)
			}
			a.nodes = append(a.nodes, GlyphNode{Char: c.Char, X: x, Y: y})
			x += c.Width
		}
	}
	return ""
}

// anchor resolves the device point horizontal text is centred on.
func (r *Request) anchor(target float64) orb.Point {
	if r.geometry.Type() == geom.LineString {
		return r.PositionAtDistance(target)
	}
	p := r.proj.Backward(r.geometry.LabelPosition())
	if r.view != nil {
		p = r.view.Forward(p)
	}
	p[0] += r.Policy.Displacement[0]
	p[1] += r.Policy.Displacement[1]
	return p
}
