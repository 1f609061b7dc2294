// Package sink writes a [render.Scene] in an output format.
//
// # Overview
//
//   - SVG: [RenderSVG], via github.com/ajstarks/svgo, with the label font
//     embedded as a data URL so glyphs match their measured advances
//   - PDF: [RenderPDF], via github.com/tdewolff/canvas
//   - JSON: [RenderJSON], the raw placements for external renderers
//
// Every glyph is drawn at its own anchor and rotation, so curved labels
// keep the exact geometry chosen by the placement finder.
//
// # Debug Output
//
// [WithBoxes], [WithPDFBoxes] and [WithJSONBoxes] add the collision boxes
// registered during placement, which is the quickest way to see why a
// label was dropped:
//
//	svg := sink.RenderSVG(scene, sink.WithBoxes())
//
// [render.Scene]: github.com/matzehuels/maplabel/pkg/render.Scene
package sink
