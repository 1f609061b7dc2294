// Package render describes placed labels in device space and hands them to
// output sinks.
//
// # Overview
//
// A [Scene] is the result of placing every layer of a job: the source
// geometries transformed onto the device raster, the accepted placements of
// each label, and optionally the collision boxes that were registered while
// placing them. Sinks in the [sink] subpackage turn a scene into files:
//
//	svg := sink.RenderSVG(scene, sink.WithBoxes())
//	pdf, err := sink.RenderPDF(scene)
//	js, err := sink.RenderJSON(scene)
//
// Device coordinates have their origin at the top-left corner with y
// pointing down. Glyph angles are radians, counter-clockwise as seen on
// screen, matching [placement.GlyphNode].
//
// [sink]: github.com/matzehuels/maplabel/pkg/render/sink
// [placement.GlyphNode]: github.com/matzehuels/maplabel/pkg/core/placement.GlyphNode
package render
