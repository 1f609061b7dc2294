// Package text holds measured label text.
//
// A [MeasuredText] is the ordered list of per-character metrics for one
// label, produced by a font measurer (see pkg/fonts) and consumed by the
// placement finder. Its aggregate dimensions start as the natural single-line
// size and are overwritten once the finder has decided how to wrap it.
package text
