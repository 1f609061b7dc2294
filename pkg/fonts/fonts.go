// Package fonts provides the label font and per-glyph measurement.
//
// The default font is Go Regular, shipped with golang.org/x/image, so the
// binary needs no font files. A TrueType or OpenType file can be loaded
// instead with [NewMeasurer].
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// GoRegularTTF returns the TTF data of the default font.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularBase64 returns the default font as a base64 string, for embedding
// in SVG @font-face rules. The result is cached after first computation.
func GoRegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name used for the embedded font.
const FontFamily = "Go Regular"

// FallbackFontFamily provides fallback fonts for viewers that ignore the
// embedded font.
const FallbackFontFamily = `'Go Regular', 'DejaVu Sans', Helvetica, Arial, sans-serif`
