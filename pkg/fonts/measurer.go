package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/maplabel/pkg/core/text"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/observability"
)

// DefaultDPI makes one point equal one device unit.
const DefaultDPI = 72

// Measurer turns strings into measured text using one font face. It is safe
// for concurrent use.
type Measurer struct {
	data   []byte
	size   float64
	height float64

	mu    sync.Mutex
	face  font.Face
	cache map[rune]text.CharacterInfo
}

// NewMeasurer parses data (nil selects Go Regular) and prepares a face of the
// given point size. Every glyph is reported with the font's line height
// (ascent plus descent) so that lines of mixed glyphs stack evenly.
func NewMeasurer(data []byte, size, dpi float64) (*Measurer, error) {
	if data == nil {
		data = goregular.TTF
	}
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFont, "font size must be positive, got %g", size)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "create font face")
	}

	m := face.Metrics()
	return &Measurer{
		data:   data,
		size:   size,
		height: toFloat(m.Ascent + m.Descent),
		face:   face,
		cache:  make(map[rune]text.CharacterInfo),
	}, nil
}

// Data returns the font file the measurer was built from.
func (m *Measurer) Data() []byte { return m.data }

// Size returns the point size.
func (m *Measurer) Size() float64 { return m.size }

// LineHeight returns the height reported for every glyph.
func (m *Measurer) LineHeight() float64 { return m.height }

// Measure returns the metrics of every rune of s in order.
func (m *Measurer) Measure(s string) *text.MeasuredText {
	m.mu.Lock()
	defer m.mu.Unlock()

	chars := make([]text.CharacterInfo, 0, len(s))
	for _, r := range s {
		chars = append(chars, m.glyph(r))
	}
	return text.New(chars)
}

func (m *Measurer) glyph(r rune) text.CharacterInfo {
	hooks := observability.Cache()
	if ci, ok := m.cache[r]; ok {
		hooks.OnCacheHit("glyph")
		return ci
	}
	hooks.OnCacheMiss("glyph")

	adv, ok := m.face.GlyphAdvance(r)
	if !ok {
		// Missing glyphs render as the notdef box; use its advance.
		adv, _ = m.face.GlyphAdvance('�')
	}
	ci := text.CharacterInfo{Char: r, Width: toFloat(adv), Height: m.height}
	m.cache[r] = ci
	return ci
}

// Close releases the font face.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face.Close()
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
