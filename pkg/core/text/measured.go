package text

import "strings"

// CharacterInfo is the measured size of one character in device units.
type CharacterInfo struct {
	Char   rune
	Width  float64
	Height float64
}

// MeasuredText is an ordered sequence of character metrics in reading order.
type MeasuredText struct {
	chars         []CharacterInfo
	width, height float64
	naturalW      float64
	naturalH      float64
}

// New builds a MeasuredText from chars. The aggregate width is the sum of the
// character widths and the height the tallest character.
func New(chars []CharacterInfo) *MeasuredText {
	var w, h float64
	for _, c := range chars {
		w += c.Width
		h = max(h, c.Height)
	}
	return &MeasuredText{
		chars:    chars,
		width:    w,
		height:   h,
		naturalW: w,
		naturalH: h,
	}
}

// Len returns the number of characters.
func (t *MeasuredText) Len() int { return len(t.chars) }

// At returns the i-th character.
func (t *MeasuredText) At(i int) CharacterInfo { return t.chars[i] }

// Chars returns the characters in reading order. The slice must not be
// modified.
func (t *MeasuredText) Chars() []CharacterInfo { return t.chars }

// Dimensions returns the current aggregate size, which reflects the wrapped
// block after the finder has called SetDimensions.
func (t *MeasuredText) Dimensions() (width, height float64) { return t.width, t.height }

// SetDimensions overwrites the aggregate size.
func (t *MeasuredText) SetDimensions(width, height float64) {
	t.width, t.height = width, height
}

// Natural returns the single-line size computed at construction time,
// regardless of any later SetDimensions call.
func (t *MeasuredText) Natural() (width, height float64) { return t.naturalW, t.naturalH }

func (t *MeasuredText) String() string {
	var b strings.Builder
	b.Grow(len(t.chars))
	for _, c := range t.chars {
		b.WriteRune(c.Char)
	}
	return b.String()
}
