package text

import "testing"

func mono(s string, w, h float64) []CharacterInfo {
	var out []CharacterInfo
	for _, r := range s {
		out = append(out, CharacterInfo{Char: r, Width: w, Height: h})
	}
	return out
}

func TestNew(t *testing.T) {
	chars := []CharacterInfo{
		{Char: 'A', Width: 7, Height: 10},
		{Char: 'b', Width: 5, Height: 11},
		{Char: ' ', Width: 3, Height: 0},
	}
	mt := New(chars)

	w, h := mt.Dimensions()
	if w != 15 || h != 11 {
		t.Errorf("Dimensions() = (%v, %v), want (15, 11)", w, h)
	}
	if mt.Len() != 3 {
		t.Errorf("Len() = %v, want 3", mt.Len())
	}
	if got := mt.At(1); got.Char != 'b' {
		t.Errorf("At(1) = %q, want 'b'", got.Char)
	}
	if got := mt.String(); got != "Ab " {
		t.Errorf("String() = %q, want %q", got, "Ab ")
	}
}

func TestSetDimensionsKeepsNatural(t *testing.T) {
	mt := New(mono("hello world", 5, 10))
	mt.SetDimensions(25, 20)

	if w, h := mt.Dimensions(); w != 25 || h != 20 {
		t.Errorf("Dimensions() = (%v, %v), want (25, 20)", w, h)
	}
	if w, h := mt.Natural(); w != 55 || h != 10 {
		t.Errorf("Natural() = (%v, %v), want (55, 10)", w, h)
	}
}

func TestEmpty(t *testing.T) {
	mt := New(nil)
	if w, h := mt.Dimensions(); w != 0 || h != 0 {
		t.Errorf("Dimensions() = (%v, %v), want (0, 0)", w, h)
	}
	if mt.String() != "" {
		t.Errorf("String() = %q, want empty", mt.String())
	}
}
