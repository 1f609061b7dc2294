package fonts

import (
	"encoding/base64"
	"sync"
	"testing"

	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/observability"
)

func TestNewMeasurerDefault(t *testing.T) {
	m, err := NewMeasurer(nil, 12, 0)
	if err != nil {
		t.Fatalf("NewMeasurer() error = %v", err)
	}
	defer m.Close()

	if m.Size() != 12 {
		t.Errorf("Size() = %v, want 12", m.Size())
	}
	if h := m.LineHeight(); h < 10 || h > 16 {
		t.Errorf("LineHeight() = %v, want about 12-14 for a 12pt face", h)
	}
}

func TestNewMeasurerErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		size float64
	}{
		{"zero size", nil, 0},
		{"garbage font", []byte("not a font"), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMeasurer(tt.data, tt.size, 72)
			if !errors.Is(err, errors.ErrCodeInvalidFont) {
				t.Errorf("NewMeasurer() error = %v, want %v", err, errors.ErrCodeInvalidFont)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	m, err := NewMeasurer(nil, 20, 72)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	mt := m.Measure("Wil")
	if mt.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", mt.Len())
	}
	if mt.String() != "Wil" {
		t.Errorf("String() = %q, want %q", mt.String(), "Wil")
	}
	w, i := mt.At(0).Width, mt.At(1).Width
	if w <= i {
		t.Errorf("width(W) = %v, width(i) = %v, want W wider", w, i)
	}
	total, height := mt.Dimensions()
	if sum := mt.At(0).Width + mt.At(1).Width + mt.At(2).Width; total != sum {
		t.Errorf("Dimensions() width = %v, want sum %v", total, sum)
	}
	if height != m.LineHeight() {
		t.Errorf("Dimensions() height = %v, want %v", height, m.LineHeight())
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	mu           sync.Mutex
	hits, misses int
}

func (c *countingHooks) OnCacheHit(string)  { c.mu.Lock(); c.hits++; c.mu.Unlock() }
func (c *countingHooks) OnCacheMiss(string) { c.mu.Lock(); c.misses++; c.mu.Unlock() }

func TestMeasureCachesGlyphs(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	m, err := NewMeasurer(nil, 12, 72)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	m.Measure("aab")
	if hooks.misses != 2 || hooks.hits != 1 {
		t.Errorf("misses=%d hits=%d, want 2 and 1", hooks.misses, hooks.hits)
	}
}

func TestMeasureConcurrent(t *testing.T) {
	m, err := NewMeasurer(nil, 12, 72)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	want, _ := m.Measure("Main Street").Dimensions()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := m.Measure("Main Street").Dimensions(); got != want {
				t.Errorf("width = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestGoRegularBase64(t *testing.T) {
	got, err := base64.StdEncoding.DecodeString(GoRegularBase64())
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	if len(got) != len(GoRegularTTF()) {
		t.Errorf("decoded length = %d, want %d", len(got), len(GoRegularTTF()))
	}
}
