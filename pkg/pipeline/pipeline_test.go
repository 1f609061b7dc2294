package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/maplabel/pkg/cache"
	"github.com/matzehuels/maplabel/pkg/config"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/errors"
)

const testCities = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": 1, "properties": {"name": "Alpha"},
     "geometry": {"type": "Point", "coordinates": [1000, 1000]}},
    {"type": "Feature", "id": 2, "properties": {"name": "Beta"},
     "geometry": {"type": "Point", "coordinates": [3000, 2000]}},
    {"type": "Feature", "id": 3, "properties": {"name": ""},
     "geometry": {"type": "Point", "coordinates": [2000, 500]}}
  ]
}`

const testRoads = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Main Street"},
     "geometry": {"type": "LineString", "coordinates": [[200, 1500], [3800, 1500]]}},
    {"type": "Feature", "properties": {"name": "Nowhere"}, "geometry": null}
  ]
}`

const testJob = `
[map]
width  = 400
height = 300
extent = [0, 0, 4000, 3000]

[font]
size = 10

[[layer]]
name   = "cities"
source = "cities.geojson"
text   = "[name]"

[[layer]]
name      = "roads"
source    = "roads.geojson"
text      = "[name]"
placement = "line"
`

// writeJob lays out a job directory and returns the job file path.
func writeJob(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"job.toml":       testJob,
		"cities.geojson": testCities,
		"roads.geojson":  testRoads,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "job.toml")
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"pdf", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "pdf"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{ConfigPath: "job.toml", Formats: []string{"json", "svg", "json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if got := strings.Join(opts.Formats, ","); got != "json,svg" {
		t.Errorf("Formats = %s, want json,svg", got)
	}

	opts = Options{ConfigPath: "job.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{ConfigPath: "job.toml", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{ConfigPath: "job.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats = append(opts.Formats, FormatSVG)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("second call changed Formats to %v", opts.Formats)
	}
}

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name  string
		in    geom.Envelope
		ratio float64
		want  geom.Envelope
	}{
		{"wide input", geom.NewEnvelope(0, 0, 40, 10), 2, geom.NewEnvelope(0, -5, 40, 15)},
		{"tall input", geom.NewEnvelope(0, 0, 10, 10), 2, geom.NewEnvelope(-5, 0, 15, 10)},
		{"exact", geom.NewEnvelope(0, 0, 20, 10), 2, geom.NewEnvelope(0, 0, 20, 10)},
		{"flat", geom.NewEnvelope(0, 5, 10, 5), 1, geom.NewEnvelope(0, 0, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitAspect(tt.in, tt.ratio); got != tt.want {
				t.Errorf("fitAspect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapExtentFromData(t *testing.T) {
	cfg, err := config.Load(writeJob(t))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Map.Extent = nil
	cfg.Map.Margin = 0

	job, err := NewRunner(nil, nil).Load(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := job.MapExtent()
	if err != nil {
		t.Fatalf("MapExtent() error = %v", err)
	}
	// Data spans 200..3800 x 500..2000; 3600 wide at 4:3 needs 2700 high.
	want := geom.NewEnvelope(200, -100, 3800, 2600)
	if got != want {
		t.Errorf("MapExtent() = %v, want %v", got, want)
	}
}

func TestMapExtentEmpty(t *testing.T) {
	job := &Job{Config: &config.Config{Map: config.Map{Width: 100, Height: 100}}}
	if _, err := job.MapExtent(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("MapExtent() error = %v, want INVALID_INPUT", err)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		ConfigPath: writeJob(t),
		Formats:    []string{FormatSVG, FormatJSON},
		Boxes:      true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	s := result.Stats
	if s.Layers != 2 || s.Features != 4 || s.Skipped != 1 || s.Unlabelled != 1 {
		t.Errorf("Stats = %+v, want 2 layers, 4 features, 1 skipped, 1 unlabelled", s)
	}
	if s.Placed != 3 || s.Unplaced != 0 {
		t.Errorf("Placed = %d, Unplaced = %d, want 3 and 0", s.Placed, s.Unplaced)
	}
	if result.CacheHit {
		t.Error("CacheHit = true on first run")
	}
	if result.Scene == nil || result.Scene.NumLabels() != 3 {
		t.Fatalf("Scene labels = %v, want 3", result.Scene)
	}
	if len(result.Scene.Boxes) == 0 {
		t.Error("Scene.Boxes empty with Boxes option set")
	}

	svg := string(result.Artifacts[FormatSVG])
	for _, want := range []string{"<svg", `id="layer-cities"`, `id="layer-roads"`, ">A<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	var out struct {
		RunID  string `json:"run_id"`
		Layers []struct {
			Name   string `json:"name"`
			Labels []struct {
				Text string `json:"text"`
			} `json:"labels"`
		} `json:"layers"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &out); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if out.RunID != result.ID {
		t.Errorf("run_id = %q, want %q", out.RunID, result.ID)
	}
	if len(out.Layers) != 2 || len(out.Layers[1].Labels) != 1 || out.Layers[1].Labels[0].Text != "Main Street" {
		t.Errorf("json layers = %+v", out.Layers)
	}
}

func TestExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil)
	defer runner.Close()

	path := writeJob(t)
	first, err := runner.Execute(context.Background(), Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run was a cache hit")
	}

	second, err := runner.Execute(context.Background(), Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheHit || second.Scene != nil {
		t.Errorf("second run CacheHit = %v, Scene = %v, want served from cache", second.CacheHit, second.Scene)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if second.JobHash != first.JobHash {
		t.Errorf("JobHash changed between runs: %s != %s", second.JobHash, first.JobHash)
	}

	refreshed, err := runner.Execute(context.Background(), Options{ConfigPath: path, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh run was a cache hit")
	}

	// Boxes change the artifact, so they miss the plain entry.
	boxed, err := runner.Execute(context.Background(), Options{ConfigPath: path, Boxes: true})
	if err != nil {
		t.Fatal(err)
	}
	if boxed.CacheHit {
		t.Error("Boxes run hit the cache entry of a plain run")
	}

	// JSON carries the run id and is never cached.
	js, err := runner.Execute(context.Background(), Options{ConfigPath: path, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if js.CacheHit {
		t.Error("json run was a cache hit")
	}
}

func TestJobHashTracksSources(t *testing.T) {
	path := writeJob(t)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(nil, nil)
	hash := func() string {
		t.Helper()
		job, err := runner.Load(context.Background(), cfg)
		if err != nil {
			t.Fatal(err)
		}
		h, err := job.Hash()
		if err != nil {
			t.Fatal(err)
		}
		return h
	}

	before := hash()
	if again := hash(); again != before {
		t.Errorf("Hash() not stable: %s != %s", again, before)
	}

	src := filepath.Join(filepath.Dir(path), "cities.geojson")
	if err := os.WriteFile(src, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if hash() == before {
		t.Error("Hash() unchanged after editing a source")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil).Execute(ctx, Options{ConfigPath: writeJob(t)})
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("Execute() error = %v, want CANCELED", err)
	}
}

func TestExecuteMissingSource(t *testing.T) {
	path := writeJob(t)
	if err := os.Remove(filepath.Join(filepath.Dir(path), "roads.geojson")); err != nil {
		t.Fatal(err)
	}

	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{ConfigPath: path})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteInMemoryConfig(t *testing.T) {
	cfg, err := config.Load(writeJob(t))
	if err != nil {
		t.Fatal(err)
	}
	result, err := NewRunner(nil, nil).Execute(context.Background(), Options{Config: cfg})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.Placed != 3 {
		t.Errorf("Placed = %d, want 3", result.Stats.Placed)
	}
}
