// Package pipeline runs a maplabel job end to end.
//
// This package implements the complete load → place → render pipeline used
// by the CLI. Keeping it here, rather than in the command code, makes the
// whole job testable without a terminal.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the job file and every layer's GeoJSON source, from disk
//     or over http(s)
//  2. Place: Label every feature part, layers in file order, all sharing one
//     collision detector so that earlier layers take priority
//  3. Render: Write the placed labels as SVG, PDF or JSON
//
// Rendered artifacts are cached by a digest of the job file, the font and
// the source data, so rerunning an unchanged job is instant.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ConfigPath: "job.toml",
//	    Formats:    []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	cfg, err := runner.LoadConfig(opts)
//	job, err := runner.Load(ctx, cfg)
//	scene, stats, err := runner.Place(ctx, job, opts)
//	artifacts, err := runner.Render(ctx, scene, opts)
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/maplabel/pkg/config"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/render"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Input options. Config takes precedence over ConfigPath.
	ConfigPath string         `json:"config_path,omitempty"`
	Config     *config.Config `json:"-"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Boxes   bool     `json:"boxes,omitempty"` // Draw collision boxes for debugging

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies this run.
	ID string

	// JobHash is the digest of the run's inputs, used as the cache key.
	JobHash string

	// Scene holds the placed labels. It is nil when every artifact came
	// from the cache.
	Scene *render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheHit reports whether all artifacts were served from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers     int
	Features   int
	Parts      int
	Skipped    int // Features without a usable geometry
	Unlabelled int // Features whose text evaluated to blank
	Placed     int // Parts that received at least one placement
	Unplaced   int // Parts for which no placement was found
	Placements int // Accepted placements, counting line repeats

	LoadTime   time.Duration
	PlaceTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, FormatSVG, FormatPDF, FormatJSON)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil && o.ConfigPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "config or config_path is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
