package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/maplabel/pkg/buildinfo"
	"github.com/matzehuels/maplabel/pkg/cache"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options; each run gets
// its own collision detector.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses the charmbracelet default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cfg, err := r.LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("run", result.ID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	job, err := r.Load(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(codeOf(err, errors.ErrCodeInternal), err, "load")
	}
	loadTime := time.Since(loadStart)
	logger.Info("loaded layers",
		"layers", len(job.Layers),
		"duration", loadTime)

	result.JobHash, err = job.Hash()
	if err != nil {
		return nil, err
	}
	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, result.JobHash, opts); ok {
			logger.Info("served from cache", "formats", opts.Formats, "job", result.JobHash[:12])
			result.Artifacts = artifacts
			result.CacheHit = true
			result.Stats.LoadTime = loadTime
			return result, nil
		}
	}

	// Stage 2: Place
	placeStart := time.Now()
	scene, stats, err := r.Place(ctx, job, opts)
	if err != nil {
		return nil, errors.Wrap(codeOf(err, errors.ErrCodeInternal), err, "place")
	}
	stats.LoadTime = loadTime
	stats.PlaceTime = time.Since(placeStart)
	result.Stats = stats
	result.Scene = scene
	logger.Info("placed labels",
		"placed", stats.Placed,
		"unplaced", stats.Unplaced,
		"placements", stats.Placements,
		"duration", stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.render(ctx, scene, opts, result.ID)
	if err != nil {
		return nil, errors.Wrap(codeOf(err, errors.ErrCodeInternal), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	r.store(ctx, result.JobHash, opts, artifacts)
	return result, nil
}

// cached returns every requested format from the cache, or false if any is
// missing.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, artifactKey(hash, format, opts))
		if err != nil || !hit {
			hooks.OnCacheMiss("artifact")
			return nil, false
		}
		hooks.OnCacheHit("artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, hash string, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		// JSON embeds the run id, so a cached copy would report a stale run.
		if format == FormatJSON {
			continue
		}
		if err := r.Cache.Set(ctx, artifactKey(hash, format, opts), data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
}

func artifactKey(hash, format string, opts Options) string {
	return cache.ArtifactKey(hash, format, cache.ArtifactKeyOpts{
		Boxes:   opts.Boxes,
		Version: buildinfo.Version,
	})
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
