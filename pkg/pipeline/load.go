package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/maplabel/pkg/buildinfo"
	"github.com/matzehuels/maplabel/pkg/cache"
	"github.com/matzehuels/maplabel/pkg/config"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/placement"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/expr"
	"github.com/matzehuels/maplabel/pkg/observability"
	"github.com/matzehuels/maplabel/pkg/source"
)

// Job is a configuration together with its loaded inputs.
type Job struct {
	Config *config.Config
	// Font is the configured font file, or nil for Go Regular.
	Font   []byte
	Layers []Layer
}

// Layer is one configured layer, ready for placement.
type Layer struct {
	Config     config.Layer
	Data       *source.Collection
	Projection geom.Projection
	Expression *expr.Expression
	Policy     placement.Policy
	// Raw is the undecoded source, kept for hashing.
	Raw []byte
}

// LoadConfig returns opts.Config, or loads it from opts.ConfigPath.
func (r *Runner) LoadConfig(opts Options) (*config.Config, error) {
	if opts.Config != nil {
		return opts.Config, nil
	}
	return config.Load(opts.ConfigPath)
}

// Load reads the font and every layer source of cfg. Sources may be local
// files or http(s) URLs.
func (r *Runner) Load(ctx context.Context, cfg *config.Config) (*Job, error) {
	hooks := observability.Pipeline()
	job := &Job{Config: cfg}

	if cfg.Font.File != "" {
		data, err := source.Read(ctx, cfg.Font.File)
		if err != nil {
			return nil, errors.Wrap(codeOf(err, errors.ErrCodeInvalidFont), err, "font")
		}
		job.Font = data
	}

	for _, lc := range cfg.Layers {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "load canceled")
		}

		start := time.Now()
		hooks.OnLoadStart(ctx, lc.Name, lc.Source)
		layer, err := loadLayer(ctx, cfg, lc)
		var n int
		if layer.Data != nil {
			n = len(layer.Data.Features)
		}
		hooks.OnLoadComplete(ctx, lc.Name, n, time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(codeOf(err, errors.ErrCodeInvalidSource), err, "layer %s", lc.Name)
		}

		r.Logger.Debug("loaded layer",
			"layer", lc.Name,
			"features", n,
			"skipped", layer.Data.Skipped,
			"bytes", len(layer.Raw),
			"duration", time.Since(start))
		job.Layers = append(job.Layers, layer)
	}
	return job, nil
}

func loadLayer(ctx context.Context, cfg *config.Config, lc config.Layer) (Layer, error) {
	l := Layer{Config: lc}

	proj, err := geom.ProjectionFor(lc.SRS, cfg.Map.SRS)
	if err != nil {
		return l, err
	}
	e, err := lc.Expression()
	if err != nil {
		return l, err
	}
	policy, err := lc.Policy()
	if err != nil {
		return l, err
	}
	raw, err := source.Read(ctx, lc.Source)
	if err != nil {
		return l, err
	}
	data, err := source.Parse(lc.Source, raw)
	if err != nil {
		return l, err
	}

	l.Projection, l.Expression, l.Policy, l.Data, l.Raw = proj, e, policy, data, raw
	return l, nil
}

// Hash digests everything that determines the job's output: the decoded
// configuration, the font, every source, and the program version.
func (j *Job) Hash() (string, error) {
	h := cache.NewHasher()
	h.AddString(buildinfo.Version)

	encoded, err := json.Marshal(j.Config)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	h.Add(encoded)
	h.Add(j.Font)
	for _, l := range j.Layers {
		h.Add(l.Raw)
	}
	return h.Sum(), nil
}
