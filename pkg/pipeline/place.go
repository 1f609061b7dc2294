package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/collision"
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/placement"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/fonts"
	"github.com/matzehuels/maplabel/pkg/observability"
	"github.com/matzehuels/maplabel/pkg/render"
)

// Place labels every layer of job onto a fresh map. Layers are processed in
// order against one shared detector; within a layer, features keep their
// source order. Placement stops with a CANCELED error when ctx is done.
func (r *Runner) Place(ctx context.Context, job *Job, opts Options) (*render.Scene, Stats, error) {
	var stats Stats
	cfg := job.Config

	extent, err := job.MapExtent()
	if err != nil {
		return nil, stats, err
	}
	view, err := geom.NewViewTransform(cfg.Map.Width, cfg.Map.Height, extent)
	if err != nil {
		return nil, stats, err
	}

	detector := collision.NewQuadtree(view.Extent())
	finder := placement.NewFinder(detector, view.Extent())
	measurers := newMeasurerSet(job.Font, cfg.Font.DPI)
	defer measurers.Close()

	scene := &render.Scene{
		Width:  cfg.Map.Width,
		Height: cfg.Map.Height,
		Font:   job.Font,
	}

	hooks := observability.Pipeline()
	for _, l := range job.Layers {
		start := time.Now()
		hooks.OnPlaceStart(ctx, l.Config.Name, len(l.Data.Features))

		out, ls, err := r.placeLayer(ctx, finder, view, measurers, l)
		hooks.OnPlaceComplete(ctx, l.Config.Name, ls.Placed, time.Since(start), err)
		if err != nil {
			return nil, stats, err
		}

		r.Logger.Info("placed layer",
			"layer", l.Config.Name,
			"parts", ls.Parts,
			"placed", ls.Placed,
			"unplaced", ls.Unplaced,
			"duration", time.Since(start))

		scene.Layers = append(scene.Layers, out)
		stats.add(ls)
	}

	if opts.Boxes {
		scene.Boxes = detector.Boxes()
	}
	stats.Layers = len(job.Layers)
	return scene, stats, nil
}

func (r *Runner) placeLayer(ctx context.Context, finder *placement.Finder, view *geom.ViewTransform, ms *measurerSet, l Layer) (render.Layer, Stats, error) {
	var stats Stats
	out := render.Layer{
		Name:     l.Config.Name,
		Fill:     l.Config.Fill,
		FontSize: l.Config.Size * ms.dpi / fonts.DefaultDPI,
	}

	m, err := ms.get(l.Config.Size)
	if err != nil {
		return out, stats, err
	}

	stats.Features = len(l.Data.Features)
	stats.Skipped = l.Data.Skipped
	for _, f := range l.Data.Features {
		if err := ctx.Err(); err != nil {
			return out, stats, errors.Wrap(errors.ErrCodeCanceled, err, "placement canceled")
		}

		for _, part := range f.Parts {
			out.Shapes = append(out.Shapes, deviceShape(part, l.Projection, view))
		}

		label := l.Expression.Evaluate(f.Properties)
		if strings.TrimSpace(label) == "" {
			stats.Unlabelled++
			continue
		}

		for _, part := range f.Parts {
			stats.Parts++
			req := placement.NewRequest(part, m.Measure(label), l.Projection, view, l.Policy)
			if !finder.FindPlacements(req) {
				stats.Unplaced++
				r.Logger.Debug("no placement", "layer", l.Config.Name, "feature", f.ID, "text", label)
				continue
			}
			stats.Placed++
			stats.Placements += len(req.Placements())
			out.Labels = append(out.Labels, render.Label{
				Text:       label,
				Feature:    f.ID,
				Placements: req.Placements(),
			})
		}
	}
	return out, stats, nil
}

func deviceShape(g geom.Geometry, proj geom.Projection, view *geom.ViewTransform) render.Shape {
	pts := make([]orb.Point, 0, g.NumPoints())
	for p := range g.Vertices() {
		pts = append(pts, view.Forward(proj.Backward(p)))
	}
	return render.Shape{Type: g.Type(), Points: pts}
}

func (s *Stats) add(o Stats) {
	s.Features += o.Features
	s.Parts += o.Parts
	s.Skipped += o.Skipped
	s.Unlabelled += o.Unlabelled
	s.Placed += o.Placed
	s.Unplaced += o.Unplaced
	s.Placements += o.Placements
}

// measurerSet builds one measurer per font size on demand.
type measurerSet struct {
	font []byte
	dpi  float64
	m    map[float64]*fonts.Measurer
}

func newMeasurerSet(font []byte, dpi float64) *measurerSet {
	return &measurerSet{font: font, dpi: dpi, m: make(map[float64]*fonts.Measurer)}
}

func (s *measurerSet) get(size float64) (*fonts.Measurer, error) {
	if m, ok := s.m[size]; ok {
		return m, nil
	}
	m, err := fonts.NewMeasurer(s.font, size, s.dpi)
	if err != nil {
		return nil, err
	}
	s.m[size] = m
	return m, nil
}

func (s *measurerSet) Close() {
	for _, m := range s.m {
		_ = m.Close()
	}
}
