package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/observability"
	"github.com/matzehuels/maplabel/pkg/render"
	"github.com/matzehuels/maplabel/pkg/render/sink"
)

// Render writes scene in every format of opts.
func (r *Runner) Render(ctx context.Context, scene *render.Scene, opts Options) (map[string][]byte, error) {
	return r.render(ctx, scene, opts, "")
}

func (r *Runner) render(ctx context.Context, scene *render.Scene, opts Options, runID string) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := renderFormats(scene, opts, runID)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(scene *render.Scene, opts Options, runID string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.Boxes {
				svgOpts = append(svgOpts, sink.WithBoxes())
			}
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPDF:
			var pdfOpts []sink.PDFOption
			if opts.Boxes {
				pdfOpts = append(pdfOpts, sink.WithPDFBoxes())
			}
			if opts.ConfigPath != "" {
				pdfOpts = append(pdfOpts, sink.WithPDFTitle(opts.ConfigPath))
			}
			data, err = sink.RenderPDF(scene, pdfOpts...)
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONRunID(runID)}
			if opts.Boxes {
				jsonOpts = append(jsonOpts, sink.WithJSONBoxes())
			}
			data, err = sink.RenderJSON(scene, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(codeOf(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// codeOf returns err's code, or fallback for errors from outside the
// project.
func codeOf(err error, fallback errors.Code) errors.Code {
	if c := errors.GetCode(err); c != "" {
		return c
	}
	return fallback
}
