package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/pipeline"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	output  string   // output base path
	formats []string // output formats: "svg", "pdf", "json"
	boxes   bool     // draw collision boxes
	noCache bool     // bypass the artifact cache entirely
	refresh bool     // ignore cached artifacts but store new ones
	quiet   bool     // no spinner or summary
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var formatsStr string
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [job.toml]",
		Short: "Place labels for every layer of a job file",
		Long: `Place labels for every layer of a job file and write the result.

Layers are labelled in file order against a shared collision index, so
labels of earlier layers win. One file is written per format, named after
the job file unless --output is given:

  maplabel place city.toml                    # city.svg
  maplabel place city.toml -f svg,pdf -o out  # out.svg, out.pdf
  maplabel place city.toml -f json --boxes    # city.json with collision boxes`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeJobFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runPlace(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: job file without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.boxes, "boxes", false, "draw collision boxes for debugging")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-run placement even if cached")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print errors")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runPlace executes the pipeline for one job file and writes its artifacts.
func (c *CLI) runPlace(ctx context.Context, input string, opts placeOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	var spinner *Spinner
	if !opts.quiet {
		spinner = newSpinnerWithContext(ctx, "Placing labels...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: input,
		Formats:    opts.formats,
		Boxes:      opts.boxes,
		Refresh:    opts.refresh,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(basePath(opts.output, input), opts.formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	if opts.quiet {
		return nil
	}
	printSuccess("Placed labels for %s", input)
	printPlaceStats(result)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes one file per format as base.<format>, in format
// order, and returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s output produced", format)
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
