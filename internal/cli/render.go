package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/render/sink"
)

// renderFlags holds the render-only flags.
type renderFlags struct {
	output  string
	formats string
	cell    string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  bakeFlags
		rflags renderFlags
	)
	opts := pipeline.Options{Labels: true}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Bake a layout document and render it",
		Long: `Bake a layout document and render it to one or more formats.

Formats:
  svg       boxes coloured by nesting depth (default)
  png, pdf  the SVG converted with rsvg-convert
  json      the baked rectangles
  txt       box-drawing characters, one cell per --cell pixels
  dot       the layout tree as Graphviz DOT (tree documents only)
  nodelink  the layout tree drawn by Graphviz (tree documents only)

With a single format, -o names the output file ("-" for stdout). With several,
-o is a base path and each format gets its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(rflags.formats)
			if err != nil {
				return err
			}
			opts.Formats = formats
			c.renderFromConfig(cmd, &opts)
			if rflags.cell != "" {
				w, h, err := parseCell(rflags.cell)
				if err != nil {
					return err
				}
				opts.CellWidth, opts.CellHeight = w, h
			}
			return c.runRender(cmd, args[0], flags, rflags, opts)
		},
	}

	flags.register(cmd, "target size WxH (default: document size)")
	cmd.Flags().StringVarP(&rflags.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&rflags.formats, "format", "f", "", "output format(s), comma-separated: "+strings.Join(pipeline.ValidFormats, ", "))
	cmd.Flags().StringVar(&opts.Theme, "theme", pipeline.DefaultTheme, "colour theme: "+strings.Join(sink.ThemeNames(), ", "))
	cmd.Flags().BoolVar(&opts.Labels, "labels", opts.Labels, "draw leaf names")
	cmd.Flags().BoolVar(&opts.Rows, "rows", false, "outline flow rows")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show sizes and rectangles in dot/nodelink output")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&rflags.cell, "cell", "", "pixels per character cell for txt output, WxH (default 1x1)")

	return cmd
}

// runRender bakes and renders input, then writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, input string, flags bakeFlags, rflags renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(input, flags.inputFormat)
	if err != nil {
		return err
	}
	if rflags.output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - takes a single format")
	}
	if len(flags.sizes) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "render takes at most one --size")
	}
	if len(flags.sizes) == 1 {
		size, err := pipeline.ParseSize(flags.sizes[0])
		if err != nil {
			return err
		}
		opts.Width, opts.Height = size.Width, size.Height
	} else {
		c.sizeFromConfig(cmd, &opts)
	}
	opts.Document = &doc
	opts.Refresh = flags.refresh
	opts.Logger = logger

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(rflags.output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
	}
	if rflags.output == "-" {
		return nil
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Bake, result.Stats.NodeCount, result.CacheInfo.BakeHit)
	return nil
}

// formatExt maps formats to file suffixes. json gets ".baked.json" so a
// JSON document is never overwritten by its own bake.
var formatExt = map[string]string{
	pipeline.FormatJSON:     ".baked.json",
	pipeline.FormatNodelink: ".nodelink.svg",
}

func extFor(format string) string {
	if ext, ok := formatExt[format]; ok {
		return ext
	}
	return "." + format
}

// outputPaths picks an output path per format. A single format with an
// explicit output uses it as is; otherwise the output (or the input) minus
// its extension is the base.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	for _, f := range formats {
		paths[f] = basePath(output, input) + extFor(f)
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .txt, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" || output == "-" {
		if input == "-" {
			return "layout"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// parseCell parses "WxH" or a single number for square cells.
func parseCell(s string) (int, int, error) {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n, n, nil
	}
	size, err := pipeline.ParseSize(s)
	if err != nil {
		return 0, 0, err
	}
	return size.Width, size.Height, nil
}
