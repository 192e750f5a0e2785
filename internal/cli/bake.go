package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/pipeline"
)

// bakeFlags are the flags shared by bake, render and preview.
type bakeFlags struct {
	sizes       []string
	inputFormat string
	refresh     bool
	noCache     bool
}

func (f *bakeFlags) register(cmd *cobra.Command, sizeUsage string) {
	cmd.Flags().StringArrayVarP(&f.sizes, "size", "s", nil, sizeUsage)
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "document format: json, toml, yaml (default: from the extension, json on stdin)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// bakeCommand creates the bake command.
func (c *CLI) bakeCommand() *cobra.Command {
	var (
		flags  bakeFlags
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "bake [document]",
		Short: "Bake a layout document into absolute rectangles",
		Long: `Bake a layout document into absolute rectangles.

The document is read from a .json, .toml or .yaml file, or from stdin when the
argument is "-". Each --size bakes the same document at another root size; the
bakes run concurrently and never share state.

Without -o the result is printed as a table, or as JSON with --json.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBake(cmd, args[0], flags, output, asJSON)
		},
	}

	flags.register(cmd, "target size WxH, repeatable (default: document size)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON result to a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the JSON result instead of a table")

	return cmd
}

// runBake loads the document, bakes it at each size, and writes output.
func (c *CLI) runBake(cmd *cobra.Command, input string, flags bakeFlags, output string, asJSON bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := loadDocument(input, flags.inputFormat)
	if err != nil {
		return err
	}
	sizes, err := parseSizes(flags.sizes)
	if err != nil {
		return err
	}
	opts := pipeline.Options{Refresh: flags.refresh, Logger: logger}
	if len(sizes) == 0 {
		c.sizeFromConfig(cmd, &opts)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	results, cached, err := bakeAll(ctx, runner, doc, sizes, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Baked %s at %d size(s)", describe(doc, input), len(results)))

	if output != "" || asJSON {
		data, err := encodeResults(results)
		if err != nil {
			return err
		}
		if err := writeOutput(output, data); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		if output != "" {
			printSuccess("Bake complete")
			printFile(output)
			for _, res := range results {
				printStats(res, pipeline.CountNodes(doc), cached)
			}
			printNewline()
			printNextStep("Render", appName+" render "+input)
		}
		return nil
	}

	for _, res := range results {
		printResultTable(res)
		printStats(res, pipeline.CountNodes(doc), cached)
	}
	return nil
}

// bakeAll bakes once at the configured size, or concurrently at each size.
// cached is only reported for the single bake.
func bakeAll(ctx context.Context, runner *pipeline.Runner, doc layoutfile.Document, sizes []pipeline.Size, opts pipeline.Options) ([]*layoutfile.Result, bool, error) {
	if len(sizes) <= 1 {
		if len(sizes) == 1 {
			opts.Width, opts.Height = sizes[0].Width, sizes[0].Height
		}
		res, hit, err := runner.BakeWithCacheInfo(ctx, doc, opts)
		if err != nil {
			return nil, false, err
		}
		return []*layoutfile.Result{res}, hit, nil
	}
	results, err := runner.BakeSizes(ctx, doc, sizes, opts)
	return results, false, err
}

// encodeResults writes one result as an object and several as an array.
func encodeResults(results []*layoutfile.Result) ([]byte, error) {
	if len(results) == 1 {
		var buf bytes.Buffer
		if err := layoutfile.WriteResult(results[0], &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// loadDocument imports path, or reads stdin when path is "-".
func loadDocument(path, format string) (layoutfile.Document, error) {
	if path != "-" {
		if format != "" {
			f, err := layoutfile.ParseFormat(format)
			if err != nil {
				return layoutfile.Document{}, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return layoutfile.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
			}
			return layoutfile.Parse(data, f)
		}
		return layoutfile.Import(path)
	}
	f := layoutfile.FormatJSON
	if format != "" {
		var err error
		if f, err = layoutfile.ParseFormat(format); err != nil {
			return layoutfile.Document{}, err
		}
	}
	return layoutfile.Read(os.Stdin, f)
}

// describe names a document for log lines.
func describe(doc layoutfile.Document, input string) string {
	if name := doc.Name(); name != "" {
		return fmt.Sprintf("%s %q", doc.Kind(), name)
	}
	return fmt.Sprintf("%s %s", doc.Kind(), input)
}
