package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layout"
	"github.com/matzehuels/boxbake/pkg/textflow"
)

// wrapOpts holds the flags of the wrap command.
type wrapOpts struct {
	width    int
	height   int
	align    string
	overflow string
	gap      int
	output   string
}

// wrapCommand creates the wrap command, a plain-text consumer of flows.
func (c *CLI) wrapCommand() *cobra.Command {
	opts := wrapOpts{width: 80, gap: 1}

	cmd := &cobra.Command{
		Use:   "wrap [file]",
		Short: "Wrap text to a width with a flow layout",
		Long: `Wrap text to a width with a flow layout.

Every word is a flow item as wide as its terminal cells; newlines are line
breaks. Reads stdin when no file (or "-") is given.

Overflow policies for --height:
  unrestricted  keep every line
  last-row      allow one line past the height
  contain       drop the line that does not fit and everything after it`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runWrap(cmd, input, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", opts.width, "line width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 0, "maximum number of lines (0 = unlimited)")
	cmd.Flags().StringVar(&opts.align, "align", "left", "line alignment: left, center, right")
	cmd.Flags().StringVar(&opts.overflow, "overflow", "unrestricted", "overflow policy: unrestricted, last-row, contain")
	cmd.Flags().IntVar(&opts.gap, "gap", opts.gap, "cells between words")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runWrap(cmd *cobra.Command, input string, opts wrapOpts) error {
	logger := loggerFromContext(cmd.Context())

	text, err := readText(input)
	if err != nil {
		return err
	}
	flowOpts, err := opts.textflowOptions()
	if err != nil {
		return err
	}

	wrapped, err := textflow.Wrap(text, flowOpts)
	if err != nil {
		return errors.FromLayout(err)
	}
	logger.Debug("wrapped", "lines", wrapped.Height(), "dropped", wrapped.Dropped, "width", wrapped.Width)
	if wrapped.Dropped > 0 {
		logger.Warn("text did not fit", "dropped_words", wrapped.Dropped)
	}
	return writeOutput(opts.output, []byte(wrapped.String()))
}

// textflowOptions validates the flags. Only the horizontal part of --align
// matters: lines always stack from the top.
func (o wrapOpts) textflowOptions() (textflow.Options, error) {
	if o.width <= 0 {
		return textflow.Options{}, errors.New(errors.ErrCodeInvalidDimensions, "width must be positive, got %d", o.width)
	}
	if o.height < 0 || o.gap < 0 {
		return textflow.Options{}, errors.New(errors.ErrCodeInvalidDimensions, "height and gap cannot be negative")
	}
	align, err := layout.ParseAlignment(o.align)
	if err != nil {
		return textflow.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%v", err)
	}
	overflow, err := layout.ParseOverflow(o.overflow)
	if err != nil {
		return textflow.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%v", err)
	}
	return textflow.Options{
		Width:    o.width,
		Height:   o.height,
		Align:    layout.Alignment(align.Horizontal()),
		Overflow: overflow,
		Gap:      o.gap,
	}, nil
}

func readText(input string) (string, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", input)
		}
		return "", fmt.Errorf("read %s: %w", input, err)
	}
	return string(data), nil
}
