package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/render/sink"
)

// previewFooterLines is the space kept below the frame for the status line.
const previewFooterLines = 1

var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Preview a layout at the terminal size",
		Long: `Preview a layout at the terminal size.

The document is baked again, from scratch, every time the terminal is resized:
one character cell is one pixel. Keys: l toggles labels, r reloads the file,
q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if path == "-" {
				return errors.New(errors.ErrCodeInvalidInput, "preview needs a file, not stdin")
			}
			load := func() (layoutfile.Document, error) { return loadDocument(path, inputFormat) }
			doc, err := load()
			if err != nil {
				return err
			}
			return runPreview(cmd.Context(), newPreviewModel(cmd.Context(), doc, load))
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "document format: json, toml, yaml (default: from the extension)")

	return cmd
}

func runPreview(ctx context.Context, m previewModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(previewModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

// previewModel holds the document and the last frame. Each resize replaces
// the frame with a fresh bake.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	load   func() (layoutfile.Document, error)

	doc    layoutfile.Document
	width  int
	height int
	labels bool

	frame string
	res   *layoutfile.Result
	bakes int
	err   error
}

func newPreviewModel(ctx context.Context, doc layoutfile.Document, load func() (layoutfile.Document, error)) previewModel {
	return previewModel{
		ctx: ctx,
		// The alt screen owns the terminal; nothing may log to it.
		runner: pipeline.NewRunner(nil, nil, log.New(io.Discard)),
		load:   load,
		doc:    doc,
		labels: true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "l":
			m.labels = !m.labels
			return m.rebake(), nil
		case "r":
			if m.load == nil {
				return m, nil
			}
			doc, err := m.load()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.doc = doc
			return m.rebake(), nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.rebake(), nil
	}
	return m, nil
}

// rebake bakes the document at the current terminal size.
func (m previewModel) rebake() previewModel {
	h := m.height - previewFooterLines
	if m.width <= 0 || h <= 0 {
		return m
	}
	frame, res, err := previewFrame(m.ctx, m.runner, m.doc, m.width, h, m.labels)
	m.bakes++
	m.err = err
	if err == nil {
		m.frame, m.res = frame, res
	}
	return m
}

func (m previewModel) View() string {
	if m.width == 0 {
		return "baking..."
	}
	var b strings.Builder
	b.WriteString(m.frame)
	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(errors.UserMessage(m.err)))
		return b.String()
	}
	status := fmt.Sprintf("%dx%d · bake #%d", m.width, m.height-previewFooterLines, m.bakes)
	if m.res != nil {
		status += fmt.Sprintf(" · %d placed", len(m.res.Nodes))
		if m.res.Dropped > 0 {
			status += fmt.Sprintf(" · %d dropped", m.res.Dropped)
		}
	}
	status += " · l labels · r reload · q quit"
	b.WriteString(previewStatusStyle.Render(status))
	return b.String()
}

// previewFrame bakes doc at w×h and draws it one cell per pixel.
func previewFrame(ctx context.Context, runner *pipeline.Runner, doc layoutfile.Document, w, h int, labels bool) (string, *layoutfile.Result, error) {
	res, err := runner.Bake(ctx, doc, pipeline.Options{Width: w, Height: h})
	if err != nil {
		return "", nil, err
	}
	opts := []sink.TextOption{sink.WithCellSize(1, 1)}
	if !labels {
		opts = append(opts, sink.WithoutLabels())
	}
	return sink.RenderText(res, opts...), res, nil
}
