// Package textflow wraps text into lines by feeding words to a
// [layout.NewFlow].
//
// Words are measured in terminal cells with go-runewidth, so wide CJK runes
// and emoji take two columns. A newline in the input becomes a line break and
// a blank line becomes an empty row one cell high.
//
//	w, err := textflow.Wrap("the quick brown fox", textflow.Options{Width: 10})
//	fmt.Print(w.String())
package textflow

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/boxbake/pkg/layout"
)

// Options controls wrapping.
type Options struct {
	// Width is the line width in cells. Required.
	Width int
	// Height limits the number of lines. Zero means unlimited.
	Height int
	// Align positions each line's words inside the available width.
	Align layout.Alignment
	// Overflow decides what happens to words past Height.
	Overflow layout.Overflow
	// Gap is the number of cells between words. Zero means one.
	Gap int
}

// Token is one unit of input: a word or a line break.
type Token struct {
	Text  string
	Break bool
}

// Width returns the cell width of the token.
func (t Token) Width() int { return runewidth.StringWidth(t.Text) }

// Tokenize splits text into words and line breaks. Runs of spaces and tabs
// separate words; every newline is a break.
func Tokenize(text string) []Token {
	var toks []Token
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			toks = append(toks, Token{Break: true})
		}
		for _, w := range strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r)
		}) {
			toks = append(toks, Token{Text: w})
		}
	}
	return toks
}

// Word is a placed word.
type Word struct {
	Text string
	// Col is the zero-based column of the first cell.
	Col   int
	Width int
}

// Line is one wrapped line.
type Line struct {
	Words []Word
	// Used is the tight box around the words.
	Used layout.Rect
}

// Text returns the words of the line separated by single spaces.
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Wrapped is the result of [Wrap].
type Wrapped struct {
	Width   int
	Lines   []Line
	Dropped int
}

// Wrap lays text out into lines no wider than opts.Width. A word wider than
// the line sits alone on its own line and is cut when rendered.
func Wrap(text string, opts Options) (*Wrapped, error) {
	return WrapTokens(Tokenize(text), opts)
}

// WrapTokens is [Wrap] for pre-tokenized input.
func WrapTokens(toks []Token, opts Options) (*Wrapped, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("textflow: width must be positive, got %d", opts.Width)
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 1
	}
	height := opts.Height
	if height <= 0 {
		// Every token can start at most one line.
		height = len(toks) + 1
	}

	entries := make([]layout.FlowEntry, len(toks))
	for i, t := range toks {
		if t.Break {
			entries[i] = layout.LineBreak()
			continue
		}
		entries[i] = layout.Item(layout.Leaf("", layout.Pixels(t.Width(), 1)))
	}

	flow, err := layout.NewFlow("text", layout.Pixels(opts.Width, height), layout.FlowStyle{
		Orientation: layout.Horizontal,
		ItemPadding: gap,
		Alignment:   opts.Align,
		Overflow:    opts.Overflow,
		MinRowSize:  1,
	}, entries...)
	if err != nil {
		return nil, err
	}

	w := &Wrapped{Width: opts.Width, Dropped: flow.Dropped()}
	for _, row := range flow.Rows() {
		line := Line{Used: row.Used}
		for _, it := range row.Items {
			line.Words = append(line.Words, Word{
				Text:  toks[it.Index].Text,
				Col:   it.Position.X,
				Width: it.Size.X,
			})
		}
		w.Lines = append(w.Lines, line)
	}
	return w, nil
}

// String renders the lines, one per output line, with words at their baked
// columns. Trailing spaces are trimmed.
func (w *Wrapped) String() string {
	var sb strings.Builder
	for _, l := range w.Lines {
		sb.WriteString(w.render(l))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (w *Wrapped) render(l Line) string {
	var sb strings.Builder
	col := 0
	for _, word := range l.Words {
		if word.Col < col || word.Col >= w.Width {
			continue
		}
		sb.WriteString(strings.Repeat(" ", word.Col-col))
		text := word.Text
		if word.Col+word.Width > w.Width {
			text = runewidth.Truncate(text, w.Width-word.Col, "…")
		}
		sb.WriteString(text)
		col = word.Col + runewidth.StringWidth(text)
	}
	return sb.String()
}

// Height returns the number of lines.
func (w *Wrapped) Height() int { return len(w.Lines) }
