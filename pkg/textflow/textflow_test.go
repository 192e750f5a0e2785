package textflow

import (
	"testing"

	"github.com/matzehuels/boxbake/pkg/layout"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("a  bb\tc\n\nd")
	want := []Token{{Text: "a"}, {Text: "bb"}, {Text: "c"}, {Break: true}, {Break: true}, {Text: "d"}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		opts  Options
		want  string
		drops int
	}{
		{
			name: "greedy",
			text: "the quick brown fox jumps",
			opts: Options{Width: 10},
			want: "the quick\nbrown fox\njumps\n",
		},
		{
			name: "right aligned",
			text: "the quick brown fox jumps",
			opts: Options{Width: 10, Align: layout.TopRight},
			want: " the quick\n brown fox\n     jumps\n",
		},
		{
			name: "centered",
			text: "the quick brown fox jumps",
			opts: Options{Width: 10, Align: layout.TopCenter},
			want: "the quick\nbrown fox\n  jumps\n",
		},
		{
			name: "blank line keeps an empty row",
			text: "a\n\nb",
			opts: Options{Width: 4},
			want: "a\n\nb\n",
		},
		{
			name: "long word is cut",
			text: "abcdefghijkl x",
			opts: Options{Width: 5},
			want: "abcd…\nx\n",
		},
		{
			name:  "contained height drops words",
			text:  "the quick brown fox jumps",
			opts:  Options{Width: 10, Height: 2, Overflow: layout.OverflowContain},
			want:  "the quick\nbrown fox\n",
			drops: 1,
		},
		{
			name: "wide runes",
			text: "日本語 テキスト ok",
			opts: Options{Width: 10},
			want: "日本語\nテキスト\nok\n",
		},
		{
			name: "wider gap",
			text: "a b c",
			opts: Options{Width: 10, Gap: 3},
			want: "a   b   c\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Wrap(tt.text, tt.opts)
			if err != nil {
				t.Fatalf("Wrap: %v", err)
			}
			if got := w.String(); got != tt.want {
				t.Errorf("got\n%q\nwant\n%q", got, tt.want)
			}
			if w.Dropped != tt.drops {
				t.Errorf("Dropped = %d, want %d", w.Dropped, tt.drops)
			}
		})
	}
}

func TestWrapLines(t *testing.T) {
	w, err := Wrap("the quick brown fox jumps", Options{Width: 10})
	if err != nil {
		t.Fatal(err)
	}
	if w.Height() != 3 {
		t.Fatalf("Height = %d, want 3", w.Height())
	}
	if got := w.Lines[1].Text(); got != "brown fox" {
		t.Errorf("line 1 = %q", got)
	}
	if got := w.Lines[1].Used; got != (layout.Rect{X: 0, Y: 1, W: 9, H: 1}) {
		t.Errorf("line 1 Used = %v", got)
	}
	if got := w.Lines[1].Words[1]; got.Col != 6 || got.Width != 3 {
		t.Errorf("fox placed at %+v", got)
	}
}

func TestWrapInvalidWidth(t *testing.T) {
	if _, err := Wrap("x", Options{}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestWrapEmpty(t *testing.T) {
	w, err := Wrap("", Options{Width: 5})
	if err != nil {
		t.Fatal(err)
	}
	if w.Height() != 1 || len(w.Lines[0].Words) != 0 {
		t.Errorf("empty text gave %+v", w.Lines)
	}
}
