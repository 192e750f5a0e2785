package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

func previewDoc(t *testing.T) layoutfile.Document {
	t.Helper()
	doc, err := layoutfile.Parse([]byte(rowDoc), layoutfile.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPreviewFrame(t *testing.T) {
	m := newPreviewModel(context.Background(), previewDoc(t), nil)
	frame, res, err := previewFrame(context.Background(), m.runner, m.doc, 20, 6, true)
	if err != nil {
		t.Fatalf("previewFrame() error: %v", err)
	}
	if res.Width != 20 || res.Height != 6 {
		t.Errorf("baked %dx%d, want 20x6", res.Width, res.Height)
	}
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	if len(lines) != 6 {
		t.Errorf("frame has %d lines, want 6:\n%s", len(lines), frame)
	}
}

func TestPreviewResize(t *testing.T) {
	m := newPreviewModel(context.Background(), previewDoc(t), nil)
	if got := m.View(); got != "baking..." {
		t.Errorf("View() before the first size = %q", got)
	}

	sizes := []tea.WindowSizeMsg{{Width: 40, Height: 11}, {Width: 16, Height: 5}}
	var model tea.Model = m
	for i, msg := range sizes {
		model, _ = model.Update(msg)
		pm := model.(previewModel)
		if pm.err != nil {
			t.Fatalf("resize %d: %v", i, pm.err)
		}
		if pm.bakes != i+1 {
			t.Errorf("bakes = %d, want %d", pm.bakes, i+1)
		}
		wantH := msg.Height - previewFooterLines
		if pm.res.Width != msg.Width || pm.res.Height != wantH {
			t.Errorf("resize %d baked %dx%d, want %dx%d", i, pm.res.Width, pm.res.Height, msg.Width, wantH)
		}
		b, _ := pm.res.Get("b")
		if b.X != msg.Width/2 {
			t.Errorf("resize %d: b.X = %d, want %d", i, b.X, msg.Width/2)
		}
	}
	if !strings.Contains(model.View(), "bake #2") {
		t.Errorf("status line missing bake count:\n%s", model.View())
	}
}

func TestPreviewKeys(t *testing.T) {
	reloads := 0
	load := func() (layoutfile.Document, error) {
		reloads++
		return previewDoc(t), nil
	}
	var model tea.Model = newPreviewModel(context.Background(), previewDoc(t), load)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 20, Height: 6})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if model.(previewModel).labels {
		t.Error("l did not toggle labels off")
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if reloads != 1 {
		t.Errorf("reloads = %d, want 1", reloads)
	}
	if got := model.(previewModel).bakes; got != 3 {
		t.Errorf("bakes = %d, want 3", got)
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
