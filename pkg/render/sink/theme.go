package sink

import (
	"fmt"
	"slices"
	"strings"
)

// Theme is a colour scheme for SVG output.
type Theme struct {
	Name       string
	Background string
	Stroke     string
	Text       string
	// Fills are indexed by nesting level, cycling when the tree is deeper.
	Fills []string
}

// Fill returns the fill colour for a node at level.
func (t Theme) Fill(level int) string {
	if len(t.Fills) == 0 {
		return "none"
	}
	return t.Fills[level%len(t.Fills)]
}

var (
	Light = Theme{
		Name:       "light",
		Background: "#ffffff",
		Stroke:     "#2b4a6f",
		Text:       "#1b2a3a",
		Fills:      []string{"#e8f1fb", "#cfe3f7", "#b3d1f0", "#94bde8", "#76a8df"},
	}
	Dark = Theme{
		Name:       "dark",
		Background: "#1e1f24",
		Stroke:     "#a9b8d0",
		Text:       "#e6ebf2",
		Fills:      []string{"#2d3340", "#3a4356", "#48546d", "#576785", "#677b9d"},
	}
	Mono = Theme{
		Name:       "mono",
		Background: "#ffffff",
		Stroke:     "#000000",
		Text:       "#000000",
		Fills:      []string{"#ffffff"},
	}
)

var themes = []Theme{Light, Dark, Mono}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ParseTheme looks up a built-in theme by name. The empty string is Light.
func ParseTheme(name string) (Theme, error) {
	if name == "" {
		return Light, nil
	}
	i := slices.IndexFunc(themes, func(t Theme) bool { return strings.EqualFold(t.Name, name) })
	if i < 0 {
		return Theme{}, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return themes[i], nil
}
