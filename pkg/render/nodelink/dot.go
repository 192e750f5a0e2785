package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxbake/pkg/layout"
	"github.com/matzehuels/boxbake/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes sizes and orientation in node labels.
	// When false, only the node name is shown.
	Detailed bool
	// Baked, if set, adds each named node's resolved rectangle to detailed
	// labels.
	Baked *layout.Baked
}

// ToDOT converts a layout tree to Graphviz DOT format. Nodes are identified by
// their preorder index so spacers and duplicate-free names both work.
func ToDOT(root layout.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	var parents []int
	id := 0
	root.Walk(func(n layout.Node, level int) bool {
		parents = parents[:level]
		if level > 0 {
			edges = append(edges, fmt.Sprintf("  \"n%d\" -> \"n%d\";\n", parents[level-1], id))
		}
		fmt.Fprintf(&buf, "  \"n%d\" [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, opts)), ", "))
		parents = append(parents, id)
		id++
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, opts Options) string {
	name := n.Name()
	if name == "" {
		name = "spacer"
	}
	if !opts.Detailed {
		return name
	}

	parts := []string{"size: " + n.Size().String()}
	if !n.IsLeaf() {
		parts = append(parts, "orientation: "+n.Orientation().String())
	}
	if opts.Baked != nil && n.IsNamed() {
		if b, ok := opts.Baked.Lookup(n.Name()); ok {
			parts = append(parts, "rect: "+b.Rect().String())
		}
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n layout.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !n.IsNamed() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg tag, which carries pt units and a
// translated viewBox, with a plain one sized to the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
