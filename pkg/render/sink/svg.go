package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 24.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme  Theme
	labels bool
	rows   bool
}

func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }
func WithLabels() SVGOption       { return func(r *svgRenderer) { r.labels = true } }

// WithRows outlines the rows of a flow result with dashed boxes.
func WithRows() SVGOption { return func(r *svgRenderer) { r.rows = true } }

// RenderSVG draws every node of res as a rectangle in [layoutfile.Result.DrawOrder].
func RenderSVG(res *layoutfile.Result, opts ...SVGOption) []byte {
	r := svgRenderer{theme: Light}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)

	nodes := res.DrawOrder()
	for _, n := range nodes {
		r.renderBox(&buf, n)
	}
	if r.rows {
		for _, row := range res.Rows {
			fmt.Fprintf(&buf, `  <rect class="row" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-dasharray="2 2"/>`+"\n",
				row.Used.X, row.Used.Y, row.Used.W, row.Used.H, r.theme.Stroke)
		}
	}
	if r.labels {
		for _, n := range nodes {
			r.renderLabel(&buf, n)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderBox(buf *bytes.Buffer, n layoutfile.ResultNode) {
	fmt.Fprintf(buf, `  <rect id="box-%s" class="box level-%d" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		escapeAttr(n.Name), n.Level, n.X, n.Y, n.W, n.H, r.theme.Fill(n.Level), r.theme.Stroke)
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, n layoutfile.ResultNode) {
	if !n.Leaf || n.Rect().IsEmpty() {
		return
	}
	size := fontSizeFor(float64(n.W), float64(n.H), len([]rune(n.Name)))
	label := truncateLabel(n.Name, float64(n.W), size)
	cx := float64(n.X) + float64(n.W)/2
	cy := float64(n.Y) + float64(n.H)/2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">`,
		cx, cy, size, r.theme.Text)
	xml.EscapeText(buf, []byte(label))
	buf.WriteString("</text>\n")
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func truncateLabel(label string, width, fontSize float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
