package sink

import (
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/render"
)

// RenderPDF renders the result as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(res *layoutfile.Result, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(res, opts...))
}

// RenderPNG renders the result as PNG via SVG conversion at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(res *layoutfile.Result, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(res, opts...), scale)
}
