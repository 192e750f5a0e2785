// Package render turns baked layouts into pictures.
//
// # Overview
//
// This package holds the format conversion shared by every renderer:
//
//   - Sinks for a baked [layoutfile.Result] (in [sink] subpackage)
//   - Node-link diagrams of a layout tree (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, _ := sink.RenderSVG(result)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/boxbake/pkg/render/sink
// [nodelink]: github.com/matzehuels/boxbake/pkg/render/nodelink
// [layoutfile.Result]: github.com/matzehuels/boxbake/pkg/layoutfile.Result
package render
