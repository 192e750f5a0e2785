// Package sink renders a baked [layoutfile.Result] to output formats.
//
// # Overview
//
// A "sink" transforms a baked result into bytes. This package provides:
//
//   - SVG: boxes filled by nesting level, painted in draw order
//   - Text: a terminal grid of box-drawing characters
//   - JSON: the result itself, for external tools and caching
//   - PDF and PNG: SVG converted with rsvg-convert
//
// Every sink paints shallow nodes first so that children cover their
// parents, matching [layout.BakedNode.ZIndex].
//
//	svg := sink.RenderSVG(res, sink.WithTheme(sink.Dark), sink.WithLabels())
//	txt := sink.RenderText(res, sink.WithCellSize(2, 1))
//
// [layoutfile.Result]: github.com/matzehuels/boxbake/pkg/layoutfile.Result
// [layout.BakedNode.ZIndex]: github.com/matzehuels/boxbake/pkg/layout.BakedNode.ZIndex
package sink
