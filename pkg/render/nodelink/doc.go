// Package nodelink renders layout trees as node-link diagrams using Graphviz.
//
// # Overview
//
// Where the sinks draw where boxes ended up, a node-link diagram shows how
// the tree is built: each node is a box connected to its parent by an arrow.
// This is useful for debugging deep or generated layout documents.
//
// # Rendering Pipeline
//
//  1. [ToDOT]: Convert the tree to Graphviz DOT format
//  2. [RenderSVG]: Render DOT to SVG using Graphviz (WebAssembly build)
//  3. [RenderPDF] / [RenderPNG]: Convert SVG via rsvg-convert
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
//   - Detailed: include sizes and orientation in labels; when a bake is
//     supplied in Options.Baked, also the resolved rectangle
//
// Nameless spacers are drawn dashed and grey.
package nodelink
