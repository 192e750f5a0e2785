// Package layout resolves trees of rectangular regions into absolute pixel
// positions and sizes.
//
// # Overview
//
// A layout is described by an immutable tree of [Node] values. Every node has
// a [Size] made of two edges: a constant pixel count, a stretch edge that fills
// whatever space its parent has left, or a fixed-aspect-ratio pair whose
// driven axis is decided during baking. Group nodes place their children one
// after another along their [Orientation], separated by [Style.Padding],
// inset by [Style.Margin], and anchored as a block by [Style.Alignment].
//
// # Baking
//
// [Bake] walks the tree once, resolving every stretch edge into pixels and
// recording each named node in a [Baked] result map:
//
//	root := layout.Group("root", layout.Pixels(20, 5), layout.Horizontal,
//	    layout.Style{Margin: layout.Vec{X: 1, Y: 1}, Padding: 1},
//	    layout.Leaf("a", layout.StretchedBoth()),
//	    layout.Leaf("b", layout.StretchedBoth()),
//	    layout.Leaf("c", layout.StretchedBoth()),
//	)
//	baked, err := layout.Bake(root)
//	b, err := baked.Get("b") // Position (7,1), Size (5,3)
//
// Results are snapshots. After a resize or realignment, bake again with
// [Baked.Resized] or [Baked.Realigned]; nothing is patched in place.
//
// # Shrink-wrap and line wrapping
//
// [Flex] computes a container's own size from its children. [NewFlow] packs a
// sequence of items into rows that fit a bounded width, honouring one of three
// [Overflow] policies, and bakes the assembled tree once.
//
// # Concurrency
//
// Nodes are immutable and each bake owns its own [Measurer], so one tree may
// be baked from many goroutines at once.
package layout
