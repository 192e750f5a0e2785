package layout

import "fmt"

// EdgeKind tags the variant held by an [Edge].
type EdgeKind uint8

const (
	// EdgeConstant is a fixed pixel count.
	EdgeConstant EdgeKind = iota
	// EdgeStretch fills the space its parent leaves over.
	EdgeStretch
	// EdgeAspect is one half of a fixed-aspect-ratio pair. Both halves are
	// provisionally stretched until the baker decides which axis is driven.
	EdgeAspect
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeConstant:
		return "constant"
	case EdgeStretch:
		return "stretch"
	case EdgeAspect:
		return "aspect"
	}
	return fmt.Sprintf("EdgeKind(%d)", uint8(k))
}

// Edge describes one axis of a box.
//
// For EdgeConstant the value is the pixel count; for EdgeAspect it is this
// axis' share of the declared ratio; EdgeStretch carries no value. A stretch
// edge has no identity of its own: it is resolved through the token of the
// node that owns it, so equal Edge values on different nodes never collide.
type Edge struct {
	kind  EdgeKind
	value int
}

// Constant returns a fixed edge of px pixels. Negative values clamp to zero.
func Constant(px int) Edge {
	return Edge{kind: EdgeConstant, value: max(px, 0)}
}

// Stretch returns an edge that fills the remaining space.
func Stretch() Edge {
	return Edge{kind: EdgeStretch}
}

func aspectEdge(part int) Edge {
	return Edge{kind: EdgeAspect, value: max(part, 0)}
}

// Kind returns the variant tag.
func (e Edge) Kind() EdgeKind { return e.kind }

// Value returns the pixel count of a constant edge or the ratio share of an
// aspect edge. It is zero for stretch edges.
func (e Edge) Value() int { return e.value }

// IsConstant reports whether the edge is a fixed pixel count.
func (e Edge) IsConstant() bool { return e.kind == EdgeConstant }

// IsStretched reports whether the edge must be resolved by a parent, which is
// true for both stretch and aspect edges.
func (e Edge) IsStretched() bool { return e.kind != EdgeConstant }

func (e Edge) String() string {
	switch e.kind {
	case EdgeConstant:
		return fmt.Sprintf("%dpx", e.value)
	case EdgeStretch:
		return "stretch"
	case EdgeAspect:
		return fmt.Sprintf("aspect(%d)", e.value)
	}
	return e.kind.String()
}

// Axis identifies the X or Y slot of a node's resolution token pair.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func axisOf(o Orientation) Axis {
	if o == Horizontal {
		return AxisX
	}
	return AxisY
}

// Token is the index of a stretch edge in a bake's resolution table.
type Token int

// TokenFor returns the token of axis a on the node with bake slot slot.
func TokenFor(slot int, a Axis) Token {
	return Token(slot*2 + int(a))
}

// Size pairs the horizontal and vertical edges of a box.
type Size struct {
	X, Y Edge
}

// Pixels returns a constant w×h size.
func Pixels(w, h int) Size {
	return Size{X: Constant(w), Y: Constant(h)}
}

// Square returns a constant n×n size.
func Square(n int) Size {
	return Pixels(n, n)
}

// StretchedBoth fills the parent on both axes.
func StretchedBoth() Size {
	return Size{X: Stretch(), Y: Stretch()}
}

// StretchedHorizontally has a fixed height h and a stretched width.
func StretchedHorizontally(h int) Size {
	return Size{X: Stretch(), Y: Constant(h)}
}

// StretchedVertically has a fixed width w and a stretched height.
func StretchedVertically(w int) Size {
	return Size{X: Constant(w), Y: Stretch()}
}

// FixedAspectRatio links width and height by the ratio w:h. The box grows as
// large as its parent allows while keeping that ratio.
func FixedAspectRatio(w, h int) Size {
	return Size{X: aspectEdge(w), Y: aspectEdge(h)}
}

// Along returns the edge on axis o.
func (s Size) Along(o Orientation) Edge {
	if o == Horizontal {
		return s.X
	}
	return s.Y
}

// Perpendicular returns the edge on the axis perpendicular to o.
func (s Size) Perpendicular(o Orientation) Edge {
	return s.Along(o.Perpendicular())
}

// IsStretchedAlong reports whether the edge on axis o is resolved by a parent.
func (s Size) IsStretchedAlong(o Orientation) bool {
	return s.Along(o).IsStretched()
}

// IsStretchedPerpendicular reports whether the edge perpendicular to o is
// resolved by a parent.
func (s Size) IsStretchedPerpendicular(o Orientation) bool {
	return s.Perpendicular(o).IsStretched()
}

// IsMeasurableAlong reports whether the edge on axis o is a constant.
func (s Size) IsMeasurableAlong(o Orientation) bool {
	return s.Along(o).IsConstant()
}

// IsMeasurable reports whether both edges are constants.
func (s Size) IsMeasurable() bool {
	return s.X.IsConstant() && s.Y.IsConstant()
}

// IsFixedAspectRatio reports whether the size is a linked aspect pair.
func (s Size) IsFixedAspectRatio() bool {
	return s.X.kind == EdgeAspect && s.Y.kind == EdgeAspect
}

// AspectRatio returns the declared ratio of a fixed-aspect size, or the
// constant dimensions otherwise.
func (s Size) AspectRatio() AspectRatio {
	return NewAspectRatio(s.X.value, s.Y.value)
}

// Pixels returns the constant dimensions and whether both edges are constant.
func (s Size) Pixels() (Vec, bool) {
	return Vec{X: s.X.value, Y: s.Y.value}, s.IsMeasurable()
}

func (s Size) String() string {
	if s.IsFixedAspectRatio() {
		return fmt.Sprintf("aspect %d:%d", s.X.value, s.Y.value)
	}
	return fmt.Sprintf("%s × %s", s.X, s.Y)
}
