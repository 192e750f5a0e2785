package layout

import "fmt"

// Orientation is the axis along which a group places its children.
type Orientation uint8

const (
	// Horizontal places children left to right.
	Horizontal Orientation = iota
	// Vertical places children top to bottom.
	Vertical
)

// Perpendicular returns the other axis.
func (o Orientation) Perpendicular() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// ParseOrientation accepts "horizontal"/"h"/"row" and "vertical"/"v"/"column".
// The empty string parses as Horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "horizontal", "h", "row":
		return Horizontal, nil
	case "vertical", "v", "column":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("unknown orientation %q", s)
}

// Vec is an integer pair used for positions, sizes and margins.
type Vec struct {
	X, Y int
}

// VecAlong builds a Vec from components expressed relative to o.
func VecAlong(o Orientation, along, perp int) Vec {
	if o == Horizontal {
		return Vec{X: along, Y: perp}
	}
	return Vec{X: perp, Y: along}
}

// Along returns the component on axis o.
func (v Vec) Along(o Orientation) int {
	if o == Horizontal {
		return v.X
	}
	return v.Y
}

// Perpendicular returns the component on the axis perpendicular to o.
func (v Vec) Perpendicular(o Orientation) int {
	return v.Along(o.Perpendicular())
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec { return Vec{X: v.X - w.X, Y: v.Y - w.Y} }

// Scale returns v with both components multiplied by k.
func (v Vec) Scale(k int) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

func (v Vec) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// RectAt builds a Rect from a position and a size.
func RectAt(pos, size Vec) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// Position returns the top-left corner.
func (r Rect) Position() Vec { return Vec{X: r.X, Y: r.Y} }

// Size returns the dimensions.
func (r Rect) Size() Vec { return Vec{X: r.W, Y: r.H} }

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether the point lies inside r.
// The right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect reports whether other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Union returns the bounding box of both rectangles. A zero-area operand is
// ignored so that unions can be accumulated from an empty Rect.
func (r Rect) Union(other Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return other
	}
	if other.W == 0 && other.H == 0 {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}
