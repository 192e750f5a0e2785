package layout

import (
	"fmt"
	"strings"
)

// Anchor positions a block on one axis.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorCenter
	AnchorEnd
)

// offset returns where a block of length used starts inside available.
func (a Anchor) offset(available, used int) int {
	switch a {
	case AnchorCenter:
		return (available - used) / 2
	case AnchorEnd:
		return available - used
	}
	return 0
}

// Alignment is one of nine anchors: a horizontal and a vertical [Anchor].
type Alignment uint8

const (
	TopLeft Alignment = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

// Alignments lists all nine anchors in row-major order.
var Alignments = []Alignment{
	TopLeft, TopCenter, TopRight,
	CenterLeft, Center, CenterRight,
	BottomLeft, BottomCenter, BottomRight,
}

var alignmentNames = [...]string{
	"top-left", "top-center", "top-right",
	"center-left", "center", "center-right",
	"bottom-left", "bottom-center", "bottom-right",
}

// AlignmentOf combines a horizontal and a vertical anchor.
func AlignmentOf(h, v Anchor) Alignment {
	return Alignment(uint8(v)*3 + uint8(h))
}

// Horizontal returns the anchor on the X axis.
func (a Alignment) Horizontal() Anchor { return Anchor(uint8(a) % 3) }

// Vertical returns the anchor on the Y axis.
func (a Alignment) Vertical() Anchor { return Anchor(uint8(a) / 3) }

// RelativePositionOf returns the offset at which a block of size used sits
// inside a region of size available. Each axis is handled independently; the
// offset is negative when the block overflows an end or center anchor.
func (a Alignment) RelativePositionOf(available, used Vec) Vec {
	return Vec{
		X: a.Horizontal().offset(available.X, used.X),
		Y: a.Vertical().offset(available.Y, used.Y),
	}
}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// ParseAlignment parses names such as "top-left", "center" or "bottom-right".
// "middle" is accepted for "center", and underscores for dashes. The empty
// string parses as TopLeft.
func ParseAlignment(s string) (Alignment, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	norm = strings.ReplaceAll(norm, "middle", "center")
	switch norm {
	case "":
		return TopLeft, nil
	case "center-center":
		return Center, nil
	case "top":
		return TopCenter, nil
	case "bottom":
		return BottomCenter, nil
	case "left":
		return CenterLeft, nil
	case "right":
		return CenterRight, nil
	}
	for i, name := range alignmentNames {
		if norm == name {
			return Alignment(i), nil
		}
	}
	return TopLeft, fmt.Errorf("unknown alignment %q", s)
}

// Style holds the spacing and alignment of a group.
type Style struct {
	// Margin insets the group's content area on both ends of each axis.
	Margin Vec
	// Padding is the gap between consecutive children along the orientation.
	Padding int
	// Alignment anchors the block of children inside the content area.
	Alignment Alignment
}

// WithAlignment returns a copy of s with a different alignment.
func (s Style) WithAlignment(a Alignment) Style {
	s.Alignment = a
	return s
}
