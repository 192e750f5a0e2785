package layout

// Descriptor classifies the shape of an [AspectRatio].
type Descriptor uint8

const (
	RatioSquare Descriptor = iota
	RatioWide
	RatioTall
)

func (d Descriptor) String() string {
	switch d {
	case RatioWide:
		return "wide"
	case RatioTall:
		return "tall"
	}
	return "square"
}

// AspectRatio is a width:height pair. Components are never negative.
type AspectRatio struct {
	W, H int
}

// NewAspectRatio clamps negative dimensions to zero.
func NewAspectRatio(w, h int) AspectRatio {
	return AspectRatio{W: max(w, 0), H: max(h, 0)}
}

// RatioOf returns the ratio of a resolved box.
func RatioOf(v Vec) AspectRatio {
	return NewAspectRatio(v.X, v.Y)
}

// Describe reports RatioWide iff W > H, RatioTall iff H > W, and RatioSquare
// otherwise, including the degenerate 0:0 ratio.
func (a AspectRatio) Describe() Descriptor {
	switch {
	case a.W > a.H:
		return RatioWide
	case a.H > a.W:
		return RatioTall
	}
	return RatioSquare
}

// compare orders a against b by width/height without division:
// positive when a is relatively wider, negative when relatively taller.
func (a AspectRatio) compare(b AspectRatio) int {
	l := a.W * b.H
	r := b.W * a.H
	switch {
	case l > r:
		return 1
	case l < r:
		return -1
	}
	return 0
}

// IsStretchedAlong reports whether inner's dimension on axis o is the one
// that must fill outer exactly. Equal ratios drive both axes; a relatively
// wider inner drives the horizontal axis; a relatively taller one drives the
// vertical axis.
func IsStretchedAlong(inner, outer AspectRatio, o Orientation) bool {
	c := inner.compare(outer)
	if c == 0 {
		return true
	}
	if o == Horizontal {
		return c > 0
	}
	return c < 0
}

// IsStretchedPerpendicular is the complement of [IsStretchedAlong], except
// that equal ratios make it true as well.
func IsStretchedPerpendicular(inner, outer AspectRatio, o Orientation) bool {
	return IsStretchedAlong(inner, outer, o.Perpendicular())
}

// Derive returns the length of axis to when axis from measures driven,
// rounded down.
func (a AspectRatio) Derive(driven int, from Orientation) int {
	num, den := a.H, a.W
	if from == Vertical {
		num, den = a.W, a.H
	}
	if den == 0 {
		return 0
	}
	return driven * num / den
}

// Fit returns the largest box with ratio a that fits inside bound.
func (a AspectRatio) Fit(bound Vec) Vec {
	outer := RatioOf(bound)
	switch {
	case a.compare(outer) == 0:
		return bound
	case IsStretchedAlong(a, outer, Horizontal):
		return Vec{X: bound.X, Y: a.Derive(bound.X, Horizontal)}
	default:
		return Vec{X: a.Derive(bound.Y, Vertical), Y: bound.Y}
	}
}
