package layout

import "fmt"

// Measurer is the resolution table of a single bake: a flat array indexed by
// [Token] holding the pixel value each stretch edge resolved to.
//
// A Measurer is owned by exactly one bake call and must not be shared.
type Measurer struct {
	values []int
	set    []bool
}

// NewMeasurer allocates a table for nodes occupying slots [0, slots).
func NewMeasurer(slots int) *Measurer {
	return &Measurer{
		values: make([]int, slots*2),
		set:    make([]bool, slots*2),
	}
}

// Register records the resolved value of token t, replacing any earlier one.
func (m *Measurer) Register(t Token, value int) {
	m.values[t] = value
	m.set[t] = true
}

// IsRegistered reports whether t has a value.
func (m *Measurer) IsRegistered(t Token) bool {
	return int(t) >= 0 && int(t) < len(m.set) && m.set[t]
}

// MeasureEdge returns the pixel value of e. Constant edges answer directly;
// stretch and aspect edges are looked up under t.
func (m *Measurer) MeasureEdge(e Edge, t Token) (int, error) {
	switch e.kind {
	case EdgeConstant:
		return e.value, nil
	case EdgeStretch, EdgeAspect:
		if !m.IsRegistered(t) {
			return 0, fmt.Errorf("%w: token %d (%s)", ErrUnregisteredEdge, t, e)
		}
		return m.values[t], nil
	}
	return 0, fmt.Errorf("unknown edge kind %d", e.kind)
}

// Measure resolves both edges of s for the node in slot.
func (m *Measurer) Measure(s Size, slot int) (Vec, error) {
	x, err := m.MeasureEdge(s.X, TokenFor(slot, AxisX))
	if err != nil {
		return Vec{}, err
	}
	y, err := m.MeasureEdge(s.Y, TokenFor(slot, AxisY))
	if err != nil {
		return Vec{}, err
	}
	return Vec{X: x, Y: y}, nil
}
