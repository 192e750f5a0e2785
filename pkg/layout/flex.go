package layout

import "fmt"

// Flex sizes a container from its children instead of the other way round.
//
// The container is exactly as large as its contents plus margins, but never
// smaller than MinAlong / MinPerpendicular when those are positive.
type Flex struct {
	Name        string
	Orientation Orientation
	Style       Style

	MinAlong         int
	MinPerpendicular int
}

// Measure returns the tight size of children laid out by f, ignoring the
// minimums. Every child must have a constant size.
func (f Flex) Measure(children ...Node) (Vec, error) {
	o := f.Orientation
	along, perp := 0, 0
	for _, c := range children {
		v, ok := c.size.Pixels()
		if !ok {
			return Vec{}, fmt.Errorf("%w: %s", ErrUnmeasurable, c)
		}
		along += v.Along(o)
		perp = max(perp, v.Perpendicular(o))
	}
	if len(children) > 1 {
		along += f.Style.Padding * (len(children) - 1)
	}
	along += 2 * f.Style.Margin.Along(o)
	perp += 2 * f.Style.Margin.Perpendicular(o)
	return VecAlong(o, along, perp), nil
}

// Size returns the container size: the tight size raised to the minimums.
func (f Flex) Size(children ...Node) (Vec, error) {
	v, err := f.Measure(children...)
	if err != nil {
		return Vec{}, err
	}
	o := f.Orientation
	return VecAlong(o,
		max(v.Along(o), f.MinAlong),
		max(v.Perpendicular(o), f.MinPerpendicular),
	), nil
}

// Node builds a constant-size group holding children.
func (f Flex) Node(children ...Node) (Node, error) {
	v, err := f.Size(children...)
	if err != nil {
		return Node{}, err
	}
	return Group(f.Name, Pixels(v.X, v.Y), f.Orientation, f.Style, children...), nil
}

// Bake builds the container and bakes it.
func (f Flex) Bake(children ...Node) (*Baked, error) {
	n, err := f.Node(children...)
	if err != nil {
		return nil, err
	}
	return Bake(n)
}
