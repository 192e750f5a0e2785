package layout

import "fmt"

// baker carries the state of one bake call.
type baker struct {
	m    *Measurer
	out  *Baked
	next int // next free slot
}

// Bake resolves root into absolute positions relative to root's top-left
// corner. The root size must be constant on both axes.
func Bake(root Node) (*Baked, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}
	size, _ := root.size.Pixels()

	b := &baker{
		m:    NewMeasurer(root.Count()),
		out:  newBaked(root),
		next: 1,
	}
	idx := b.out.place(root, -1, Vec{}, size, 0)
	if err := b.group(root, idx, Vec{}, size, 0); err != nil {
		return nil, err
	}
	return b.out, nil
}

// Bake is shorthand for [Bake](n).
func (n Node) Bake() (*Baked, error) {
	return Bake(n)
}

// group resolves and places the children of n, whose own box is already
// known, then recurses into each child group.
func (b *baker) group(n Node, idx int, pos, size Vec, level int) error {
	kids := n.children
	if len(kids) == 0 {
		return nil
	}
	o := n.orientation
	st := n.style
	first := b.next
	b.next += len(kids)

	gaps := st.Padding * (len(kids) - 1)
	remaining := size.Along(o) - 2*st.Margin.Along(o) - gaps
	fill := max(size.Perpendicular(o)-2*st.Margin.Perpendicular(o), 0)

	var stretched []int
	for i, c := range kids {
		if along := c.size.Along(o); along.IsConstant() {
			remaining -= along.value
		} else {
			stretched = append(stretched, i)
		}
		if c.size.IsStretchedPerpendicular(o) {
			b.m.Register(TokenFor(first+i, axisOf(o.Perpendicular())), fill)
		}
	}

	// Floor division; the remainder is left unallocated.
	if len(stretched) > 0 {
		share := max(remaining, 0) / len(stretched)
		for _, i := range stretched {
			b.m.Register(TokenFor(first+i, axisOf(o)), share)
		}
	}

	for i, c := range kids {
		if c.size.IsFixedAspectRatio() {
			if err := b.reconcile(c, first+i, o); err != nil {
				return err
			}
		}
	}

	sizes := make([]Vec, len(kids))
	usedAlong, usedPerp := gaps, 0
	for i, c := range kids {
		v, err := b.m.Measure(c.size, first+i)
		if err != nil {
			return fmt.Errorf("measure %s: %w", c, err)
		}
		sizes[i] = v
		usedAlong += v.Along(o)
		usedPerp = max(usedPerp, v.Perpendicular(o))
	}

	available := size.Sub(st.Margin.Scale(2))
	used := VecAlong(o, usedAlong, usedPerp)
	cursor := pos.Add(st.Margin).Add(st.Alignment.RelativePositionOf(available, used))

	for i, c := range kids {
		ci := b.out.place(c, idx, cursor, sizes[i], level+1)
		if err := b.group(c, ci, cursor, sizes[i], level+1); err != nil {
			return err
		}
		cursor = cursor.Add(VecAlong(o, sizes[i].Along(o)+st.Padding, 0))
	}
	return nil
}

// reconcile settles a fixed-aspect child whose two axes were both resolved as
// if independently stretched. When only one axis is driven by the space it
// received, the other is recomputed from the declared ratio.
func (b *baker) reconcile(c Node, slot int, o Orientation) error {
	tentative, err := b.m.Measure(c.size, slot)
	if err != nil {
		return err
	}
	declared := c.size.AspectRatio()
	outer := RatioOf(tentative)

	along := IsStretchedAlong(declared, outer, o)
	perp := IsStretchedPerpendicular(declared, outer, o)
	switch {
	case along && perp:
	case along:
		b.m.Register(TokenFor(slot, axisOf(o.Perpendicular())), declared.Derive(tentative.Along(o), o))
	case perp:
		p := o.Perpendicular()
		b.m.Register(TokenFor(slot, axisOf(o)), declared.Derive(tentative.Along(p), p))
	}
	return nil
}
