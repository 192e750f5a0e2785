package layout

import (
	"fmt"
	"strings"
)

// Overflow decides what happens when flow packing runs out of room on the
// axis perpendicular to wrapping.
type Overflow uint8

const (
	// OverflowUnrestricted keeps adding rows past the available size.
	OverflowUnrestricted Overflow = iota
	// OverflowLastRow allows exactly one row past the bound: a row may open
	// while the rows so far end at or inside it. Once a row ends past the
	// bound, an item that does not fit is appended to it anyway and packing
	// stops.
	OverflowLastRow
	// OverflowContain never exceeds the bound. The item that would cross it
	// is dropped together with every item after it.
	OverflowContain
)

var overflowNames = [...]string{"unrestricted", "last-row", "contain"}

func (p Overflow) String() string {
	if int(p) < len(overflowNames) {
		return overflowNames[p]
	}
	return fmt.Sprintf("Overflow(%d)", uint8(p))
}

// ParseOverflow parses "unrestricted", "last-row" or "contain". The empty
// string parses as OverflowUnrestricted.
func ParseOverflow(s string) (Overflow, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if norm == "" {
		return OverflowUnrestricted, nil
	}
	for i, name := range overflowNames {
		if norm == name {
			return Overflow(i), nil
		}
	}
	return OverflowUnrestricted, fmt.Errorf("unknown overflow policy %q", s)
}

// FlowStyle configures line wrapping.
type FlowStyle struct {
	// Orientation is the wrapping axis: Horizontal fills rows left to right
	// and stacks them top to bottom.
	Orientation Orientation
	// Margin insets the whole flow area.
	Margin Vec
	// RowPadding separates consecutive rows.
	RowPadding int
	// ItemPadding separates consecutive items within a row.
	ItemPadding int
	// Alignment anchors items within each row and the rows within the area.
	Alignment Alignment
	// Overflow is the policy for running out of perpendicular space.
	Overflow Overflow
	// DropOverflowingRow makes OverflowContain discard the whole row in which
	// the overflow happened, not only the offending item.
	DropOverflowingRow bool
	// MinRowSize is the smallest perpendicular extent of a row, which gives
	// empty rows between consecutive line breaks a height.
	MinRowSize int
}

// FlowEntry is either an item or a line break.
type FlowEntry struct {
	node      Node
	lineBreak bool
}

// Item wraps a constant-size node as a flow entry.
func Item(n Node) FlowEntry { return FlowEntry{node: n} }

// LineBreak closes the current row.
func LineBreak() FlowEntry { return FlowEntry{lineBreak: true} }

// IsLineBreak reports whether the entry is a line break.
func (e FlowEntry) IsLineBreak() bool { return e.lineBreak }

// Node returns the item node. It is the zero Node for line breaks.
func (e FlowEntry) Node() Node { return e.node }

// FlowItem is a placed item.
type FlowItem struct {
	// Index is the position of the item in the entry list.
	Index int
	Node  Node
	BakedNode
}

// BakedRow is one wrapped line.
type BakedRow struct {
	Name  string
	Items []FlowItem
	// Used is the bounding box of the placed items.
	Used Rect
	// Rect is the space allocated to the row. It spans the full available
	// width and so is wider than Used when alignment leaves slack.
	Rect Rect
}

// Len returns the number of items in the row.
func (r BakedRow) Len() int { return len(r.Items) }

// BakedFlow is the result of [NewFlow]. The embedded [Baked] map also holds
// every named item and every row under [RowName].
type BakedFlow struct {
	*Baked
	rows    []BakedRow
	placed  int
	dropped int
}

// Rows returns the wrapped rows in order.
func (f *BakedFlow) Rows() []BakedRow { return f.rows }

// Row returns the i-th row.
func (f *BakedFlow) Row(i int) BakedRow { return f.rows[i] }

// RowCount returns the number of rows.
func (f *BakedFlow) RowCount() int { return len(f.rows) }

// Placed returns how many items were placed.
func (f *BakedFlow) Placed() int { return f.placed }

// Dropped returns how many items were discarded by the overflow policy.
func (f *BakedFlow) Dropped() int { return f.dropped }

// RowName is the result-map name of the i-th row of the flow called name.
func RowName(name string, i int) string {
	return fmt.Sprintf("%s/row%d", name, i)
}

// packer accumulates rows for one NewFlow call.
type packer struct {
	name  string
	style FlowStyle
	avail Vec
	rows  []*Row[int]
}

func (p *packer) open() *Row[int] {
	o := p.style.Orientation
	g := NewRow[int](Flex{
		Name:             RowName(p.name, len(p.rows)),
		Orientation:      o,
		Style:            Style{Padding: p.style.ItemPadding, Alignment: p.style.Alignment},
		MinAlong:         p.avail.Along(o),
		MinPerpendicular: p.style.MinRowSize,
	})
	p.rows = append(p.rows, g)
	return g
}

func (p *packer) current() *Row[int] { return p.rows[len(p.rows)-1] }

func (p *packer) rowExtent(g *Row[int]) int {
	return max(g.Used().Perpendicular(p.style.Orientation), p.style.MinRowSize)
}

// extent is the perpendicular space taken by all rows so far.
func (p *packer) extent() int {
	total := 0
	for i, g := range p.rows {
		if i > 0 {
			total += p.style.RowPadding
		}
		total += p.rowExtent(g)
	}
	return total
}

// canOpen reports whether the policy allows a new row whose perpendicular
// extent would be perp.
func (p *packer) canOpen(perp int) bool {
	bound := p.avail.Perpendicular(p.style.Orientation)
	switch p.style.Overflow {
	case OverflowLastRow:
		return p.extent() <= bound
	case OverflowContain:
		return p.extent()+p.style.RowPadding+max(perp, p.style.MinRowSize) <= bound
	}
	return true
}

// fitsCurrent reports whether adding an item of size v to the current row
// keeps a contained flow inside its bound.
func (p *packer) fitsCurrent(v Vec) bool {
	o := p.style.Orientation
	if v.Along(o) > p.avail.Along(o) {
		return false
	}
	g := p.current()
	grown := max(p.rowExtent(g), v.Perpendicular(o))
	return p.extent()-p.rowExtent(g)+grown <= p.avail.Perpendicular(o)
}

// NewFlow packs entries greedily into rows that fit the along size of size
// and bakes the result once. size must be constant on both axes and every
// item must have a constant size.
func NewFlow(name string, size Size, style FlowStyle, entries ...FlowEntry) (*BakedFlow, error) {
	if name == "" {
		name = "flow"
	}
	outer, ok := size.Pixels()
	if !ok {
		return nil, fmt.Errorf("%w: flow %q has size %s", ErrImpossibleLayout, name, size)
	}
	o := style.Orientation
	p := &packer{
		name:  name,
		style: style,
		avail: outer.Sub(style.Margin.Scale(2)),
	}
	p.open()

	placed := 0
	rowOverflow := false
	for i, e := range entries {
		if e.lineBreak {
			if !p.canOpen(0) {
				break
			}
			p.open()
			continue
		}
		v, ok := e.node.size.Pixels()
		if !ok {
			return nil, fmt.Errorf("%w: flow item %d: %s", ErrUnmeasurable, i, e.node)
		}
		contain := style.Overflow == OverflowContain

		cur := p.current()
		if cur.Len() == 0 || cur.Fits(e.node, p.avail.Along(o)) {
			if contain && !p.fitsCurrent(v) {
				rowOverflow = cur.Len() > 0
				break
			}
			if err := cur.Append(e.node, i); err != nil {
				return nil, err
			}
			placed++
			continue
		}

		if p.canOpen(v.Perpendicular(o)) {
			if contain && v.Along(o) > p.avail.Along(o) {
				break
			}
			if err := p.open().Append(e.node, i); err != nil {
				return nil, err
			}
			placed++
			continue
		}

		// No new row allowed: best effort on the last row, or drop.
		if style.Overflow == OverflowLastRow {
			if err := cur.Append(e.node, i); err != nil {
				return nil, err
			}
			placed++
		}
		break
	}

	if rowOverflow && style.DropOverflowingRow {
		placed -= p.dropCurrent()
	}

	dropped := 0
	for _, e := range entries {
		if !e.lineBreak {
			dropped++
		}
	}
	dropped -= placed

	return p.bake(outer, placed, dropped)
}

// dropCurrent discards the row being filled and returns how many items it
// held. The first row is emptied rather than removed.
func (p *packer) dropCurrent() int {
	g := p.current()
	n := g.Len()
	if len(p.rows) == 1 {
		g.Truncate(0)
	} else {
		p.rows = p.rows[:len(p.rows)-1]
	}
	return n
}

func (p *packer) bake(outer Vec, placed, dropped int) (*BakedFlow, error) {
	o := p.style.Orientation
	rowNodes := make([]Node, len(p.rows))
	for i, g := range p.rows {
		n, err := g.Node()
		if err != nil {
			return nil, err
		}
		rowNodes[i] = n
	}

	container := Flex{
		Name:        p.name,
		Orientation: o.Perpendicular(),
		Style: Style{
			Margin:    p.style.Margin,
			Padding:   p.style.RowPadding,
			Alignment: p.style.Alignment,
		},
		MinAlong:         outer.Perpendicular(o),
		MinPerpendicular: outer.Along(o),
	}
	baked, err := container.Bake(rowNodes...)
	if err != nil {
		return nil, err
	}

	flow := &BakedFlow{Baked: baked, placed: placed, dropped: dropped}
	for r, ri := range baked.ChildIndices(0) {
		row := baked.Placement(ri)
		payloads := p.rows[r].Payloads()
		br := BakedRow{Name: row.Node.Name(), Rect: row.Rect()}
		for k, ii := range baked.ChildIndices(ri) {
			item := baked.Placement(ii)
			br.Items = append(br.Items, FlowItem{
				Index:     payloads[k],
				Node:      item.Node,
				BakedNode: item.BakedNode,
			})
			br.Used = br.Used.Union(item.Rect())
		}
		if len(br.Items) == 0 {
			br.Used = Rect{X: br.Rect.X, Y: br.Rect.Y, H: br.Rect.H}
			if o == Vertical {
				br.Used = Rect{X: br.Rect.X, Y: br.Rect.Y, W: br.Rect.W}
			}
		}
		flow.rows = append(flow.rows, br)
	}
	return flow, nil
}
