package layout

import (
	"fmt"
	"slices"
)

// Row is an ordered run of constant-size nodes sized by a [Flex], where each
// node carries a caller payload of type T.
type Row[T any] struct {
	flex     Flex
	nodes    []Node
	payloads []T
	used     Vec
}

// NewRow returns an empty row laid out by f.
func NewRow[T any](f Flex) *Row[T] {
	g := &Row[T]{flex: f}
	g.used, _ = f.Measure()
	return g
}

// Flex returns the sizing rule of the row.
func (g *Row[T]) Flex() Flex { return g.flex }

// Len returns the number of nodes.
func (g *Row[T]) Len() int { return len(g.nodes) }

// Used returns the tight size of the current contents.
func (g *Row[T]) Used() Vec { return g.used }

// Remaining returns how much of available is still free along the row's
// orientation.
func (g *Row[T]) Remaining(available int) int {
	return available - g.used.Along(g.flex.Orientation)
}

// Fits reports whether n can be appended without the row's along extent
// exceeding available.
func (g *Row[T]) Fits(n Node, available int) bool {
	v, ok := n.size.Pixels()
	if !ok {
		return false
	}
	need := v.Along(g.flex.Orientation)
	if len(g.nodes) > 0 {
		need += g.flex.Style.Padding
	}
	return need <= g.Remaining(available)
}

// Append adds n with its payload and recomputes the tight size.
func (g *Row[T]) Append(n Node, payload T) error {
	if !n.size.IsMeasurable() {
		return fmt.Errorf("%w: %s", ErrUnmeasurable, n)
	}
	g.nodes = append(g.nodes, n)
	g.payloads = append(g.payloads, payload)
	used, err := g.flex.Measure(g.nodes...)
	if err != nil {
		return err
	}
	g.used = used
	return nil
}

// Truncate keeps the first k nodes.
func (g *Row[T]) Truncate(k int) {
	g.nodes = g.nodes[:k]
	g.payloads = g.payloads[:k]
	g.used, _ = g.flex.Measure(g.nodes...)
}

// Nodes returns a copy of the nodes.
func (g *Row[T]) Nodes() []Node { return slices.Clone(g.nodes) }

// Payloads returns a copy of the payloads, aligned with Nodes.
func (g *Row[T]) Payloads() []T { return slices.Clone(g.payloads) }

// Node builds the row as a container node.
func (g *Row[T]) Node() (Node, error) {
	return g.flex.Node(g.nodes...)
}
