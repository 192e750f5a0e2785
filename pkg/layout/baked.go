package layout

import (
	"fmt"
	"iter"
	"slices"
)

// BakedNode is the resolved box of one node.
type BakedNode struct {
	// Position is relative to the bake root's top-left corner.
	Position Vec
	Size     Vec
	// Level is the nesting depth below the root (root = 0).
	Level int
}

// Rect returns the node's box.
func (n BakedNode) Rect() Rect { return RectAt(n.Position, n.Size) }

// ZIndex is the draw-order hint for consumers: deeper nodes draw on top.
func (n BakedNode) ZIndex() int { return -n.Level }

// Placement is a baked node together with its source node. Parent is the
// index of the parent placement, or -1 for the root.
type Placement struct {
	Node   Node
	Parent int
	BakedNode
}

// Baked is the immutable result of one bake. Named nodes are addressable by
// name; every node, named or not, is kept in placement order.
type Baked struct {
	source     Node
	placements []Placement
	children   [][]int
	index      map[string]int
}

func newBaked(root Node) *Baked {
	n := root.Count()
	return &Baked{
		source:     root,
		placements: make([]Placement, 0, n),
		children:   make([][]int, 0, n),
		index:      make(map[string]int),
	}
}

func (b *Baked) place(n Node, parent int, pos, size Vec, level int) int {
	idx := len(b.placements)
	b.placements = append(b.placements, Placement{
		Node:      n,
		Parent:    parent,
		BakedNode: BakedNode{Position: pos, Size: size, Level: level},
	})
	b.children = append(b.children, nil)
	if parent >= 0 {
		b.children[parent] = append(b.children[parent], idx)
	}
	if n.IsNamed() {
		b.index[n.name] = idx
	}
	return idx
}

// Get returns the baked box of the named node.
func (b *Baked) Get(name string) (BakedNode, error) {
	if n, ok := b.Lookup(name); ok {
		return n, nil
	}
	return BakedNode{}, fmt.Errorf("%w: %q", ErrNodeNotFound, name)
}

// Lookup is like Get but reports presence with a boolean.
func (b *Baked) Lookup(name string) (BakedNode, bool) {
	idx, ok := b.index[name]
	if !ok {
		return BakedNode{}, false
	}
	return b.placements[idx].BakedNode, true
}

// Has reports whether name was baked.
func (b *Baked) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Len returns the number of named nodes.
func (b *Baked) Len() int { return len(b.index) }

// Names returns the named nodes in placement order.
func (b *Baked) Names() []string {
	names := make([]string, 0, len(b.index))
	for _, p := range b.placements {
		if p.Node.IsNamed() {
			names = append(names, p.Node.name)
		}
	}
	return names
}

// All yields every named node in placement order.
func (b *Baked) All() iter.Seq2[string, BakedNode] {
	return func(yield func(string, BakedNode) bool) {
		for _, p := range b.placements {
			if !p.Node.IsNamed() {
				continue
			}
			if !yield(p.Node.name, p.BakedNode) {
				return
			}
		}
	}
}

// Placements returns every placed node, including nameless spacers, in
// placement order. The root is always at index 0.
func (b *Baked) Placements() []Placement {
	return slices.Clone(b.placements)
}

// Placement returns the i-th placement.
func (b *Baked) Placement(i int) Placement { return b.placements[i] }

// ChildIndices returns the placement indices of the direct children of the
// i-th placement, in order.
func (b *Baked) ChildIndices(i int) []int {
	return slices.Clone(b.children[i])
}

// Root returns the baked box of the root node.
func (b *Baked) Root() BakedNode { return b.placements[0].BakedNode }

// Source returns the tree that was baked.
func (b *Baked) Source() Node { return b.source }

// Resized bakes the source tree again with a new root size.
func (b *Baked) Resized(size Size) (*Baked, error) {
	return Bake(b.source.Resized(size))
}

// Realigned bakes the source tree again with a new root alignment.
func (b *Baked) Realigned(a Alignment) (*Baked, error) {
	return Bake(b.source.Realigned(a))
}
