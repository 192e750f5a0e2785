package layout

import (
	"fmt"
	"slices"
)

// Node is an immutable layout description. The zero value is a nameless
// 0×0 leaf.
type Node struct {
	name        string
	size        Size
	orientation Orientation
	style       Style
	children    []Node
}

// Leaf returns a childless node.
func Leaf(name string, size Size) Node {
	return Node{name: name, size: size}
}

// Spacer returns a nameless leaf. It consumes space but is never recorded in
// a bake result.
func Spacer(size Size) Node {
	return Node{size: size}
}

// Group returns a node that places children along o.
func Group(name string, size Size, o Orientation, style Style, children ...Node) Node {
	return Node{
		name:        name,
		size:        size,
		orientation: o,
		style:       style,
		children:    slices.Clone(children),
	}
}

// Name returns the node name, or "" for nameless nodes.
func (n Node) Name() string { return n.name }

// IsNamed reports whether the node is recorded in bake results.
func (n Node) IsNamed() bool { return n.name != "" }

// Size returns the size of the node.
func (n Node) Size() Size { return n.size }

// Orientation returns the placement axis of the node's children.
func (n Node) Orientation() Orientation { return n.orientation }

// Style returns the node's margin, padding and alignment.
func (n Node) Style() Style { return n.style }

// Children returns a copy of the child list.
func (n Node) Children() []Node { return slices.Clone(n.children) }

// Child returns the i-th child.
func (n Node) Child(i int) Node { return n.children[i] }

// Len returns the number of direct children.
func (n Node) Len() int { return len(n.children) }

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return len(n.children) == 0 }

// Resized returns a copy with a different size. Children are shared.
func (n Node) Resized(size Size) Node {
	n.size = size
	return n
}

// Realigned returns a copy with a different alignment. Children are shared.
func (n Node) Realigned(a Alignment) Node {
	n.style = n.style.WithAlignment(a)
	return n
}

// Restyled returns a copy with a different style. Children are shared.
func (n Node) Restyled(s Style) Node {
	n.style = s
	return n
}

// Count returns the number of nodes in the tree, including n.
func (n Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Walk visits n and its descendants in preorder. fn receives the nesting
// level relative to n; returning false skips the node's children.
func (n Node) Walk(fn func(node Node, level int) bool) {
	n.walk(0, fn)
}

func (n Node) walk(level int, fn func(Node, int) bool) {
	if !fn(n, level) {
		return
	}
	for _, c := range n.children {
		c.walk(level+1, fn)
	}
}

// Names returns the names of all named nodes in preorder.
func (n Node) Names() []string {
	var names []string
	n.Walk(func(node Node, _ int) bool {
		if node.IsNamed() {
			names = append(names, node.name)
		}
		return true
	})
	return names
}

// Validate checks that n can be baked as a root: its size must be constant
// on both axes and no two nodes may share a name.
func (n Node) Validate() error {
	if !n.size.IsMeasurable() {
		return fmt.Errorf("%w: root %q has size %s", ErrImpossibleLayout, n.name, n.size)
	}
	seen := make(map[string]struct{})
	var err error
	n.Walk(func(node Node, _ int) bool {
		if err != nil {
			return false
		}
		if !node.IsNamed() {
			return true
		}
		if _, dup := seen[node.name]; dup {
			err = fmt.Errorf("%w: %q", ErrDuplicateName, node.name)
			return false
		}
		seen[node.name] = struct{}{}
		return true
	})
	return err
}

func (n Node) String() string {
	name := n.name
	if name == "" {
		name = "<spacer>"
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s %s", name, n.size)
	}
	return fmt.Sprintf("%s %s %s[%d]", name, n.size, n.orientation, len(n.children))
}
