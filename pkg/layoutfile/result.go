package layoutfile

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/boxbake/pkg/layout"
)

// Box is a serialized rectangle.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func boxOf(r layout.Rect) Box { return Box{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// Rect converts the box back to a layout rectangle.
func (b Box) Rect() layout.Rect { return layout.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H} }

// ResultNode is one named node of a bake.
type ResultNode struct {
	Name string `json:"name"`
	// Parent is the nearest named ancestor, or "" for the root.
	Parent string `json:"parent,omitempty"`
	Box
	Level int  `json:"level"`
	Leaf  bool `json:"leaf,omitempty"`
}

// ResultRow is one row of a baked flow.
type ResultRow struct {
	Name  string   `json:"name"`
	Used  Box      `json:"used"`
	Rect  Box      `json:"rect"`
	Items []string `json:"items,omitempty"`
}

// Result is the serialized form of a bake.
type Result struct {
	Kind    string       `json:"kind"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Nodes   []ResultNode `json:"nodes"`
	Rows    []ResultRow  `json:"rows,omitempty"`
	Placed  int          `json:"placed,omitempty"`
	Dropped int          `json:"dropped,omitempty"`
}

// FromBaked serializes a bake. Only named nodes are included, in placement
// order.
func FromBaked(b *layout.Baked) *Result {
	root := b.Root()
	res := &Result{Kind: KindTree, Width: root.Size.X, Height: root.Size.Y}
	for i, p := range b.Placements() {
		if !p.Node.IsNamed() {
			continue
		}
		res.Nodes = append(res.Nodes, ResultNode{
			Name:   p.Node.Name(),
			Parent: namedParent(b, i),
			Box:    boxOf(p.Rect()),
			Level:  p.Level,
			Leaf:   p.Node.IsLeaf(),
		})
	}
	return res
}

func namedParent(b *layout.Baked, i int) string {
	for p := b.Placement(i).Parent; p >= 0; p = b.Placement(p).Parent {
		if n := b.Placement(p).Node; n.IsNamed() {
			return n.Name()
		}
	}
	return ""
}

// FromFlow serializes a baked flow including its rows.
func FromFlow(f *layout.BakedFlow) *Result {
	res := FromBaked(f.Baked)
	res.Kind = KindFlow
	res.Placed = f.Placed()
	res.Dropped = f.Dropped()
	for _, row := range f.Rows() {
		rr := ResultRow{Name: row.Name, Used: boxOf(row.Used), Rect: boxOf(row.Rect)}
		for _, it := range row.Items {
			if it.Node.IsNamed() {
				rr.Items = append(rr.Items, it.Node.Name())
			}
		}
		res.Rows = append(res.Rows, rr)
	}
	return res
}

// Get returns the named node.
func (r *Result) Get(name string) (ResultNode, bool) {
	i := slices.IndexFunc(r.Nodes, func(n ResultNode) bool { return n.Name == name })
	if i < 0 {
		return ResultNode{}, false
	}
	return r.Nodes[i], true
}

// Depth returns the deepest level in the result.
func (r *Result) Depth() int {
	depth := 0
	for _, n := range r.Nodes {
		depth = max(depth, n.Level)
	}
	return depth
}

// Baked converts n back to the engine's view of a placed node.
func (n ResultNode) Baked() layout.BakedNode {
	return layout.BakedNode{
		Position: layout.Vec{X: n.X, Y: n.Y},
		Size:     layout.Vec{X: n.W, Y: n.H},
		Level:    n.Level,
	}
}

// DrawOrder returns the nodes sorted for painting: highest ZIndex first, so
// deeper nodes land on top. Placement order is kept within a level.
func (r *Result) DrawOrder() []ResultNode {
	out := slices.Clone(r.Nodes)
	slices.SortStableFunc(out, func(a, b ResultNode) int {
		return cmp.Compare(b.Baked().ZIndex(), a.Baked().ZIndex())
	})
	return out
}

// WriteResult encodes r as indented JSON.
func WriteResult(r *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// ReadResult decodes a JSON result.
func ReadResult(rd io.Reader) (*Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return &r, nil
}
