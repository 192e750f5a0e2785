package layoutfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layout"
)

// Document kinds.
const (
	KindTree = "tree"
	KindFlow = "flow"
)

// Document is a layout description. Exactly one of Root and Flow is set.
type Document struct {
	Root *NodeSpec `json:"root,omitempty" toml:"root,omitempty" yaml:"root,omitempty"`
	Flow *FlowSpec `json:"flow,omitempty" toml:"flow,omitempty" yaml:"flow,omitempty"`
}

// Margin is a per-axis inset.
type Margin struct {
	X int `json:"x,omitempty" toml:"x,omitempty" yaml:"x,omitempty"`
	Y int `json:"y,omitempty" toml:"y,omitempty" yaml:"y,omitempty"`
}

// IsZero reports whether both insets are zero.
func (m Margin) IsZero() bool { return m.X == 0 && m.Y == 0 }

func (m Margin) vec() layout.Vec { return layout.Vec{X: m.X, Y: m.Y} }

// NodeSpec describes one node of a tree document.
type NodeSpec struct {
	Name        string     `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Width       Dim        `json:"width,omitzero" toml:"width,omitempty" yaml:"width,omitempty"`
	Height      Dim        `json:"height,omitzero" toml:"height,omitempty" yaml:"height,omitempty"`
	Aspect      string     `json:"aspect,omitempty" toml:"aspect,omitempty" yaml:"aspect,omitempty"`
	Orientation string     `json:"orientation,omitempty" toml:"orientation,omitempty" yaml:"orientation,omitempty"`
	Margin      Margin     `json:"margin,omitzero" toml:"margin,omitempty" yaml:"margin,omitempty"`
	Padding     int        `json:"padding,omitempty" toml:"padding,omitempty" yaml:"padding,omitempty"`
	Align       string     `json:"align,omitempty" toml:"align,omitempty" yaml:"align,omitempty"`
	Children    []NodeSpec `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// FlowSpec describes a flow document.
type FlowSpec struct {
	Name               string     `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Width              int        `json:"width" toml:"width" yaml:"width"`
	Height             int        `json:"height" toml:"height" yaml:"height"`
	Orientation        string     `json:"orientation,omitempty" toml:"orientation,omitempty" yaml:"orientation,omitempty"`
	Margin             Margin     `json:"margin,omitzero" toml:"margin,omitempty" yaml:"margin,omitempty"`
	RowPadding         int        `json:"row_padding,omitempty" toml:"row_padding,omitempty" yaml:"row_padding,omitempty"`
	ItemPadding        int        `json:"item_padding,omitempty" toml:"item_padding,omitempty" yaml:"item_padding,omitempty"`
	Align              string     `json:"align,omitempty" toml:"align,omitempty" yaml:"align,omitempty"`
	Overflow           string     `json:"overflow,omitempty" toml:"overflow,omitempty" yaml:"overflow,omitempty"`
	DropOverflowingRow bool       `json:"drop_overflowing_row,omitempty" toml:"drop_overflowing_row,omitempty" yaml:"drop_overflowing_row,omitempty"`
	MinRowSize         int        `json:"min_row_size,omitempty" toml:"min_row_size,omitempty" yaml:"min_row_size,omitempty"`
	Items              []ItemSpec `json:"items,omitempty" toml:"items,omitempty" yaml:"items,omitempty"`
}

// ItemSpec is a flow item or, when Break is set, a line break.
type ItemSpec struct {
	Name   string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Width  int    `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Break  bool   `json:"break,omitempty" toml:"break,omitempty" yaml:"break,omitempty"`
}

// Kind returns KindTree or KindFlow, or "" for an empty document.
func (d Document) Kind() string {
	switch {
	case d.Root != nil:
		return KindTree
	case d.Flow != nil:
		return KindFlow
	}
	return ""
}

// Name returns the root or flow name.
func (d Document) Name() string {
	switch {
	case d.Root != nil:
		return d.Root.Name
	case d.Flow != nil:
		return d.Flow.Name
	}
	return ""
}

// Validate checks the document shape. It does not bake.
func (d Document) Validate() error {
	if (d.Root == nil) == (d.Flow == nil) {
		return errors.New(errors.ErrCodeInvalidDocument, "document must have exactly one of root or flow")
	}
	if d.Root != nil {
		_, err := d.Root.Node()
		return err
	}
	_, _, err := d.Flow.entries()
	return err
}

// WithSize returns a copy of d whose root or flow is w×h.
func (d Document) WithSize(w, h int) Document {
	if d.Root != nil {
		root := *d.Root
		root.Width, root.Height, root.Aspect = Fixed(w), Fixed(h), ""
		d.Root = &root
	}
	if d.Flow != nil {
		flow := *d.Flow
		flow.Width, flow.Height = w, h
		d.Flow = &flow
	}
	return d
}

// Size returns the declared root or flow size, if both dimensions are fixed.
func (d Document) Size() (w, h int, ok bool) {
	switch {
	case d.Root != nil:
		if d.Root.Width.IsStretch() || d.Root.Height.IsStretch() || d.Root.Aspect != "" {
			return 0, 0, false
		}
		return d.Root.Width.Pixels(), d.Root.Height.Pixels(), true
	case d.Flow != nil:
		return d.Flow.Width, d.Flow.Height, true
	}
	return 0, 0, false
}

// Tree returns the node tree of a tree document.
func (d Document) Tree() (layout.Node, error) {
	if d.Root == nil {
		return layout.Node{}, errors.New(errors.ErrCodeInvalidDocument, "document has no root")
	}
	return d.Root.Node()
}

// Bake bakes the document. Engine errors are returned as coded errors.
func (d Document) Bake() (*Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.Root != nil {
		root, err := d.Root.Node()
		if err != nil {
			return nil, err
		}
		b, err := layout.Bake(root)
		if err != nil {
			return nil, errors.FromLayout(err)
		}
		return FromBaked(b), nil
	}

	style, entries, err := d.Flow.entries()
	if err != nil {
		return nil, err
	}
	f, err := layout.NewFlow(d.Flow.Name, layout.Pixels(d.Flow.Width, d.Flow.Height), style, entries...)
	if err != nil {
		return nil, errors.FromLayout(err)
	}
	return FromFlow(f), nil
}

// Node converts s and its descendants into a layout tree.
func (s NodeSpec) Node() (layout.Node, error) {
	return s.node(s.Name)
}

func (s NodeSpec) node(path string) (layout.Node, error) {
	if path == "" {
		path = "<root>"
	}
	if err := errors.ValidateNodeName(s.Name); err != nil {
		return layout.Node{}, err
	}
	size, err := s.size()
	if err != nil {
		return layout.Node{}, invalid(path, err)
	}
	if len(s.Children) == 0 && s.Orientation == "" && s.Align == "" {
		return layout.Leaf(s.Name, size), nil
	}

	o, err := layout.ParseOrientation(s.Orientation)
	if err != nil {
		return layout.Node{}, invalid(path, err)
	}
	align, err := layout.ParseAlignment(s.Align)
	if err != nil {
		return layout.Node{}, invalid(path, err)
	}
	kids := make([]layout.Node, len(s.Children))
	for i, c := range s.Children {
		kid, err := c.node(childPath(path, c.Name, i))
		if err != nil {
			return layout.Node{}, err
		}
		kids[i] = kid
	}
	style := layout.Style{Margin: s.Margin.vec(), Padding: s.Padding, Alignment: align}
	return layout.Group(s.Name, size, o, style, kids...), nil
}

func childPath(parent, name string, i int) string {
	if name != "" {
		return parent + "/" + name
	}
	return fmt.Sprintf("%s/[%d]", parent, i)
}

func invalid(path string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %s", path)
}

func (s NodeSpec) size() (layout.Size, error) {
	if s.Aspect != "" {
		w, h, err := ParseAspect(s.Aspect)
		if err != nil {
			return layout.Size{}, err
		}
		return layout.FixedAspectRatio(w, h), nil
	}
	switch {
	case s.Width.IsStretch() && s.Height.IsStretch():
		return layout.StretchedBoth(), nil
	case s.Width.IsStretch():
		return layout.StretchedHorizontally(s.Height.Pixels()), nil
	case s.Height.IsStretch():
		return layout.StretchedVertically(s.Width.Pixels()), nil
	}
	return layout.Pixels(s.Width.Pixels(), s.Height.Pixels()), nil
}

// ParseAspect parses a ratio written "W:H", "W/H" or "WxH".
func ParseAspect(s string) (w, h int, err error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '/' || r == 'x' })
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	if w, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	if h, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q", s)
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("negative aspect ratio %q", s)
	}
	return w, h, nil
}

func (f FlowSpec) entries() (layout.FlowStyle, []layout.FlowEntry, error) {
	path := f.Name
	if path == "" {
		path = "flow"
	}
	o, err := layout.ParseOrientation(f.Orientation)
	if err != nil {
		return layout.FlowStyle{}, nil, invalid(path, err)
	}
	align, err := layout.ParseAlignment(f.Align)
	if err != nil {
		return layout.FlowStyle{}, nil, invalid(path, err)
	}
	overflow, err := layout.ParseOverflow(f.Overflow)
	if err != nil {
		return layout.FlowStyle{}, nil, invalid(path, err)
	}
	style := layout.FlowStyle{
		Orientation:        o,
		Margin:             f.Margin.vec(),
		RowPadding:         f.RowPadding,
		ItemPadding:        f.ItemPadding,
		Alignment:          align,
		Overflow:           overflow,
		DropOverflowingRow: f.DropOverflowingRow,
		MinRowSize:         f.MinRowSize,
	}

	entries := make([]layout.FlowEntry, 0, len(f.Items))
	for i, it := range f.Items {
		if it.Break {
			entries = append(entries, layout.LineBreak())
			continue
		}
		if err := errors.ValidateNodeName(it.Name); err != nil {
			return layout.FlowStyle{}, nil, err
		}
		if it.Width < 0 || it.Height < 0 {
			return layout.FlowStyle{}, nil, errors.New(errors.ErrCodeInvalidDocument,
				"item %s: negative size %dx%d", childPath(path, it.Name, i), it.Width, it.Height)
		}
		entries = append(entries, layout.Item(layout.Leaf(it.Name, layout.Pixels(it.Width, it.Height))))
	}
	return style, entries, nil
}

// FromNode converts a layout tree into a NodeSpec.
func FromNode(n layout.Node) NodeSpec {
	s := NodeSpec{Name: n.Name()}
	size := n.Size()
	if size.IsFixedAspectRatio() {
		a := size.AspectRatio()
		s.Aspect = fmt.Sprintf("%d:%d", a.W, a.H)
	} else {
		s.Width = dimOf(size.X)
		s.Height = dimOf(size.Y)
	}
	if n.IsLeaf() {
		return s
	}
	st := n.Style()
	s.Orientation = n.Orientation().String()
	s.Margin = Margin{X: st.Margin.X, Y: st.Margin.Y}
	s.Padding = st.Padding
	s.Align = st.Alignment.String()
	for _, c := range n.Children() {
		s.Children = append(s.Children, FromNode(c))
	}
	return s
}

// FromTree wraps a layout tree into a document.
func FromTree(n layout.Node) Document {
	s := FromNode(n)
	return Document{Root: &s}
}

func dimOf(e layout.Edge) Dim {
	if e.IsConstant() {
		return Fixed(e.Value())
	}
	return Stretch()
}
