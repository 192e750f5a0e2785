package layout

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"
)

func mustBake(t *testing.T, root Node) *Baked {
	t.Helper()
	b, err := Bake(root)
	if err != nil {
		t.Fatalf("Bake() error: %v", err)
	}
	return b
}

func mustGet(t *testing.T, b *Baked, name string) BakedNode {
	t.Helper()
	n, err := b.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", name, err)
	}
	return n
}

func threeStretched() Node {
	return Group("root", Pixels(20, 5), Horizontal,
		Style{Margin: Vec{X: 1, Y: 1}, Padding: 1},
		Leaf("a", StretchedBoth()),
		Leaf("b", StretchedBoth()),
		Leaf("c", StretchedBoth()),
	)
}

func TestBakeStretchedRow(t *testing.T) {
	b := mustBake(t, threeStretched())

	want := map[string]BakedNode{
		"root": {Position: Vec{0, 0}, Size: Vec{20, 5}, Level: 0},
		"a":    {Position: Vec{1, 1}, Size: Vec{5, 3}, Level: 1},
		"b":    {Position: Vec{7, 1}, Size: Vec{5, 3}, Level: 1},
		"c":    {Position: Vec{13, 1}, Size: Vec{5, 3}, Level: 1},
	}
	for name, w := range want {
		if got := mustGet(t, b, name); got != w {
			t.Errorf("Get(%q) = %+v, want %+v", name, got, w)
		}
	}
	if got := b.Names(); !slices.Equal(got, []string{"root", "a", "b", "c"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestBakeStretchDistribution(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for n := 1; n <= 7; n++ {
			kids := make([]Node, n)
			for i := range kids {
				kids[i] = Leaf(fmt.Sprintf("c%d", i), StretchedBoth())
			}
			b := mustBake(t, Group("root", Pixels(total, 1), Horizontal, Style{}, kids...))

			sum := 0
			for i := range kids {
				got := mustGet(t, b, fmt.Sprintf("c%d", i))
				if got.Size.X > (total+n-1)/n {
					t.Errorf("total=%d n=%d: c%d width %d exceeds ceiling share", total, n, i, got.Size.X)
				}
				sum += got.Size.X
			}
			if want := total - total%n; sum != want {
				t.Errorf("total=%d n=%d: sum of widths = %d, want %d", total, n, sum, want)
			}
		}
	}
}

func TestBakeMixedEdges(t *testing.T) {
	tests := []struct {
		name string
		root Node
		want map[string]BakedNode
	}{
		{
			name: "constant and stretched siblings",
			root: Group("root", Pixels(20, 4), Horizontal, Style{},
				Leaf("fixed", Pixels(3, 4)),
				Leaf("s1", StretchedBoth()),
				Leaf("s2", StretchedBoth()),
			),
			want: map[string]BakedNode{
				"fixed": {Position: Vec{0, 0}, Size: Vec{3, 4}, Level: 1},
				"s1":    {Position: Vec{3, 0}, Size: Vec{8, 4}, Level: 1},
				"s2":    {Position: Vec{11, 0}, Size: Vec{8, 4}, Level: 1},
			},
		},
		{
			name: "negative remaining clamps to zero",
			root: Group("root", Pixels(10, 2), Horizontal, Style{},
				Leaf("a", Pixels(8, 2)),
				Leaf("b", Pixels(8, 2)),
				Leaf("s", StretchedBoth()),
			),
			want: map[string]BakedNode{
				"b": {Position: Vec{8, 0}, Size: Vec{8, 2}, Level: 1},
				"s": {Position: Vec{16, 0}, Size: Vec{0, 2}, Level: 1},
			},
		},
		{
			name: "spacer consumes space",
			root: Group("root", Pixels(10, 2), Horizontal, Style{},
				Leaf("a", Pixels(2, 2)),
				Spacer(Pixels(3, 2)),
				Leaf("b", Pixels(2, 2)),
			),
			want: map[string]BakedNode{
				"a": {Position: Vec{0, 0}, Size: Vec{2, 2}, Level: 1},
				"b": {Position: Vec{5, 0}, Size: Vec{2, 2}, Level: 1},
			},
		},
		{
			name: "nested groups",
			root: Group("root", Pixels(10, 10), Vertical, Style{},
				Group("row", StretchedHorizontally(4), Horizontal, Style{},
					Leaf("x", StretchedBoth()),
					Leaf("y", Pixels(2, 2)),
				),
				Leaf("footer", StretchedBoth()),
			),
			want: map[string]BakedNode{
				"row":    {Position: Vec{0, 0}, Size: Vec{10, 4}, Level: 1},
				"x":      {Position: Vec{0, 0}, Size: Vec{8, 4}, Level: 2},
				"y":      {Position: Vec{8, 0}, Size: Vec{2, 2}, Level: 2},
				"footer": {Position: Vec{0, 4}, Size: Vec{10, 6}, Level: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBake(t, tt.root)
			for name, w := range tt.want {
				if got := mustGet(t, b, name); got != w {
					t.Errorf("Get(%q) = %+v, want %+v", name, got, w)
				}
			}
		})
	}
}

func TestBakeSpacerNotRecorded(t *testing.T) {
	b := mustBake(t, Group("root", Pixels(10, 2), Horizontal, Style{},
		Leaf("a", Pixels(2, 2)),
		Spacer(Pixels(3, 2)),
		Leaf("b", Pixels(2, 2)),
	))
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if got := len(b.Placements()); got != 4 {
		t.Errorf("len(Placements()) = %d, want 4", got)
	}
	if got := b.ChildIndices(0); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("ChildIndices(0) = %v", got)
	}
}

func TestBakeAlignment(t *testing.T) {
	root := Group("root", Pixels(30, 20), Horizontal,
		Style{Margin: Vec{X: 2, Y: 2}, Padding: 2},
		Leaf("first", Pixels(5, 4)),
		Leaf("second", Pixels(6, 8)),
	)
	// used block is 13×8 inside a 26×16 content area.
	want := map[Alignment]Vec{
		TopLeft:      {2, 2},
		TopCenter:    {8, 2},
		TopRight:     {15, 2},
		CenterLeft:   {2, 6},
		Center:       {8, 6},
		CenterRight:  {15, 6},
		BottomLeft:   {2, 10},
		BottomCenter: {8, 10},
		BottomRight:  {15, 10},
	}
	for _, a := range Alignments {
		t.Run(a.String(), func(t *testing.T) {
			b := mustBake(t, root.Realigned(a))
			first := mustGet(t, b, "first")
			second := mustGet(t, b, "second")
			if first.Position != want[a] {
				t.Errorf("first at %v, want %v", first.Position, want[a])
			}
			if second.Position.X != first.Position.X+5+2 {
				t.Errorf("second.X = %d, want %d", second.Position.X, first.Position.X+7)
			}
			if a.Horizontal() == AnchorEnd && second.Rect().Right() != 28 {
				t.Errorf("right edge = %d, want 28", second.Rect().Right())
			}
			if a.Vertical() == AnchorEnd && second.Rect().Bottom() != 18 {
				t.Errorf("bottom edge = %d, want 18", second.Rect().Bottom())
			}
		})
	}
}

func TestBakeFixedAspectRatio(t *testing.T) {
	tests := []struct {
		name     string
		root     Node
		want     Vec
		wantPos  Vec
		wantDesc Descriptor
	}{
		{
			name:    "taller than space drives vertical",
			root:    Group("root", Pixels(100, 40), Horizontal, Style{}, Leaf("img", FixedAspectRatio(16, 9))),
			want:    Vec{71, 40},
			wantPos: Vec{0, 0},
		},
		{
			name:    "wider than space drives horizontal",
			root:    Group("root", Pixels(50, 100), Horizontal, Style{}, Leaf("img", FixedAspectRatio(16, 9))),
			want:    Vec{50, 28},
			wantPos: Vec{0, 0},
		},
		{
			name:    "exact fit",
			root:    Group("root", Pixels(32, 18), Horizontal, Style{}, Leaf("img", FixedAspectRatio(16, 9))),
			want:    Vec{32, 18},
			wantPos: Vec{0, 0},
		},
		{
			name: "vertical group with sibling",
			root: Group("root", Pixels(40, 60), Vertical, Style{},
				Leaf("top", Pixels(40, 10)),
				Leaf("img", FixedAspectRatio(1, 1)),
			),
			want:    Vec{40, 40},
			wantPos: Vec{0, 10},
		},
		{
			name:    "degenerate ratio fills both axes",
			root:    Group("root", Pixels(12, 7), Horizontal, Style{}, Leaf("img", FixedAspectRatio(0, 0))),
			want:    Vec{12, 7},
			wantPos: Vec{0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := mustGet(t, mustBake(t, tt.root), "img")
			if img.Size != tt.want {
				t.Errorf("img size = %v, want %v", img.Size, tt.want)
			}
			if img.Position != tt.wantPos {
				t.Errorf("img position = %v, want %v", img.Position, tt.wantPos)
			}
		})
	}
}

func TestBakeAspectInvariant(t *testing.T) {
	ratios := []AspectRatio{{16, 9}, {9, 16}, {1, 1}, {4, 3}, {21, 9}}
	for _, r := range ratios {
		for w := 1; w <= 60; w += 7 {
			for h := 1; h <= 60; h += 5 {
				root := Group("root", Pixels(w, h), Horizontal, Style{}, Leaf("img", FixedAspectRatio(r.W, r.H)))
				img := mustGet(t, mustBake(t, root), "img")
				if img.Size.X > w || img.Size.Y > h {
					t.Fatalf("%v in %dx%d: %v exceeds space", r, w, h, img.Size)
				}
				if img.Size.X != w && img.Size.Y != h {
					t.Errorf("%v in %dx%d: %v fills neither axis", r, w, h, img.Size)
				}
			}
		}
	}
}

func TestBakeIdempotent(t *testing.T) {
	root := threeStretched()
	b1 := mustBake(t, root)
	b2 := mustBake(t, root)
	if !reflect.DeepEqual(b1.Placements(), b2.Placements()) {
		t.Error("baking the same tree twice gave different results")
	}
}

func TestBakedResized(t *testing.T) {
	b := mustBake(t, threeStretched())
	r, err := b.Resized(Pixels(50, 9))
	if err != nil {
		t.Fatalf("Resized() error: %v", err)
	}
	if !slices.Equal(b.Names(), r.Names()) {
		t.Errorf("Resized() names = %v, want %v", r.Names(), b.Names())
	}
	// 50 - 2 - 2 = 46, floor share 15.
	if got := mustGet(t, r, "c"); got.Size != (Vec{15, 7}) || got.Position != (Vec{33, 1}) {
		t.Errorf("resized c = %+v", got)
	}
	if got := mustGet(t, b, "c"); got.Size != (Vec{5, 3}) {
		t.Errorf("original result changed after Resized(): %+v", got)
	}
}

func TestBakeErrors(t *testing.T) {
	tests := []struct {
		name string
		root Node
		want error
	}{
		{"stretched root", Group("root", StretchedBoth(), Horizontal, Style{}, Leaf("a", Pixels(1, 1))), ErrImpossibleLayout},
		{"half stretched root", Leaf("root", StretchedVertically(3)), ErrImpossibleLayout},
		{"aspect root", Leaf("root", FixedAspectRatio(4, 3)), ErrImpossibleLayout},
		{"duplicate names", Group("root", Pixels(4, 4), Horizontal, Style{},
			Leaf("a", Pixels(1, 1)),
			Group("g", Pixels(2, 2), Vertical, Style{}, Leaf("a", Pixels(1, 1))),
		), ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Bake(tt.root); !errors.Is(err, tt.want) {
				t.Errorf("Bake() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBakedGetMissing(t *testing.T) {
	b := mustBake(t, threeStretched())
	if _, err := b.Get("nope"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNodeNotFound", err)
	}
	if b.Has("nope") {
		t.Error("Has(missing) = true")
	}
	if _, ok := b.Lookup("a"); !ok {
		t.Error("Lookup(a) = false")
	}
}

func TestBakedAllOrder(t *testing.T) {
	b := mustBake(t, threeStretched())
	var names []string
	for name, n := range b.All() {
		names = append(names, name)
		if n.ZIndex() != -n.Level {
			t.Errorf("%s: ZIndex() = %d", name, n.ZIndex())
		}
	}
	if !slices.Equal(names, []string{"root", "a", "b", "c"}) {
		t.Errorf("All() order = %v", names)
	}
}

func TestBakeLeafRoot(t *testing.T) {
	b := mustBake(t, Leaf("only", Pixels(3, 2)))
	if got := b.Root(); got.Size != (Vec{3, 2}) || got.Level != 0 {
		t.Errorf("Root() = %+v", got)
	}
}

func TestNodeRestyled(t *testing.T) {
	root := threeStretched()
	b := mustBake(t, root.Restyled(Style{}))
	// No margin or padding: 20 / 3 = 6 each, remainder dropped.
	if got := mustGet(t, b, "c"); got.Size != (Vec{6, 5}) || got.Position != (Vec{12, 0}) {
		t.Errorf("restyled c = %+v", got)
	}
	if root.Style().Padding != 1 || root.Style().Margin != (Vec{1, 1}) {
		t.Errorf("Restyled() changed the original: %+v", root.Style())
	}
}
