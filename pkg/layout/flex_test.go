package layout

import (
	"errors"
	"testing"
)

func flexLeaves() []Node {
	return []Node{
		Leaf("a", Pixels(10, 3)),
		Leaf("b", Pixels(12, 10)),
		Leaf("c", Pixels(8, 5)),
	}
}

func TestFlexSize(t *testing.T) {
	tests := []struct {
		name string
		flex Flex
		want Vec
	}{
		{"horizontal", Flex{Orientation: Horizontal}, Vec{30, 10}},
		{"vertical", Flex{Orientation: Vertical}, Vec{12, 18}},
		{"margin and padding", Flex{Orientation: Horizontal, Style: Style{Margin: Vec{1, 2}, Padding: 2}}, Vec{36, 14}},
		{"minimum along", Flex{Orientation: Horizontal, MinAlong: 50}, Vec{50, 10}},
		{"minimum perpendicular", Flex{Orientation: Vertical, MinPerpendicular: 20}, Vec{20, 18}},
		{"minimum below content", Flex{Orientation: Horizontal, MinAlong: 5, MinPerpendicular: 5}, Vec{30, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flex.Size(flexLeaves()...)
			if err != nil {
				t.Fatalf("Size() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexEmpty(t *testing.T) {
	got, err := Flex{Style: Style{Margin: Vec{2, 1}, Padding: 5}}.Size()
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if got != (Vec{4, 2}) {
		t.Errorf("Size() = %v, want (4,2)", got)
	}
}

func TestFlexUnmeasurable(t *testing.T) {
	_, err := Flex{}.Size(Leaf("a", Pixels(1, 1)), Leaf("s", StretchedBoth()))
	if !errors.Is(err, ErrUnmeasurable) {
		t.Errorf("Size() error = %v, want ErrUnmeasurable", err)
	}
}

func TestFlexBake(t *testing.T) {
	b, err := Flex{Name: "box", Orientation: Horizontal, Style: Style{Alignment: BottomLeft}}.Bake(flexLeaves()...)
	if err != nil {
		t.Fatalf("Bake() error: %v", err)
	}
	if got := mustGet(t, b, "box"); got.Size != (Vec{30, 10}) {
		t.Errorf("box size = %v", got.Size)
	}
	if got := mustGet(t, b, "c"); got.Position != (Vec{22, 0}) {
		t.Errorf("c position = %v, want (22,0)", got.Position)
	}
}

func TestRowFits(t *testing.T) {
	g := NewRow[string](Flex{Orientation: Horizontal, Style: Style{Padding: 1}})
	if !g.Fits(Leaf("a", Pixels(10, 1)), 10) {
		t.Error("first item of exact width should fit")
	}
	if err := g.Append(Leaf("a", Pixels(6, 1)), "a"); err != nil {
		t.Fatal(err)
	}
	if !g.Fits(Leaf("b", Pixels(3, 1)), 10) {
		t.Error("6 + 1 + 3 should fit in 10")
	}
	if g.Fits(Leaf("b", Pixels(4, 1)), 10) {
		t.Error("6 + 1 + 4 should not fit in 10")
	}
	if g.Fits(Leaf("s", StretchedBoth()), 10) {
		t.Error("stretched node should never fit")
	}
	if err := g.Append(Leaf("s", StretchedBoth()), "s"); !errors.Is(err, ErrUnmeasurable) {
		t.Errorf("Append(stretched) error = %v", err)
	}
	if err := g.Append(Leaf("b", Pixels(3, 2)), "b"); err != nil {
		t.Fatal(err)
	}
	if g.Used() != (Vec{10, 2}) {
		t.Errorf("Used() = %v, want (10,2)", g.Used())
	}
	g.Truncate(1)
	if g.Len() != 1 || g.Used() != (Vec{6, 1}) || g.Payloads()[0] != "a" {
		t.Errorf("after Truncate(1): len=%d used=%v", g.Len(), g.Used())
	}
}
