package layout

import "testing"

func TestAspectRatioDescribe(t *testing.T) {
	tests := []struct {
		w, h int
		want Descriptor
	}{
		{16, 9, RatioWide},
		{9, 16, RatioTall},
		{4, 4, RatioSquare},
		{0, 0, RatioSquare},
		{-3, -5, RatioSquare},
		{-3, 2, RatioTall},
	}
	for _, tt := range tests {
		if got := NewAspectRatio(tt.w, tt.h).Describe(); got != tt.want {
			t.Errorf("NewAspectRatio(%d, %d).Describe() = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestIsStretchedAlong(t *testing.T) {
	tests := []struct {
		name      string
		inner     AspectRatio
		outer     AspectRatio
		o         Orientation
		wantAlong bool
		wantPerp  bool
	}{
		{"equal ratios drive both", AspectRatio{16, 9}, AspectRatio{32, 18}, Horizontal, true, true},
		{"inner wider drives horizontal", AspectRatio{16, 9}, AspectRatio{50, 100}, Horizontal, true, false},
		{"inner wider in vertical group", AspectRatio{16, 9}, AspectRatio{50, 100}, Vertical, false, true},
		{"inner taller drives vertical", AspectRatio{16, 9}, AspectRatio{100, 40}, Horizontal, false, true},
		{"inner taller in vertical group", AspectRatio{16, 9}, AspectRatio{100, 40}, Vertical, true, false},
		{"degenerate inner", AspectRatio{0, 0}, AspectRatio{10, 5}, Horizontal, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStretchedAlong(tt.inner, tt.outer, tt.o); got != tt.wantAlong {
				t.Errorf("IsStretchedAlong() = %v, want %v", got, tt.wantAlong)
			}
			if got := IsStretchedPerpendicular(tt.inner, tt.outer, tt.o); got != tt.wantPerp {
				t.Errorf("IsStretchedPerpendicular() = %v, want %v", got, tt.wantPerp)
			}
		})
	}
}

func TestAspectRatioDerive(t *testing.T) {
	a := AspectRatio{W: 16, H: 9}
	if got := a.Derive(50, Horizontal); got != 28 {
		t.Errorf("Derive(50, Horizontal) = %d, want 28", got)
	}
	if got := a.Derive(40, Vertical); got != 71 {
		t.Errorf("Derive(40, Vertical) = %d, want 71", got)
	}
	if got := (AspectRatio{W: 0, H: 5}).Derive(10, Horizontal); got != 0 {
		t.Errorf("Derive with zero width = %d, want 0", got)
	}
}

func TestAspectRatioFit(t *testing.T) {
	tests := []struct {
		ratio AspectRatio
		bound Vec
		want  Vec
	}{
		{AspectRatio{16, 9}, Vec{100, 40}, Vec{71, 40}},
		{AspectRatio{16, 9}, Vec{50, 100}, Vec{50, 28}},
		{AspectRatio{1, 1}, Vec{8, 8}, Vec{8, 8}},
	}
	for _, tt := range tests {
		if got := tt.ratio.Fit(tt.bound); got != tt.want {
			t.Errorf("%v.Fit(%v) = %v, want %v", tt.ratio, tt.bound, got, tt.want)
		}
	}
}
