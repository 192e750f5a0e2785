package cli

import (
	"testing"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layout"
)

func TestWrapOptions(t *testing.T) {
	tests := []struct {
		name     string
		opts     wrapOpts
		align    layout.Alignment
		overflow layout.Overflow
		code     errors.Code
	}{
		{"defaults", wrapOpts{width: 80, align: "left", gap: 1}, layout.TopLeft, layout.OverflowUnrestricted, ""},
		{"center keeps the top row", wrapOpts{width: 20, align: "center"}, layout.TopCenter, layout.OverflowUnrestricted, ""},
		{"bottom-right drops the vertical anchor", wrapOpts{width: 20, align: "bottom-right", overflow: "contain"}, layout.TopRight, layout.OverflowContain, ""},
		{"last row", wrapOpts{width: 20, height: 3, overflow: "last_row"}, layout.TopLeft, layout.OverflowLastRow, ""},
		{"zero width", wrapOpts{width: 0}, 0, 0, errors.ErrCodeInvalidDimensions},
		{"negative gap", wrapOpts{width: 10, gap: -1}, 0, 0, errors.ErrCodeInvalidDimensions},
		{"bad align", wrapOpts{width: 10, align: "sideways"}, 0, 0, errors.ErrCodeInvalidInput},
		{"bad overflow", wrapOpts{width: 10, overflow: "spill"}, 0, 0, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.textflowOptions()
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("textflowOptions() error: %v", err)
			}
			if got.Align != tt.align || got.Overflow != tt.overflow {
				t.Errorf("align = %v overflow = %v, want %v %v", got.Align, got.Overflow, tt.align, tt.overflow)
			}
			if got.Width != tt.opts.width || got.Height != tt.opts.height || got.Gap != tt.opts.gap {
				t.Errorf("dimensions not carried over: %+v", got)
			}
		})
	}
}

func TestReadTextMissing(t *testing.T) {
	_, err := readText("/does/not/exist.txt")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
