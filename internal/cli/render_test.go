package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/boxbake/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", []string{pipeline.FormatSVG}, false},
		{"svg", []string{"svg"}, false},
		{"SVG, txt ,json", []string{"svg", "txt", "json"}, false},
		{"svg,,dot", []string{"svg", "dot"}, false},
		{"svg,gif", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "doc.json", "doc"},
		{"", "dir/page.yaml", "dir/page"},
		{"", "-", "layout"},
		{"-", "doc.toml", "doc"},
		{"out.svg", "doc.json", "out"},
		{"out.txt", "doc.json", "out"},
		{"out", "doc.json", "out"},
		{"out.v2", "doc.json", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format explicit output",
			output:  "picture.png",
			input:   "doc.json",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "picture.png"},
		},
		{
			name:    "single format from input",
			input:   "doc.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "doc.baked.json"},
		},
		{
			name:    "several formats",
			output:  "out/page.svg",
			input:   "doc.yaml",
			formats: []string{"svg", "txt", "nodelink"},
			want: map[string]string{
				"svg":      "out/page.svg",
				"txt":      "out/page.txt",
				"nodelink": "out/page.nodelink.svg",
			},
		},
		{
			name:    "stdin input",
			input:   "-",
			formats: []string{"svg", "dot"},
			want:    map[string]string{"svg": "layout.svg", "dot": "layout.dot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.input, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"2", 2, 2, false},
		{"4x2", 4, 2, false},
		{"0", 0, 0, true},
		{"ax2", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseCell(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCell(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (w != tt.w || h != tt.h) {
			t.Errorf("parseCell(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}
