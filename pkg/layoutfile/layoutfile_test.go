package layoutfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layout"
)

const screenJSON = `{
  "root": {
    "name": "root", "width": 20, "height": 5,
    "margin": {"x": 1, "y": 1}, "padding": 1,
    "children": [
      {"name": "a"},
      {"name": "b", "width": "stretch"},
      {"name": "c", "width": "*", "height": null}
    ]
  }
}`

const screenTOML = `
[root]
name = "root"
width = 20
height = 5
padding = 1
margin = { x = 1, y = 1 }

[[root.children]]
name = "a"

[[root.children]]
name = "b"
width = "stretch"

[[root.children]]
name = "c"
`

const screenYAML = `
root:
  name: root
  width: 20
  height: 5
  padding: 1
  margin: {x: 1, y: 1}
  children:
    - name: a
    - name: b
      width: stretch
    - name: c
      height: ~
`

func TestReadFormats(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, screenJSON},
		{FormatTOML, screenTOML},
		{FormatYAML, screenYAML},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if doc.Kind() != KindTree {
				t.Errorf("Kind() = %q", doc.Kind())
			}
			res, err := doc.Bake()
			if err != nil {
				t.Fatalf("Bake() error: %v", err)
			}
			b, ok := res.Get("b")
			if !ok {
				t.Fatal("b missing from result")
			}
			if b.Box != (Box{X: 7, Y: 1, W: 5, H: 3}) || b.Parent != "root" || b.Level != 1 {
				t.Errorf("b = %+v", b)
			}
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	doc, err := Read(strings.NewReader(screenJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(doc, f)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			back, err := Parse(data, f)
			if err != nil {
				t.Fatalf("Parse() error: %v\n%s", err, data)
			}
			if !reflect.DeepEqual(doc, back) {
				t.Errorf("round trip mismatch:\n%s", data)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"unknown field", FormatJSON, `{"root": {"name": "r", "colour": "red"}}`, errors.ErrCodeInvalidDocument},
		{"unknown toml field", FormatTOML, "[root]\nname = \"r\"\ncolour = \"red\"\n", errors.ErrCodeInvalidDocument},
		{"empty document", FormatJSON, `{}`, errors.ErrCodeInvalidDocument},
		{"both kinds", FormatJSON, `{"root": {"name": "r"}, "flow": {"width": 1, "height": 1}}`, errors.ErrCodeInvalidDocument},
		{"bad dimension", FormatJSON, `{"root": {"name": "r", "width": "wide"}}`, errors.ErrCodeInvalidDocument},
		{"negative dimension", FormatYAML, "root:\n  name: r\n  width: -3\n", errors.ErrCodeInvalidDocument},
		{"bad orientation", FormatJSON, `{"root": {"name": "r", "orientation": "diagonal"}}`, errors.ErrCodeInvalidDocument},
		{"bad aspect", FormatJSON, `{"root": {"name": "r", "aspect": "wide"}}`, errors.ErrCodeInvalidDocument},
		{"bad name", FormatJSON, `{"root": {"name": " r"}}`, errors.ErrCodeInvalidName},
		{"bad overflow", FormatJSON, `{"flow": {"width": 1, "height": 1, "overflow": "spill"}}`, errors.ErrCodeInvalidDocument},
		{"unknown format", Format("xml"), `<root/>`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("Read() succeeded, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestBakeEngineErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"stretched root", `{"root": {"name": "r", "children": [{"name": "a"}]}}`, errors.ErrCodeImpossibleLayout},
		{"duplicate", `{"root": {"name": "r", "width": 4, "height": 4, "children": [{"name": "a"}, {"name": "a"}]}}`, errors.ErrCodeDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input), FormatJSON)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := doc.Bake(); !errors.Is(err, tt.code) {
				t.Errorf("Bake() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestParseDim(t *testing.T) {
	tests := []struct {
		in      string
		want    Dim
		wantErr bool
	}{
		{"", Stretch(), false},
		{"stretch", Stretch(), false},
		{"*", Stretch(), false},
		{"12", Fixed(12), false},
		{"12px", Fixed(12), false},
		{"0", Fixed(0), false},
		{"-1", Dim{}, true},
		{"big", Dim{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDim(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDim(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDim(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAspect(t *testing.T) {
	for _, in := range []string{"16:9", "16/9", "16x9", " 16 : 9 "} {
		w, h, err := ParseAspect(in)
		if err != nil || w != 16 || h != 9 {
			t.Errorf("ParseAspect(%q) = %d, %d, %v", in, w, h, err)
		}
	}
	for _, in := range []string{"16", "a:b", "1:2:3", "-1:2"} {
		if _, _, err := ParseAspect(in); err == nil {
			t.Errorf("ParseAspect(%q) should fail", in)
		}
	}
}

func TestFromNodeRoundTrip(t *testing.T) {
	root := layout.Group("root", layout.Pixels(40, 30), layout.Vertical,
		layout.Style{Margin: layout.Vec{X: 2}, Padding: 1, Alignment: layout.BottomCenter},
		layout.Leaf("header", layout.StretchedHorizontally(3)),
		layout.Spacer(layout.Pixels(1, 2)),
		layout.Group("body", layout.StretchedBoth(), layout.Horizontal, layout.Style{},
			layout.Leaf("side", layout.StretchedVertically(8)),
			layout.Leaf("logo", layout.FixedAspectRatio(16, 9)),
		),
	)
	doc := FromTree(root)
	tree, err := doc.Tree()
	if err != nil {
		t.Fatalf("Tree() error: %v", err)
	}

	want, err := layout.Bake(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := layout.Bake(tree)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(FromBaked(want), FromBaked(got)) {
		t.Errorf("bake of converted tree differs:\nwant %+v\ngot  %+v", FromBaked(want), FromBaked(got))
	}
	if doc.Root.Children[2].Children[1].Aspect != "16:9" {
		t.Errorf("aspect = %q", doc.Root.Children[2].Children[1].Aspect)
	}
}

func TestFlowDocument(t *testing.T) {
	input := `
flow:
  name: words
  width: 10
  height: 2
  item_padding: 1
  overflow: contain
  items:
    - {name: w0, width: 6, height: 1}
    - {name: w1, width: 6, height: 1}
    - {break: true}
    - {name: w2, width: 6, height: 1}
`
	doc, err := Parse([]byte(input), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	res, err := doc.Bake()
	if err != nil {
		t.Fatalf("Bake() error: %v", err)
	}
	if res.Kind != KindFlow || res.Placed != 2 || res.Dropped != 1 {
		t.Errorf("kind=%s placed=%d dropped=%d", res.Kind, res.Placed, res.Dropped)
	}
	// The line break opens an empty third row; w2 does not fit in it.
	if len(res.Rows) != 3 || !reflect.DeepEqual(res.Rows[1].Items, []string{"w1"}) || len(res.Rows[2].Items) != 0 {
		t.Errorf("rows = %+v", res.Rows)
	}
	if w1, _ := res.Get("w1"); w1.Parent != "words/row1" {
		t.Errorf("w1 parent = %q", w1.Parent)
	}
}

func TestWithSize(t *testing.T) {
	doc, err := Parse([]byte(screenJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	big := doc.WithSize(50, 9)
	if w, h, ok := big.Size(); !ok || w != 50 || h != 9 {
		t.Errorf("Size() = %d, %d, %v", w, h, ok)
	}
	if w, _, _ := doc.Size(); w != 20 {
		t.Errorf("WithSize() modified the original: width %d", w)
	}
	res, err := big.Bake()
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := res.Get("c"); c.Box != (Box{X: 33, Y: 1, W: 15, H: 7}) {
		t.Errorf("c = %+v", c.Box)
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	doc, err := Parse([]byte(screenJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"screen.json", "screen.toml", "screen.yml"} {
		path := filepath.Join(dir, name)
		if err := Export(doc, path); err != nil {
			t.Fatalf("Export(%s) error: %v", name, err)
		}
		back, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s) error: %v", name, err)
		}
		if !reflect.DeepEqual(doc, back) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "screen.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(filepath.Join(dir, "screen.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.txt) error = %v", err)
	}
}

func TestResultJSON(t *testing.T) {
	doc, err := Parse([]byte(screenJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	res, err := doc.Bake()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteResult(res, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"name": "b"`) {
		t.Errorf("encoded result lacks node b:\n%s", buf.String())
	}
	back, err := ReadResult(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res, back) {
		t.Errorf("result round trip mismatch")
	}
	if res.Depth() != 1 {
		t.Errorf("Depth() = %d", res.Depth())
	}
	if order := res.DrawOrder(); order[0].Name != "root" {
		t.Errorf("DrawOrder()[0] = %s", order[0].Name)
	}
}

func TestDrawOrderByZIndex(t *testing.T) {
	res := &Result{Nodes: []ResultNode{
		{Name: "leaf", Level: 2},
		{Name: "root", Level: 0},
		{Name: "a", Level: 1},
		{Name: "b", Level: 1},
	}}
	var got []string
	for _, n := range res.DrawOrder() {
		got = append(got, n.Name)
	}
	if want := []string{"root", "a", "b", "leaf"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DrawOrder() = %v, want %v", got, want)
	}
	if res.Nodes[0].Name != "leaf" {
		t.Error("DrawOrder() reordered the result in place")
	}

	n := ResultNode{Name: "x", Box: Box{X: 1, Y: 2, W: 3, H: 4}, Level: 2}
	b := n.Baked()
	if b.ZIndex() != -2 || b.Rect() != n.Rect() {
		t.Errorf("Baked() = %+v (z %d), want rect %v at z -2", b, b.ZIndex(), n.Rect())
	}
}
