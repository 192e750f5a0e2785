package pipeline

import (
	"fmt"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layout"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/render/nodelink"
	"github.com/matzehuels/boxbake/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. DOT and
// node-link output need a tree document; the other formats only use res.
func Render(doc layoutfile.Document, res *layoutfile.Result, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	theme, err := sink.ParseTheme(opts.Theme)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid theme")
	}
	svgOpts := buildSVGOptions(theme, opts)

	var dot string
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		if treeFormats[format] && dot == "" {
			if dot, err = toDOT(doc, opts); err != nil {
				return nil, err
			}
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(res, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(res, opts.Scale, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(res, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(res)
		case FormatText:
			data = []byte(sink.RenderText(res, buildTextOptions(opts)...))
		case FormatDOT:
			data = []byte(dot)
		case FormatNodelink:
			data, err = nodelink.RenderSVG(dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func toDOT(doc layoutfile.Document, opts Options) (string, error) {
	if doc.Root == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "dot and nodelink output need a tree document")
	}
	tree, err := doc.Tree()
	if err != nil {
		return "", err
	}
	var baked *layout.Baked
	if opts.Detailed {
		// Only used for labels; a failed bake just leaves them out.
		baked, _ = layout.Bake(tree)
	}
	return nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.Detailed, Baked: baked}), nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(theme sink.Theme, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(theme)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Rows {
		svgOpts = append(svgOpts, sink.WithRows())
	}
	return svgOpts
}

func buildTextOptions(opts Options) []sink.TextOption {
	textOpts := []sink.TextOption{sink.WithCellSize(opts.CellWidth, opts.CellHeight)}
	if !opts.Labels {
		textOpts = append(textOpts, sink.WithoutLabels())
	}
	return textOpts
}
