// Package pkg provides the core libraries for Boxbake box layouts.
//
// # Overview
//
// Boxbake places nested rectangular boxes inside a region. A tree of nodes
// with fixed, stretched or aspect-constrained sizes, or a flow of items
// wrapped into rows, is baked once into absolute rectangles. The pkg
// directory is organized into four main areas:
//
//  1. [layout] - The engine (nodes, sizes, baking, flex and flow)
//  2. [layoutfile] - Documents and results on disk (JSON, TOML, YAML)
//  3. [pipeline] - Orchestration (load → bake → render) with caching
//  4. [render] - Pictures of a bake (SVG, text, PNG, PDF, node-link)
//
// # Architecture
//
// The typical data flow through Boxbake:
//
//	Layout document (.json, .toml, .yaml)
//	         ↓
//	    [layoutfile] package (parse + validate)
//	         ↓
//	    [layout] package (bake into rectangles)
//	         ↓
//	    [render/sink] package (draw the result)
//	         ↓
//	    SVG/PNG/PDF/JSON/TXT output
//
// # Quick Start
//
// Bake a document and draw it:
//
//	doc, _ := layoutfile.Import("page.yaml")
//	res, _ := doc.WithSize(120, 40).Bake()
//	svg := sink.RenderSVG(res)
//
// Or let the pipeline cache the bake and the artifacts:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Document: &doc,
//	    Width:    120,
//	    Height:   40,
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatText},
//	})
//
// # Main Packages
//
// [layout] - Immutable node trees, edge kinds, alignment, [layout.Flex]
// shrink-wrapping and [layout.NewFlow] row packing with overflow policies.
//
// [textflow] - Word wrapping for terminals, built on flows.
//
// [cache] - File, Redis and null caches for bakes and artifacts, keyed by a
// hash of the canonical document.
//
// [store] - Saved layout documents in memory or MongoDB, used by the server.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks around bakes, cache lookups and HTTP requests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/layout    # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/layout
// [layoutfile]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/layoutfile
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/render/sink
// [textflow]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/textflow
// [cache]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/observability
// [layout.Flex]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/layout#Flex
// [layout.NewFlow]: https://pkg.go.dev/github.com/matzehuels/boxbake/pkg/layout#NewFlow
package pkg
