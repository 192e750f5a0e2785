// Package pipeline provides the load → bake → render pipeline for boxbake.
//
// This package implements the complete pipeline that is used by the CLI, the
// HTTP server and the interactive preview. By centralizing this logic, every
// entry point caches, logs and reports errors the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a layout document from a file or take one from a request
//  2. Bake: Resolve every node's position and size with [layoutfile.Document.Bake]
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
// Baking is pure, so a document can be baked at several sizes concurrently
// with [Runner.BakeSizes].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "screen.toml",
//	    Width:   120,
//	    Height:  40,
//	    Formats: []string{"svg", "txt"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Bake(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, doc, res, opts)
package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxbake/pkg/cache"
	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
	"github.com/matzehuels/boxbake/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultTheme is the SVG colour theme.
	DefaultTheme = "light"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatText, FormatDOT, FormatNodelink}

// treeFormats need the node tree rather than the baked result.
var treeFormats = map[string]bool{FormatDOT: true, FormatNodelink: true}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Document wins over Path.
	Document *layoutfile.Document `json:"document,omitempty"`
	Path     string               `json:"-"`

	// Bake options. Width and Height override the document's root size;
	// both or neither must be set.
	Width   int  `json:"width,omitempty"`
	Height  int  `json:"height,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Theme      string   `json:"theme,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Rows       bool     `json:"rows,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	CellWidth  int      `json:"cell_width,omitempty"`
	CellHeight int      `json:"cell_height,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document, resized if Width/Height were set.
	Document layoutfile.Document

	// DocHash is the content hash of Document.
	DocHash string

	// Bake is the baked layout.
	Bake *layoutfile.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Placed     int
	LoadTime   time.Duration
	BakeTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BakeHit   bool // Whether the bake came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Size is a target size for [Runner.BakeSizes].
type Size struct {
	Width, Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// ParseSize parses "WxH", for example "80x24".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, errors.New(errors.ErrCodeInvalidDimensions, "invalid size %q (want WxH)", s)
	}
	wi, err1 := strconv.Atoi(w)
	hi, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil {
		return Size{}, errors.New(errors.ErrCodeInvalidDimensions, "invalid size %q (want WxH)", s)
	}
	if err := errors.ValidateDimensions(wi, hi); err != nil {
		return Size{}, err
	}
	return Size{Width: wi, Height: hi}, nil
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme is one of the built-in themes.
func ValidateTheme(theme string) error {
	if _, err := sink.ParseTheme(theme); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid theme")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Document == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document or path is required")
	}
	if err := o.ValidateForBake(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBake checks the size override.
func (o *Options) ValidateForBake() error {
	o.setLogger()
	if o.Width == 0 && o.Height == 0 {
		return nil
	}
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.CellWidth = max(1, o.CellWidth)
	o.CellHeight = max(1, o.CellHeight)
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateTheme(o.Theme)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// HasSize reports whether the options override the document size.
func (o *Options) HasSize() bool {
	return o.Width > 0 && o.Height > 0
}

// BakeKeyOpts returns cache key options for baking.
func (o *Options) BakeKeyOpts() cache.BakeKeyOpts {
	return cache.BakeKeyOpts{Width: o.Width, Height: o.Height}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Theme:      o.Theme,
		Labels:     o.Labels,
		Rows:       o.Rows,
		Detailed:   o.Detailed,
		Scale:      o.Scale,
		CellWidth:  o.CellWidth,
		CellHeight: o.CellHeight,
	}
}
