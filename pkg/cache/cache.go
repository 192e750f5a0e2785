// Package cache provides byte-level caching for baked layouts and rendered
// artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the HTTP server, and [NullCache] when caching is disabled. Keys are built by
// a [Keyer] so that the pipeline never concatenates key strings by hand.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	// TTLBake is the lifetime of a baked result.
	TTLBake = 24 * time.Hour

	// TTLArtifact is the lifetime of a rendered artifact.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by string key.
//
// Get returns (nil, false, nil) on a miss; an error means the backend itself
// failed. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// BakeKeyOpts are the inputs, besides the document, that change a bake.
type BakeKeyOpts struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// ArtifactKeyOpts are the inputs, besides the bake, that change a rendering.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Theme      string  `json:"theme,omitempty"`
	Labels     bool    `json:"labels,omitempty"`
	Rows       bool    `json:"rows,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	CellWidth  int     `json:"cell_width,omitempty"`
	CellHeight int     `json:"cell_height,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// BakeKey is the key of the bake of the document with hash docHash.
	BakeKey(docHash string, opts BakeKeyOpts) string
	// ArtifactKey is the key of a rendering of the result with hash resultHash.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BakeKey implements Keyer.
func (DefaultKeyer) BakeKey(docHash string, opts BakeKeyOpts) string {
	return hashKey("bake", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
