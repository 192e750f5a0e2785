// Package store persists layout documents so they can be baked and rendered
// later by ID.
//
// Two backends implement [Store]: [MemoryStore] for tests and single-process
// servers, and [MongoStore] for deployments that need durability. Documents
// are kept in canonical JSON; the ID is a random UUID.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/boxbake/pkg/cache"
	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Record is a stored document with its metadata.
type Record struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	Kind string `json:"kind" bson:"kind"`
	// Hash is the content hash of Source, shared with the bake cache.
	Hash      string    `json:"hash" bson:"hash"`
	Source    string    `json:"-" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord validates doc and wraps it in a record with a fresh ID.
func NewRecord(doc layoutfile.Document) (*Record, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	data, err := layoutfile.Marshal(doc, layoutfile.FormatJSON)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return &Record{
		ID:        uuid.NewString(),
		Name:      doc.Name(),
		Kind:      doc.Kind(),
		Hash:      cache.Hash(data),
		Source:    string(data),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Document decodes the stored document.
func (r *Record) Document() (layoutfile.Document, error) {
	return layoutfile.Parse([]byte(r.Source), layoutfile.FormatJSON)
}

// ListOptions pages through records, newest first.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) withDefaults() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	o.Offset = max(0, o.Offset)
	return o
}

// Store persists layout documents.
//
// Get and Delete return an ErrCodeLayoutNotFound error for unknown IDs and
// an ErrCodeInvalidInput error for IDs that are not UUIDs.
type Store interface {
	Create(ctx context.Context, doc layoutfile.Document) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, opts ListOptions) ([]*Record, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
