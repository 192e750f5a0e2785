package pipeline

import (
	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

// Load returns opts.Document, or reads the document at opts.Path.
func Load(opts Options) (layoutfile.Document, error) {
	if opts.Document != nil {
		if err := opts.Document.Validate(); err != nil {
			return layoutfile.Document{}, err
		}
		return *opts.Document, nil
	}
	if opts.Path == "" {
		return layoutfile.Document{}, errors.New(errors.ErrCodeInvalidInput, "document or path is required")
	}
	return layoutfile.Import(opts.Path)
}

// CountNodes returns the number of nodes in a tree document, or the number of
// items plus the flow itself in a flow document.
func CountNodes(doc layoutfile.Document) int {
	switch {
	case doc.Root != nil:
		return countSpec(*doc.Root)
	case doc.Flow != nil:
		n := 1
		for _, it := range doc.Flow.Items {
			if !it.Break {
				n++
			}
		}
		return n
	}
	return 0
}

func countSpec(s layoutfile.NodeSpec) int {
	n := 1
	for _, c := range s.Children {
		n += countSpec(c)
	}
	return n
}
