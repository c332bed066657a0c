// Package resolve maps link display text to note files.
package resolve

import (
	"strings"

	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/title"
)

// Resolution is the outcome of resolving one link. Not-found is a normal
// terminal outcome, not an error: it carries the filename a new note would
// get so the caller can drive the create workflow.
type Resolution struct {
	Found        bool
	Note         *index.Note
	ProposedName string
}

// Resolver resolves display text against one corpus index. Matching is
// exact normalized equality only; no fuzzy or partial matching.
type Resolver struct {
	idx *index.Index
	ext string
}

// New creates a resolver. ext is the extension used for proposed filenames
// (config markdown_extension); empty means the default.
func New(idx *index.Index, ext string) *Resolver {
	if ext == "" {
		ext = title.DefaultExtension
	}
	return &Resolver{idx: idx, ext: ext}
}

// Resolve looks up a link's display text.
func (r *Resolver) Resolve(display string) Resolution {
	if n, ok := r.idx.Lookup(display); ok {
		return Resolution{Found: true, Note: n}
	}
	return Resolution{
		ProposedName: strings.TrimSpace(display) + "." + r.ext,
	}
}

// Index returns the index this resolver reads from.
func (r *Resolver) Index() *index.Index { return r.idx }
