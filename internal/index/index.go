// Package index builds the title→file mapping for one notes directory.
//
// The index is rebuilt from a fresh directory listing on every operation and
// is immutable once built; there is no persisted form. Duplicate titles are
// resolved deterministically: the note with the lexicographically smallest
// filename wins, and the conflict is recorded as a warning.
package index

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/darryllawson/notedown/internal/title"
)

// Note is one indexed file. Titles are as written in the filename, primary
// first.
type Note struct {
	Path   string // full path (dir joined with Name)
	Name   string // filename within the directory
	Titles []string
}

// PrimaryTitle returns the note's primary title.
func (n *Note) PrimaryTitle() string { return n.Titles[0] }

// Warning codes surfaced during an index build. Corpus problems are never
// fatal; the build keeps going and reports them.
const (
	WarnMalformedFilename = "MALFORMED_FILENAME"
	WarnTitleConflict     = "TITLE_CONFLICT"
	WarnDuplicateTitle    = "DUPLICATE_TITLE"
)

// Warning is a non-fatal corpus problem found while indexing.
type Warning struct {
	Code    string `json:"code" yaml:"code"`
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// Options configures an index build.
type Options struct {
	Convention title.Convention
	Normalizer title.Normalizer

	// FolderPatterns is a glob allow-list applied to the directory's own
	// name. Empty means every directory is a notes directory.
	FolderPatterns []string
}

// Index maps normalized titles to notes for a single directory.
type Index struct {
	Dir string

	opts     Options
	byTitle  map[string]*Note
	byName   map[string]*Note
	notes    []*Note
	warnings []Warning
}

// Build enumerates dir (non-recursively) and indexes every note file in it.
// Files whose names fail to parse are excluded and reported as warnings.
func Build(dir string, opts Options) (*Index, error) {
	idx := &Index{
		Dir:     dir,
		opts:    opts,
		byTitle: make(map[string]*Note),
		byName:  make(map[string]*Note),
	}

	if !matchesFolderPatterns(filepath.Base(dir), opts.FolderPatterns) {
		return idx, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list notes directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !title.IsNote(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	// Lexicographic order makes the duplicate-title tie-break deterministic
	// regardless of readdir order.
	sort.Strings(names)

	for _, name := range names {
		titles, err := opts.Convention.ParseFilename(name)
		if err != nil {
			idx.warnings = append(idx.warnings, Warning{
				Code:    WarnMalformedFilename,
				Path:    filepath.Join(dir, name),
				Message: err.Error(),
			})
			continue
		}
		idx.add(name, titles)
	}

	return idx, nil
}

func (idx *Index) add(name string, titles []string) {
	note := &Note{
		Path:   filepath.Join(idx.Dir, name),
		Name:   name,
		Titles: titles,
	}
	idx.notes = append(idx.notes, note)
	idx.byName[name] = note

	seen := make(map[string]bool, len(titles))
	for _, t := range titles {
		key := idx.opts.Normalizer.Normalize(t)
		if seen[key] {
			idx.warnings = append(idx.warnings, Warning{
				Code:    WarnDuplicateTitle,
				Path:    note.Path,
				Message: fmt.Sprintf("title %q appears more than once in the filename", t),
			})
			continue
		}
		seen[key] = true

		if existing, ok := idx.byTitle[key]; ok {
			idx.warnings = append(idx.warnings, Warning{
				Code: WarnTitleConflict,
				Path: note.Path,
				Message: fmt.Sprintf("title %q already maps to %s; links resolve to the earlier file",
					t, existing.Name),
			})
			continue
		}
		idx.byTitle[key] = note
	}
}

// Lookup resolves a title (or link display text) to its note. The argument
// is normalized the same way indexed titles were.
func (idx *Index) Lookup(t string) (*Note, bool) {
	n, ok := idx.byTitle[idx.opts.Normalizer.Normalize(t)]
	return n, ok
}

// ByName returns the note with the given filename.
func (idx *Index) ByName(name string) (*Note, bool) {
	n, ok := idx.byName[name]
	return n, ok
}

// TitlesFor is the reverse lookup: the titles declared by the file at p,
// which may be a full path or a bare filename.
func (idx *Index) TitlesFor(p string) []string {
	if n, ok := idx.byName[filepath.Base(p)]; ok {
		return n.Titles
	}
	return nil
}

// Notes returns every indexed note, ordered by filename.
func (idx *Index) Notes() []*Note { return idx.notes }

// Len returns the number of indexed notes.
func (idx *Index) Len() int { return len(idx.notes) }

// Titles returns every resolvable title key's original spelling, sorted.
// Useful as a completion feed.
func (idx *Index) Titles() []string {
	set := make(map[string]bool)
	for _, n := range idx.notes {
		for _, t := range n.Titles {
			key := idx.opts.Normalizer.Normalize(t)
			if _, ok := idx.byTitle[key]; ok && idx.byTitle[key] == n && !set[t] {
				set[t] = true
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Warnings returns the corpus problems found during the build.
func (idx *Index) Warnings() []Warning { return idx.warnings }

// Normalizer returns the normalizer the index was built with, so resolution
// and indexing always agree on comparison rules.
func (idx *Index) Normalizer() title.Normalizer { return idx.opts.Normalizer }

func matchesFolderPatterns(dirName string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, err := path.Match(p, dirName); err == nil && ok {
			return true
		}
	}
	return false
}
