// Package rename keeps filenames synchronized with in-note titles.
//
// When a note's first-line heading no longer matches the primary title in its
// filename, the file is renamed and every backlink in the directory that used
// the old primary title is rewritten to the new one. Links through
// alternative titles are left alone; they still resolve via the unchanged
// filename components.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/darryllawson/notedown/internal/atomicfile"
	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/scan"
	"github.com/darryllawson/notedown/internal/title"
)

// ErrConflict indicates the computed target filename already exists. The
// rename is aborted and nothing is modified.
var ErrConflict = errors.New("rename target already exists")

// State classifies a note with respect to title synchronization.
type State int

const (
	// Stable means the body title matches the primary filename title.
	Stable State = iota
	// Divergent means the body title differs and a rename is due.
	Divergent
	// NoBodyTitle means the first line is not a heading; the feature does
	// not apply to this note.
	NoBodyTitle
)

func (s State) String() string {
	switch s {
	case Divergent:
		return "divergent"
	case NoBodyTitle:
		return "no-body-title"
	default:
		return "stable"
	}
}

// MarshalText renders the state as its name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rewrite is the outcome of the backlink sweep for one other note.
type Rewrite struct {
	Path      string `json:"path"`
	Rewritten int    `json:"rewritten"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

// Result describes a completed sync pass.
type Result struct {
	State    State     `json:"state"`
	OldPath  string    `json:"old_path,omitempty"`
	NewPath  string    `json:"new_path,omitempty"`
	OldTitle string    `json:"old_title,omitempty"`
	NewTitle string    `json:"new_title,omitempty"`
	Rewrites []Rewrite `json:"rewrites,omitempty"`
}

// sweepConcurrency bounds the backlink rewrite fan-out. Rewrites across
// files are independent; each file is still written atomically.
const sweepConcurrency = 8

// Check classifies the note at path given its body, without touching the
// file system beyond what the caller already read.
func Check(path, body string, conv title.Convention) (State, error) {
	titles, err := conv.ParseFilename(filepath.Base(path))
	if err != nil {
		return Stable, err
	}
	bodyTitle, ok := title.BodyTitle(body)
	if !ok {
		return NoBodyTitle, nil
	}
	if strings.TrimSpace(bodyTitle) == titles[0] {
		return Stable, nil
	}
	return Divergent, nil
}

// Plan computes the target filename for a divergent note without renaming.
func Plan(path, body string, conv title.Convention) (*Result, error) {
	name := filepath.Base(path)
	titles, err := conv.ParseFilename(name)
	if err != nil {
		return nil, err
	}

	bodyTitle, ok := title.BodyTitle(body)
	if !ok {
		return &Result{State: NoBodyTitle, OldPath: path}, nil
	}
	bodyTitle = strings.TrimSpace(bodyTitle)
	if bodyTitle == titles[0] {
		return &Result{State: Stable, OldPath: path}, nil
	}

	newName, err := conv.ReplacePrimary(name, bodyTitle)
	if err != nil {
		return nil, fmt.Errorf("body title %q cannot be encoded in a filename: %w", bodyTitle, err)
	}

	return &Result{
		State:    Divergent,
		OldPath:  path,
		NewPath:  filepath.Join(filepath.Dir(path), newName),
		OldTitle: titles[0],
		NewTitle: bodyTitle,
	}, nil
}

// Sync runs the full state machine for one note save: classify, rename on
// divergence, rebuild the directory index, and sweep backlinks.
//
// The sweep is best-effort: a note that cannot be read or written is reported
// in Result.Rewrites and does not undo the rename or stop other notes.
func Sync(path, body string, opts index.Options) (*Result, error) {
	res, err := Plan(path, body, opts.Convention)
	if err != nil {
		return nil, err
	}
	if res.State != Divergent {
		return res, nil
	}

	if st, err := os.Stat(res.NewPath); err == nil {
		same := false
		if old, err2 := os.Stat(path); err2 == nil {
			same = os.SameFile(st, old)
		}
		if !same {
			return nil, fmt.Errorf("%w: %s", ErrConflict, filepath.Base(res.NewPath))
		}
	}

	if err := os.Rename(path, res.NewPath); err != nil {
		return nil, fmt.Errorf("rename note: %w", err)
	}

	idx, err := index.Build(filepath.Dir(res.NewPath), opts)
	if err != nil {
		// The rename itself committed; report the sweep as impossible.
		return res, fmt.Errorf("rebuild index after rename: %w", err)
	}

	res.Rewrites = sweepBacklinks(idx, res.NewPath, res.OldTitle, res.NewTitle)
	return res, nil
}

// sweepBacklinks rewrites [[oldTitle]] occurrences to [[newTitle]] in every
// note except the renamed one. Results are ordered by filename.
func sweepBacklinks(idx *index.Index, renamedPath, oldTitle, newTitle string) []Rewrite {
	norm := idx.Normalizer()
	oldKey := norm.Normalize(oldTitle)

	notes := idx.Notes()
	results := make([]Rewrite, len(notes))

	var g errgroup.Group
	g.SetLimit(sweepConcurrency)
	for i, note := range notes {
		if note.Path == renamedPath {
			results[i] = Rewrite{Path: note.Path}
			continue
		}
		i, note := i, note
		g.Go(func() error {
			n, err := rewriteNote(note.Path, oldKey, newTitle, norm)
			results[i] = Rewrite{Path: note.Path, Rewritten: n, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, r := range results {
		if r.Path != renamedPath && (r.Rewritten > 0 || r.Err != nil) {
			out = append(out, r)
		}
	}
	return out
}

// rewriteNote replaces matching link spans in one file. The write is atomic:
// on any failure the file keeps its previous contents.
func rewriteNote(path, oldKey, newTitle string, norm title.Normalizer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read note: %w", err)
	}
	body := string(data)

	var spans []scan.Occurrence
	for _, occ := range scan.Titles(scan.Body(body)) {
		if norm.Normalize(occ.Text) == oldKey {
			spans = append(spans, occ)
		}
	}
	if len(spans) == 0 {
		return 0, nil
	}

	var b strings.Builder
	b.Grow(len(body) + len(spans)*len(newTitle))
	prev := 0
	for _, occ := range spans {
		b.WriteString(body[prev:occ.Start])
		b.WriteString("[[")
		b.WriteString(newTitle)
		b.WriteString("]]")
		prev = occ.End
	}
	b.WriteString(body[prev:])

	if err := atomicfile.WriteFile(path, []byte(b.String()), 0); err != nil {
		return 0, fmt.Errorf("rewrite note: %w", err)
	}
	return len(spans), nil
}
