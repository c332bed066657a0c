// Package vault is the operation boundary of the engine: open-link,
// save-lint, save-sync, and note creation for one notes directory.
//
// Every operation rebuilds the directory index from a fresh listing; nothing
// is cached across calls. Index reads and the rename synchronizer are
// serialized per directory with a single-writer/multiple-reader lock.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/darryllawson/notedown/internal/config"
	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/lint"
	"github.com/darryllawson/notedown/internal/rename"
	"github.com/darryllawson/notedown/internal/resolve"
	"github.com/darryllawson/notedown/internal/scan"
	"github.com/darryllawson/notedown/internal/title"
)

// ErrNoLinkAtOffset indicates the given offset is not inside any link.
var ErrNoLinkAtOffset = errors.New("no link at offset")

// ErrNoteExists indicates a create would overwrite an existing file.
var ErrNoteExists = errors.New("note already exists")

// noteTemplate is the body of a freshly created note.
const noteTemplate = "# %s\n\nSee also:\n\n- [[%s]]\n"

// checkConcurrency bounds the whole-directory lint fan-out.
const checkConcurrency = 8

// Per-directory locks. Readers (open-link, lint) share; the rename
// synchronizer takes the write side.
var (
	locksMu  sync.Mutex
	dirLocks = make(map[string]*sync.RWMutex)
)

func lockFor(dir string) *sync.RWMutex {
	locksMu.Lock()
	defer locksMu.Unlock()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	l, ok := dirLocks[dir]
	if !ok {
		l = &sync.RWMutex{}
		dirLocks[dir] = l
	}
	return l
}

// Vault exposes engine operations over one notes directory.
type Vault struct {
	Dir string
	cfg *config.Config
}

// New creates a vault for dir using cfg (nil means defaults).
func New(dir string, cfg *config.Config) *Vault {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Vault{Dir: dir, cfg: cfg}
}

// ForFile creates a vault for the directory containing the given note.
func ForFile(path string, cfg *config.Config) *Vault {
	return New(filepath.Dir(path), cfg)
}

// Config returns the vault's configuration.
func (v *Vault) Config() *config.Config { return v.cfg }

// Index builds a fresh corpus index for the directory.
func (v *Vault) Index() (*index.Index, error) {
	l := lockFor(v.Dir)
	l.RLock()
	defer l.RUnlock()
	return index.Build(v.Dir, v.cfg.IndexOptions())
}

// Resolver builds a fresh index and wraps it in a resolver.
func (v *Vault) Resolver() (*resolve.Resolver, error) {
	idx, err := v.Index()
	if err != nil {
		return nil, err
	}
	return resolve.New(idx, v.cfg.MarkdownExtension), nil
}

// OpenLinkResult is the outcome of an open-link request.
type OpenLinkResult struct {
	// Kind is "url", "file", or "create".
	Kind string `json:"kind"`
	// Text is the occurrence's display text (or the URL).
	Text string `json:"text"`
	// Path is the resolved note path when Kind is "file".
	Path string `json:"path,omitempty"`
	// ProposedName is the filename to create when Kind is "create".
	ProposedName string `json:"proposed_name,omitempty"`
}

// OpenLink determines whether offset falls inside a link occurrence of body
// and resolves it. URL occurrences are handed back verbatim for external
// opening; title occurrences resolve to a file or to a create proposal.
func (v *Vault) OpenLink(body string, offset int) (*OpenLinkResult, error) {
	occ, ok := scan.At(body, offset)
	if !ok {
		return nil, ErrNoLinkAtOffset
	}
	if occ.Kind == scan.KindURL {
		return &OpenLinkResult{Kind: "url", Text: occ.Text}, nil
	}
	return v.ResolveText(occ.Text)
}

// ResolveText resolves link display text (or selected text) directly.
func (v *Vault) ResolveText(text string) (*OpenLinkResult, error) {
	res, err := v.Resolver()
	if err != nil {
		return nil, err
	}
	r := res.Resolve(text)
	if r.Found {
		return &OpenLinkResult{Kind: "file", Text: text, Path: r.Note.Path}, nil
	}
	return &OpenLinkResult{Kind: "create", Text: text, ProposedName: r.ProposedName}, nil
}

// LintFile runs the save-lint pass for one note. Index warnings ride along
// so callers can surface corpus problems next to broken links.
func (v *Vault) LintFile(path string) (lint.Report, []index.Warning, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return lint.Report{}, nil, fmt.Errorf("read note: %w", err)
	}
	res, err := v.Resolver()
	if err != nil {
		return lint.Report{}, nil, err
	}
	return lint.Body(path, string(body), res), res.Index().Warnings(), nil
}

// SyncEnabled reports whether the rename synchronizer is configured to run.
func (v *Vault) SyncEnabled() bool { return v.cfg.ReflectTitleInFilename }

// SyncFile runs the save-sync state machine for one note. When the feature
// is disabled by configuration the note is reported Stable untouched.
func (v *Vault) SyncFile(path string) (*rename.Result, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	if !v.SyncEnabled() {
		return &rename.Result{State: rename.Stable, OldPath: path}, nil
	}

	l := lockFor(v.Dir)
	l.Lock()
	defer l.Unlock()
	return rename.Sync(path, string(body), v.cfg.IndexOptions())
}

// PlanSync computes what SyncFile would do without touching anything.
func (v *Vault) PlanSync(path string) (*rename.Result, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	return rename.Plan(path, string(body), v.cfg.Convention())
}

// CreateNote creates a new note with the given title. backFrom, when not
// empty, is the path of the note that linked here; the new note gets a
// "See also" backlink to it.
func (v *Vault) CreateNote(noteTitle, backFrom string) (string, error) {
	noteTitle = strings.TrimSpace(noteTitle)
	name, err := v.cfg.Convention().Filename([]string{noteTitle}, v.cfg.MarkdownExtension)
	if err != nil {
		return "", err
	}

	path := filepath.Join(v.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrNoteExists, name)
	}

	body := "# " + noteTitle + "\n"
	if backFrom != "" {
		if titles, err := v.cfg.Convention().ParseFilename(filepath.Base(backFrom)); err == nil {
			body = fmt.Sprintf(noteTemplate, noteTitle, titles[0])
		}
	}

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	return path, nil
}

// DirReport is the outcome of a whole-directory check.
type DirReport struct {
	Dir      string          `json:"dir" yaml:"dir"`
	Notes    int             `json:"notes" yaml:"notes"`
	Warnings []index.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Reports  []lint.Report   `json:"reports,omitempty" yaml:"reports,omitempty"`
}

// Broken counts broken links across the directory.
func (d DirReport) Broken() int {
	n := 0
	for _, r := range d.Reports {
		n += len(r.Broken)
	}
	return n
}

// Check lints every note in the directory. Unreadable notes become reports
// whose error is carried in the index warnings; a single bad file never
// aborts the sweep. Reports are ordered by filename and include only notes
// with findings.
func (v *Vault) Check() (*DirReport, error) {
	res, err := v.Resolver()
	if err != nil {
		return nil, err
	}
	idx := res.Index()

	notes := idx.Notes()
	reports := make([]lint.Report, len(notes))
	readErrs := make([]error, len(notes))

	var g errgroup.Group
	g.SetLimit(checkConcurrency)
	for i, note := range notes {
		i, note := i, note
		g.Go(func() error {
			body, err := os.ReadFile(note.Path)
			if err != nil {
				readErrs[i] = err
				return nil
			}
			reports[i] = lint.Body(note.Path, string(body), res)
			return nil
		})
	}
	_ = g.Wait()

	out := &DirReport{Dir: v.Dir, Notes: idx.Len(), Warnings: idx.Warnings()}
	for i, r := range reports {
		if readErrs[i] != nil {
			out.Warnings = append(out.Warnings, index.Warning{
				Code:    "FILE_READ_ERROR",
				Path:    notes[i].Path,
				Message: readErrs[i].Error(),
			})
			continue
		}
		if !r.Clean() {
			out.Reports = append(out.Reports, r)
		}
	}
	return out, nil
}

// Stats summarizes a directory's corpus.
type Stats struct {
	Notes  int `json:"notes"`
	Titles int `json:"titles"`
	Links  int `json:"links"`
	URLs   int `json:"urls"`
	Broken int `json:"broken"`
}

// Stats scans every note and counts links.
func (v *Vault) Stats() (*Stats, error) {
	res, err := v.Resolver()
	if err != nil {
		return nil, err
	}
	idx := res.Index()

	st := &Stats{Notes: idx.Len(), Titles: len(idx.Titles())}
	for _, note := range idx.Notes() {
		body, err := os.ReadFile(note.Path)
		if err != nil {
			continue
		}
		for _, occ := range scan.Body(string(body)) {
			if occ.Kind == scan.KindURL {
				st.URLs++
				continue
			}
			st.Links++
			if !res.Resolve(occ.Text).Found {
				st.Broken++
			}
		}
	}
	return st, nil
}

// BodyTitleOf reads a note and extracts its body title, if any.
func BodyTitleOf(path string) (string, bool, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	t, ok := title.BodyTitle(string(body))
	return t, ok, nil
}
