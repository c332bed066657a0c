// Package lint validates link integrity for a single note.
package lint

import (
	"github.com/darryllawson/notedown/internal/resolve"
	"github.com/darryllawson/notedown/internal/scan"
)

// BrokenLink is one title link with no matching note.
type BrokenLink struct {
	Text  string `json:"text" yaml:"text"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Line  int    `json:"line" yaml:"line"`

	// ProposedName is the filename creating the missing note would use.
	ProposedName string `json:"proposed_name,omitempty" yaml:"proposed_name,omitempty"`
}

// Report lists a note's broken links in document order. It is ephemeral:
// recomputed on every save, never persisted.
type Report struct {
	Path   string       `json:"path" yaml:"path"`
	Broken []BrokenLink `json:"broken" yaml:"broken"`
}

// Clean reports whether every link resolved.
func (r Report) Clean() bool { return len(r.Broken) == 0 }

// Body lints a note body against the resolver's index. URL occurrences are
// never checked. The pass always completes; it never mutates the body or the
// index.
func Body(path, body string, res *resolve.Resolver) Report {
	report := Report{Path: path}
	for _, occ := range scan.Titles(scan.Body(body)) {
		r := res.Resolve(occ.Text)
		if r.Found {
			continue
		}
		report.Broken = append(report.Broken, BrokenLink{
			Text:         occ.Text,
			Start:        occ.Start,
			End:          occ.End,
			Line:         occ.Line,
			ProposedName: r.ProposedName,
		})
	}
	return report
}
