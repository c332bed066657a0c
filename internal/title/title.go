// Package title parses note titles out of filenames and note bodies.
//
// A note's titles are encoded entirely in its filename. Two conventions
// exist, only one of which is active at a time:
//
//	tilde:         "Foo ~ Bar ~ Goo.md"     -> titles Foo, Bar, Goo
//	parenthetical: "Foo (Bar, Goo).md"      -> titles Foo, Bar, Goo
//
// The first title is the primary title. Alternative titles resolve to the
// same file but never drive renames.
package title

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotANote indicates a filename without a recognized markdown extension.
	ErrNotANote = errors.New("not a note filename")
	// ErrMalformedFilename indicates a filename whose stem does not fit the
	// active convention's grammar.
	ErrMalformedFilename = errors.New("malformed note filename")
)

// Extensions is the set of recognized markdown extensions, matched
// case-insensitively and without the leading dot.
var Extensions = []string{"md", "mdown", "markdown", "markdn"}

// DefaultExtension is used when naming newly created notes.
const DefaultExtension = "md"

// SplitExt splits a filename into its stem and recognized extension.
// The returned ext preserves the original casing and has no leading dot.
func SplitExt(filename string) (stem, ext string, ok bool) {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return "", "", false
	}
	ext = filename[dot+1:]
	lower := strings.ToLower(ext)
	for _, e := range Extensions {
		if lower == e {
			return filename[:dot], ext, true
		}
	}
	return "", "", false
}

// IsNote reports whether filename carries a recognized markdown extension.
func IsNote(filename string) bool {
	_, _, ok := SplitExt(filename)
	return ok
}

// Convention selects the filename grammar used to encode titles.
type Convention int

const (
	// Tilde encodes titles as "t1 ~ t2 ~ t3.ext".
	Tilde Convention = iota
	// Parenthetical encodes titles as "t1 (t2, t3).ext".
	Parenthetical
)

// ParseConvention parses a convention name from configuration.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tilde":
		return Tilde, nil
	case "parenthetical", "parens":
		return Parenthetical, nil
	}
	return Tilde, fmt.Errorf("unknown title convention %q (want \"tilde\" or \"parenthetical\")", s)
}

func (c Convention) String() string {
	if c == Parenthetical {
		return "parenthetical"
	}
	return "tilde"
}

// ParseFilename extracts the ordered titles encoded in filename (no directory
// component). The first title is the primary title.
//
// Returns ErrNotANote for unrecognized extensions and ErrMalformedFilename
// when the stem does not fit the convention's grammar.
func (c Convention) ParseFilename(filename string) ([]string, error) {
	stem, _, ok := SplitExt(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotANote, filename)
	}

	var titles []string
	switch c {
	case Parenthetical:
		var err error
		titles, err = parseParenStem(stem)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, filename)
		}
	default:
		for _, seg := range strings.Split(stem, "~") {
			if t := strings.TrimSpace(seg); t != "" {
				titles = append(titles, t)
			}
		}
	}

	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedFilename, filename)
	}
	return titles, nil
}

// parseParenStem parses "<primary>" or "<primary> (<alt1>, <alt2>, ...)".
func parseParenStem(stem string) ([]string, error) {
	open := strings.IndexByte(stem, '(')
	if open < 0 {
		primary := strings.TrimSpace(stem)
		if primary == "" || strings.ContainsAny(primary, "),") {
			return nil, ErrMalformedFilename
		}
		return []string{primary}, nil
	}

	if !strings.HasSuffix(stem, ")") {
		return nil, ErrMalformedFilename
	}
	primary := strings.TrimSpace(stem[:open])
	if primary == "" || strings.ContainsAny(primary, "(),") {
		return nil, ErrMalformedFilename
	}

	inner := stem[open+1 : len(stem)-1]
	if strings.ContainsAny(inner, "()") {
		// Nested or unmatched paren inside the alternative list.
		return nil, ErrMalformedFilename
	}

	titles := []string{primary}
	for _, seg := range strings.Split(inner, ",") {
		if t := strings.TrimSpace(seg); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

// validTitle reports whether t may appear in a filename under c.
func (c Convention) validTitle(t string) bool {
	if t == "" {
		return false
	}
	if c == Parenthetical {
		return !strings.ContainsAny(t, "(),")
	}
	return !strings.Contains(t, "~")
}

// Filename assembles a filename from an ordered title list and extension.
// It is the inverse of ParseFilename up to whitespace normalization.
func (c Convention) Filename(titles []string, ext string) (string, error) {
	if len(titles) == 0 {
		return "", fmt.Errorf("%w: no titles", ErrMalformedFilename)
	}
	for _, t := range titles {
		if !c.validTitle(strings.TrimSpace(t)) {
			return "", fmt.Errorf("%w: title %q contains reserved characters", ErrMalformedFilename, t)
		}
	}
	if ext == "" {
		ext = DefaultExtension
	}

	trimmed := make([]string, len(titles))
	for i, t := range titles {
		trimmed[i] = strings.TrimSpace(t)
	}

	if c == Parenthetical {
		if len(trimmed) == 1 {
			return trimmed[0] + "." + ext, nil
		}
		return fmt.Sprintf("%s (%s).%s", trimmed[0], strings.Join(trimmed[1:], ", "), ext), nil
	}
	return strings.Join(trimmed, " ~ ") + "." + ext, nil
}

// ReplacePrimary returns filename with its primary title replaced by
// newPrimary, keeping alternative titles and the extension unchanged.
func (c Convention) ReplacePrimary(filename, newPrimary string) (string, error) {
	titles, err := c.ParseFilename(filename)
	if err != nil {
		return "", err
	}
	_, ext, _ := SplitExt(filename)
	titles[0] = newPrimary
	return c.Filename(titles, ext)
}

// BodyTitle extracts the title encoded in a note body: the text of the first
// line, if and only if that line is a markdown heading. There is no
// blank-line skipping; only the literal first line is considered.
func BodyTitle(body string) (string, bool) {
	line := body
	if i := strings.IndexAny(body, "\r\n"); i >= 0 {
		line = body[:i]
	}

	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i >= len(line) || (line[i] != ' ' && line[i] != '\t') {
		return "", false
	}
	t := strings.TrimSpace(line[i:])
	if t == "" {
		return "", false
	}
	return t, true
}

// Normalizer fixes how titles are compared. Titles are trimmed of
// surrounding whitespace; by default comparison is case-insensitive,
// matching how links are typically typed.
type Normalizer struct {
	CaseSensitive bool
}

// Normalize returns the lookup key for a title or link display text.
func (n Normalizer) Normalize(s string) string {
	s = strings.TrimSpace(s)
	if !n.CaseSensitive {
		s = strings.ToLower(s)
	}
	return s
}
