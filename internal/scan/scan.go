// Package scan finds link occurrences in note bodies.
//
// Two kinds of occurrence are produced by a single left-to-right pass:
//
//	title: [[Some Note Title]]
//	url:   [text](https://...), <https://...>, or a bare https://... run
//
// Link syntax inside raw markup (inline code spans or fenced code blocks) is
// inert and never produces an occurrence. Unmatched "[[" openers are ordinary
// prose, not errors.
package scan

import (
	"regexp"
	"sort"
	"strings"
)

// Kind discriminates occurrence kinds.
type Kind int

const (
	// KindTitle is a [[...]] note link, resolved against the corpus index.
	KindTitle Kind = iota
	// KindURL is a markdown URL, handed to the caller verbatim and never
	// consulted against the index.
	KindURL
)

func (k Kind) String() string {
	if k == KindURL {
		return "url"
	}
	return "title"
}

// Occurrence is one link found in a body. Start and End are byte offsets of
// the full span (brackets included for title links). Text is the trimmed
// display text for title links, or the literal URL for url occurrences.
type Occurrence struct {
	Kind  Kind
	Text  string
	Start int
	End   int
	Line  int // 1-indexed
}

// Literal returns the original span text within body.
func (o Occurrence) Literal(body string) string {
	return body[o.Start:o.End]
}

var (
	inlineLinkRe = regexp.MustCompile(`\[[^\[\]]*\]\(([^()\s]+)\)`)
	autolinkRe   = regexp.MustCompile(`<(https?://[^>\s]+)>`)
	bareURLRe    = regexp.MustCompile(`https?://[^\s<>()\[\]]+`)
)

// Body scans a whole note body and returns its occurrences in document order.
// The result is a plain slice: finite, restartable, never persisted.
func Body(body string) []Occurrence {
	var out []Occurrence

	var fence fenceState
	lineNum := 0
	for off := 0; off <= len(body); {
		lineNum++
		end := strings.IndexByte(body[off:], '\n')
		var line string
		next := len(body) + 1
		if end >= 0 {
			line = body[off : off+end]
			next = off + end + 1
		} else {
			line = body[off:]
		}

		if fence.update(line) || fence.inFence {
			// Fence marker lines and fenced content carry no links.
			off = next
			continue
		}

		masked := maskInlineCode(line)
		out = append(out, scanLine(masked, off, lineNum)...)
		off = next
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// At returns the occurrence containing the byte offset, if any.
func At(body string, offset int) (Occurrence, bool) {
	for _, occ := range Body(body) {
		if occ.Start <= offset && offset < occ.End {
			return occ, true
		}
		if occ.Start > offset {
			break
		}
	}
	return Occurrence{}, false
}

// Titles filters occurrences to title links only.
func Titles(occs []Occurrence) []Occurrence {
	var out []Occurrence
	for _, o := range occs {
		if o.Kind == KindTitle {
			out = append(out, o)
		}
	}
	return out
}

// scanLine finds occurrences in a single masked line. base is the byte
// offset of the line within the body.
func scanLine(line string, base, lineNum int) []Occurrence {
	var out []Occurrence

	// Title links first; their spans are masked before URL matching so an
	// inline-link regex cannot half-match inside [[...]].
	buf := []byte(line)
	for i := 0; i+1 < len(line); {
		if line[i] != '[' || line[i+1] != '[' {
			i++
			continue
		}
		close := strings.Index(line[i+2:], "]]")
		if close < 0 {
			// No closer on this line: ordinary prose.
			break
		}
		inner := line[i+2 : i+2+close]
		end := i + 2 + close + 2
		if text := strings.TrimSpace(inner); text != "" && !strings.Contains(inner, "[") {
			out = append(out, Occurrence{
				Kind:  KindTitle,
				Text:  text,
				Start: base + i,
				End:   base + end,
				Line:  lineNum,
			})
			for k := i; k < end; k++ {
				buf[k] = ' '
			}
		}
		i = end
	}
	line = string(buf)

	for _, pat := range []struct {
		re    *regexp.Regexp
		group int
	}{
		{inlineLinkRe, 1},
		{autolinkRe, 1},
		{bareURLRe, 0},
	} {
		for _, m := range pat.re.FindAllStringSubmatchIndex(line, -1) {
			out = append(out, Occurrence{
				Kind:  KindURL,
				Text:  line[m[2*pat.group] : m[2*pat.group+1]],
				Start: base + m[0],
				End:   base + m[1],
				Line:  lineNum,
			})
		}
		// Mask so the looser patterns below cannot re-match inside.
		line = pat.re.ReplaceAllStringFunc(line, func(s string) string {
			return strings.Repeat(" ", len(s))
		})
	}

	return out
}

// fenceState tracks fenced code blocks across lines.
type fenceState struct {
	inFence  bool
	fenceCh  byte
	fenceLen int
}

// update consumes one line and reports whether it is a fence marker.
func (fs *fenceState) update(line string) bool {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimLeft(strings.TrimPrefix(s, ">"), " \t")
	}

	ch, n, ok := fenceMarker(s)
	if !ok {
		return false
	}
	if !fs.inFence {
		fs.inFence = true
		fs.fenceCh = ch
		fs.fenceLen = n
		return true
	}
	if fs.fenceCh == ch && n >= fs.fenceLen {
		fs.inFence = false
		fs.fenceCh = 0
		fs.fenceLen = 0
		return true
	}
	return false
}

func fenceMarker(line string) (ch byte, n int, ok bool) {
	if len(line) < 3 {
		return 0, 0, false
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	if i < 3 {
		return 0, 0, false
	}
	return ch, i, true
}

// maskInlineCode blanks inline code spans, preserving byte positions.
// Matching backtick runs delimit a span (`code` as well as ``a ` b``).
func maskInlineCode(line string) string {
	result := []byte(line)
	i := 0
	for i < len(result) {
		if result[i] != '`' {
			i++
			continue
		}
		start := i
		openLen := 0
		for i < len(result) && result[i] == '`' {
			openLen++
			i++
		}
		for j := i; j < len(result); j++ {
			if result[j] != '`' {
				continue
			}
			closeLen := 0
			for j < len(result) && result[j] == '`' {
				closeLen++
				j++
			}
			if closeLen == openLen {
				for k := start; k < j; k++ {
					result[k] = ' '
				}
				i = j
				break
			}
		}
	}
	return string(result)
}
