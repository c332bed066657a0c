// Package outline extracts a heading outline from a note body.
package outline

import (
	"sort"
	"strings"

	goslug "github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry in a note's outline.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Line   int    `json:"line"` // 1-indexed
	Anchor string `json:"anchor"`
}

// Extract parses the body with goldmark and returns its headings in
// document order, each with a URL-safe anchor.
func Extract(body string) []Heading {
	var headings []Heading

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader([]byte(body)))
	lineStarts := computeLineStarts(body)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Segment.Value([]byte(body)))
			}
		}
		textContent := strings.TrimSpace(b.String())
		if textContent == "" {
			return ast.WalkContinue, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			line = offsetToLine(lineStarts, heading.Lines().At(0).Start)
		}

		headings = append(headings, Heading{
			Level:  heading.Level,
			Text:   textContent,
			Line:   line,
			Anchor: Anchor(textContent),
		})
		return ast.WalkContinue, nil
	})

	return headings
}

// Anchor converts heading text to a URL-safe fragment.
func Anchor(text string) string {
	s := goslug.Make(text)
	if s == "" {
		s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(text), " ", "-"))
	}
	return s
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine returns the 1-indexed line containing a byte offset.
func offsetToLine(lineStarts []int, offset int) int {
	i := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset })
	return i
}
