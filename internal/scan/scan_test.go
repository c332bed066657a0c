package scan

import "testing"

func TestBodyFindsTitleLinks(t *testing.T) {
	body := "See [[Foo]] and [[ Bar baz ]].\nAlso [[Goo]]."
	occs := Titles(Body(body))
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d: %#v", len(occs), occs)
	}

	if occs[0].Text != "Foo" || occs[1].Text != "Bar baz" || occs[2].Text != "Goo" {
		t.Fatalf("unexpected texts: %q %q %q", occs[0].Text, occs[1].Text, occs[2].Text)
	}
	if occs[0].Literal(body) != "[[Foo]]" {
		t.Errorf("literal=%q, want %q", occs[0].Literal(body), "[[Foo]]")
	}
	if occs[1].Literal(body) != "[[ Bar baz ]]" {
		t.Errorf("literal=%q, want %q", occs[1].Literal(body), "[[ Bar baz ]]")
	}
	if occs[2].Line != 2 {
		t.Errorf("line=%d, want 2", occs[2].Line)
	}
}

func TestBodyIgnoresRawSpans(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "inline code", body: "`[[X]]` is not a link.", want: 0},
		{name: "double backtick", body: "``a `[[X]]` b`` is not a link.", want: 0},
		{name: "fenced block", body: "```\n[[X]]\n```\n", want: 0},
		{name: "tilde fence", body: "~~~\n[[X]]\n~~~\n", want: 0},
		{name: "fence in blockquote", body: "> ```\n> [[X]]\n> ```\n", want: 0},
		{name: "after fence closes", body: "```\n[[X]]\n```\n[[Y]]\n", want: 1},
		{name: "link next to code", body: "`code` then [[X]]", want: 1},
		{name: "closer inside code", body: "[[X `]]` still open", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Titles(Body(tt.body))
			if len(got) != tt.want {
				t.Fatalf("got %d title occurrences, want %d: %#v", len(got), tt.want, got)
			}
		})
	}
}

func TestBodyUnmatchedOpener(t *testing.T) {
	occs := Body("this [[ is ordinary prose\nand [[Foo]] is a link")
	titles := Titles(occs)
	if len(titles) != 1 || titles[0].Text != "Foo" {
		t.Fatalf("expected single [[Foo]] link, got %#v", titles)
	}
}

func TestBodyEmptyAndTripleBrackets(t *testing.T) {
	if got := Titles(Body("empty [[  ]] span")); len(got) != 0 {
		t.Errorf("blank span: got %#v, want none", got)
	}
	if got := Titles(Body("array [[[ref]]] syntax")); len(got) != 0 {
		t.Errorf("triple brackets: got %#v, want none", got)
	}
}

func TestBodyFindsURLs(t *testing.T) {
	body := "Read [docs](https://example.com/a) or <https://example.com/b> or https://example.com/c now."
	occs := Body(body)
	var urls []string
	for _, o := range occs {
		if o.Kind == KindURL {
			urls = append(urls, o.Text)
		}
	}
	want := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls %v, want %v", len(urls), urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("url %d: got %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestBodyMixedOrder(t *testing.T) {
	body := "[[A]] then https://example.com then [[B]]"
	occs := Body(body)
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %#v", occs)
	}
	if occs[0].Kind != KindTitle || occs[1].Kind != KindURL || occs[2].Kind != KindTitle {
		t.Fatalf("unexpected kind order: %v %v %v", occs[0].Kind, occs[1].Kind, occs[2].Kind)
	}
	for i := 1; i < len(occs); i++ {
		if occs[i].Start < occs[i-1].End {
			t.Fatalf("occurrences overlap or out of order: %#v", occs)
		}
	}
}

func TestAt(t *testing.T) {
	body := "See [[Foo]] and https://example.com/x here"

	occ, ok := At(body, 6)
	if !ok || occ.Kind != KindTitle || occ.Text != "Foo" {
		t.Fatalf("offset in link: got %#v ok=%v", occ, ok)
	}

	urlStart := 16
	occ, ok = At(body, urlStart+3)
	if !ok || occ.Kind != KindURL {
		t.Fatalf("offset in url: got %#v ok=%v", occ, ok)
	}

	if _, ok := At(body, 0); ok {
		t.Error("offset in prose should not hit an occurrence")
	}
}

func TestBodyRestartable(t *testing.T) {
	body := "[[A]] and [[B]]"
	first := Body(body)
	second := Body(body)
	if len(first) != len(second) {
		t.Fatalf("scans differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("occurrence %d differs: %#v vs %#v", i, first[i], second[i])
		}
	}
}
