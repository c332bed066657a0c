package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darryllawson/notedown/internal/index"
)

func testIndex(t *testing.T, names ...string) *index.Index {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	idx, err := index.Build(dir, index.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestResolve(t *testing.T) {
	idx := testIndex(t, "Foo ~ Bar ~ Goo.md", "Other.md")
	r := New(idx, "")

	t.Run("primary title", func(t *testing.T) {
		res := r.Resolve("Foo")
		if !res.Found || res.Note.Name != "Foo ~ Bar ~ Goo.md" {
			t.Fatalf("got %+v", res)
		}
	})

	t.Run("alternative titles hit the same file", func(t *testing.T) {
		for _, alt := range []string{"Bar", "Goo"} {
			res := r.Resolve(alt)
			if !res.Found || res.Note.Name != "Foo ~ Bar ~ Goo.md" {
				t.Fatalf("%s: got %+v", alt, res)
			}
		}
	})

	t.Run("case and whitespace normalized", func(t *testing.T) {
		if res := r.Resolve("  other "); !res.Found {
			t.Fatalf("got %+v", res)
		}
	})

	t.Run("not found proposes a filename", func(t *testing.T) {
		res := r.Resolve(" New Note ")
		if res.Found {
			t.Fatalf("got %+v", res)
		}
		if res.ProposedName != "New Note.md" {
			t.Errorf("proposed %q, want %q", res.ProposedName, "New Note.md")
		}
	})

	t.Run("no partial matching", func(t *testing.T) {
		if res := r.Resolve("Fo"); res.Found {
			t.Fatalf("got %+v", res)
		}
	})
}

func TestResolveCustomExtension(t *testing.T) {
	idx := testIndex(t)
	r := New(idx, "markdown")
	if res := r.Resolve("Missing"); res.ProposedName != "Missing.markdown" {
		t.Errorf("proposed %q", res.ProposedName)
	}
}
