package rename

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/title"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want State
	}{
		{name: "stable", file: "A.md", body: "# A\n", want: Stable},
		{name: "divergent", file: "A.md", body: "# A2\n", want: Divergent},
		{name: "no heading", file: "A.md", body: "plain text\n", want: NoBodyTitle},
		{name: "heading whitespace ignored", file: "A.md", body: "#   A  \n", want: Stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check("/notes/"+tt.file, tt.body, title.Tilde)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("state=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckMalformedFilename(t *testing.T) {
	if _, err := Check("/notes/bad.txt", "# x\n", title.Tilde); !errors.Is(err, title.ErrNotANote) {
		t.Errorf("err=%v, want ErrNotANote", err)
	}
}

func TestSyncRenamesAndRewritesBacklinks(t *testing.T) {
	dir := t.TempDir()
	aBody := "# A2\n\ncontent\n"
	aPath := writeFile(t, dir, "A.md", aBody)
	bPath := writeFile(t, dir, "B.md", "# B\n\nSee [[A]] and [[a]] but not [[C]].\n")

	res, err := Sync(aPath, aBody, index.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Divergent {
		t.Fatalf("state=%v", res.State)
	}

	if _, err := os.Stat(filepath.Join(dir, "A2.md")); err != nil {
		t.Errorf("A2.md missing: %v", err)
	}
	if _, err := os.Stat(aPath); !os.IsNotExist(err) {
		t.Errorf("A.md still present")
	}

	got := readFile(t, bPath)
	want := "# B\n\nSee [[A2]] and [[A2]] but not [[C]].\n"
	if got != want {
		t.Errorf("B.md = %q, want %q", got, want)
	}

	if len(res.Rewrites) != 1 || res.Rewrites[0].Rewritten != 2 {
		t.Errorf("rewrites=%#v", res.Rewrites)
	}
}

func TestSyncKeepsAlternativeTitles(t *testing.T) {
	dir := t.TempDir()
	body := "# New\n"
	path := writeFile(t, dir, "Old ~ Alt.md", body)
	other := writeFile(t, dir, "Other.md", "[[Old]] and [[Alt]]\n")

	res, err := Sync(path, body, index.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(res.NewPath) != "New ~ Alt.md" {
		t.Errorf("new name %s", filepath.Base(res.NewPath))
	}

	got := readFile(t, other)
	if got != "[[New]] and [[Alt]]\n" {
		t.Errorf("other = %q", got)
	}
}

func TestSyncConflictLeavesEverythingUntouched(t *testing.T) {
	dir := t.TempDir()
	aBody := "# A2\n"
	aPath := writeFile(t, dir, "A.md", aBody)
	writeFile(t, dir, "A2.md", "# A2\n")
	bPath := writeFile(t, dir, "B.md", "See [[A]].\n")

	_, err := Sync(aPath, aBody, index.Options{})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err=%v, want ErrConflict", err)
	}

	if _, err := os.Stat(aPath); err != nil {
		t.Errorf("A.md should be unrenamed: %v", err)
	}
	if got := readFile(t, bPath); got != "See [[A]].\n" {
		t.Errorf("B.md modified: %q", got)
	}
}

func TestSyncStableAndNoBodyTitle(t *testing.T) {
	dir := t.TempDir()

	stablePath := writeFile(t, dir, "A.md", "# A\n")
	res, err := Sync(stablePath, "# A\n", index.Options{})
	if err != nil || res.State != Stable {
		t.Fatalf("res=%+v err=%v", res, err)
	}

	plainPath := writeFile(t, dir, "P.md", "no heading\n")
	res, err = Sync(plainPath, "no heading\n", index.Options{})
	if err != nil || res.State != NoBodyTitle {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}

func TestSyncSkipsRawSpanBacklinks(t *testing.T) {
	dir := t.TempDir()
	body := "# A2\n"
	aPath := writeFile(t, dir, "A.md", body)
	bPath := writeFile(t, dir, "B.md", "`[[A]]` stays, [[A]] changes\n")

	if _, err := Sync(aPath, body, index.Options{}); err != nil {
		t.Fatal(err)
	}
	got := readFile(t, bPath)
	if got != "`[[A]]` stays, [[A2]] changes\n" {
		t.Errorf("B.md = %q", got)
	}
}

func TestSyncBodyTitleNotEncodable(t *testing.T) {
	dir := t.TempDir()
	body := "# Bad ~ Title\n"
	path := writeFile(t, dir, "A.md", body)

	if _, err := Sync(path, body, index.Options{}); !errors.Is(err, title.ErrMalformedFilename) {
		t.Fatalf("err=%v, want ErrMalformedFilename", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("A.md should be untouched: %v", err)
	}
}

func TestPlanDryRun(t *testing.T) {
	res, err := Plan("/notes/Foo ~ Alt.md", "# Bar\n", title.Tilde)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != Divergent || filepath.Base(res.NewPath) != "Bar ~ Alt.md" {
		t.Errorf("res=%+v", res)
	}
	if res.OldTitle != "Foo" || res.NewTitle != "Bar" {
		t.Errorf("titles: %q -> %q", res.OldTitle, res.NewTitle)
	}
}
