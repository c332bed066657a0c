package vault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/darryllawson/notedown/internal/config"
	"github.com/darryllawson/notedown/internal/rename"
)

func testVault(t *testing.T, cfg *config.Config, notes map[string]string) *Vault {
	t.Helper()
	dir := t.TempDir()
	for name, body := range notes {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(dir, cfg)
}

func TestOpenLink(t *testing.T) {
	v := testVault(t, nil, map[string]string{
		"Target.md": "# Target\n",
		"Note.md":   "See [[Target]] and [[Missing]] and https://example.com\n",
	})
	body := "See [[Target]] and [[Missing]] and https://example.com\n"

	t.Run("title resolves to file", func(t *testing.T) {
		res, err := v.OpenLink(body, strings.Index(body, "Target"))
		if err != nil {
			t.Fatal(err)
		}
		if res.Kind != "file" || filepath.Base(res.Path) != "Target.md" {
			t.Fatalf("res=%+v", res)
		}
	})

	t.Run("missing title proposes creation", func(t *testing.T) {
		res, err := v.OpenLink(body, strings.Index(body, "Missing"))
		if err != nil {
			t.Fatal(err)
		}
		if res.Kind != "create" || res.ProposedName != "Missing.md" {
			t.Fatalf("res=%+v", res)
		}
	})

	t.Run("url handed back verbatim", func(t *testing.T) {
		res, err := v.OpenLink(body, strings.Index(body, "https")+2)
		if err != nil {
			t.Fatal(err)
		}
		if res.Kind != "url" || res.Text != "https://example.com" {
			t.Fatalf("res=%+v", res)
		}
	})

	t.Run("prose offset is not a link", func(t *testing.T) {
		if _, err := v.OpenLink(body, 0); !errors.Is(err, ErrNoLinkAtOffset) {
			t.Fatalf("err=%v", err)
		}
	})
}

func TestLintFile(t *testing.T) {
	v := testVault(t, nil, map[string]string{
		"A.md": "# A\n\n[[B]] and [[Missing]]\n",
		"B.md": "# B\n",
	})

	report, _, err := v.LintFile(filepath.Join(v.Dir, "A.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Broken) != 1 || report.Broken[0].Text != "Missing" {
		t.Fatalf("report=%+v", report)
	}
}

func TestSyncFileRenames(t *testing.T) {
	v := testVault(t, nil, map[string]string{
		"A.md": "# A2\n",
		"B.md": "See [[A]]\n",
	})

	res, err := v.SyncFile(filepath.Join(v.Dir, "A.md"))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != rename.Divergent {
		t.Fatalf("state=%v", res.State)
	}
	data, err := os.ReadFile(filepath.Join(v.Dir, "B.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "See [[A2]]\n" {
		t.Errorf("B.md=%q", data)
	}
}

func TestSyncFileDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.ReflectTitleInFilename = false
	v := testVault(t, cfg, map[string]string{"A.md": "# A2\n"})

	res, err := v.SyncFile(filepath.Join(v.Dir, "A.md"))
	if err != nil {
		t.Fatal(err)
	}
	if res.State != rename.Stable {
		t.Fatalf("state=%v", res.State)
	}
	if _, err := os.Stat(filepath.Join(v.Dir, "A.md")); err != nil {
		t.Errorf("A.md should be untouched: %v", err)
	}
}

func TestCreateNote(t *testing.T) {
	v := testVault(t, nil, map[string]string{"Origin ~ Alt.md": "# Origin\n"})

	path, err := v.CreateNote("Fresh", filepath.Join(v.Dir, "Origin ~ Alt.md"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Fresh.md" {
		t.Errorf("path=%s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# Fresh\n\nSee also:\n\n- [[Origin]]\n"
	if string(data) != want {
		t.Errorf("body=%q, want %q", data, want)
	}

	if _, err := v.CreateNote("Fresh", ""); !errors.Is(err, ErrNoteExists) {
		t.Errorf("err=%v, want ErrNoteExists", err)
	}
}

func TestCreateNoteWithoutBacklink(t *testing.T) {
	v := testVault(t, nil, nil)
	path, err := v.CreateNote("Solo", "")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# Solo\n" {
		t.Errorf("body=%q", data)
	}
}

func TestCheck(t *testing.T) {
	v := testVault(t, nil, map[string]string{
		"A.md":  "[[B]] [[Nope]]\n",
		"B.md":  "[[A]]\n",
		"~.md":  "malformed\n",
		"C.txt": "not a note\n",
	})

	report, err := v.Check()
	if err != nil {
		t.Fatal(err)
	}
	if report.Notes != 2 {
		t.Errorf("notes=%d", report.Notes)
	}
	if report.Broken() != 1 {
		t.Errorf("broken=%d, reports=%+v", report.Broken(), report.Reports)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected a malformed-filename warning")
	}
}

func TestStats(t *testing.T) {
	v := testVault(t, nil, map[string]string{
		"A.md": "[[B]] and [[Missing]] and https://example.com\n",
		"B.md": "# B\n",
	})

	st, err := v.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Notes != 2 || st.Links != 2 || st.Broken != 1 || st.URLs != 1 {
		t.Errorf("stats=%+v", st)
	}
}
