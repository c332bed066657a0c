package testutil

import (
	"os"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (n *TestNotes) AssertFileExists(relPath string) {
	n.t.Helper()
	if _, err := os.Stat(n.Path(relPath)); os.IsNotExist(err) {
		n.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (n *TestNotes) AssertFileNotExists(relPath string) {
	n.t.Helper()
	if _, err := os.Stat(n.Path(relPath)); err == nil {
		n.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (n *TestNotes) AssertFileContains(relPath, substr string) {
	n.t.Helper()
	content := n.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		n.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (n *TestNotes) AssertFileNotContains(relPath, substr string) {
	n.t.Helper()
	content := n.ReadFile(relPath)
	if strings.Contains(content, substr) {
		n.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}
