// Package testutil provides reusable test fixtures for notes-directory tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNotes represents a temporary notes directory for testing.
type TestNotes struct {
	Dir   string
	t     *testing.T
	files map[string]string
}

// NewTestNotes creates a new notes directory builder.
// Call Build() to create the actual directory.
func NewTestNotes(t *testing.T) *TestNotes {
	t.Helper()
	return &TestNotes{
		t:     t,
		files: make(map[string]string),
	}
}

// WithNote adds a note file. The name is relative to the notes root
// and should carry a markdown extension.
func (n *TestNotes) WithNote(name, body string) *TestNotes {
	n.files[name] = body
	return n
}

// WithFile adds an arbitrary file, for non-note clutter.
func (n *TestNotes) WithFile(name, content string) *TestNotes {
	n.files[name] = content
	return n
}

// Build creates the directory and all configured files.
func (n *TestNotes) Build() *TestNotes {
	n.t.Helper()
	n.Dir = n.t.TempDir()
	for name, content := range n.files {
		n.writeFile(name, content)
	}
	return n
}

func (n *TestNotes) writeFile(relPath, content string) {
	n.t.Helper()
	fullPath := filepath.Join(n.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		n.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		n.t.Fatalf("failed to write file %s: %v", relPath, err)
	}
}

// Path returns the absolute path of a file inside the notes directory.
func (n *TestNotes) Path(relPath string) string {
	return filepath.Join(n.Dir, relPath)
}

// ReadFile reads a file from the notes directory and fails the test on error.
func (n *TestNotes) ReadFile(relPath string) string {
	n.t.Helper()
	data, err := os.ReadFile(n.Path(relPath))
	if err != nil {
		n.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(data)
}

// WriteFile writes a file after Build, for mutation during a test.
func (n *TestNotes) WriteFile(relPath, content string) {
	n.t.Helper()
	n.writeFile(relPath, content)
}
