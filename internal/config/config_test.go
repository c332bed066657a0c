package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darryllawson/notedown/internal/title"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MarkdownExtension != "md" {
		t.Errorf("markdown_extension=%q", cfg.MarkdownExtension)
	}
	if !cfg.ReflectTitleInFilename {
		t.Error("reflect_title_in_filename should default to true")
	}
	if cfg.Convention() != title.Tilde {
		t.Errorf("convention=%v", cfg.Convention())
	}
	if cfg.Normalizer().CaseSensitive {
		t.Error("titles should compare case-insensitively by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
markdown_extension = "markdown"
note_folder_patterns = ["notes", "journal*"]
reflect_title_in_filename = false
title_convention = "parenthetical"
case_sensitive_titles = true

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MarkdownExtension != "markdown" {
		t.Errorf("markdown_extension=%q", cfg.MarkdownExtension)
	}
	if len(cfg.NoteFolderPatterns) != 2 {
		t.Errorf("note_folder_patterns=%v", cfg.NoteFolderPatterns)
	}
	if cfg.ReflectTitleInFilename {
		t.Error("reflect_title_in_filename should be false")
	}
	if cfg.Convention() != title.Parenthetical {
		t.Errorf("convention=%v", cfg.Convention())
	}
	if !cfg.Normalizer().CaseSensitive {
		t.Error("case_sensitive_titles should be true")
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("accent=%q", cfg.UI.Accent)
	}
}

func TestLoadFromPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("markdown_extension = \"mdown\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ReflectTitleInFilename {
		t.Error("absent reflect_title_in_filename should keep default true")
	}
	if cfg.MarkdownExtension != "mdown" {
		t.Errorf("markdown_extension=%q", cfg.MarkdownExtension)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown extension", mutate: func(c *Config) { c.MarkdownExtension = "txt" }},
		{name: "unknown convention", mutate: func(c *Config) { c.TitleConvention = "slashes" }},
		{name: "bad glob", mutate: func(c *Config) { c.NoteFolderPatterns = []string{"[unclosed"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
