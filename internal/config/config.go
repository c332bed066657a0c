// Package config handles global Notedown configuration.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/title"
)

// Config represents the global Notedown configuration.
type Config struct {
	// MarkdownExtension is used when naming newly created notes.
	MarkdownExtension string `toml:"markdown_extension"`

	// NoteFolderPatterns is an ordered glob allow-list matched against a
	// directory's own name. Empty means every directory holds notes.
	NoteFolderPatterns []string `toml:"note_folder_patterns"`

	// ReflectTitleInFilename gates the rename synchronizer: when true,
	// changing a note's first-line heading renames the file and rewrites
	// backlinks.
	ReflectTitleInFilename bool `toml:"reflect_title_in_filename"`

	// TitleConvention selects the filename grammar: "tilde" or
	// "parenthetical".
	TitleConvention string `toml:"title_convention"`

	// CaseSensitiveTitles switches title comparison to literal byte
	// equality. The default matches links case-insensitively.
	CaseSensitiveTitles bool `toml:"case_sensitive_titles"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or hex color ("#RRGGBB")
	// used for paths and highlights in terminal output.
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme for rendered code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MarkdownExtension:      title.DefaultExtension,
		ReflectTitleInFilename: true,
		TitleConvention:        "tilde",
	}
}

// Validate checks the configuration for values the engine cannot act on.
func (c *Config) Validate() error {
	exts := make([]interface{}, len(title.Extensions))
	for i, e := range title.Extensions {
		exts[i] = e
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.MarkdownExtension, validation.Required, validation.In(exts...)),
		validation.Field(&c.TitleConvention, validation.In("", "tilde", "parenthetical", "parens")),
		validation.Field(&c.NoteFolderPatterns, validation.Each(validation.By(validGlob))),
	)
}

func validGlob(v interface{}) error {
	p, _ := v.(string)
	if _, err := path.Match(p, "probe"); err != nil {
		return fmt.Errorf("invalid glob pattern %q", p)
	}
	return nil
}

// Convention returns the active title convention.
func (c *Config) Convention() title.Convention {
	conv, err := title.ParseConvention(c.TitleConvention)
	if err != nil {
		return title.Tilde
	}
	return conv
}

// Normalizer returns the title normalizer implied by the configuration.
func (c *Config) Normalizer() title.Normalizer {
	return title.Normalizer{CaseSensitive: c.CaseSensitiveTitles}
}

// IndexOptions bundles the settings an index build needs.
func (c *Config) IndexOptions() index.Options {
	return index.Options{
		Convention:     c.Convention(),
		Normalizer:     c.Normalizer(),
		FolderPatterns: c.NoteFolderPatterns,
	}
}

// Load loads the configuration from the default location, returning the
// built-in defaults if no file exists.
func Load() (*Config, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path. Absent keys keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the config file path. ~/.config/notedown/config.toml
// wins when it exists; otherwise the OS config dir is used.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "notedown", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "notedown", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// CreateDefault writes a commented default config file if none exists and
// returns its path.
func CreateDefault() (string, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Notedown configuration

# Extension for newly created notes: md, mdown, markdown, or markdn.
# markdown_extension = "md"

# Only directories whose name matches one of these globs are treated as
# notes directories. Empty means every directory.
# note_folder_patterns = ["notes", "journal*"]

# Rename a note's file (and rewrite backlinks) when its first-line heading
# changes.
# reflect_title_in_filename = true

# Filename grammar for titles: "tilde" ("A ~ B.md") or "parenthetical"
# ("A (B, C).md").
# title_convention = "tilde"

# Compare titles byte-for-byte instead of case-insensitively.
# case_sensitive_titles = false

# Optional UI accent color (ANSI 0-255 or #RRGGBB) and code block theme.
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}
