// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/config"
	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/title"
	"github.com/darryllawson/notedown/internal/ui"
	"github.com/darryllawson/notedown/internal/vault"
)

var (
	// Global flags
	dirFlag    string
	configPath string

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "notedown",
	Short: "Notedown - a link index for flat directories of markdown notes",
	Long: `Notedown maintains a corpus of markdown notes in a flat directory,
where every note's filename carries its titles and notes link to each
other by title with [[Title]] syntax.

It lints notes for broken links, resolves links to files, keeps
filenames in sync with body titles, and answers questions about the
corpus (backlinks, titles, stats).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that run before a config is meaningful.
		switch cmd.Name() {
		case "init", "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Notes directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getDir returns the notes directory to operate on. An optional positional
// argument overrides the --dir flag, which overrides the working directory.
func getDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if dirFlag != "" {
		return dirFlag
	}
	return "."
}

// dirVault builds a vault for a directory command, verifying the directory.
func dirVault(args []string) (*vault.Vault, error) {
	dir := getDir(args)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("notes directory not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}
	return vault.New(dir, getConfig()), nil
}

// fileVault builds a vault rooted at a note file's directory, verifying that
// the path names a note.
func fileVault(path string) (*vault.Vault, error) {
	if !title.IsNote(filepath.Base(path)) {
		return nil, fmt.Errorf("not a note file: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("note not found: %s", path)
	}
	return vault.ForFile(path, getConfig()), nil
}

// indexWarnings adapts index warnings to the response envelope.
func indexWarnings(ws []index.Warning) []Warning {
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Code: w.Code, Path: w.Path, Message: w.Message}
	}
	return out
}
