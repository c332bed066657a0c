package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/outline"
	"github.com/darryllawson/notedown/internal/ui"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Show a note's heading outline",
	Long: `Extracts the markdown headings of a note with their levels, lines,
and slug anchors.

Examples:
  notedown outline apple.md
  notedown outline apple.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if _, err := fileVault(path); err != nil {
			return handleError(ErrNotANote, err, "")
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		headings := outline.Extract(string(body))

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"headings": headings}, &Meta{Count: len(headings)})
			return nil
		}

		for _, h := range headings {
			indent := strings.Repeat("  ", h.Level-1)
			fmt.Printf("%s%s %s %s\n", indent, ui.LineNum(h.Line), ui.Title(h.Text), ui.Muted.Render("#"+h.Anchor))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
