package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/title"
	"github.com/darryllawson/notedown/internal/ui"
)

var catPlain bool

var catCmd = &cobra.Command{
	Use:   "cat <title|file>",
	Short: "Print a note, rendered for the terminal",
	Long: `Prints a note's body. The argument is a title to resolve against the
notes directory, or a note path. On a terminal the markdown is rendered
with styling; piped output and --plain emit the raw body.

Examples:
  notedown cat "banana tree"
  notedown cat apple.md
  notedown cat apple.md --plain`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]

		path := arg
		if !title.IsNote(filepath.Base(arg)) {
			// Treat the argument as a title.
			v, err := dirVault(nil)
			if err != nil {
				return handleError(ErrDirNotFound, err, "")
			}
			res, err := v.ResolveText(arg)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if res.Kind != "file" {
				return handleErrorMsg(ErrTitleNotFound,
					fmt.Sprintf("no note titled %q", arg),
					fmt.Sprintf("Run 'notedown new %q' to create it", arg))
			}
			path = res.Path
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path": path,
				"body": string(body),
			}, nil)
			return nil
		}

		dc := ui.NewDisplayContext()
		if catPlain || !dc.IsTTY {
			fmt.Print(string(body))
			return nil
		}

		rendered, err := ui.RenderMarkdown(string(body), dc.TermWidth)
		if err != nil {
			// Styling is best effort; fall back to the raw body.
			fmt.Print(string(body))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	catCmd.Flags().BoolVar(&catPlain, "plain", false, "Print the raw body without rendering")
	rootCmd.AddCommand(catCmd)
}
