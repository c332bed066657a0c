package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/ui"
	"github.com/darryllawson/notedown/internal/vault"
)

var (
	openAt   int
	openLink string
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Resolve the link at a position in a note",
	Long: `Resolves the link under the cursor. With --at, finds the link
occurrence covering that byte offset in the file. With --link, resolves
the given display text directly (for editors that extract the text
themselves).

The result is one of three kinds:
  url     an external URL, to be handed to the system opener
  file    the path of the note the link resolves to
  create  no note has that title; the proposed filename to create

Examples:
  notedown open apple.md --at 120
  notedown open apple.md --link "banana tree"
  notedown open apple.md --at 120 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		v, err := fileVault(path)
		if err != nil {
			return handleError(ErrNotANote, err, "")
		}

		var result *vault.OpenLinkResult
		if openLink != "" {
			result, err = v.ResolveText(openLink)
		} else {
			if !cmd.Flags().Changed("at") {
				return handleErrorMsg(ErrInvalidArgument, "either --at or --link is required", "")
			}
			body, readErr := os.ReadFile(path)
			if readErr != nil {
				return handleError(ErrFileReadError, readErr, "")
			}
			result, err = v.OpenLink(string(body), openAt)
		}
		if err != nil {
			if errors.Is(err, vault.ErrNoLinkAtOffset) {
				return handleError(ErrNoLinkAtOffset, err, "Position the cursor inside a [[link]] or URL")
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}

		switch result.Kind {
		case "url":
			fmt.Println(ui.Info(result.Text))
		case "file":
			fmt.Println(ui.FilePath(result.Path))
		case "create":
			fmt.Println(ui.Hint(fmt.Sprintf("no note titled %q; would create %s", result.Text, result.ProposedName)))
		}
		return nil
	},
}

func init() {
	openCmd.Flags().IntVar(&openAt, "at", 0, "Byte offset of the cursor in the file")
	openCmd.Flags().StringVar(&openLink, "link", "", "Link display text to resolve directly")
	rootCmd.AddCommand(openCmd)
}
