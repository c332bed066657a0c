package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/ui"
	"github.com/darryllawson/notedown/internal/vault"
)

var newLinkBack string

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new note",
	Long: `Creates a note with the given title. The filename is derived from the
title by the configured convention, and the body starts with a heading.

With --link-back, the new note opens with a "See also" link to the note
that linked here, for the edit-follow-create workflow.

Examples:
  notedown new "banana tree"
  notedown new "banana tree" --link-back apple.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dirVault(nil)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}

		path, err := v.CreateNote(args[0], newLinkBack)
		if err != nil {
			if errors.Is(err, vault.ErrNoteExists) {
				return handleError(ErrNoteExistsCode, err, "")
			}
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("created %s", path)))
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newLinkBack, "link-back", "", "Note file to link back to from the new note")
	rootCmd.AddCommand(newCmd)
}
