package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/rename"
	"github.com/darryllawson/notedown/internal/title"
	"github.com/darryllawson/notedown/internal/ui"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync <file>",
	Short: "Sync a note's filename with its body title",
	Long: `Compares the note's first-line heading against the primary title in
its filename. When they diverge, renames the file and rewrites every
[[link]] in the directory that pointed at the old title.

Requires reflect_title_in_filename = true in the config; otherwise the
note is reported stable and nothing happens. With --dry-run the rename
is planned but nothing is touched.

Examples:
  notedown sync apple.md
  notedown sync apple.md --dry-run
  notedown sync apple.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		v, err := fileVault(path)
		if err != nil {
			return handleError(ErrNotANote, err, "")
		}

		var result *rename.Result
		if syncDryRun {
			result, err = v.PlanSync(path)
		} else {
			result, err = v.SyncFile(path)
		}
		if err != nil {
			switch {
			case errors.Is(err, rename.ErrConflict):
				return handleError(ErrRenameConflict, err, "Another note already has that filename")
			case errors.Is(err, title.ErrMalformedFilename):
				return handleError(ErrMalformedName, err, "")
			}
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: len(result.Rewrites)})
			return nil
		}

		switch result.State {
		case rename.Stable:
			fmt.Println(ui.Info("filename already reflects the title"))
		case rename.NoBodyTitle:
			fmt.Println(ui.Info("note has no body title; nothing to sync"))
		case rename.Divergent:
			verb := "renamed"
			if syncDryRun {
				verb = "would rename"
			}
			fmt.Println(ui.Successf("%s %s -> %s", verb, result.OldPath, result.NewPath))
			for _, rw := range result.Rewrites {
				if rw.Error != "" {
					fmt.Println(ui.Warningf("%s: %s", rw.Path, rw.Error))
					continue
				}
				fmt.Printf("  %s %s\n", ui.FilePath(rw.Path), ui.Count(rw.Rewritten, "link updated", "links updated"))
			}
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan the rename without touching any file")
	rootCmd.AddCommand(syncCmd)
}
