package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/linkdb"
	"github.com/darryllawson/notedown/internal/ui"
)

var backlinksCmd = &cobra.Command{
	Use:   "backlinks <title>",
	Short: "Show notes linking to a title",
	Long: `Shows every note whose body links to the given title, with the line
the link appears on.

The answer comes from the link cache under .notedown/, which is
refreshed from changed files before the query. Deleting the cache
directory is always safe.

Examples:
  notedown backlinks "banana tree"
  notedown backlinks apple --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		v, err := dirVault(nil)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		start := time.Now()

		idx, err := v.Index()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		db, err := linkdb.Open(v.Dir, v.Config().Normalizer())
		if err != nil {
			return handleError(ErrDatabaseError, err, "Delete the .notedown directory and retry")
		}
		defer db.Close()

		if err := db.Refresh(idx); err != nil {
			return handleError(ErrDatabaseError, err, "Delete the .notedown directory and retry")
		}

		links, err := db.Backlinks(target)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"target": target,
				"items":  links,
			}, &Meta{Count: len(links), ScanTimeMs: elapsed})
			return nil
		}

		if len(links) == 0 {
			fmt.Printf("No backlinks found for %q\n", target)
			return nil
		}
		fmt.Println(ui.Header(fmt.Sprintf("Backlinks to %q", target)))
		for _, l := range links {
			fmt.Printf("  %s:%s  [[%s]]\n", ui.FilePath(l.Source), ui.LineNum(l.Line), l.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backlinksCmd)
}
