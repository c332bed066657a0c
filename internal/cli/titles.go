package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles [dir]",
	Short: "List every title the corpus knows",
	Long: `Prints the sorted list of link targets the directory's notes can
reach, one per line. Useful for completion sources.

Examples:
  notedown titles
  notedown titles ~/notes --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dirVault(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}

		idx, err := v.Index()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		titles := idx.Titles()

		if isJSONOutput() {
			type item struct {
				Title string `json:"title"`
				Path  string `json:"path"`
			}
			items := make([]item, 0, len(titles))
			for _, t := range titles {
				it := item{Title: t}
				if note, ok := idx.Lookup(t); ok {
					it.Path = note.Path
				}
				items = append(items, it)
			}
			outputSuccessWithWarnings(map[string]interface{}{"items": items},
				indexWarnings(idx.Warnings()), &Meta{Count: len(items)})
			return nil
		}

		for _, t := range titles {
			fmt.Println(t)
		}
		printIndexWarnings(idx.Warnings())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titlesCmd)
}
