package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats [dir]",
	Short: "Show corpus statistics",
	Long: `Scans the directory and summarizes it: note and title counts, link
and URL counts, and how many links are broken.

Examples:
  notedown stats
  notedown stats ~/notes --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dirVault(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		start := time.Now()

		st, err := v.Stats()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(st, &Meta{ScanTimeMs: elapsed})
			return nil
		}

		fmt.Println(ui.Header("Corpus statistics"))
		fmt.Printf("%s %s\n", ui.Muted.Render("Notes:  "), ui.Accent.Render(fmt.Sprintf("%d", st.Notes)))
		fmt.Printf("%s %s\n", ui.Muted.Render("Titles: "), ui.Accent.Render(fmt.Sprintf("%d", st.Titles)))
		fmt.Printf("%s %s\n", ui.Muted.Render("Links:  "), ui.Accent.Render(fmt.Sprintf("%d", st.Links)))
		fmt.Printf("%s %s\n", ui.Muted.Render("URLs:   "), ui.Accent.Render(fmt.Sprintf("%d", st.URLs)))
		fmt.Printf("%s %s\n", ui.Muted.Render("Broken: "), ui.Accent.Render(fmt.Sprintf("%d", st.Broken)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
