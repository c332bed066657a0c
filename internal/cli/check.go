package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/darryllawson/notedown/internal/ui"
)

var checkOutput string

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Lint every note in a directory",
	Long: `Builds the directory index and lints every note against it. Broken
links, malformed filenames, and duplicate titles are all reported in
one pass. Exits 1 when broken links are found.

Examples:
  notedown check
  notedown check ~/notes
  notedown check --json
  notedown check --output yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dirVault(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		start := time.Now()

		report, err := v.Check()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		elapsed := time.Since(start).Milliseconds()

		switch {
		case isJSONOutput():
			outputSuccessWithWarnings(report, indexWarnings(report.Warnings),
				&Meta{Count: report.Broken(), ScanTimeMs: elapsed})
		case checkOutput == "yaml":
			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		default:
			fmt.Println(ui.Header(fmt.Sprintf("Checked %s", report.Dir)))
			for _, r := range report.Reports {
				printBrokenLinks(r)
			}
			printIndexWarnings(report.Warnings)
			fmt.Println()
			if report.Broken() == 0 && len(report.Warnings) == 0 {
				fmt.Println(ui.Successf("no issues in %d notes", report.Notes))
			} else {
				fmt.Printf("%d broken link(s), %d warning(s) in %d notes\n",
					report.Broken(), len(report.Warnings), report.Notes)
			}
		}

		if report.Broken() > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkOutput, "output", "text", "Output format: text or yaml")
	rootCmd.AddCommand(checkCmd)
}
