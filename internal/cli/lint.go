package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var lintOutput string

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Check a note for broken links",
	Long: `Scans one note for [[Title]] links that do not resolve to any note
in its directory and reports each with its byte span and the filename
that would satisfy it.

Intended to run on save from an editor. Exits 1 when broken links are
found.

Examples:
  notedown lint apple.md
  notedown lint apple.md --json
  notedown lint apple.md --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		v, err := fileVault(path)
		if err != nil {
			return handleError(ErrNotANote, err, "")
		}

		report, warnings, err := v.LintFile(path)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		switch {
		case isJSONOutput():
			outputSuccessWithWarnings(report, indexWarnings(warnings), &Meta{Count: len(report.Broken)})
		case lintOutput == "yaml":
			out, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
		default:
			printLintReport(report)
			printIndexWarnings(warnings)
		}

		if len(report.Broken) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVar(&lintOutput, "output", "text", "Output format: text or yaml")
	rootCmd.AddCommand(lintCmd)
}
