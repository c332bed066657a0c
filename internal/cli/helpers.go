package cli

import (
	"fmt"
	"os"

	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/lint"
	"github.com/darryllawson/notedown/internal/ui"
)

// printLintReport renders one note's lint findings for humans.
func printLintReport(report lint.Report) {
	if report.Clean() {
		fmt.Println(ui.Success("no broken links"))
		return
	}
	printBrokenLinks(report)
	fmt.Println()
	fmt.Println(ui.Count(len(report.Broken), "broken link", "broken links"))
}

// printBrokenLinks prints the broken-link lines without a summary.
func printBrokenLinks(report lint.Report) {
	for _, b := range report.Broken {
		fmt.Printf("%s:%s %s %s\n",
			ui.FilePath(report.Path),
			ui.LineNum(b.Line),
			ui.Error(fmt.Sprintf("broken link [[%s]]", b.Text)),
			ui.Hint(fmt.Sprintf("create %s", b.ProposedName)))
	}
}

// printIndexWarnings renders corpus warnings to stderr so they never mix
// with the report on stdout.
func printIndexWarnings(warnings []index.Warning) {
	for _, w := range warnings {
		msg := w.Message
		if w.Path != "" {
			msg = w.Path + ": " + msg
		}
		fmt.Fprintln(os.Stderr, ui.Warningf("%s: %s", w.Code, msg))
	}
}
