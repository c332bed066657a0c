package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/darryllawson/notedown/docs"
	"github.com/darryllawson/notedown/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse documentation bundled with the binary",
	Long: `Browse long-form documentation bundled into the notedown binary.
Without arguments, lists the available topics.

For command-level usage, use 'notedown help <command>'.

Examples:
  notedown docs
  notedown docs linking`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := bundledTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Topics"))
			for _, t := range topics {
				fmt.Printf("  %s\n", t)
			}
			fmt.Println()
			fmt.Println(ui.Hint("notedown docs <topic>"))
			return nil
		}

		topic := strings.TrimSuffix(args[0], ".md")
		body, err := fs.ReadFile(builtindocs.FS, path.Join("guide", topic+".md"))
		if err != nil {
			return handleErrorMsg(ErrInvalidArgument,
				fmt.Sprintf("no such topic: %s", topic),
				"Run 'notedown docs' to list topics")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"topic": topic,
				"body":  string(body),
			}, nil)
			return nil
		}

		dc := ui.NewDisplayContext()
		if !dc.IsTTY {
			fmt.Print(string(body))
			return nil
		}
		rendered, err := ui.RenderMarkdown(string(body), dc.TermWidth)
		if err != nil {
			fmt.Print(string(body))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func bundledTopics() ([]string, error) {
	entries, err := fs.ReadDir(builtindocs.FS, "guide")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics, nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
