package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/config"
	"github.com/darryllawson/notedown/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Writes a commented default config to the user config directory
(typically ~/.config/notedown/config.toml). Does nothing if the file
already exists.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("wrote %s", path)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
