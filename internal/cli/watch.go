package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/darryllawson/notedown/internal/watcher"
)

var watchDebug bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and lint notes as they change",
	Long: `Watches the notes directory and re-lints each note when it is saved.
Broken links are reported as they appear.

This runs in the foreground. Rapid saves of the same file are
coalesced.

Examples:
  notedown watch
  notedown watch ~/notes
  notedown watch --debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := dirVault(args)
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if watchDebug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		w := watcher.New(watcher.Config{
			Dir:    v.Dir,
			Logger: logger,
			OnChange: func(path string) {
				report, warnings, err := v.LintFile(path)
				if err != nil {
					logger.Warn("lint failed", slog.String("path", path), slog.String("err", err.Error()))
					return
				}
				if report.Clean() && len(warnings) == 0 {
					logger.Debug("clean", slog.String("path", path))
					return
				}
				printLintReport(report)
				printIndexWarnings(warnings)
			},
		})

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			fmt.Println("\nShutting down watcher...")
			cancel()
		}()

		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(watchCmd)
}
