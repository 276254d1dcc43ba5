package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/placefold/internal/domain"
	m "github.com/mouse-blink/placefold/internal/model"
)

var watchOutputFlag string
var watchDebounceFlag time.Duration

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <folder>",
		Short: "Rebuild whenever the folder changes",
		Long: `Rebuild once, then again after every burst of changes in the folder.

A failed rebuild is reported and watching continues. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := m.Path(args[0])

			workflow, ui, err := setup(cmd, folder)
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}

			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = workflow.Watch(ctx, domain.WatchArgs{
				RebuildArgs: domain.RebuildArgs{Folder: folder, Output: m.Path(watchOutputFlag)},
				Debounce:    watchDebounceFlag,
			}, ui.DisplayWatchEvent)

			if errors.Is(err, context.Canceled) {
				return nil
			}

			if err != nil {
				ui.DisplayWatchEvent(m.RebuildReport{Folder: folder}, err)
			}

			return err
		},
	}
	cmd.Flags().StringVarP(&watchOutputFlag, "output", "o", "", "path of the rebuilt document")
	cmd.Flags().DurationVar(&watchDebounceFlag, "debounce", 0, "quiet period before rebuilding (default from config, 500ms)")

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
