package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/placefold/internal/domain"
	m "github.com/mouse-blink/placefold/internal/model"
)

var statusDiffFlag bool

// statusCmd represents the status command.
var statusCmd = newStatusCmd()

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <folder>",
		Short: "List the changes a rebuild would apply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := m.Path(args[0])

			workflow, ui, err := setup(cmd, folder)
			if err != nil {
				return err
			}

			report, diffs, err := workflow.Status(domain.StatusArgs{Folder: folder, Diff: statusDiffFlag})

			return ui.DisplayStatus(report, diffs, err)
		},
	}
	cmd.Flags().BoolVarP(&statusDiffFlag, "diff", "d", false, "show a unified diff of each change")

	return cmd
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
