package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/placefold/internal/domain"
	m "github.com/mouse-blink/placefold/internal/model"
)

var rebuildOutputFlag string

// rebuildCmd represents the rebuild command.
var rebuildCmd = newRebuildCmd()

func newRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild <folder>",
		Short: "Write an updated place document from an edited folder",
		Long: `Write an updated place document from an edited folder.

The output defaults to <original name>.rebuilt.rbxlx next to the folder.
Problems with single files are reported as warnings and do not fail the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := m.Path(args[0])

			workflow, ui, err := setup(cmd, folder)
			if err != nil {
				return err
			}

			report, err := workflow.Rebuild(domain.RebuildArgs{
				Folder: folder,
				Output: m.Path(rebuildOutputFlag),
			})

			return ui.DisplayRebuildResult(report, err)
		},
	}
	cmd.Flags().StringVarP(&rebuildOutputFlag, "output", "o", "", "path of the rebuilt document")

	return cmd
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
