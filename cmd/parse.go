package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/placefold/internal/domain"
	m "github.com/mouse-blink/placefold/internal/model"
)

var parseForceFlag bool

// parseCmd represents the parse command.
var parseCmd = newParseCmd()

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <place.rbxlx> <folder>",
		Short: "Export a place document into a folder",
		Long: `Export a place document into a folder of property and script files.

The folder must be empty or missing. With --force an existing folder is
cleared first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := m.Path(args[1])

			workflow, ui, err := setup(cmd, folder)
			if err != nil {
				return err
			}

			report, err := workflow.Parse(domain.ParseArgs{
				Document: m.Path(args[0]),
				Folder:   folder,
				Force:    parseForceFlag,
			})

			return ui.DisplayParseResult(report, err)
		},
	}
	cmd.Flags().BoolVarP(&parseForceFlag, "force", "f", false, "replace the contents of a non-empty folder")

	return cmd
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
