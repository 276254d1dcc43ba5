// Package cmd provides the root command and CLI setup for placefold.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mouse-blink/placefold/internal/adapter"
	"github.com/mouse-blink/placefold/internal/controller"
	"github.com/mouse-blink/placefold/internal/domain"
	m "github.com/mouse-blink/placefold/internal/model"
)

var verboseFlag bool
var configFlag string

var logger = zap.NewNop()
var fsAdapter adapter.ProjectFSAdapter = adapter.NewLocalProjectFSAdapter()

// newWorkflow wires the adapters behind the commands.
var newWorkflow = func(cfg m.Config, logger *zap.Logger) domain.Workflow {
	return domain.NewWorkflow(
		fsAdapter,
		adapter.NewLocalMetaStore(fsAdapter),
		adapter.NewLocalPlaceFileAdapter(logger),
		adapter.NewFSNotifyWatcher(logger),
		cfg,
		logger,
	)
}

// newUI styles output for a terminal and falls back to plain tables when the
// output is redirected.
var newUI = func(cmd *cobra.Command) controller.UI {
	if out := cmd.OutOrStdout(); isTerminal(out) {
		return controller.NewTUI(out)
	}

	return controller.NewSimpleUI(cmd)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	info, err := file.Stat()

	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placefold",
		Short: "Edit XML place files as a folder of plain files",
		Long: `Placefold exports an XML place document (.rbxlx) into a folder with one
property file per object and one source file per script, and rebuilds the
document from the edited folder.

The rebuilt document matches the original byte for byte except where a value
was actually changed.

  placefold parse game.rbxlx game     export
  placefold status game --diff        show pending changes
  placefold rebuild game              write game.rebuilt.rbxlx
  placefold watch game                rebuild on every change`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := buildLogger(verboseFlag)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}

			logger = l

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default <folder>/"+adapter.ConfigFileName+" when present)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}

// setup loads the configuration for folder and returns the workflow and UI
// for one command run. Once setup succeeds errors are reported by the UI, so
// cobra only sets the exit status.
func setup(cmd *cobra.Command, folder m.Path) (domain.Workflow, controller.UI, error) {
	loader := adapter.NewYAMLConfigLoader(fsAdapter)

	var (
		cfg m.Config
		err error
	)

	if configFlag != "" {
		cfg, err = loader.Load(m.Path(configFlag), true)
	} else {
		cfg, err = loader.Load(fsAdapter.JoinPath(string(folder), adapter.ConfigFileName), false)
	}

	if err != nil {
		return nil, nil, err
	}

	logger.Debug("config loaded",
		zap.Int("script_classes", len(cfg.ScriptExtensions)),
		zap.Duration("debounce", cfg.Debounce))

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return newWorkflow(cfg, logger), newUI(cmd), nil
}
