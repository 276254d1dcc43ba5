package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mouse-blink/placefold/internal/controller"
	controllermocks "github.com/mouse-blink/placefold/internal/controller/mocks"
	"github.com/mouse-blink/placefold/internal/domain"
	domainmocks "github.com/mouse-blink/placefold/internal/domain/mocks"
	m "github.com/mouse-blink/placefold/internal/model"
)

type harness struct {
	workflow *domainmocks.MockWorkflow
	ui       *controllermocks.MockUI
	cfg      m.Config
	out      *bytes.Buffer
}

// newHarness replaces the workflow and UI factories with mocks and resets the
// package-level flags.
func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		workflow: domainmocks.NewMockWorkflow(t),
		ui:       controllermocks.NewMockUI(t),
		out:      &bytes.Buffer{},
	}

	originalWorkflow, originalUI := newWorkflow, newUI

	newWorkflow = func(cfg m.Config, _ *zap.Logger) domain.Workflow {
		h.cfg = cfg
		return h.workflow
	}
	newUI = func(*cobra.Command) controller.UI { return h.ui }

	t.Cleanup(func() {
		newWorkflow, newUI = originalWorkflow, originalUI
		configFlag, verboseFlag = "", false
		parseForceFlag, statusDiffFlag = false, false
		rebuildOutputFlag, watchOutputFlag = "", ""
		watchDebounceFlag = 0
	})

	return h
}

func (h *harness) run(args ...string) error {
	root := newRootCmd()
	root.AddCommand(newParseCmd(), newRebuildCmd(), newStatusCmd(), newWatchCmd())
	root.SetOut(h.out)
	root.SetErr(h.out)
	root.SetArgs(args)

	return root.Execute()
}

func TestParseCmd(t *testing.T) {
	h := newHarness(t)

	report := m.ParseReport{Elements: 3}

	h.workflow.EXPECT().
		Parse(domain.ParseArgs{Document: "game.rbxlx", Folder: "game", Force: true}).
		Return(report, nil)
	h.ui.EXPECT().DisplayParseResult(report, nil).Return(nil)

	require.NoError(t, h.run("parse", "game.rbxlx", "game", "--force"))
	assert.Equal(t, m.DefaultConfig(), h.cfg)
}

func TestParseCmd_Failure(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("boom")

	h.workflow.EXPECT().Parse(mock.Anything).Return(m.ParseReport{}, boom)
	h.ui.EXPECT().DisplayParseResult(m.ParseReport{}, boom).Return(boom)

	err := h.run("parse", "game.rbxlx", "game")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, h.out.String())
}

func TestParseCmd_Args(t *testing.T) {
	h := newHarness(t)

	assert.Error(t, h.run("parse", "game.rbxlx"))
	assert.Contains(t, h.out.String(), "Usage:")
}

func TestRebuildCmd(t *testing.T) {
	h := newHarness(t)

	report := m.RebuildReport{Output: "out.rbxlx", Stage: m.StageDone}

	h.workflow.EXPECT().
		Rebuild(domain.RebuildArgs{Folder: "game", Output: "out.rbxlx"}).
		Return(report, nil)
	h.ui.EXPECT().DisplayRebuildResult(report, nil).Return(nil)

	require.NoError(t, h.run("rebuild", "game", "-o", "out.rbxlx"))
}

func TestRebuildCmd_WarningsDoNotFail(t *testing.T) {
	h := newHarness(t)

	report := m.RebuildReport{Warnings: []m.Warning{{Code: m.WarnMissingFile}}}

	h.workflow.EXPECT().Rebuild(domain.RebuildArgs{Folder: "game"}).Return(report, nil)
	h.ui.EXPECT().DisplayRebuildResult(report, nil).Return(nil)

	assert.NoError(t, h.run("rebuild", "game"))
}

func TestStatusCmd(t *testing.T) {
	h := newHarness(t)

	report := m.RebuildReport{Changes: []m.Change{{Path: "a.lua"}}}
	diffs := []m.TextDiff{{Path: "a.lua", Patch: "-a\n+b\n"}}

	h.workflow.EXPECT().Status(domain.StatusArgs{Folder: "game", Diff: true}).Return(report, diffs, nil)
	h.ui.EXPECT().DisplayStatus(report, diffs, nil).Return(nil)

	require.NoError(t, h.run("status", "game", "--diff"))
}

func TestWatchCmd(t *testing.T) {
	h := newHarness(t)

	report := m.RebuildReport{Output: "game.rebuilt.rbxlx"}

	h.workflow.EXPECT().
		Watch(mock.Anything, domain.WatchArgs{
			RebuildArgs: domain.RebuildArgs{Folder: "game"},
			Debounce:    200 * time.Millisecond,
		}, mock.Anything).
		Run(func(_ context.Context, _ domain.WatchArgs, onRun func(m.RebuildReport, error)) {
			onRun(report, nil)
		}).
		Return(nil)
	h.ui.EXPECT().DisplayWatchEvent(report, nil).Return()

	require.NoError(t, h.run("watch", "game", "--debounce", "200ms"))
}

func TestWatchCmd_WatcherFailure(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("too many open files")

	h.workflow.EXPECT().Watch(mock.Anything, mock.Anything, mock.Anything).Return(boom)
	h.ui.EXPECT().DisplayWatchEvent(m.RebuildReport{Folder: "game"}, boom).Return()

	assert.ErrorIs(t, h.run("watch", "game"), boom)
}

func TestSetup_Config(t *testing.T) {
	t.Run("folder config", func(t *testing.T) {
		h := newHarness(t)
		folder := t.TempDir()

		require.NoError(t, os.WriteFile(filepath.Join(folder, "placefold.yaml"), []byte("debounce: 2s\n"), 0o644))

		h.workflow.EXPECT().Status(mock.Anything).Return(m.RebuildReport{}, nil, nil)
		h.ui.EXPECT().DisplayStatus(mock.Anything, mock.Anything, nil).Return(nil)

		require.NoError(t, h.run("status", folder))
		assert.Equal(t, 2*time.Second, h.cfg.Debounce)
	})

	t.Run("explicit config must exist", func(t *testing.T) {
		h := newHarness(t)

		err := h.run("status", t.TempDir(), "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		assert.Contains(t, h.out.String(), "Error:")
	})

	t.Run("invalid config", func(t *testing.T) {
		h := newHarness(t)
		config := filepath.Join(t.TempDir(), "placefold.yaml")

		require.NoError(t, os.WriteFile(config, []byte("unknown_key: 1\n"), 0o644))

		assert.Error(t, h.run("rebuild", t.TempDir(), "--config", config))
	})
}

func TestBuildLogger(t *testing.T) {
	quiet, err := buildLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zap.WarnLevel))

	verbose, err := buildLogger(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zap.DebugLevel))
}

func TestRootCmd_Help(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--help"))

	for _, want := range []string{"parse", "rebuild", "status", "watch", "--verbose", "--config"} {
		assert.Contains(t, h.out.String(), want)
	}
}

func TestNewUI_RedirectedOutputIsPlain(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &controller.SimpleUI{}, newUI(cmd))
}

func TestIsTerminal(t *testing.T) {
	t.Run("regular file", func(t *testing.T) {
		file, err := os.CreateTemp(t.TempDir(), "placefold-out")
		require.NoError(t, err)
		defer file.Close()

		assert.False(t, isTerminal(file))
	})

	t.Run("closed file", func(t *testing.T) {
		file, err := os.CreateTemp(t.TempDir(), "placefold-out")
		require.NoError(t, err)
		require.NoError(t, file.Close())

		assert.False(t, isTerminal(file))
	})

	t.Run("character device", func(t *testing.T) {
		file, err := os.Open(os.DevNull)
		if err != nil {
			t.Skip("null device not available")
		}
		defer file.Close()

		assert.True(t, isTerminal(file))
	})

	t.Run("buffer", func(t *testing.T) {
		assert.False(t, isTerminal(&bytes.Buffer{}))
	})
}
