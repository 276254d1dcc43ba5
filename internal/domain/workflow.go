package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/placefold/internal/adapter"
	m "github.com/mouse-blink/placefold/internal/model"
)

const rebuiltSuffix = ".rebuilt.rbxlx"

// ErrFolderNotEmpty is returned by Parse when the target folder already has
// content and Force is not set.
var ErrFolderNotEmpty = errors.New("folder is not empty (use --force to replace it)")

// ParseArgs are the inputs of Workflow.Parse.
type ParseArgs struct {
	Document m.Path
	Folder   m.Path
	Force    bool
}

// RebuildArgs are the inputs of Workflow.Rebuild.
type RebuildArgs struct {
	Folder m.Path
	// Output defaults to <parent of Folder>/<document name>.rebuilt.rbxlx.
	Output m.Path
}

// StatusArgs are the inputs of Workflow.Status.
type StatusArgs struct {
	Folder m.Path
	Diff   bool
}

// WatchArgs are the inputs of Workflow.Watch.
type WatchArgs struct {
	RebuildArgs
	Debounce time.Duration
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	Parse(args ParseArgs) (m.ParseReport, error)
	Rebuild(args RebuildArgs) (m.RebuildReport, error)
	Status(args StatusArgs) (m.RebuildReport, []m.TextDiff, error)
	// Watch rebuilds once, then again after every quiet period following a
	// change, until ctx is done. Each run is reported through onRun.
	Watch(ctx context.Context, args WatchArgs, onRun func(m.RebuildReport, error)) error
}

type workflow struct {
	fsAdapter adapter.ProjectFSAdapter
	meta      adapter.MetaStore
	place     adapter.PlaceFileAdapter
	watcher   adapter.FolderWatcher
	exporter  Exporter
	rebuilder Rebuilder
	cfg       m.Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.ProjectFSAdapter,
	meta adapter.MetaStore,
	place adapter.PlaceFileAdapter,
	watcher adapter.FolderWatcher,
	cfg m.Config,
	logger *zap.Logger,
) Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &workflow{
		fsAdapter: fsAdapter,
		meta:      meta,
		place:     place,
		watcher:   watcher,
		exporter:  NewExporter(fsAdapter, cfg, logger),
		rebuilder: NewRebuilder(fsAdapter, meta, place, cfg, logger),
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Parse exports a document into a folder and records the element map and
// snapshot needed to rebuild it.
func (w *workflow) Parse(args ParseArgs) (m.ParseReport, error) {
	report := m.ParseReport{Source: args.Document, Folder: args.Folder}

	text, err := w.fsAdapter.ReadFile(args.Document)
	if err != nil {
		return report, fmt.Errorf("read %s: %w", args.Document, err)
	}

	doc, warnings, err := w.place.Parse(text)
	report.Warnings = warnings

	if err != nil {
		return report, fmt.Errorf("parse %s: %w", args.Document, err)
	}

	if err := w.prepareFolder(args.Folder, args.Force); err != nil {
		return report, err
	}

	em, stats, err := w.exporter.Export(doc, args.Folder)
	if err != nil {
		return report, err
	}

	source, err := filepath.Abs(string(args.Document))
	if err != nil {
		return report, err
	}

	if err := w.meta.SaveSnapshot(args.Folder, text); err != nil {
		return report, err
	}

	sum, err := w.fsAdapter.HashFile(w.meta.SnapshotPath(args.Folder))
	if err != nil {
		return report, fmt.Errorf("hash snapshot: %w", err)
	}

	em.Source = m.Path(source)
	em.SnapshotSHA256 = sum
	em.CreatedAt = w.now()

	if err := w.meta.SaveMap(args.Folder, em); err != nil {
		return report, err
	}

	report.Elements = stats.Elements
	report.Scripts = stats.Scripts
	report.PropertyFiles = stats.PropertyFiles

	w.logger.Info("exported",
		zap.String("document", string(args.Document)),
		zap.String("folder", string(args.Folder)),
		zap.Int("elements", stats.Elements),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// prepareFolder refuses a folder with content unless force is set, in which
// case the folder is cleared.
func (w *workflow) prepareFolder(folder m.Path, force bool) error {
	info, err := w.fsAdapter.FileInfo(folder)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", folder)
	}

	empty, err := w.isEmpty(folder)
	if err != nil {
		return err
	}

	if empty {
		return nil
	}

	if !force {
		exported, err := w.meta.Exists(folder)
		if err != nil {
			return err
		}

		if exported {
			return fmt.Errorf("%s already holds an export: %w", folder, ErrFolderNotEmpty)
		}

		return fmt.Errorf("%s: %w", folder, ErrFolderNotEmpty)
	}

	w.logger.Info("clearing folder", zap.String("folder", string(folder)))

	return w.clearFolder(folder)
}

// clearFolder removes everything in folder except a config file in its root.
func (w *workflow) clearFolder(folder m.Path) error {
	root := filepath.Clean(string(folder))

	var doomed []m.Path

	err := w.fsAdapter.Walk(folder, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Clean(path) == root {
			return nil
		}

		if !isRootConfig(root, path) {
			doomed = append(doomed, m.Path(path))
		}

		if info.IsDir() {
			return filepath.SkipDir
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range doomed {
		if err := w.fsAdapter.RemoveAll(p); err != nil {
			return fmt.Errorf("clear %s: %w", folder, err)
		}
	}

	return nil
}

func isRootConfig(root, path string) bool {
	return filepath.Clean(path) == filepath.Join(root, adapter.ConfigFileName)
}

// isEmpty treats a folder holding only its config file as empty.
func (w *workflow) isEmpty(folder m.Path) (bool, error) {
	errFound := errors.New("found")
	root := filepath.Clean(string(folder))

	err := w.fsAdapter.Walk(folder, true, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Clean(path) == root || isRootConfig(root, path) {
			return nil
		}

		return errFound
	})

	if errors.Is(err, errFound) {
		return false, nil
	}

	return err == nil, err
}

// Rebuild writes the patched document.
func (w *workflow) Rebuild(args RebuildArgs) (m.RebuildReport, error) {
	res, err := w.rebuilder.Rebuild(args.Folder)
	if err != nil {
		return res.Report, err
	}

	report := res.Report
	report.Output = w.outputPath(args, report.Source)

	if err := w.fsAdapter.WriteFile(report.Output, res.Document, 0o644); err != nil {
		return report, fmt.Errorf("write %s: %w", report.Output, err)
	}

	w.logger.Info("rebuilt",
		zap.String("output", string(report.Output)),
		zap.Int("changes", len(report.Changes)),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

func (w *workflow) outputPath(args RebuildArgs, source m.Path) m.Path {
	if args.Output != "" {
		return args.Output
	}

	name := "place"
	if source != "" {
		base := filepath.Base(string(source))
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	parent := filepath.Dir(filepath.Clean(string(args.Folder)))

	return w.fsAdapter.JoinPath(parent, name+rebuiltSuffix)
}

// Status computes the changes without writing anything.
func (w *workflow) Status(args StatusArgs) (m.RebuildReport, []m.TextDiff, error) {
	res, err := w.rebuilder.Rebuild(args.Folder)
	if err != nil {
		return res.Report, nil, err
	}

	if !args.Diff {
		return res.Report, nil, nil
	}

	return res.Report, DiffChanges(res.Report.Changes), nil
}

// Watch runs Rebuild after each batch of changes. Failed runs are reported and
// the loop continues; only a watcher failure ends it early.
func (w *workflow) Watch(ctx context.Context, args WatchArgs, onRun func(m.RebuildReport, error)) error {
	debounce := args.Debounce
	if debounce <= 0 {
		debounce = w.cfg.Debounce
	}

	onRun(w.Rebuild(args.RebuildArgs))

	output, _ := filepath.Abs(string(w.outputPathFor(args.RebuildArgs)))
	batches := make(chan []m.Path)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.watcher.Watch(gctx, args.Folder, debounce, batches)
	})

	g.Go(func() error {
		for batch := range batches {
			if !triggersRebuild(batch, output) {
				continue
			}

			w.logger.Debug("change batch", zap.Int("paths", len(batch)))
			onRun(w.Rebuild(args.RebuildArgs))
		}

		return nil
	})

	return g.Wait()
}

// outputPathFor resolves the default output without running a rebuild.
func (w *workflow) outputPathFor(args RebuildArgs) m.Path {
	if args.Output != "" {
		return args.Output
	}

	em, err := w.meta.LoadMap(args.Folder)
	if err != nil {
		return w.outputPath(args, "")
	}

	return w.outputPath(args, em.Source)
}

func triggersRebuild(batch []m.Path, output string) bool {
	for _, p := range batch {
		abs, err := filepath.Abs(string(p))
		if err != nil || abs != output {
			return true
		}
	}

	return false
}
