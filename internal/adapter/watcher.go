package adapter

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	m "github.com/mouse-blink/placefold/internal/model"
)

// FolderWatcher reports batches of changed paths under a folder.
type FolderWatcher interface {
	// Watch blocks until ctx is done. After each quiet period of length
	// debounce following one or more changes it sends the changed paths on out.
	// Watch closes out when it returns.
	Watch(ctx context.Context, root m.Path, debounce time.Duration, out chan<- []m.Path) error
}

// FSNotifyWatcher implements FolderWatcher with fsnotify. Changes inside the
// meta directory and to temporary files never trigger a batch.
type FSNotifyWatcher struct {
	logger *zap.Logger
}

// NewFSNotifyWatcher constructs an FSNotifyWatcher.
func NewFSNotifyWatcher(logger *zap.Logger) *FSNotifyWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FSNotifyWatcher{logger: logger}
}

// Watch implements FolderWatcher.
func (w *FSNotifyWatcher) Watch(ctx context.Context, root m.Path, debounce time.Duration, out chan<- []m.Path) error {
	defer close(out)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			w.logger.Warn("closing watcher", zap.Error(err))
		}
	}()

	if err := w.addTree(watcher, string(root)); err != nil {
		return err
	}

	w.logger.Debug("watching folder", zap.String("root", string(root)))

	var (
		pending = make(map[m.Path]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			if event.Has(fsnotify.Create) {
				// New directories must be watched too; errors mean it is a file
				// or already gone.
				_ = w.addTree(watcher, event.Name)
			}

			w.logger.Debug("change", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending[m.Path(event.Name)] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil

			batch := make([]m.Path, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}

			sort.Slice(batch, func(i, j int) bool { return batch[i] < batch[j] })
			pending = make(map[m.Path]struct{})

			select {
			case out <- batch:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (w *FSNotifyWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if inMetaDir(event.Name) {
		return false
	}

	base := filepath.Base(event.Name)

	return !strings.HasPrefix(base, ".") || !strings.Contains(base, ".tmp-")
}

func (w *FSNotifyWatcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			return nil
		}

		if !d.IsDir() {
			if path == root {
				return errors.New("not a directory")
			}

			return nil
		}

		if d.Name() == MetaDirName {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

func inMetaDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == MetaDirName {
			return true
		}
	}

	return false
}
