package generate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Brannigan123/blessed-icon-template/parallel"
)

// editors often write a file in several steps, wait for them to settle
const debounce = 300 * time.Millisecond

func (c *CLICmd) watchedFiles() map[string]struct{} {
	files := map[string]struct{}{filepath.Clean(c.cfg.Path): {}}
	for _, ref := range c.cfg.ColorRefs() {
		files[filepath.Clean(ref)] = struct{}{}
	}
	return files
}

// watchDirs watches the parent folders rather than the files, so that files replaced by a
// rename keep being tracked.
func watchDirs(watcher *fsnotify.Watcher, files map[string]struct{}) {
	watched := make(map[string]struct{})
	for _, dir := range watcher.WatchList() {
		watched[dir] = struct{}{}
	}

	for file := range files {
		dir := filepath.Dir(file)
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			slog.Warn("could not watch folder", "dir", dir, "error", err)
			continue
		}
		watched[dir] = struct{}{}
	}
}

func (c *CLICmd) watch(ctx context.Context, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	files := c.watchedFiles()
	watchDirs(watcher, files)

	if _, err := Generate(c.cfg, worker, wait); err != nil {
		slog.Error("generation finished with errors", "error", err)
	}
	slog.Info("watching for changes", "files", len(files))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := files[filepath.Clean(ev.Name)]; !tracked {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		case <-timer.C:
			cfg, err := c.load()
			if err != nil {
				slog.Error("could not reload config, keeping the previous one", "error", err)
				continue
			}
			c.cfg = cfg
			files = c.watchedFiles()
			watchDirs(watcher, files)

			if _, err := Generate(c.cfg, worker, wait); err != nil {
				slog.Error("generation finished with errors", "error", err)
			}
		}
	}
}
