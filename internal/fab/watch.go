package fab

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for file events to settle.
const DefaultDebounce = 250 * time.Millisecond

// WatchFunc is called after every run started by Watch.
type WatchFunc func(Summary, error)

// Watch runs once, then re-runs whenever a CSV or board file in the watched
// directories changes, until ctx is cancelled. Outputs are always
// overwritten since they are regenerated on every change.
func (r *Runner) Watch(ctx context.Context, opts Options, debounce time.Duration, onRun WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	opts.Overwrite = true

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range watchDirs(opts) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		r.logger.Debug("watching directory", "dir", dir)
	}

	ignored := outputSet(opts)
	run := func() {
		r.Locator.Reset()
		summary, err := r.Run(ctx, opts)
		if onRun != nil {
			onRun(summary, err)
		}
	}
	run()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, ignored) {
				continue
			}
			r.logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			settle = time.After(debounce)

		case <-settle:
			settle = nil
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirs returns the project directory plus the directories of explicit inputs.
func watchDirs(opts Options) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			abs = filepath.Clean(dir)
		}
		if !seen[abs] {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}
	add(opts.Dir)
	for _, kind := range Kinds() {
		if in := opts.Inputs[kind]; in != "" {
			add(filepath.Dir(in))
		}
	}
	return dirs
}

func outputSet(opts Options) map[string]bool {
	set := make(map[string]bool)
	for _, kind := range Kinds() {
		if abs, err := filepath.Abs(OutputFor(kind, opts.Outputs)); err == nil {
			set[abs] = true
		}
	}
	return set
}

// relevantEvent filters out our own outputs, temp files and unrelated files.
func relevantEvent(event fsnotify.Event, outputs map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	if ext != ".csv" && ext != ProjectExtension {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil && outputs[abs] {
		return false
	}
	return true
}
