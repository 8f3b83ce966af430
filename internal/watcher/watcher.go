// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package watcher reruns the generator when configured source files change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ts2openapi/ts2openapi/internal/config"
	"github.com/ts2openapi/ts2openapi/internal/generator"
	"github.com/ts2openapi/ts2openapi/internal/scanner"
)

// RunFunc runs one generation pass.
type RunFunc func(ctx context.Context) (*generator.Result, error)

// Watcher watches the directories holding the configured sources and runs
// the generator after a quiet period with no further changes.
type Watcher struct {
	config   *config.Config
	logger   *slog.Logger
	debounce time.Duration
	run      RunFunc

	// OnResult is called after every successful pass.
	OnResult func(*generator.Result)
}

// New creates a watcher for cfg. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}

	debounce := cfg.Watch.Debounce
	if debounce <= 0 {
		debounce = config.DefaultDebounce
	}

	gen := generator.New(cfg, logger)
	return &Watcher{
		config:   cfg,
		logger:   logger,
		debounce: time.Duration(debounce) * time.Millisecond,
		run:      gen.Run,
	}
}

// WithRunFunc replaces the pass run on every change.
func (w *Watcher) WithRunFunc(run RunFunc) *Watcher {
	w.run = run
	return w
}

// Debounce returns the quiet period between the last change and a rerun.
func (w *Watcher) Debounce() time.Duration {
	return w.debounce
}

// Watch runs one pass immediately and then one pass per burst of changes
// until ctx is cancelled. Pass errors are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	dirs, err := w.Dirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", "path", dir)
	}

	w.pass(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("source changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-timer.C:
			w.pass(ctx)
		}
	}
}

func (w *Watcher) pass(ctx context.Context) {
	start := time.Now()

	result, err := w.run(ctx)
	if err != nil {
		w.logger.Error("generation failed", "error", err)
		return
	}

	w.logger.Info("generated document",
		"routes", len(result.Routes),
		"schemas", len(result.Schemas),
		"duration", time.Since(start))

	if w.OnResult != nil {
		w.OnResult(result)
	}
}

// relevant reports whether an event touches a supported source file.
// Chmod-only events are ignored, and so is the configured output file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.config.Output != "" && filepath.Clean(event.Name) == filepath.Clean(w.config.Output) {
		return false
	}
	return scanner.IsSupportedFile(event.Name)
}

// Dirs returns the directories to watch: the parent directory of file
// entries, and every directory below a directory entry or the base of a
// glob entry. fsnotify watches are not recursive, so nested directories
// are listed individually. Directories matched by the configured exclude
// patterns are skipped the same way the scanner skips them.
func (w *Watcher) Dirs() ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	sc := scanner.New(scanner.Config{ExcludePatterns: w.config.Exclude})

	for _, entry := range w.config.PathList {
		root := entry
		if config.IsGlob(entry) {
			root = globBase(entry)
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, &config.SourcePathError{Path: entry}
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = d.Name()
			}
			if sc.ExcludesDir(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
		}
	}

	if len(dirs) == 0 {
		return nil, errors.New("nothing to watch")
	}
	return dirs, nil
}

// globBase returns the longest leading directory of pattern that has no
// glob metacharacters.
func globBase(pattern string) string {
	dir := filepath.Dir(pattern)
	for config.IsGlob(dir) {
		dir = filepath.Dir(dir)
	}
	return dir
}
