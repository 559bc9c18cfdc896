package config

import (
	"context"
	"fmt"
	"path/filepath"

	"aoctui/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the original are seen.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the config file at path. The file does
// not need to exist yet, but its directory does.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, fsWatcher: fsWatcher}, nil
}

// Run blocks until ctx is done, calling onChange with every successfully
// reloaded config. Files that fail to load are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config)) error {
	defer w.fsWatcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfigFile(w.path)
			if err != nil {
				log.LogWithError(err).Warn("config reload failed")
				continue
			}
			cfg.ApplyEnv()
			log.Debugf("config reloaded from %s", w.path)
			onChange(cfg)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Error("config watcher", err)
		}
	}
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}
