// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/renderpass/internal/logging"
)

// Watch reloads path into store whenever the file is written or replaced.
// It blocks until ctx is cancelled. Reload failures are logged and leave the
// previous values in place.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file atomically are noticed.
func Watch(ctx context.Context, path string, store *Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer watcher.Close()

	clean := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(clean)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	log := logging.Logger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != clean {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := Reload(path, store); err != nil {
				log.Warn("config: reload failed", "path", path, "err", err)
				continue
			}
			log.Info("config: reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config: watcher error", "err", err)
		}
	}
}

// Reload loads path and applies it to store.
func Reload(path string, store *Store) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	return store.Apply(cfg)
}
