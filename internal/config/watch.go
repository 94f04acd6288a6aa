package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/morse-beacon/internal/logger"
)

var (
	// errNoCallback is returned when Watch is called without a change handler.
	errNoCallback = errors.New("change callback must be provided")
	// errEmptySettings is returned for a file caught between truncation and write.
	errEmptySettings = errors.New("settings file is empty")
)

// Watch reloads the settings file whenever it changes and passes every valid
// reload to onChange. Invalid edits are logged and skipped.
// The directory is watched so editors that replace the file are picked up.
// Watch returns once the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	if onChange == nil {
		return errNoCallback
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("watch settings directory: %w", err)
	}

	ctx = logger.WithKV(logger.WithName(ctx, "settings-watcher"), "path", path)

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				cfg, err := reload(path)
				if err != nil {
					logger.ErrorKV(ctx, "Ignoring invalid settings", "error", err)

					continue
				}

				logger.DebugKV(ctx, "Settings reloaded", "op", event.Op.String())
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				logger.ErrorKV(ctx, "Settings watcher failed", "error", err)
			}
		}
	}()

	return nil
}

// reload reads an existing, non-empty settings file.
func reload(path string) (*Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, errEmptySettings
	}

	return parse(contents)
}
