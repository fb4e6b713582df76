package cmd

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 100 * time.Millisecond

// watchFile calls fn once a burst of changes to path has settled. The parent
// directory is watched, so that editors replacing the file are noticed too.
func watchFile(path string, delay time.Duration, logger *zap.Logger, fn func()) (*fsnotify.Watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("options file changed", zap.String("op", event.Op.String()))
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(delay, fn)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watching options file", zap.Error(err))
			}
		}
	}()

	return watcher, nil
}
