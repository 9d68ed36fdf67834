// internal/watch/watch.go
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"kbsite/internal/records"
	"kbsite/internal/util"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the data folders must stay quiet before a rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Dirs returns the existing data folders below root worth watching: the
// marker folders plus every resolved category folder, deduplicated and sorted.
func Dirs(root string) []string {
	seen := map[string]bool{}
	for _, m := range records.Markers {
		dir := filepath.Join(root, m)
		if util.IsDir(dir) {
			seen[filepath.Clean(dir)] = true
		}
	}
	r := records.Resolver{Root: root}
	for _, c := range records.Categories() {
		if dir, ok := r.Resolve(c); ok {
			seen[filepath.Clean(dir)] = true
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Run watches dirs recursively and calls rebuild once the folders have been
// quiet for DefaultDebounce after a change. It returns when ctx is cancelled.
func Run(ctx context.Context, dirs []string, rebuild func() error, log *zap.Logger) error {
	return run(ctx, dirs, rebuild, log, DefaultDebounce)
}

func run(ctx context.Context, dirs []string, rebuild func() error, log *zap.Logger, debounce time.Duration) error {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Warn("could not watch directory", zap.String("dir", dir), zap.Error(err))
			return
		}
		log.Debug("watching directory", zap.String("dir", dir))
		watched[dir] = true
	}
	addTree := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				addWatch(path)
			}
			return nil
		})
	}

	for _, dir := range dirs {
		if !util.IsDir(dir) {
			continue
		}
		if err := addTree(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	if len(watched) == 0 {
		return fmt.Errorf("no data folders to watch")
	}
	log.Info("watching for changes", zap.Int("dirs", len(watched)))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := ""

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				continue
			}
			if event.Has(fsnotify.Create) && util.IsDir(event.Name) {
				if err := addTree(event.Name); err != nil {
					log.Warn("could not watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			pending = event.Name
		case <-timer.C:
			log.Info("change detected, rebuilding", zap.String("file", pending))
			pending = ""
			if err := rebuild(); err != nil {
				log.Error("rebuild failed", zap.Error(err))
			} else {
				log.Info("site rebuilt")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
