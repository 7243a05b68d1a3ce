package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Watcher polls the workspace root for unit files changed outside the
// editor. Files open in the editor are left alone.
type Watcher struct {
	workspace    *Workspace
	pollInterval time.Duration
	skip         func(path string) bool
	onChange     func()

	stopCh   chan struct{}
	stopOnce sync.Once
	modTimes map[string]time.Time
	primed   bool
}

func NewWatcher(w *Workspace, interval time.Duration, skip func(string) bool, onChange func()) *Watcher {
	return &Watcher{
		workspace:    w,
		pollInterval: interval,
		skip:         skip,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		modTimes:     make(map[string]time.Time),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.scan() {
				w.onChange()
			}
		}
	}
}

// scan updates the workspace from disk and reports whether anything
// changed. The first scan only records modification times.
func (w *Watcher) scan() bool {
	first := !w.primed
	w.primed = true
	changed := false
	current := make(map[string]bool)

	filepath.Walk(w.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isUnitPath(path) && !isConfigFile(path) {
			return nil
		}

		current[path] = true
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		if first || w.skip(path) {
			return nil
		}
		changed = true
		if isConfigFile(path) {
			w.workspace.LoadConfig()
		} else if err := w.workspace.ScanFile(path); err != nil {
			log.Warningf("rescan %s: %v", path, err)
		}
		return nil
	})

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		if w.skip(path) {
			continue
		}
		changed = true
		if isConfigFile(path) {
			w.workspace.LoadConfig()
		} else {
			w.workspace.RemoveFile(path)
		}
	}
	return changed
}
