package lsp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/driver"
	"github.com/dhamidi/doclint/java"
)

// Workspace holds the unit files under a root directory, with open editor
// buffers taking precedence over the files on disk.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
	cfg     *config.Config
	cfgErr  error
}

// File is one unit file known to the workspace. Err is set when the
// content is not a valid unit.
type File struct {
	Path    string
	Content []byte
	Err     error
}

// Snapshot is the result of checking the workspace once. Errors holds the
// files that could not be checked at all.
type Snapshot struct {
	Files       []*File
	Errors      map[string]error
	Diagnostics map[string][]diag.Diagnostic
}

func NewWorkspace(rootDir string) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
	w.LoadConfig()
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// LoadConfig reads the nearest doclint.toml above the root, falling back
// to the defaults. A broken file is kept as an error and the previous
// configuration stays in effect.
func (w *Workspace) LoadConfig() error {
	path, err := config.Find(w.rootDir)
	cfg := config.Default()
	if err == nil && path != "" {
		cfg, err = config.Load(path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfgErr = err
	if err != nil {
		log.Warningf("configuration: %v", err)
		if w.cfg == nil {
			w.cfg = config.Default()
		}
		return err
	}
	w.cfg = cfg
	return nil
}

func (w *Workspace) Config() (*config.Config, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg, w.cfgErr
}

// ScanAll reads every unit file under the root.
func (w *Workspace) ScanAll() error {
	paths, err := driver.UnitFiles([]string{w.rootDir})
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := w.ScanFile(p); err != nil {
			log.Warningf("scan %s: %v", p, err)
		}
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and validates it.
func (w *Workspace) UpdateFile(path string, content []byte) {
	_, err := java.ParseUnit(path, content)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = &File{Path: path, Content: content, Err: err}
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Check builds one symbol table from every valid unit and checks them all.
// Files that failed to parse are part of the snapshot but contribute no
// declarations. Units are parsed afresh on every check since building a
// table rewrites them.
func (w *Workspace) Check(ctx context.Context, jobs int) (*Snapshot, error) {
	w.mu.RLock()
	cfg := w.cfg
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	units, err := parseFiles(files)
	if err != nil {
		return nil, err
	}
	table, err := java.BuildWithBootstrap(units...)
	if err != nil {
		// Duplicate type names across files; check each unit on its own so
		// the rest of the workspace still gets diagnostics.
		log.Warningf("workspace table: %v", err)
		return w.checkSeparately(ctx, cfg, files, jobs)
	}
	report, err := driver.CheckUnits(ctx, table, cfg, units, driver.Options{Jobs: jobs})
	if err != nil {
		return nil, err
	}
	return newSnapshot(files, report.Diagnostics), nil
}

func parseFiles(files []*File) ([]*java.Unit, error) {
	var units []*java.Unit
	for _, f := range files {
		if f.Err != nil {
			continue
		}
		u, err := java.ParseUnit(f.Path, f.Content)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func (w *Workspace) checkSeparately(ctx context.Context, cfg *config.Config, files []*File, jobs int) (*Snapshot, error) {
	s := newSnapshot(files, nil)
	for _, f := range files {
		if f.Err != nil {
			continue
		}
		units, err := parseFiles([]*File{f})
		if err != nil {
			return nil, err
		}
		table, err := java.BuildWithBootstrap(units...)
		if err != nil {
			s.Errors[f.Path] = err
			continue
		}
		report, err := driver.CheckUnits(ctx, table, cfg, units, driver.Options{Jobs: jobs})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.Errors[f.Path] = err
			continue
		}
		for _, d := range report.Diagnostics {
			s.Diagnostics[d.Path] = append(s.Diagnostics[d.Path], d)
		}
	}
	return s, nil
}

func newSnapshot(files []*File, ds []diag.Diagnostic) *Snapshot {
	s := &Snapshot{
		Files:       files,
		Errors:      make(map[string]error),
		Diagnostics: make(map[string][]diag.Diagnostic),
	}
	for _, f := range files {
		if f.Err != nil {
			s.Errors[f.Path] = f.Err
		}
	}
	for _, d := range ds {
		s.Diagnostics[d.Path] = append(s.Diagnostics[d.Path], d)
	}
	return s
}

// isConfigFile reports whether path is a configuration file the workspace
// reads.
func isConfigFile(path string) bool {
	return filepath.Base(path) == config.FileName
}
