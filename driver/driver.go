// Package driver checks sets of compilation units in parallel.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/doclint/check"
	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

var log = commonlog.GetLogger("doclint.driver")

// Options tune a run.
type Options struct {
	// Jobs bounds the number of units, and of declarations within a unit,
	// checked at once. Zero means GOMAXPROCS.
	Jobs int
	// Cache, when set, is consulted before checking and updated after.
	Cache *Cache
	// Version of the tool, part of the cache key.
	Version string
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// UnitResult holds the per-declaration results of one unit.
type UnitResult struct {
	Unit    *java.Unit
	Results []*check.Result
}

// Report is the outcome of a run. Units is empty when the diagnostics came
// from the cache.
type Report struct {
	Units        []UnitResult
	Diagnostics  []diag.Diagnostic
	Declarations int
	Ignored      int
	Cached       bool
}

// HasErrors reports whether any error-level diagnostic was produced.
func (r *Report) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// UnitFiles expands args into the sorted list of unit files they name:
// files are taken as given, directories are walked for *.yaml and *.yml.
func UnitFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if path == arg || isUnitFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isUnitFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadUnits parses the unit files in parallel. The units are returned in
// the order of paths.
func LoadUnits(ctx context.Context, paths []string, opts Options) ([]*java.Unit, error) {
	units := make([]*java.Unit, len(paths))
	if len(paths) == 0 {
		return units, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := java.LoadUnit(path)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

// Run builds the symbol table of units and checks every declaration.
// Diagnostics are merged and ordered by position.
func Run(ctx context.Context, cfg *config.Config, units []*java.Unit, opts Options) (*Report, error) {
	key := Key(opts.Version, cfg, units)
	if payload, ok, err := opts.Cache.Get(key); err != nil {
		log.Warningf("cache read failed: %v", err)
	} else if ok {
		log.Debugf("cache hit %s", key)
		return &Report{
			Diagnostics:  payload.Diagnostics,
			Declarations: payload.Declarations,
			Ignored:      payload.Ignored,
			Cached:       true,
		}, nil
	}

	table, err := java.BuildWithBootstrap(units...)
	if err != nil {
		return nil, fmt.Errorf("failed to build symbol table: %w", err)
	}
	report, err := CheckUnits(ctx, table, cfg, units, opts)
	if err != nil {
		return nil, err
	}

	if err := opts.Cache.Put(key, &Payload{
		Declarations: report.Declarations,
		Ignored:      report.Ignored,
		Diagnostics:  report.Diagnostics,
	}); err != nil {
		log.Warningf("cache write failed: %v", err)
	}
	return report, nil
}

// CheckUnits checks the declarations of units against an already built
// table.
func CheckUnits(ctx context.Context, table *java.Table, cfg *config.Config, units []*java.Unit, opts Options) (*Report, error) {
	jobs := opts.jobs()
	results := make([]UnitResult, len(units))

	if len(units) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(units)))
		for i, u := range units {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := checkUnit(gctx, table, cfg, u, jobs)
				if err != nil {
					return err
				}
				results[i] = UnitResult{Unit: u, Results: res}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	report := &Report{Units: results}
	for _, ur := range results {
		for _, r := range ur.Results {
			report.Declarations++
			report.Ignored += r.Ignored
			report.Diagnostics = append(report.Diagnostics, r.Diagnostics...)
		}
	}
	diag.Sort(report.Diagnostics)
	log.Infof("checked %d declarations in %d units: %d diagnostics, %d ignored",
		report.Declarations, len(units), len(report.Diagnostics), report.Ignored)
	return report, nil
}

func checkUnit(ctx context.Context, table *java.Table, cfg *config.Config, u *java.Unit, jobs int) ([]*check.Result, error) {
	decls := table.Declarations(u)
	results := make([]*check.Result, len(decls))
	if len(decls) == 0 {
		return results, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(decls)))
	for i, d := range decls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = check.Declaration(table, cfg, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
