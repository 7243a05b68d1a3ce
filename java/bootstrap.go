package java

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed bootstrap/*.yaml
var bootstrapFS embed.FS

// BootstrapUnits parses the embedded units describing the core platform
// types (java.lang, java.io and java.util). Each call returns fresh units,
// since Build mutates the units it registers.
func BootstrapUnits() ([]*Unit, error) {
	entries, err := fs.Glob(bootstrapFS, "bootstrap/*.yaml")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	var units []*Unit
	for _, name := range entries {
		data, err := bootstrapFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read bootstrap unit: %w", err)
		}
		u, err := ParseUnit("bootstrap:"+path.Base(name), data)
		if err != nil {
			return nil, err
		}
		u.Bootstrap = true
		units = append(units, u)
	}
	return units, nil
}

// BuildWithBootstrap builds a table from the bootstrap units followed by
// units.
func BuildWithBootstrap(units ...*Unit) (*Table, error) {
	boot, err := BootstrapUnits()
	if err != nil {
		return nil, err
	}
	return Build(append(boot, units...)...)
}
