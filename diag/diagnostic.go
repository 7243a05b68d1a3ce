package diag

import (
	"sort"
	"strconv"
	"strings"
)

// Severity of an emitted diagnostic.
type Severity uint8

const (
	SevWarning Severity = iota + 1
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}

// Verdict is the outcome of classifying a category for one declaration.
type Verdict uint8

const (
	// Suppressed means the check does not apply at all, e.g. the
	// declaration is below the visibility floor.
	Suppressed Verdict = iota
	// Ignore means the check applies but its findings are not reported.
	Ignore
	Warning
	Error
)

func (v Verdict) String() string {
	switch v {
	case Suppressed:
		return "suppressed"
	case Ignore:
		return "ignore"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Severity maps a reporting verdict to a severity. ok is false for
// Suppressed and Ignore.
func (v Verdict) Severity() (Severity, bool) {
	switch v {
	case Warning:
		return SevWarning, true
	case Error:
		return SevError, true
	}
	return 0, false
}

// Diagnostic is one positioned finding. Start and End are byte offsets into
// the unit file; lines and columns are 1-based.
type Diagnostic struct {
	Category    Category `msgpack:"c"`
	Severity    Severity `msgpack:"s"`
	Path        string   `msgpack:"p"`
	Start       int      `msgpack:"so"`
	End         int      `msgpack:"eo"`
	Line        int      `msgpack:"l"`
	Column      int      `msgpack:"col"`
	EndLine     int      `msgpack:"el"`
	EndColumn   int      `msgpack:"ec"`
	TemplateID  int      `msgpack:"t"`
	Args        []string `msgpack:"a,omitempty"`
	Declaration string   `msgpack:"d"`
}

// Message renders the category template with the positional arguments.
func (d Diagnostic) Message() string {
	return Format(d.Category.Template(), d.Args...)
}

// Format substitutes "{0}", "{1}", ... in template.
func Format(template string, args ...string) string {
	if len(args) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", a)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Less orders diagnostics by source position, then by category.
func Less(a, b Diagnostic) bool {
	if a.Path != b.Path {
		return a.Path < b.Path
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return a.Category < b.Category
}

// Sort orders ds in place by source position. The sort is stable so that
// findings at the same position keep their emission order.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool { return Less(ds[i], ds[j]) })
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}
