package java

import (
	"sort"
	"strings"
)

// Import is a single-type ("java.util.List") or on-demand ("java.util.*")
// import declaration.
type Import struct {
	Name     string // without the trailing ".*"
	OnDemand bool
	Static   bool
}

func ParseImport(s string) Import {
	s = strings.TrimSpace(s)
	var imp Import
	if rest, ok := strings.CutPrefix(s, "static "); ok {
		imp.Static = true
		s = strings.TrimSpace(rest)
	}
	if strings.HasSuffix(s, ".*") {
		imp.OnDemand = true
		s = strings.TrimSuffix(s, ".*")
	}
	imp.Name = s
	return imp
}

func (i Import) String() string {
	s := i.Name
	if i.OnDemand {
		s += ".*"
	}
	if i.Static {
		s = "static " + s
	}
	return s
}

// Unit is one compilation unit: a package, its imports and its top-level
// types.
type Unit struct {
	Path      string
	Package   string
	Imports   []Import
	Types     []*TypeDecl
	Source    []byte
	Bootstrap bool

	lineStarts []int
}

// AllTypes returns the top-level and member types of u in declaration
// order.
func (u *Unit) AllTypes() []*TypeDecl {
	var out []*TypeDecl
	var walk func(ts []*TypeDecl)
	walk = func(ts []*TypeDecl) {
		for _, t := range ts {
			out = append(out, t)
			walk(t.MemberTypes)
		}
	}
	walk(u.Types)
	return out
}

// Line returns the text of the 1-based line n of the unit source.
func (u *Unit) Line(n int) string {
	starts := u.starts()
	if n < 1 || n > len(starts) {
		return ""
	}
	start := starts[n-1]
	end := len(u.Source)
	if n < len(starts) {
		end = starts[n] - 1
	}
	return strings.TrimRight(string(u.Source[start:end]), "\r")
}

// LineStart returns the byte offset where 1-based line n starts.
func (u *Unit) LineStart(n int) int {
	starts := u.starts()
	if n < 1 || n > len(starts) {
		return len(u.Source)
	}
	return starts[n-1]
}

// PositionOf converts a byte offset into a line/column position.
func (u *Unit) PositionOf(offset int) Position {
	starts := u.starts()
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Position{Offset: offset, Line: i + 1, Column: offset - starts[i] + 1}
}

func (u *Unit) starts() []int {
	if u.lineStarts == nil {
		u.lineStarts = []int{0}
		for i, b := range u.Source {
			if b == '\n' {
				u.lineStarts = append(u.lineStarts, i+1)
			}
		}
	}
	return u.lineStarts
}
