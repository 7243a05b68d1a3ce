package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

// Rank orders visibilities from most restrictive (0) to public (3).
func (v Visibility) Rank() int {
	switch v {
	case VisibilityPublic:
		return 3
	case VisibilityProtected:
		return 2
	case VisibilityPackage, "":
		return 1
	}
	return 0
}

// AtLeast reports whether v is at least as visible as floor.
func (v Visibility) AtLeast(floor Visibility) bool {
	return v.Rank() >= floor.Rank()
}

// ParseVisibility parses a visibility keyword. The empty string means
// package-private.
func ParseVisibility(s string) (Visibility, bool) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, true
	case VisibilityProtected:
		return VisibilityProtected, true
	case VisibilityPrivate:
		return VisibilityPrivate, true
	case VisibilityPackage, "", "default":
		return VisibilityPackage, true
	}
	return "", false
}

func minVisibility(a, b Visibility) Visibility {
	if a.Rank() <= b.Rank() {
		return a
	}
	return b
}

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// Position locates a point in a unit file. Line and Column are 1-based,
// Offset is a byte offset. The zero Position means unknown.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) Known() bool {
	return p.Line > 0
}

// TypeDecl is a class, interface, enum, record or annotation declaration.
type TypeDecl struct {
	Name           string // fully qualified, e.g. "com.example.Outer.Inner"
	SimpleName     string
	Package        string
	Kind           ClassKind
	Visibility     Visibility
	SuperClass     string
	Interfaces     []string
	IsAbstract     bool
	IsStatic       bool
	IsDeprecated   bool
	TypeParameters []TypeParam
	Components     []Param // record components
	Fields         []*FieldDecl
	Methods        []*MethodDecl
	Constructors   []*MethodDecl
	MemberTypes    []*TypeDecl
	Enclosing      *TypeDecl
	Unit           *Unit
	Doc            *Doc
	Pos            Position
}

func (t *TypeDecl) IsInterface() bool {
	return t.Kind == ClassKindInterface || t.Kind == ClassKindAnnotation
}

// MemberType returns the member type declared directly in t.
func (t *TypeDecl) MemberType(simple string) *TypeDecl {
	for _, m := range t.MemberTypes {
		if m.SimpleName == simple {
			return m
		}
	}
	return nil
}

type FieldDecl struct {
	Name         string
	Type         Type
	Visibility   Visibility
	IsStatic     bool
	IsFinal      bool
	IsDeprecated bool
	IsEnum       bool // enum constant
	Owner        *TypeDecl
	Doc          *Doc
	Pos          Position
}

// ID returns a stable identifier such as "p.T#name".
func (f *FieldDecl) ID() string {
	return f.Owner.Name + "#" + f.Name
}

// MethodDecl is a method or, when IsConstructor is set, a constructor.
type MethodDecl struct {
	Name           string
	ReturnType     Type
	Parameters     []Param
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsDefault      bool
	IsVarargs      bool
	IsConstructor  bool
	IsDeprecated   bool
	Exceptions     []Type
	TypeParameters []TypeParam
	Owner          *TypeDecl
	Doc            *Doc
	Pos            Position

	// Overrides holds the IDs of the supertype methods this method overrides
	// or implements, across all superclasses and superinterfaces.
	Overrides []string
}

// ID returns a stable identifier built from the erased signature, e.g.
// "p.T#m(int,java.lang.String[])".
func (m *MethodDecl) ID() string {
	var sb strings.Builder
	sb.WriteString(m.Owner.Name)
	sb.WriteByte('#')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.Erase(p.Type).String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Erase erases type variables of m and its owners to their first bound.
func (m *MethodDecl) Erase(t Type) Type {
	if b, ok := lookupTypeParam(m.TypeParameters, t.Name); ok {
		return Type{Name: b, ArrayDepth: t.ArrayDepth}
	}
	for o := m.Owner; o != nil; o = o.Enclosing {
		if b, ok := lookupTypeParam(o.TypeParameters, t.Name); ok {
			return Type{Name: b, ArrayDepth: t.ArrayDepth}
		}
		if o.IsStatic || o.IsInterface() {
			break
		}
	}
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth}
}

func lookupTypeParam(params []TypeParam, name string) (string, bool) {
	for _, tp := range params {
		if tp.Name == name {
			if len(tp.Bounds) > 0 {
				return tp.Bounds[0].Name, true
			}
			return "java.lang.Object", true
		}
	}
	return "", false
}

type Param struct {
	Name string
	Type Type
	Pos  Position
}

type TypeParam struct {
	Name   string
	Bounds []Type
}

// Doc is a raw doc comment together with the information needed to map
// offsets inside Text back to the unit file.
type Doc struct {
	Text string
	// Origin is the position of the first byte of Text.
	Origin Position
	// Indent is the column (0-based) where continuation lines of Text start.
	Indent int
	// LineOffsets holds the file offset of the first byte of each line of
	// Text, when known.
	LineOffsets []int
}

// Locate maps a byte offset in d.Text to a unit file position. Without
// origin information the comment itself is treated as the file.
func (d *Doc) Locate(rel int) Position {
	if rel < 0 {
		rel = 0
	}
	if rel > len(d.Text) {
		rel = len(d.Text)
	}
	line := strings.Count(d.Text[:rel], "\n")
	col := rel
	if i := strings.LastIndexByte(d.Text[:rel], '\n'); i >= 0 {
		col = rel - i - 1
	}
	if !d.Origin.Known() {
		return Position{Offset: rel, Line: line + 1, Column: col + 1}
	}
	pos := Position{Line: d.Origin.Line + line}
	if line == 0 {
		pos.Column = d.Origin.Column + col
	} else {
		pos.Column = d.Indent + 1 + col
	}
	if line < len(d.LineOffsets) {
		pos.Offset = d.LineOffsets[line] + col
	} else {
		pos.Offset = d.Origin.Offset + rel
	}
	return pos
}
