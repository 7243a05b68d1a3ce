package java

import (
	"strings"
)

// Type is a (possibly array) type as it appears in a signature. Name is
// fully qualified once the unit has been built.
type Type struct {
	Name       string
	ArrayDepth int
	Varargs    bool // last array dimension written as "..."
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	for i := 0; i < t.ArrayDepth; i++ {
		if t.Varargs && i == t.ArrayDepth-1 {
			sb.WriteString("...")
			break
		}
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t Type) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	return IsPrimitiveName(t.Name)
}

func (t Type) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t Type) ElementType() Type {
	if t.ArrayDepth == 0 {
		return t
	}
	return Type{Name: t.Name, ArrayDepth: t.ArrayDepth - 1}
}

// SameErasure reports whether t and o denote the same erased type; varargs
// and array notation are interchangeable.
func (t Type) SameErasure(o Type) bool {
	return t.Name == o.Name && t.ArrayDepth == o.ArrayDepth
}

// SimpleString renders t with simple type names, for messages.
func (t Type) SimpleString() string {
	s := t
	s.Name = SimpleName(t.Name)
	return s.String()
}

func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

// ParseType parses a source-level type such as "String...", "int[][]" or
// "java.util.List<String>". Type arguments are dropped.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	var t Type
	if strings.HasSuffix(s, "...") {
		t.Varargs = true
		t.ArrayDepth++
		s = strings.TrimSpace(strings.TrimSuffix(s, "..."))
	}
	for strings.HasSuffix(s, "[]") {
		t.ArrayDepth++
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
	}
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	t.Name = s
	return t
}
