package java

import (
	"fmt"
	"sort"
	"strings"
)

const (
	objectType    = "java.lang.Object"
	throwableType = "java.lang.Throwable"
	runtimeType   = "java.lang.RuntimeException"
	errorType     = "java.lang.Error"
)

// Table is the symbol table shared by every declaration check. It is built
// once by Build and is read-only afterwards, so concurrent queries are safe.
type Table struct {
	types    map[string]*TypeDecl
	methods  map[string]*MethodDecl
	packages map[string]bool
}

// Build registers every type of units, resolves the type names used in
// their signatures and computes the override set of every method.
func Build(units ...*Unit) (*Table, error) {
	t := &Table{
		types:    make(map[string]*TypeDecl),
		methods:  make(map[string]*MethodDecl),
		packages: make(map[string]bool),
	}
	for _, u := range units {
		t.registerPackage(u.Package)
		for _, td := range u.AllTypes() {
			if prev, ok := t.types[td.Name]; ok {
				return nil, fmt.Errorf("%s: type %s already declared in %s", u.Path, td.Name, prev.Unit.Path)
			}
			t.types[td.Name] = td
		}
	}
	for _, u := range units {
		for _, td := range u.AllTypes() {
			t.resolveSignatures(td)
		}
	}
	for _, u := range units {
		for _, td := range u.AllTypes() {
			for _, m := range td.Methods {
				t.methods[m.ID()] = m
			}
			for _, c := range td.Constructors {
				t.methods[c.ID()] = c
			}
		}
	}
	for _, u := range units {
		for _, td := range u.AllTypes() {
			for _, m := range td.Methods {
				m.Overrides = t.overridden(m)
			}
		}
	}
	return t, nil
}

func (t *Table) registerPackage(pkg string) {
	for pkg != "" {
		t.packages[pkg] = true
		i := strings.LastIndexByte(pkg, '.')
		if i < 0 {
			break
		}
		pkg = pkg[:i]
	}
}

// Type returns the type with the given fully qualified name.
func (t *Table) Type(name string) (*TypeDecl, bool) {
	td, ok := t.types[name]
	return td, ok
}

// Method returns the method or constructor with the given ID.
func (t *Table) Method(id string) (*MethodDecl, bool) {
	m, ok := t.methods[id]
	return m, ok
}

// HasPackage reports whether name is the package of some unit, or a prefix
// of one.
func (t *Table) HasPackage(name string) bool {
	return t.packages[name]
}

// DirectSupertypes returns the superclass (java.lang.Object when none is
// declared) followed by the superinterfaces that are known to the table.
func (t *Table) DirectSupertypes(td *TypeDecl) []*TypeDecl {
	var out []*TypeDecl
	super := td.SuperClass
	if super == "" && !td.IsInterface() && td.Name != objectType {
		super = objectType
	}
	if s, ok := t.types[super]; ok && s != td {
		out = append(out, s)
	}
	for _, i := range td.Interfaces {
		if s, ok := t.types[i]; ok && s != td {
			out = append(out, s)
		}
	}
	return out
}

// Supertypes returns every proper supertype of td, nearest first. Cycles in
// malformed input are tolerated.
func (t *Table) Supertypes(td *TypeDecl) []*TypeDecl {
	seen := map[*TypeDecl]bool{td: true}
	var out []*TypeDecl
	queue := t.DirectSupertypes(td)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		queue = append(queue, t.DirectSupertypes(s)...)
	}
	return out
}

// IsSubtype reports whether sub is super or one of its subtypes.
func (t *Table) IsSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	td, ok := t.types[sub]
	if !ok {
		return false
	}
	for _, s := range t.Supertypes(td) {
		if s.Name == super {
			return true
		}
	}
	return false
}

// IsThrowable reports whether name is java.lang.Throwable or a subtype.
func (t *Table) IsThrowable(name string) bool {
	return t.IsSubtype(name, throwableType)
}

// IsChecked reports whether the exception type name is checked, i.e. not a
// subtype of RuntimeException or Error.
func (t *Table) IsChecked(name string) bool {
	return t.IsThrowable(name) && !t.IsSubtype(name, runtimeType) && !t.IsSubtype(name, errorType)
}

// InheritedMemberType looks up a member type declared in a proper supertype
// of td.
func (t *Table) InheritedMemberType(td *TypeDecl, simple string) *TypeDecl {
	for _, s := range t.Supertypes(td) {
		if m := s.MemberType(simple); m != nil {
			return m
		}
	}
	return nil
}

// Fields returns the fields named name visible in td: those declared in td
// or, failing that, in the nearest supertype declaring one.
func (t *Table) Fields(td *TypeDecl, name string) []*FieldDecl {
	for _, owner := range append([]*TypeDecl{td}, t.Supertypes(td)...) {
		var out []*FieldDecl
		for _, f := range owner.Fields {
			if f.Name == name {
				out = append(out, f)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// Methods returns the methods named name that are members of td, declared
// or inherited. Inherited methods overridden by a nearer declaration are
// left out.
func (t *Table) Methods(td *TypeDecl, name string) []*MethodDecl {
	var out []*MethodDecl
	seen := make(map[string]bool)
	for _, owner := range append([]*TypeDecl{td}, t.Supertypes(td)...) {
		for _, m := range owner.Methods {
			if m.Name != name {
				continue
			}
			if owner != td && m.Visibility == VisibilityPrivate {
				continue
			}
			key := erasedKey(m)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

func erasedKey(m *MethodDecl) string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = m.Erase(p.Type).String()
	}
	return m.Name + "(" + strings.Join(parts, ",") + ")"
}

// overridden computes the methods m overrides or implements: same name and
// same erased parameter types in any supertype, excluding private and static
// methods.
func (t *Table) overridden(m *MethodDecl) []string {
	if m.IsStatic || m.IsConstructor || m.Visibility == VisibilityPrivate {
		return nil
	}
	key := erasedKey(m)
	var out []string
	for _, s := range t.Supertypes(m.Owner) {
		for _, sm := range s.Methods {
			if sm.IsStatic || sm.Visibility == VisibilityPrivate {
				continue
			}
			if sm.Name == m.Name && erasedKey(sm) == key {
				out = append(out, sm.ID())
			}
		}
	}
	sort.Strings(out)
	return out
}

// resolveSignatures rewrites the source-level type names of td and its
// members into fully qualified names.
func (t *Table) resolveSignatures(td *TypeDecl) {
	r := &signatureResolver{table: t, unit: td.Unit, scope: td.Enclosing}
	if td.SuperClass != "" {
		td.SuperClass = r.resolve(ParseType(td.SuperClass), nil).Name
	}
	for i, name := range td.Interfaces {
		td.Interfaces[i] = r.resolve(ParseType(name), nil).Name
	}

	r.scope = td
	r.resolveTypeParams(td.TypeParameters, nil)
	for i := range td.Components {
		td.Components[i].Type = r.resolve(td.Components[i].Type, nil)
	}
	for _, f := range td.Fields {
		if f.IsEnum {
			f.Type = Type{Name: td.Name}
			continue
		}
		f.Type = r.resolve(f.Type, nil)
	}
	for _, m := range append(append([]*MethodDecl{}, td.Methods...), td.Constructors...) {
		r.resolveTypeParams(m.TypeParameters, m.TypeParameters)
		if !m.IsConstructor {
			m.ReturnType = r.resolve(m.ReturnType, m.TypeParameters)
		}
		for i := range m.Parameters {
			m.Parameters[i].Type = r.resolve(m.Parameters[i].Type, m.TypeParameters)
		}
		for i := range m.Exceptions {
			m.Exceptions[i] = r.resolve(m.Exceptions[i], m.TypeParameters)
		}
	}
}
