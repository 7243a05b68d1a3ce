package java

import (
	"strings"
)

// Via tells how the first segment of a type name was found.
type Via int

const (
	ViaNone Via = iota
	// ViaImport is a single-type import.
	ViaImport
	// ViaEnclosing is an enclosing type (or the scope type) named by its
	// own simple name.
	ViaEnclosing
	// ViaMember is a member type of the innermost scope type.
	ViaMember
	// ViaOuterMember is a member type of an outer enclosing type.
	ViaOuterMember
	// ViaInherited is a member type inherited from a supertype of an
	// enclosing type.
	ViaInherited
	ViaPackage
	ViaOnDemand
	ViaQualified
)

func (v Via) String() string {
	switch v {
	case ViaImport:
		return "import"
	case ViaEnclosing:
		return "enclosing"
	case ViaMember:
		return "member"
	case ViaOuterMember:
		return "outer member"
	case ViaInherited:
		return "inherited"
	case ViaPackage:
		return "package"
	case ViaOnDemand:
		return "on-demand import"
	case ViaQualified:
		return "qualified"
	}
	return "none"
}

// LookupType binds a dotted type name, given as segments, in the scope of
// type scope declared in unit. The lookup order is: single-type imports,
// the enclosing-type chain (member types, inherited member types, then the
// enclosing type itself), the unit's package, on-demand imports including
// java.lang, and finally fully qualified names. Segments after the first
// are member types.
func (t *Table) LookupType(scope *TypeDecl, unit *Unit, segments []string) (*TypeDecl, Via) {
	if len(segments) == 0 {
		return nil, ViaNone
	}
	first, via := t.lookupFirst(scope, unit, segments[0])
	if first != nil {
		if td := t.memberPath(first, segments[1:]); td != nil {
			return td, via
		}
	}
	for i := 1; i < len(segments); i++ {
		pkg := strings.Join(segments[:i], ".")
		top, ok := t.types[qualify(pkg, segments[i])]
		if !ok || top.Enclosing != nil {
			continue
		}
		if td := t.memberPath(top, segments[i+1:]); td != nil {
			return td, ViaQualified
		}
	}
	return nil, ViaNone
}

func (t *Table) lookupFirst(scope *TypeDecl, unit *Unit, name string) (*TypeDecl, Via) {
	if unit != nil {
		for _, imp := range unit.Imports {
			if imp.OnDemand || imp.Static {
				continue
			}
			if SimpleName(imp.Name) == name {
				if td, ok := t.types[imp.Name]; ok {
					return td, ViaImport
				}
			}
		}
	}
	for e := scope; e != nil; e = e.Enclosing {
		if m := e.MemberType(name); m != nil {
			if e == scope {
				return m, ViaMember
			}
			return m, ViaOuterMember
		}
		if m := t.InheritedMemberType(e, name); m != nil {
			return m, ViaInherited
		}
		if e.SimpleName == name {
			return e, ViaEnclosing
		}
	}
	pkg := ""
	if unit != nil {
		pkg = unit.Package
	}
	if td, ok := t.types[qualify(pkg, name)]; ok && td.Enclosing == nil {
		return td, ViaPackage
	}
	if unit != nil {
		for _, imp := range unit.Imports {
			if !imp.OnDemand || imp.Static {
				continue
			}
			if td, ok := t.types[imp.Name+"."+name]; ok {
				return td, ViaOnDemand
			}
		}
	}
	if td, ok := t.types["java.lang."+name]; ok {
		return td, ViaOnDemand
	}
	return nil, ViaNone
}

func (t *Table) memberPath(td *TypeDecl, rest []string) *TypeDecl {
	for _, seg := range rest {
		next := td.MemberType(seg)
		if next == nil {
			next = t.InheritedMemberType(td, seg)
		}
		if next == nil {
			return nil
		}
		td = next
	}
	return td
}

// signatureResolver resolves the type names written in a unit's signatures.
// Names that cannot be bound are kept as written.
type signatureResolver struct {
	table *Table
	unit  *Unit
	scope *TypeDecl
}

func (r *signatureResolver) resolve(typ Type, typeVars []TypeParam) Type {
	name := typ.Name
	if name == "" || IsPrimitiveName(name) || name == "void" {
		return typ
	}
	if r.isTypeVar(name, typeVars) {
		return typ
	}
	if td, via := r.table.LookupType(r.scope, r.unit, strings.Split(name, ".")); via != ViaNone {
		typ.Name = td.Name
	}
	return typ
}

func (r *signatureResolver) isTypeVar(name string, typeVars []TypeParam) bool {
	for _, tp := range typeVars {
		if tp.Name == name {
			return true
		}
	}
	for e := r.scope; e != nil; e = e.Enclosing {
		for _, tp := range e.TypeParameters {
			if tp.Name == name {
				return true
			}
		}
	}
	return false
}

func (r *signatureResolver) resolveTypeParams(params []TypeParam, typeVars []TypeParam) {
	for i := range params {
		for j := range params[i].Bounds {
			params[i].Bounds[j] = r.resolve(params[i].Bounds[j], typeVars)
		}
	}
}

// SimpleName returns the last component of a dotted name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
