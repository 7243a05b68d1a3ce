// Package resolve binds the references of a scanned doc comment to the
// declarations of a symbol table.
package resolve

import (
	"strings"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
	"github.com/dhamidi/doclint/java/javadoc"
)

// Binding is the outcome of resolving one reference. At most one of Type,
// Package, Field and Method is set; Candidates holds the overloads of an
// ambiguous method reference.
type Binding struct {
	Type       *java.TypeDecl
	TypeVar    string
	Package    string
	Field      *java.FieldDecl
	Method     *java.MethodDecl
	Candidates []*java.MethodDecl
	Failed     bool
}

// Bindings maps each resolved reference, by identity, to its binding.
type Bindings map[javadoc.Reference]*Binding

// Of returns the binding of ref, or nil when ref was never resolved.
func (b Bindings) Of(ref javadoc.Reference) *Binding {
	if ref == nil {
		return nil
	}
	return b[ref]
}

// TypeOf returns the type ref is bound to, if any.
func (b Bindings) TypeOf(ref javadoc.Reference) *java.TypeDecl {
	if bd := b.Of(ref); bd != nil {
		return bd.Type
	}
	return nil
}

// Resolver resolves the references of one declaration's comment.
type Resolver struct {
	table    *java.Table
	config   *config.Config
	decl     *java.Declaration
	rep      *diag.Reporter
	bindings Bindings
}

func New(table *java.Table, cfg *config.Config, decl *java.Declaration, rep *diag.Reporter) *Resolver {
	return &Resolver{table: table, config: cfg, decl: decl, rep: rep, bindings: make(Bindings)}
}

// Resolve binds every reference of c, checks @param names and @throws
// types, and reports what cannot be bound. References that failed to parse
// are skipped.
func (r *Resolver) Resolve(c *javadoc.Comment) Bindings {
	for _, t := range c.Tags {
		switch t := t.(type) {
		case *javadoc.ParamTag:
			r.param(t)
		case *javadoc.ThrowsTag:
			r.throws(t)
		case *javadoc.ValueTag:
			if bd := r.reference(t.Ref); bd != nil && !bd.Failed && bd.Field == nil {
				start, end := t.Ref.Span()
				r.rep.Report(diag.InvalidReference, start, end)
			}
		default:
			r.reference(javadoc.RefOf(t))
		}
	}
	return r.bindings
}

func (r *Resolver) reference(ref javadoc.Reference) *Binding {
	switch ref := ref.(type) {
	case *javadoc.TypeRef:
		return r.typeOrPackageRef(ref)
	case *javadoc.MemberRef:
		return r.memberRef(ref)
	}
	return nil
}

func (r *Resolver) bind(ref javadoc.Reference, bd *Binding) *Binding {
	r.bindings[ref] = bd
	return bd
}

// typeOrPackageRef resolves a reference standing on its own, as in @see or
// {@link}, where a package name is allowed. Types shadow packages.
func (r *Resolver) typeOrPackageRef(ref *javadoc.TypeRef) *Binding {
	if len(ref.Segments) == 1 {
		if _, ok := r.typeVar(ref.Segments[0]); ok {
			return r.typeRef(ref)
		}
	}
	if td, _ := r.table.LookupType(r.decl.Scope, r.decl.Unit, ref.Segments); td == nil && r.table.HasPackage(ref.Name()) {
		return r.bind(ref, &Binding{Package: ref.Name()})
	}
	return r.typeRef(ref)
}

func (r *Resolver) typeRef(ref *javadoc.TypeRef) *Binding {
	if len(ref.Segments) == 1 {
		if tv, ok := r.typeVar(ref.Segments[0]); ok {
			return r.bind(ref, &Binding{TypeVar: tv.Name})
		}
	}
	td, via := r.table.LookupType(r.decl.Scope, r.decl.Unit, ref.Segments)
	if td == nil {
		r.rep.Report(diag.UndefinedType, ref.Start, ref.End, ref.Name())
		return r.bind(ref, &Binding{Failed: true})
	}
	if len(ref.Segments) > 1 && !r.config.Supports(config.PartialMemberTypeQualification) {
		switch via {
		case java.ViaOuterMember, java.ViaInherited:
			r.rep.Report(diag.InvalidMemberTypeQualification, ref.Start, ref.End)
			return r.bind(ref, &Binding{Failed: true})
		}
	}
	if td.IsDeprecated {
		r.rep.Report(diag.DeprecatedType, ref.Start, ref.End, td.Name)
	}
	return r.bind(ref, &Binding{Type: td})
}

// typeVar finds a type parameter visible from the declaration.
func (r *Resolver) typeVar(name string) (java.TypeParam, bool) {
	if r.decl.Method != nil {
		for _, tp := range r.decl.Method.TypeParameters {
			if tp.Name == name {
				return tp, true
			}
		}
	}
	for e := r.decl.Scope; e != nil; e = e.Enclosing {
		for _, tp := range e.TypeParameters {
			if tp.Name == name {
				return tp, true
			}
		}
		if e.IsStatic || e.IsInterface() {
			break
		}
	}
	return java.TypeParam{}, false
}

func (r *Resolver) memberRef(ref *javadoc.MemberRef) *Binding {
	var owners []*java.TypeDecl
	if ref.Owner != nil {
		ob := r.typeRef(ref.Owner)
		if ob.Type == nil {
			return r.bind(ref, &Binding{Failed: true})
		}
		owners = []*java.TypeDecl{ob.Type}
	} else {
		for e := r.decl.Scope; e != nil; e = e.Enclosing {
			owners = append(owners, e)
		}
	}
	if len(owners) == 0 {
		return r.bind(ref, &Binding{Failed: true})
	}

	var args []java.Type
	if ref.HasSignature {
		var ok bool
		if args, ok = r.signature(ref); !ok {
			return r.bind(ref, &Binding{Failed: true})
		}
	}

	// the first owner declaring or inheriting a member of that name wins
	owner := owners[0]
	for _, o := range owners {
		if r.hasMember(o, ref) {
			owner = o
			break
		}
	}

	if !ref.HasSignature {
		if fields := r.table.Fields(owner, ref.Name); len(fields) > 0 {
			f := fields[0]
			if f.IsDeprecated {
				r.rep.Report(diag.DeprecatedField, ref.NameStart, ref.NameEnd, f.Owner.SimpleName, f.Name)
			}
			return r.bind(ref, &Binding{Field: f})
		}
	}
	candidates := r.candidates(owner, ref)
	if !ref.HasSignature {
		switch len(candidates) {
		case 0:
			r.rep.Report(diag.UndefinedField, ref.NameStart, ref.NameEnd, ref.Name)
			return r.bind(ref, &Binding{Failed: true})
		case 1:
			r.deprecatedMethod(ref, candidates[0])
			return r.bind(ref, &Binding{Method: candidates[0]})
		}
		r.rep.Report(diag.AmbiguousReference, ref.NameStart, ref.NameEnd, ref.Name, owner.SimpleName)
		return r.bind(ref, &Binding{Candidates: candidates})
	}

	written := javadoc.FormatParams(ref.Params)
	ctor := r.isConstructor(owner, ref)
	if ctor && len(candidates) == 0 && len(args) == 0 && !owner.IsInterface() {
		// implicit default constructor
		return r.bind(ref, &Binding{Type: owner})
	}
	if len(candidates) == 0 {
		if ctor {
			r.rep.Report(diag.UndefinedConstructor, ref.NameStart, ref.End, ref.Name, written)
		} else {
			r.rep.Report(diag.UndefinedMethod, ref.NameStart, ref.End, ref.Name, written, owner.SimpleName)
		}
		return r.bind(ref, &Binding{Failed: true})
	}
	for _, m := range candidates {
		if applicable(m, args) {
			r.deprecatedMethod(ref, m)
			return r.bind(ref, &Binding{Method: m})
		}
	}
	declared := paramList(candidates[0])
	if ctor {
		r.rep.Report(diag.NotApplicableConstructor, ref.NameStart, ref.End, ref.Name, declared, written)
	} else {
		r.rep.Report(diag.NotApplicableMethod, ref.NameStart, ref.End, ref.Name, declared, owner.SimpleName, written)
	}
	return r.bind(ref, &Binding{Failed: true})
}

func (r *Resolver) hasMember(td *java.TypeDecl, ref *javadoc.MemberRef) bool {
	if !ref.HasSignature && len(r.table.Fields(td, ref.Name)) > 0 {
		return true
	}
	return len(r.candidates(td, ref)) > 0
}

// isConstructor reports whether ref names a constructor of owner: a
// signature after the owner's simple name.
func (r *Resolver) isConstructor(owner *java.TypeDecl, ref *javadoc.MemberRef) bool {
	return ref.HasSignature && ref.Name == owner.SimpleName
}

func (r *Resolver) candidates(owner *java.TypeDecl, ref *javadoc.MemberRef) []*java.MethodDecl {
	if r.isConstructor(owner, ref) {
		return owner.Constructors
	}
	return r.table.Methods(owner, ref.Name)
}

// signature resolves the parameter types written in ref. Type variables are
// erased to their first bound.
func (r *Resolver) signature(ref *javadoc.MemberRef) ([]java.Type, bool) {
	args := make([]java.Type, 0, len(ref.Params))
	ok := true
	for _, p := range ref.Params {
		t := java.Type{ArrayDepth: p.Dims}
		name := p.Type.Name()
		switch {
		case java.IsPrimitiveName(name):
			t.Name = name
		case len(p.Type.Segments) == 1 && r.isTypeVar(name):
			tv, _ := r.typeVar(name)
			t.Name = "java.lang.Object"
			if len(tv.Bounds) > 0 {
				t.Name = tv.Bounds[0].Name
			}
		default:
			bd := r.typeRef(p.Type)
			if bd.Type == nil {
				ok = false
				continue
			}
			t.Name = bd.Type.Name
		}
		args = append(args, t)
	}
	return args, ok
}

func (r *Resolver) isTypeVar(name string) bool {
	_, ok := r.typeVar(name)
	return ok
}

// applicable reports whether m takes exactly the erased argument types.
func applicable(m *java.MethodDecl, args []java.Type) bool {
	if len(m.Parameters) != len(args) {
		return false
	}
	for i, p := range m.Parameters {
		if !m.Erase(p.Type).SameErasure(args[i]) {
			return false
		}
	}
	return true
}

func paramList(m *java.MethodDecl) string {
	parts := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		parts[i] = p.Type.SimpleString()
	}
	return strings.Join(parts, ", ")
}

func (r *Resolver) deprecatedMethod(ref *javadoc.MemberRef, m *java.MethodDecl) {
	if !m.IsDeprecated {
		return
	}
	if m.IsConstructor {
		r.rep.Report(diag.DeprecatedConstructor, ref.NameStart, ref.NameEnd, m.Owner.SimpleName, paramList(m))
		return
	}
	r.rep.Report(diag.DeprecatedMethod, ref.NameStart, ref.NameEnd, m.Name, paramList(m), m.Owner.SimpleName)
}

// param checks that a @param tag names a declared parameter or type
// parameter. Fields never take @param; that is a placement problem.
func (r *Resolver) param(t *javadoc.ParamTag) {
	if !t.Valid || t.Inline || r.decl.Kind == java.DeclField {
		return
	}
	if t.TypeParam {
		for _, tp := range r.decl.TypeParams() {
			if tp.Name == t.ParamName {
				return
			}
		}
	} else {
		for _, p := range r.decl.Params() {
			if p.Name == t.ParamName {
				return
			}
		}
	}
	r.rep.Report(diag.UndefinedParam, t.ParamStart, t.ParamEnd, t.ParamName)
}

// throws resolves the exception type of a @throws tag and checks it against
// the throws clause.
func (r *Resolver) throws(t *javadoc.ThrowsTag) {
	ref, ok := t.Ref.(*javadoc.TypeRef)
	if !ok {
		return
	}
	bd := r.typeRef(ref)
	if bd.Type == nil {
		return
	}
	name := bd.Type.Name
	if !r.table.IsThrowable(name) {
		r.rep.Report(diag.NotAnExceptionType, ref.Start, ref.End, ref.Name())
		return
	}
	if t.Inline || r.decl.Method == nil || !r.table.IsChecked(name) {
		return
	}
	for _, ex := range r.decl.Throws() {
		if r.table.IsSubtype(name, ex.Name) {
			return
		}
	}
	r.rep.Report(diag.UndeclaredException, ref.Start, ref.End, ref.Name())
}
