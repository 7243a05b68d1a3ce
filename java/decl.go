package java

// DeclKind is the kind of a documented declaration.
type DeclKind string

const (
	DeclType        DeclKind = "type"
	DeclMethod      DeclKind = "method"
	DeclConstructor DeclKind = "constructor"
	DeclField       DeclKind = "field"
)

// Declaration is the signature record the doc comment checker works from.
// Exactly one of Type, Method and Field is set, according to Kind.
type Declaration struct {
	Kind DeclKind
	// Name identifies the declaration in messages, e.g. "p.T#m(int)".
	Name string
	// Visibility is the effective visibility: the declared one, narrowed by
	// every enclosing type.
	Visibility Visibility
	// Deprecated is set when the declaration or an enclosing type is
	// deprecated.
	Deprecated bool
	// Scope is the innermost type in whose scope references resolve: the
	// declared type itself for type declarations, the owner otherwise.
	Scope *TypeDecl
	Unit  *Unit

	Type   *TypeDecl
	Method *MethodDecl
	Field  *FieldDecl

	Doc *Doc
	Pos Position
}

// Declarations returns the documented (or documentable) declarations of u
// in source order: each type followed by its fields, constructors, methods
// and member types.
func (t *Table) Declarations(u *Unit) []*Declaration {
	var out []*Declaration
	var walk func(td *TypeDecl)
	walk = func(td *TypeDecl) {
		vis, deprecated := td.Visibility, td.IsDeprecated
		for e := td.Enclosing; e != nil; e = e.Enclosing {
			vis = minVisibility(vis, e.Visibility)
			deprecated = deprecated || e.IsDeprecated
		}
		out = append(out, &Declaration{
			Kind: DeclType, Name: td.Name, Visibility: vis, Deprecated: deprecated,
			Scope: td, Unit: u, Type: td, Doc: td.Doc, Pos: td.Pos,
		})
		for _, f := range td.Fields {
			if f.Doc == nil && (f.IsEnum || len(td.Components) > 0 && isComponent(td, f.Name)) {
				continue
			}
			out = append(out, &Declaration{
				Kind: DeclField, Name: f.ID(), Visibility: minVisibility(vis, f.Visibility),
				Deprecated: deprecated || f.IsDeprecated, Scope: td, Unit: u, Field: f, Doc: f.Doc, Pos: f.Pos,
			})
		}
		for _, c := range td.Constructors {
			out = append(out, &Declaration{
				Kind: DeclConstructor, Name: c.ID(), Visibility: minVisibility(vis, c.Visibility),
				Deprecated: deprecated || c.IsDeprecated, Scope: td, Unit: u, Method: c, Doc: c.Doc, Pos: c.Pos,
			})
		}
		for _, m := range td.Methods {
			out = append(out, &Declaration{
				Kind: DeclMethod, Name: m.ID(), Visibility: minVisibility(vis, m.Visibility),
				Deprecated: deprecated || m.IsDeprecated, Scope: td, Unit: u, Method: m, Doc: m.Doc, Pos: m.Pos,
			})
		}
		for _, mt := range td.MemberTypes {
			walk(mt)
		}
	}
	for _, td := range u.Types {
		walk(td)
	}
	return out
}

func isComponent(td *TypeDecl, name string) bool {
	for _, c := range td.Components {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Params returns the documented parameters: method and constructor
// parameters, or record components.
func (d *Declaration) Params() []Param {
	switch d.Kind {
	case DeclMethod, DeclConstructor:
		return d.Method.Parameters
	case DeclType:
		return d.Type.Components
	}
	return nil
}

func (d *Declaration) TypeParams() []TypeParam {
	switch d.Kind {
	case DeclMethod, DeclConstructor:
		return d.Method.TypeParameters
	case DeclType:
		return d.Type.TypeParameters
	}
	return nil
}

// Return returns the return type; ok is false for anything but methods.
func (d *Declaration) Return() (Type, bool) {
	if d.Kind != DeclMethod {
		return Type{}, false
	}
	return d.Method.ReturnType, true
}

func (d *Declaration) Throws() []Type {
	if d.Method == nil {
		return nil
	}
	return d.Method.Exceptions
}

// Overrides returns the IDs of the methods d overrides or implements.
func (d *Declaration) Overrides() []string {
	if d.Kind != DeclMethod {
		return nil
	}
	return d.Method.Overrides
}

func (d *Declaration) IsOverriding() bool {
	return len(d.Overrides()) > 0
}
