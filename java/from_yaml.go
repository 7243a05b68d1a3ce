package java

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawUnit struct {
	Package string    `yaml:"package"`
	Imports []string  `yaml:"imports"`
	Types   []rawType `yaml:"types"`
}

type rawType struct {
	Name         string         `yaml:"name"`
	Kind         string         `yaml:"kind"`
	Visibility   string         `yaml:"visibility"`
	Extends      string         `yaml:"extends"`
	Implements   []string       `yaml:"implements"`
	Abstract     bool           `yaml:"abstract"`
	Static       bool           `yaml:"static"`
	Deprecated   bool           `yaml:"deprecated"`
	TypeParams   []rawTypeParam `yaml:"typeParams"`
	Components   []rawParam     `yaml:"components"`
	Constants    []string       `yaml:"constants"`
	Doc          yaml.Node      `yaml:"doc"`
	Fields       []rawField     `yaml:"fields"`
	Methods      []rawMethod    `yaml:"methods"`
	Constructors []rawMethod    `yaml:"constructors"`
	Types        []rawType      `yaml:"types"`

	pos Position
}

type rawField struct {
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type"`
	Visibility string    `yaml:"visibility"`
	Static     bool      `yaml:"static"`
	Final      bool      `yaml:"final"`
	Deprecated bool      `yaml:"deprecated"`
	Doc        yaml.Node `yaml:"doc"`

	pos Position
}

type rawMethod struct {
	Name       string         `yaml:"name"`
	Returns    string         `yaml:"returns"`
	Visibility string         `yaml:"visibility"`
	Static     bool           `yaml:"static"`
	Abstract   bool           `yaml:"abstract"`
	Default    bool           `yaml:"default"`
	Deprecated bool           `yaml:"deprecated"`
	Params     []rawParam     `yaml:"params"`
	Throws     []string       `yaml:"throws"`
	TypeParams []rawTypeParam `yaml:"typeParams"`
	Doc        yaml.Node      `yaml:"doc"`

	pos Position
}

type rawParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	pos Position
}

type rawTypeParam struct {
	Name   string   `yaml:"name"`
	Bounds []string `yaml:"bounds"`
}

func (r *rawType) UnmarshalYAML(value *yaml.Node) error {
	type plain rawType
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.pos = Position{Line: value.Line, Column: value.Column}
	return nil
}

func (r *rawField) UnmarshalYAML(value *yaml.Node) error {
	type plain rawField
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.pos = Position{Line: value.Line, Column: value.Column}
	return nil
}

func (r *rawMethod) UnmarshalYAML(value *yaml.Node) error {
	type plain rawMethod
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.pos = Position{Line: value.Line, Column: value.Column}
	return nil
}

func (r *rawParam) UnmarshalYAML(value *yaml.Node) error {
	type plain rawParam
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.pos = Position{Line: value.Line, Column: value.Column}
	return nil
}

// LoadUnit reads and parses a YAML compilation unit file.
func LoadUnit(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit: %w", err)
	}
	return ParseUnit(path, data)
}

// ParseUnit parses a YAML compilation unit. Type names in signatures are
// kept as written; Build resolves them.
func ParseUnit(path string, data []byte) (*Unit, error) {
	var raw rawUnit
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	u := &Unit{
		Path:    path,
		Package: strings.TrimSpace(raw.Package),
		Source:  data,
	}
	u.starts()
	for _, imp := range raw.Imports {
		u.Imports = append(u.Imports, ParseImport(imp))
	}
	for i := range raw.Types {
		t, err := u.typeFromRaw(&raw.Types[i], nil)
		if err != nil {
			return nil, err
		}
		u.Types = append(u.Types, t)
	}
	return u, nil
}

func (u *Unit) typeFromRaw(r *rawType, enclosing *TypeDecl) (*TypeDecl, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%s:%d: type without name", u.Path, r.pos.Line)
	}
	kind := ClassKind(strings.ToLower(r.Kind))
	switch kind {
	case "":
		kind = ClassKindClass
	case ClassKindClass, ClassKindInterface, ClassKindEnum, ClassKindRecord, ClassKindAnnotation:
	default:
		return nil, fmt.Errorf("%s:%d: unknown type kind %q", u.Path, r.pos.Line, r.Kind)
	}

	t := &TypeDecl{
		SimpleName:     r.Name,
		Package:        u.Package,
		Kind:           kind,
		SuperClass:     r.Extends,
		Interfaces:     r.Implements,
		IsAbstract:     r.Abstract || kind == ClassKindInterface,
		IsStatic:       r.Static || kind != ClassKindClass || (enclosing != nil && enclosing.IsInterface()),
		IsDeprecated:   r.Deprecated,
		TypeParameters: typeParamsFromRaw(r.TypeParams),
		Enclosing:      enclosing,
		Unit:           u,
		Pos:            u.position(r.pos),
	}
	if enclosing == nil {
		t.Name = qualify(u.Package, r.Name)
	} else {
		t.Name = enclosing.Name + "." + r.Name
	}

	var err error
	defaultVis := VisibilityPackage
	if enclosing != nil && enclosing.IsInterface() {
		defaultVis = VisibilityPublic
	}
	if t.Visibility, err = u.visibility(r.Visibility, defaultVis, r.pos); err != nil {
		return nil, err
	}
	t.Doc = u.docFromNode(&r.Doc)

	memberVis := VisibilityPackage
	if t.IsInterface() {
		memberVis = VisibilityPublic
	}

	for _, c := range r.Components {
		t.Components = append(t.Components, Param{Name: c.Name, Type: ParseType(c.Type), Pos: u.position(c.pos)})
		t.Fields = append(t.Fields, &FieldDecl{
			Name: c.Name, Type: ParseType(c.Type), Visibility: VisibilityPrivate,
			IsFinal: true, Owner: t, Pos: u.position(c.pos),
		})
	}
	for _, c := range r.Constants {
		t.Fields = append(t.Fields, &FieldDecl{
			Name: c, Type: Type{Name: t.SimpleName}, Visibility: VisibilityPublic,
			IsStatic: true, IsFinal: true, IsEnum: true, Owner: t, Pos: t.Pos,
		})
	}
	for i := range r.Fields {
		rf := &r.Fields[i]
		f := &FieldDecl{
			Name:         rf.Name,
			Type:         ParseType(rf.Type),
			IsStatic:     rf.Static || t.IsInterface(),
			IsFinal:      rf.Final || t.IsInterface(),
			IsDeprecated: rf.Deprecated,
			Owner:        t,
			Doc:          u.docFromNode(&rf.Doc),
			Pos:          u.position(rf.pos),
		}
		if f.Visibility, err = u.visibility(rf.Visibility, memberVis, rf.pos); err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, f)
	}
	for i := range r.Methods {
		m, err := u.methodFromRaw(&r.Methods[i], t, memberVis, false)
		if err != nil {
			return nil, err
		}
		t.Methods = append(t.Methods, m)
	}
	for i := range r.Constructors {
		m, err := u.methodFromRaw(&r.Constructors[i], t, VisibilityPackage, true)
		if err != nil {
			return nil, err
		}
		t.Constructors = append(t.Constructors, m)
	}
	for i := range r.Types {
		mt, err := u.typeFromRaw(&r.Types[i], t)
		if err != nil {
			return nil, err
		}
		t.MemberTypes = append(t.MemberTypes, mt)
	}
	return t, nil
}

func (u *Unit) methodFromRaw(r *rawMethod, owner *TypeDecl, defaultVis Visibility, ctor bool) (*MethodDecl, error) {
	m := &MethodDecl{
		Name:           r.Name,
		IsStatic:       r.Static,
		IsAbstract:     r.Abstract || (owner.IsInterface() && !r.Default && !r.Static),
		IsDefault:      r.Default,
		IsConstructor:  ctor,
		IsDeprecated:   r.Deprecated,
		TypeParameters: typeParamsFromRaw(r.TypeParams),
		Owner:          owner,
		Doc:            u.docFromNode(&r.Doc),
		Pos:            u.position(r.pos),
	}
	if ctor {
		m.Name = owner.SimpleName
	} else {
		if m.Name == "" {
			return nil, fmt.Errorf("%s:%d: method without name", u.Path, r.pos.Line)
		}
		ret := r.Returns
		if ret == "" {
			ret = "void"
		}
		m.ReturnType = ParseType(ret)
	}
	var err error
	if m.Visibility, err = u.visibility(r.Visibility, defaultVis, r.pos); err != nil {
		return nil, err
	}
	for i, p := range r.Params {
		pt := ParseType(p.Type)
		if pt.Varargs && i == len(r.Params)-1 {
			m.IsVarargs = true
		}
		m.Parameters = append(m.Parameters, Param{Name: p.Name, Type: pt, Pos: u.position(p.pos)})
	}
	for _, e := range r.Throws {
		m.Exceptions = append(m.Exceptions, ParseType(e))
	}
	return m, nil
}

func typeParamsFromRaw(raw []rawTypeParam) []TypeParam {
	var out []TypeParam
	for _, r := range raw {
		tp := TypeParam{Name: r.Name}
		for _, b := range r.Bounds {
			tp.Bounds = append(tp.Bounds, ParseType(b))
		}
		out = append(out, tp)
	}
	return out
}

func (u *Unit) visibility(s string, def Visibility, pos Position) (Visibility, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	v, ok := ParseVisibility(s)
	if !ok {
		return "", fmt.Errorf("%s:%d: unknown visibility %q", u.Path, pos.Line, s)
	}
	return v, nil
}

func (u *Unit) position(p Position) Position {
	if !p.Known() {
		return p
	}
	p.Offset = u.LineStart(p.Line) + p.Column - 1
	return p
}

// docFromNode converts the doc scalar into a Doc whose offsets map back
// into the unit file. Literal and folded block scalars start on the line
// after the indicator, indented by the first content line's indentation.
func (u *Unit) docFromNode(n *yaml.Node) *Doc {
	if n.Kind != yaml.ScalarNode || strings.TrimSpace(n.Value) == "" {
		return nil
	}
	d := &Doc{Text: n.Value}
	switch n.Style {
	case yaml.LiteralStyle, yaml.FoldedStyle:
		line := n.Line + 1
		for line <= len(u.starts()) && strings.TrimSpace(u.Line(line)) == "" {
			line++
		}
		text := u.Line(line)
		indent := len(text) - len(strings.TrimLeft(text, " "))
		d.Indent = indent
		d.Origin = Position{Line: line, Column: indent + 1, Offset: u.LineStart(line) + indent}
		for i := range strings.Count(d.Text, "\n") + 1 {
			d.LineOffsets = append(d.LineOffsets, u.LineStart(line+i)+indent)
		}
	default:
		col := n.Column
		if n.Style == yaml.DoubleQuotedStyle || n.Style == yaml.SingleQuotedStyle {
			col++
		}
		d.Indent = n.Column - 1
		d.Origin = Position{Line: n.Line, Column: col, Offset: u.LineStart(n.Line) + col - 1}
		d.LineOffsets = []int{d.Origin.Offset}
	}
	return d
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
