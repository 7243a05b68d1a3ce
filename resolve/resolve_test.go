package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
	"github.com/dhamidi/doclint/java/javadoc"
)

const shapesUnit = `package: com.example
imports: [java.util.*, java.io.*]
types:
  - name: Shapes
    visibility: public
    typeParams: [{name: S, bounds: [CharSequence]}]
    fields:
      - {name: COUNT, type: int, visibility: public, static: true}
    constructors:
      - {visibility: public, params: [{name: n, type: int}]}
    methods:
      - {name: area, returns: double, visibility: public, params: [{name: w, type: double}, {name: h, type: double}]}
      - {name: scale, visibility: public, params: [{name: f, type: int}]}
      - {name: scale, visibility: public, params: [{name: f, type: double}]}
      - {name: names, visibility: public, params: [{name: xs, type: "String..."}]}
      - {name: label, visibility: public, params: [{name: s, type: S}]}
      - {name: subject, visibility: public}
      - name: generic
        visibility: public
        typeParams: [{name: E, bounds: [Exception]}]
        params: [{name: x, type: int}]
        throws: [IOException]
  - name: Outer
    visibility: public
    types:
      - name: Inner
        visibility: public
        static: true
        methods:
          - {name: subject, visibility: public}
      - name: Sibling
        visibility: public
        static: true
        types:
          - {name: X, visibility: public, static: true}
`

type finding struct {
	Category diag.Category
	Text     string
	Args     []string
}

func setup(t *testing.T) (*java.Table, []*java.Declaration) {
	t.Helper()
	u, err := java.ParseUnit("Shapes.yaml", []byte(shapesUnit))
	if err != nil {
		t.Fatalf("ParseUnit: %v", err)
	}
	table, err := java.BuildWithBootstrap(u)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return table, table.Declarations(u)
}

func find(t *testing.T, decls []*java.Declaration, name string) java.Declaration {
	t.Helper()
	for _, d := range decls {
		if d.Name == name {
			return *d
		}
	}
	t.Fatalf("no declaration %s", name)
	return java.Declaration{}
}

// resolveDoc resolves text as the comment of decl and returns the findings,
// with Text set to the commented source they point at.
func resolveDoc(t *testing.T, table *java.Table, cfg *config.Config, decl java.Declaration, text string) ([]finding, Bindings, *javadoc.Comment) {
	t.Helper()
	decl.Doc = &java.Doc{Text: text}
	c := javadoc.Parse(text)
	if len(c.Problems) > 0 {
		t.Fatalf("%q: unexpected scanner problems %v", text, c.Problems)
	}
	rep := diag.NewReporter(cfg, &decl)
	bindings := New(table, cfg, &decl, rep).Resolve(c)
	var out []finding
	for _, d := range rep.Diagnostics() {
		out = append(out, finding{Category: d.Category, Text: text[d.Start:d.End], Args: d.Args})
	}
	return out, bindings, c
}

func TestResolveMembers(t *testing.T) {
	table, decls := setup(t)
	subject := find(t, decls, "com.example.Shapes#subject()")
	cfg := config.Default()

	tests := []struct {
		doc  string
		want []finding
	}{
		{"/** {@link #COUNT} */", nil},
		{"/** {@link #area(double, double)} */", nil},
		{"/** {@link #area(double w, double h)} */", nil},
		{"/** {@link #area(int, int)} */", []finding{
			{diag.NotApplicableMethod, "area(int, int)", []string{"area", "double, double", "Shapes", "int, int"}},
		}},
		{"/** {@link #volume()} */", []finding{
			{diag.UndefinedMethod, "volume()", []string{"volume", "", "Shapes"}},
		}},
		{"/** {@link #volume} */", []finding{
			{diag.UndefinedField, "volume", []string{"volume"}},
		}},
		{"/** {@link #scale} */", []finding{
			{diag.AmbiguousReference, "scale", []string{"scale", "Shapes"}},
		}},
		{"/** {@link #scale(double)} */", nil},
		{"/** {@link #names(String[])} */", nil},
		{"/** {@link #names(String...)} */", nil},
		{"/** {@link #label(CharSequence)} */", nil},
		{"/** {@link #label(S)} */", nil},
		{"/** {@link #Shapes(int)} */", nil},
		{"/** {@link #Shapes(long)} */", []finding{
			{diag.NotApplicableConstructor, "Shapes(long)", []string{"Shapes", "int", "long"}},
		}},
		{"/** {@link #equals(Object)} */", nil},
		{"/** {@link Object#toString()} */", nil},
		{"/** {@link java.util.List} */", nil},
		{"/** {@link Missing#foo} */", []finding{
			{diag.UndefinedType, "Missing", []string{"Missing"}},
		}},
		{"/** {@link #area(Missing)} */", []finding{
			{diag.UndefinedType, "Missing", []string{"Missing"}},
		}},
		{"/** {@value #COUNT} */", nil},
		{"/** {@value #area} */", []finding{
			{diag.InvalidReference, "#area", nil},
		}},
		{"/** @see Thread#stop() */", []finding{
			{diag.DeprecatedMethod, "stop", []string{"stop", "", "Thread"}},
		}},
		{"/** @see Date#getYear() */", []finding{
			{diag.DeprecatedMethod, "getYear", []string{"getYear", "", "Date"}},
		}},
		{"/** @see String#String(byte[], int) */", []finding{
			{diag.DeprecatedConstructor, "String", []string{"String", "byte[], int"}},
		}},
		{"/** @see Object#finalize */", []finding{
			{diag.DeprecatedMethod, "finalize", []string{"finalize", "", "Object"}},
		}},
	}
	for _, tt := range tests {
		got, _, _ := resolveDoc(t, table, cfg, subject, tt.doc)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: findings mismatch (-want +got):\n%s", tt.doc, diff)
		}
	}
}

func TestBindings(t *testing.T) {
	table, decls := setup(t)
	subject := find(t, decls, "com.example.Shapes#subject()")
	_, bindings, c := resolveDoc(t, table, config.Default(), subject,
		"/** {@link #scale(int)} {@link List} {@link #COUNT} {@link Nope} */")
	if len(c.Tags) != 4 {
		t.Fatalf("expected 4 tags, got %d", len(c.Tags))
	}
	ref := func(i int) javadoc.Reference { return javadoc.RefOf(c.Tags[i]) }

	if m := bindings.Of(ref(0)).Method; m == nil || m.ID() != "com.example.Shapes#scale(int)" {
		t.Errorf("expected #scale(int) bound to the int overload, got %+v", bindings.Of(ref(0)))
	}
	if td := bindings.TypeOf(ref(1)); td == nil || td.Name != "java.util.List" {
		t.Errorf("expected List bound to java.util.List, got %v", td)
	}
	if f := bindings.Of(ref(2)).Field; f == nil || f.ID() != "com.example.Shapes#COUNT" {
		t.Errorf("expected #COUNT bound to the field")
	}
	if bd := bindings.Of(ref(3)); bd == nil || !bd.Failed {
		t.Errorf("expected Nope to fail, got %+v", bd)
	}
}

func TestParamAndThrows(t *testing.T) {
	table, decls := setup(t)
	generic := find(t, decls, "com.example.Shapes#generic(int)")
	subject := find(t, decls, "com.example.Shapes#subject()")
	cfg := config.Default()

	tests := []struct {
		decl java.Declaration
		doc  string
		want []finding
	}{
		{generic, "/**\n * @param x the x\n * @param <E> the error\n */", nil},
		{generic, "/**\n * @param y not there\n * @param <F> nor this\n */", []finding{
			{diag.UndefinedParam, "y", []string{"y"}},
			{diag.UndefinedParam, "<F>", []string{"F"}},
		}},
		{generic, "/**\n * @throws IOException when io fails\n */", nil},
		{generic, "/**\n * @throws FileNotFoundException when missing\n */", nil},
		{generic, "/**\n * @throws E when generic\n */", nil},
		{subject, "/**\n * @throws IOException when io fails\n */", []finding{
			{diag.UndeclaredException, "IOException", []string{"IOException"}},
		}},
		{subject, "/**\n * @throws IllegalArgumentException when bad\n */", nil},
		{subject, "/**\n * @exception String oops\n */", []finding{
			{diag.NotAnExceptionType, "String", []string{"String"}},
		}},
	}
	for _, tt := range tests {
		got, _, _ := resolveDoc(t, table, cfg, tt.decl, tt.doc)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: findings mismatch (-want +got):\n%s", tt.doc, diff)
		}
	}
}

func TestMemberTypeQualification(t *testing.T) {
	table, decls := setup(t)
	inner := find(t, decls, "com.example.Outer.Inner#subject()")
	doc := "/** {@link Sibling.X} */"

	modern := config.Default()
	if got, _, _ := resolveDoc(t, table, modern, inner, doc); len(got) != 0 {
		t.Errorf("compliance 21: unexpected findings %v", got)
	}

	legacy, err := config.Parse(`compliance = "1.4"`)
	if err != nil {
		t.Fatal(err)
	}
	got, _, _ := resolveDoc(t, table, legacy, inner, doc)
	want := []finding{{diag.InvalidMemberTypeQualification, "Sibling.X", nil}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compliance 1.4 (-want +got):\n%s", diff)
	}
	if got, _, _ := resolveDoc(t, table, legacy, inner, "/** {@link Outer.Sibling.X} */"); len(got) != 0 {
		t.Errorf("fully qualified from the enclosing type: unexpected findings %v", got)
	}
}

func TestDeprecationInDeprecatedCode(t *testing.T) {
	table, decls := setup(t)
	subject := find(t, decls, "com.example.Shapes#subject()")
	subject.Deprecated = true
	if got, _, _ := resolveDoc(t, table, config.Default(), subject, "/** @see Thread#stop() */"); len(got) != 0 {
		t.Errorf("expected deprecated reference in deprecated code to be suppressed, got %v", got)
	}
}

func TestPackageReferences(t *testing.T) {
	table, decls := setup(t)
	subject := find(t, decls, "com.example.Shapes#subject()")
	cfg := config.Default()

	_, bindings, c := resolveDoc(t, table, cfg, subject,
		"/** {@link java.util} {@link com.example} {@link java.lang} */")
	for i, want := range []string{"java.util", "com.example", "java.lang"} {
		bd := bindings.Of(javadoc.RefOf(c.Tags[i]))
		if bd == nil || bd.Package != want || bd.Failed || bd.Type != nil {
			t.Errorf("expected %s bound to a package, got %+v", want, bd)
		}
	}

	tests := []struct {
		doc  string
		want []finding
	}{
		{"/** @see java.util */", nil},
		{"/** @see com */", nil},
		{"/** @see java.nope */", []finding{
			{diag.UndefinedType, "java.nope", []string{"java.nope"}},
		}},
		{"/**\n * @throws java.io when io fails\n */", []finding{
			{diag.UndefinedType, "java.io", []string{"java.io"}},
		}},
		{"/** {@link java.util#size()} */", []finding{
			{diag.UndefinedType, "java.util", []string{"java.util"}},
		}},
	}
	for _, tt := range tests {
		got, _, _ := resolveDoc(t, table, cfg, subject, tt.doc)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: findings mismatch (-want +got):\n%s", tt.doc, diff)
		}
	}

	if td := bindings.TypeOf(javadoc.RefOf(c.Tags[0])); td != nil {
		t.Errorf("a package binding has no type, got %s", td.Name)
	}
}
