package rules

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
	"github.com/dhamidi/doclint/java/javadoc"
	"github.com/dhamidi/doclint/resolve"
)

const serviceUnit = `package: com.example
imports: [java.io.*]
types:
  - name: Base
    visibility: public
    abstract: true
    methods:
      - {name: process, returns: int, visibility: public, abstract: true, params: [{name: input, type: String}]}
  - name: Service
    visibility: public
    extends: Base
    implements: [Runnable]
    typeParams: [{name: T}]
    fields:
      - {name: size, type: int, visibility: public}
    methods:
      - {name: run, visibility: public}
      - {name: process, returns: int, visibility: public, params: [{name: input, type: String}]}
      - name: load
        returns: String
        visibility: public
        params: [{name: path, type: String}, {name: retries, type: int}]
        throws: [IOException]
      - {name: reset, visibility: public}
      - name: pick
        returns: T
        visibility: public
        typeParams: [{name: K}]
        params: [{name: key, type: K}]
      - {name: helper, visibility: private, params: [{name: n, type: int}]}
`

type finding struct {
	Category diag.Category
	Args     []string
}

func sortFindings(a, b finding) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	return strings.Join(a.Args, ",") < strings.Join(b.Args, ",")
}

func declarations(t *testing.T) (*java.Table, map[string]*java.Declaration) {
	t.Helper()
	u, err := java.ParseUnit("Service.yaml", []byte(serviceUnit))
	if err != nil {
		t.Fatalf("ParseUnit: %v", err)
	}
	table, err := java.BuildWithBootstrap(u)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decls := make(map[string]*java.Declaration)
	for _, d := range table.Declarations(u) {
		decls[d.Name] = d
	}
	return table, decls
}

func check(t *testing.T, table *java.Table, cfg *config.Config, decl java.Declaration, text string) []finding {
	t.Helper()
	decl.Doc = &java.Doc{Text: text}
	rep := diag.NewReporter(cfg, &decl)
	c := javadoc.Parse(text)
	for _, p := range c.Problems {
		rep.Report(p.Category, p.Start, p.End, p.Args...)
	}
	bindings := resolve.New(table, cfg, &decl, rep).Resolve(c)
	New(table, cfg, &decl, rep, bindings).Check(c)
	var out []finding
	for _, d := range rep.Diagnostics() {
		out = append(out, finding{Category: d.Category, Args: d.Args})
	}
	return out
}

func mustParse(t *testing.T, doc string) *config.Config {
	t.Helper()
	c, err := config.Parse(doc)
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	return c
}

type ruleCase struct {
	name string
	decl string
	cfg  string
	doc  string
	want []finding
}

func runCases(t *testing.T, tests []ruleCase) {
	t.Helper()
	table, decls := declarations(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, ok := decls[tt.decl]
			if !ok {
				t.Fatalf("no declaration %s", tt.decl)
			}
			got := check(t, table, mustParse(t, tt.cfg), *decl, tt.doc)
			if diff := cmp.Diff(tt.want, got, cmpopts.SortSlices(sortFindings), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

const (
	load  = "com.example.Service#load(java.lang.String,int)"
	reset = "com.example.Service#reset()"
)

func TestCompleteness(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name: "complete",
			decl: load,
			doc:  "/**\n * Loads.\n * @param path the path\n * @param retries how often\n * @return the content\n * @throws IOException on failure\n */",
		},
		{
			name: "empty",
			decl: load,
			doc:  "/** Loads. */",
			want: []finding{
				{diag.MissingParamTag, []string{"path"}},
				{diag.MissingParamTag, []string{"retries"}},
				{diag.MissingThrowsTag, []string{"IOException"}},
				{diag.MissingReturnTag, nil},
			},
		},
		{
			name: "subtype does not document the declared exception",
			decl: load,
			doc:  "/**\n * @param path p\n * @param retries r\n * @return c\n * @throws FileNotFoundException when missing\n */",
			want: []finding{{diag.MissingThrowsTag, []string{"IOException"}}},
		},
		{
			name: "unresolved throws counts by simple name",
			decl: load,
			doc:  "/**\n * @param path p\n * @param retries r\n * @return c\n * @throws io.IOException on failure\n */",
			want: []finding{{diag.UndefinedType, []string{"io.IOException"}}},
		},
		{
			name: "type parameters",
			decl: "com.example.Service#pick(java.lang.Object)",
			doc:  "/**\n * @param key k\n * @return v\n */",
			want: []finding{{diag.MissingParamTag, []string{"<K>"}}},
		},
		{
			name: "type parameters before 1.5",
			decl: "com.example.Service#pick(java.lang.Object)",
			cfg:  `compliance = "1.4"`,
			doc:  "/**\n * @param key k\n * @return v\n */",
		},
		{
			name: "below the visibility floor",
			decl: "com.example.Service#helper(int)",
			doc:  "/** Helps. */",
		},
		{
			name: "private floor",
			decl: "com.example.Service#helper(int)",
			cfg:  "[javadoc]\nmissing_tags_visibility = \"private\"",
			doc:  "/** Helps. */",
			want: []finding{{diag.MissingParamTag, []string{"n"}}},
		},
	})
}

func TestInheritDoc(t *testing.T) {
	overriding := "[javadoc]\nmissing_tags_overriding = true"
	runCases(t, []ruleCase{
		{
			name: "leading inheritDoc on an overriding method",
			decl: "com.example.Service#process(java.lang.String)",
			cfg:  overriding,
			doc:  "/** {@inheritDoc} */",
		},
		{
			name: "overriding method without inheritDoc",
			decl: "com.example.Service#process(java.lang.String)",
			cfg:  overriding,
			doc:  "/** Processes. */",
			want: []finding{
				{diag.MissingParamTag, []string{"input"}},
				{diag.MissingReturnTag, nil},
			},
		},
		{
			name: "overriding methods are exempt by default",
			decl: "com.example.Service#process(java.lang.String)",
			doc:  "/** Processes. */",
		},
		{
			name: "inheritDoc inside a param description",
			decl: "com.example.Service#process(java.lang.String)",
			cfg:  overriding,
			doc:  "/**\n * Processes.\n * @param input {@inheritDoc}\n * @return {@inheritDoc}\n */",
		},
		{
			name: "inheritDoc inside a since description",
			decl: "com.example.Service#run()",
			doc:  "/**\n * Runs.\n * @since {@inheritDoc}\n */",
			want: []finding{{diag.UnexpectedTag, nil}},
		},
		{
			name: "inheritDoc without an overridden method",
			decl: load,
			doc:  "/** {@inheritDoc} */",
			want: []finding{
				{diag.UnexpectedTag, nil},
				{diag.MissingParamTag, []string{"path"}},
				{diag.MissingParamTag, []string{"retries"}},
				{diag.MissingThrowsTag, []string{"IOException"}},
				{diag.MissingReturnTag, nil},
			},
		},
	})
}

func TestDuplicates(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name: "duplicate param",
			decl: load,
			doc:  "/**\n * @param path a\n * @param path b\n * @param retries r\n * @return c\n * @throws IOException e\n */",
			want: []finding{{diag.DuplicateParamTag, nil}},
		},
		{
			name: "duplicate throws is fine",
			decl: load,
			doc:  "/**\n * @param path a\n * @param retries r\n * @return c\n * @throws IOException when reading\n * @throws IOException when closing\n */",
		},
		{
			name: "duplicate return",
			decl: load,
			doc:  "/**\n * @param path a\n * @param retries r\n * @return c\n * @return d\n * @throws IOException e\n */",
			want: []finding{{diag.DuplicateReturnTag, nil}},
		},
		{
			name: "duplicate deprecated",
			decl: reset,
			doc:  "/**\n * @deprecated use something else\n * @deprecated really\n */",
			want: []finding{{diag.DuplicateTag, []string{"deprecated"}}},
		},
		{
			name: "inline and block return",
			decl: load,
			doc:  "/**\n * {@return the content}\n * @param path a\n * @param retries r\n * @return the content\n * @throws IOException e\n */",
		},
	})
}

func TestPlacement(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name: "param and return on a field",
			decl: "com.example.Service#size",
			doc:  "/**\n * The size.\n * @param x y\n * @return z\n */",
			want: []finding{{diag.UnexpectedTag, nil}, {diag.UnexpectedTag, nil}},
		},
		{
			name: "return on a void method",
			decl: reset,
			doc:  "/**\n * Resets.\n * @return nothing\n */",
			want: []finding{{diag.UnexpectedTag, nil}},
		},
		{
			name: "throws on a type",
			decl: "com.example.Service",
			doc:  "/**\n * A service.\n * @param <T> the element\n * @throws IOException never\n */",
			want: []finding{{diag.UnexpectedTag, nil}},
		},
		{
			name: "block-only tag used inline",
			decl: reset,
			doc:  "/** Resets {@param x}. */",
			want: []finding{{diag.UnexpectedTag, nil}},
		},
		{
			name: "inline-only tag used as block",
			decl: reset,
			doc:  "/**\n * Resets.\n * @link Object\n */",
			want: []finding{{diag.UnexpectedTag, nil}},
		},
		{
			name: "inline return before 16",
			decl: load,
			cfg:  `compliance = "15"`,
			doc:  "/**\n * {@return the content}\n * @param path a\n * @param retries r\n * @throws IOException e\n */",
			want: []finding{{diag.UnexpectedTag, nil}, {diag.MissingReturnTag, nil}},
		},
		{
			name: "inline return from 16",
			decl: load,
			cfg:  `compliance = "16"`,
			doc:  "/**\n * {@return the content}\n * @param path a\n * @param retries r\n * @throws IOException e\n */",
		},
		{
			name: "custom block tags are fine",
			decl: reset,
			doc:  "/**\n * Resets.\n * @custom anything\n */",
		},
	})
}

func TestMissingDescription(t *testing.T) {
	runCases(t, []ruleCase{
		{
			name: "return without description",
			decl: load,
			doc:  "/**\n * @param path p\n * @param retries r\n * @return\n * @throws IOException e\n */",
			want: []finding{{diag.MissingDescription, []string{"return"}}},
		},
		{
			name: "param without description in return scope",
			decl: load,
			doc:  "/**\n * @param path\n * @param retries r\n * @return c\n * @throws IOException e\n */",
		},
		{
			name: "param without description in all tags scope",
			decl: load,
			cfg:  "[javadoc]\nmissing_description = \"all_standard_tags\"",
			doc:  "/**\n * @param path\n * @param retries r\n * @return c\n * @throws IOException e\n */",
			want: []finding{{diag.MissingDescription, []string{"param"}}},
		},
		{
			name: "scope none",
			decl: load,
			cfg:  "[javadoc]\nmissing_description = \"none\"",
			doc:  "/**\n * @param path p\n * @param retries r\n * @return\n * @throws IOException e\n */",
		},
	})
}

func TestMissingComment(t *testing.T) {
	_, decls := declarations(t)
	decl := *decls[reset]
	decl.Doc = nil

	cfg := config.Default()
	rep := diag.NewReporter(cfg, &decl)
	if !MissingComment(&decl, rep) {
		t.Fatalf("expected MissingComment to report an undocumented declaration")
	}
	if got := rep.Diagnostics(); len(got) != 0 {
		t.Errorf("missing comments are ignored by default, got %v", got)
	}

	cfg = mustParse(t, "[javadoc]\nmissing_comment = \"error\"")
	rep = diag.NewReporter(cfg, &decl)
	MissingComment(&decl, rep)
	got := rep.Diagnostics()
	if len(got) != 1 || got[0].Category != diag.MissingComment || got[0].Severity != diag.SevError {
		t.Fatalf("expected one missing comment error, got %v", got)
	}
	if msg := got[0].Message(); msg != "Javadoc: Missing comment for public declaration" {
		t.Errorf("unexpected message %q", msg)
	}
}
