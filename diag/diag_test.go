package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/doclint/java"
)

func TestCatalog(t *testing.T) {
	ids := make(map[int]Category)
	names := make(map[string]Category)
	for _, c := range Categories() {
		if c.ID() == 0 || c.String() == "none" || c.Template() == "" {
			t.Errorf("category %d has an incomplete catalog entry", c)
		}
		if prev, ok := ids[c.ID()]; ok {
			t.Errorf("%s and %s share id %d", prev, c, c.ID())
		}
		ids[c.ID()] = c
		if prev, ok := names[c.String()]; ok {
			t.Errorf("%d and %d share name %s", prev, c, c)
		}
		names[c.String()] = c

		got, ok := CategoryByName(c.String())
		if !ok || got != c {
			t.Errorf("CategoryByName(%q) = %v, %v", c, got, ok)
		}
	}
	if _, ok := CategoryByName("no-such-category"); ok {
		t.Errorf("expected an unknown name to be rejected")
	}
	if CategoryNone.String() != "none" || CategoryNone.ID() != 0 {
		t.Errorf("CategoryNone must not resolve to a catalog entry")
	}
	if !InternalError.WarningOnly() {
		t.Errorf("internal errors are never raised above warning")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		template string
		args     []string
		want     string
	}{
		{"no args", nil, "no args"},
		{"{0} and {1}", []string{"a", "b"}, "a and b"},
		{"{1} before {0}", []string{"a", "b"}, "b before a"},
		{"{0} is {0}", []string{"x"}, "x is x"},
		{"literal {0}", []string{"{1}", "y"}, "literal {1}"},
	}
	for _, tt := range tests {
		if got := Format(tt.template, tt.args...); got != tt.want {
			t.Errorf("Format(%q, %q) = %q, want %q", tt.template, tt.args, got, tt.want)
		}
	}

	d := Diagnostic{Category: UndefinedType, Args: []string{"Foo"}}
	if got, want := d.Message(), "Javadoc: Foo cannot be resolved to a type"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestSort(t *testing.T) {
	ds := []Diagnostic{
		{Path: "b", Line: 1, Column: 1, Category: UndefinedType},
		{Path: "a", Line: 2, Column: 1, Category: UndefinedType},
		{Path: "a", Line: 1, Column: 5, Category: MissingReturnTag},
		{Path: "a", Line: 1, Column: 5, Category: UndefinedType},
		{Path: "a", Line: 1, Column: 3, Category: UndefinedField},
	}
	Sort(ds)
	type key struct {
		Path     string
		Line     int
		Column   int
		Category Category
	}
	var got []key
	for _, d := range ds {
		got = append(got, key{d.Path, d.Line, d.Column, d.Category})
	}
	want := []key{
		{"a", 1, 3, UndefinedField},
		{"a", 1, 5, UndefinedType},
		{"a", 1, 5, MissingReturnTag},
		{"a", 2, 1, UndefinedType},
		{"b", 1, 1, UndefinedType},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

type classifierFunc func(Category, *java.Declaration) Verdict

func (f classifierFunc) Classify(c Category, d *java.Declaration) Verdict {
	return f(c, d)
}

func TestReporter(t *testing.T) {
	decl := &java.Declaration{
		Name: "p.T#m()",
		Unit: &java.Unit{Path: "T.yaml"},
		Doc:  &java.Doc{Text: "/**\n * See {@link X}\n */"},
		Pos:  java.Position{Offset: 40, Line: 5, Column: 3},
	}
	verdicts := map[Category]Verdict{
		UndefinedType:    Error,
		UndefinedField:   Warning,
		MissingReturnTag: Ignore,
		MissingParamTag:  Suppressed,
	}
	rep := NewReporter(classifierFunc(func(c Category, _ *java.Declaration) Verdict {
		return verdicts[c]
	}), decl)

	if !rep.Applies(MissingReturnTag) || rep.Applies(MissingParamTag) {
		t.Errorf("Applies must only be false for suppressed categories")
	}

	// "X" sits on the second line of the comment.
	rep.Report(UndefinedType, 18, 19, "X")
	rep.ReportAt(UndefinedField, decl.Pos, 4, "f")
	rep.Report(MissingReturnTag, 0, 0)
	rep.Report(MissingParamTag, 0, 0, "a")

	got := rep.Diagnostics()
	want := []Diagnostic{
		{
			Category: UndefinedType, Severity: SevError, Path: "T.yaml",
			Start: 18, End: 19, Line: 2, Column: 15, EndLine: 2, EndColumn: 16,
			TemplateID: UndefinedType.ID(), Args: []string{"X"}, Declaration: "p.T#m()",
		},
		{
			Category: UndefinedField, Severity: SevWarning, Path: "T.yaml",
			Start: 40, End: 44, Line: 5, Column: 3, EndLine: 5, EndColumn: 7,
			TemplateID: UndefinedField.ID(), Args: []string{"f"}, Declaration: "p.T#m()",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if rep.Ignored() != 2 {
		t.Errorf("expected 2 ignored findings, got %d", rep.Ignored())
	}
	if !HasErrors(got) || HasErrors(got[1:]) {
		t.Errorf("HasErrors disagrees with the severities")
	}
}
