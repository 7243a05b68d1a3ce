package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

func decl(vis java.Visibility) *java.Declaration {
	return &java.Declaration{Kind: java.DeclField, Name: "p.T#f", Visibility: vis}
}

func overriding(vis java.Visibility) *java.Declaration {
	return &java.Declaration{
		Kind:       java.DeclMethod,
		Name:       "p.T#run()",
		Visibility: vis,
		Method:     &java.MethodDecl{Name: "run", Overrides: []string{"java.lang.Runnable#run()"}},
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if c.Version() != Java21 {
		t.Errorf("expected compliance 21, got %v", c.Version())
	}
	if !c.Supports(InlineReturn) {
		t.Errorf("expected inline return to be supported by default")
	}
	if !c.Describes("return") || c.Describes("param") {
		t.Errorf("expected only @return to need a description by default")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(`
compliance = "1.4"

[javadoc]
invalid = "error"
invalid_visibility = "protected"
missing_description = "all_standard_tags"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Version() != Java1_4 {
		t.Errorf("expected 1.4, got %v", c.Version())
	}
	if c.Supports(TypeParamTags) || c.Supports(PartialMemberTypeQualification) {
		t.Errorf("1.4 should not support 1.5 features")
	}
	if c.Javadoc.Invalid != LevelError {
		t.Errorf("expected invalid = error, got %q", c.Javadoc.Invalid)
	}
	if c.Javadoc.MissingTags != LevelWarning {
		t.Errorf("expected missing_tags to keep its default, got %q", c.Javadoc.MissingTags)
	}
	if !c.Describes("param") {
		t.Errorf("expected all standard tags to need a description")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		doc   string
		field string
	}{
		{"compliance = \"x\"", "compliance"},
		{"[javadoc]\nprocessing = \"maybe\"", "javadoc.processing"},
		{"[javadoc]\ninvalid = \"fatal\"", "javadoc.invalid"},
		{"[javadoc]\nmissing_tags_visibility = \"friends\"", "javadoc.missing_tags_visibility"},
		{"[javadoc]\ndeprecated_ref = \"loud\"", "javadoc.deprecated_ref"},
		{"[javadoc]\nmissing_description = \"some\"", "javadoc.missing_description"},
		{"[javadoc]\nunknown_option = true", "javadoc.unknown_option"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.doc)
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Errorf("%q: expected *Error, got %v", tt.doc, err)
			continue
		}
		if cerr.Field != tt.field {
			t.Errorf("%q: expected field %s, got %s", tt.doc, tt.field, cerr.Field)
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]Version{"1.3": 3, "1.5": 5, "5": 5, "16": 16, " 21 ": 21}
	for in, want := range tests {
		got, err := ParseVersion(in)
		if err != nil {
			t.Errorf("ParseVersion(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseVersion(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseVersion("1.1"); err == nil {
		t.Errorf("expected 1.1 to be rejected")
	}
	if Java5.String() != "1.5" || Java16.String() != "16" {
		t.Errorf("unexpected version strings %s %s", Java5, Java16)
	}
}

func TestFeatures(t *testing.T) {
	legacy, err := Parse(`compliance = "1.4"`)
	if err != nil {
		t.Fatal(err)
	}
	modern := Default()
	fs := Features()
	if len(fs) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fs))
	}
	for _, f := range fs {
		if f.String() == "" {
			t.Errorf("feature %d has no name", f)
		}
		if legacy.Supports(f) {
			t.Errorf("1.4 must not support %s (since %s)", f, f.Since())
		}
		if !modern.Supports(f) {
			t.Errorf("%s must support %s", modern.Compliance, f)
		}
	}
	if InlineReturn.Since() != Java16 {
		t.Errorf("inline {@return} is available from 16, got %s", InlineReturn.Since())
	}
}

func TestClassifyVisibilityFloor(t *testing.T) {
	c, err := Parse("[javadoc]\ninvalid_visibility = \"public\"\nmissing_tags = \"error\"\nmissing_tags_visibility = \"protected\"")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.Classify(diag.UndefinedType, decl(java.VisibilityPrivate)); got != diag.Suppressed {
		t.Errorf("private below public floor: got %v", got)
	}
	if got := c.Classify(diag.UndefinedType, decl(java.VisibilityPublic)); got != diag.Warning {
		t.Errorf("public at public floor: got %v", got)
	}
	if got := c.Classify(diag.MissingParamTag, decl(java.VisibilityProtected)); got != diag.Error {
		t.Errorf("protected at protected floor: got %v", got)
	}
	if got := c.Classify(diag.MissingParamTag, decl(java.VisibilityPackage)); got != diag.Suppressed {
		t.Errorf("package below protected floor: got %v", got)
	}
}

func TestClassifyOverriding(t *testing.T) {
	c := Default()
	if got := c.Classify(diag.MissingParamTag, overriding(java.VisibilityPublic)); got != diag.Suppressed {
		t.Errorf("overriding method without the overriding flag: got %v", got)
	}
	c, err := Parse("[javadoc]\nmissing_tags_overriding = true")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.Classify(diag.MissingParamTag, overriding(java.VisibilityPublic)); got != diag.Warning {
		t.Errorf("overriding method with the overriding flag: got %v", got)
	}
}

func TestClassifyDeprecated(t *testing.T) {
	c := Default()
	d := decl(java.VisibilityPublic)
	if got := c.Classify(diag.DeprecatedMethod, d); got != diag.Warning {
		t.Errorf("deprecated ref: got %v", got)
	}
	d.Deprecated = true
	if got := c.Classify(diag.DeprecatedMethod, d); got != diag.Suppressed {
		t.Errorf("deprecated ref in deprecated code: got %v", got)
	}
	c, err := Parse("[javadoc]\ndeprecated_ref = \"ignore\"\ndeprecation_in_deprecated_code = true")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.Classify(diag.DeprecatedMethod, d); got != diag.Ignore {
		t.Errorf("ignored deprecated ref: got %v", got)
	}
}

func TestClassifyProcessing(t *testing.T) {
	c, _ := Parse("[javadoc]\nprocessing = \"ignore\"\ninvalid = \"error\"")
	if got := c.Classify(diag.UndefinedType, decl(java.VisibilityPublic)); got != diag.Ignore {
		t.Errorf("processing ignore: got %v", got)
	}
	c, _ = Parse("[javadoc]\nprocessing = \"disabled\"")
	if !c.Disabled() {
		t.Errorf("expected Disabled")
	}
	if got := c.Classify(diag.UndefinedType, decl(java.VisibilityPublic)); got != diag.Suppressed {
		t.Errorf("processing disabled: got %v", got)
	}
}

func TestClassifyWarningOnly(t *testing.T) {
	c, _ := Parse("[javadoc]\ninvalid = \"error\"")
	if got := c.Classify(diag.InvalidURLReference, decl(java.VisibilityPublic)); got != diag.Warning {
		t.Errorf("warning-only category: got %v", got)
	}
	if got := c.Classify(diag.InternalError, decl(java.VisibilityPrivate)); got != diag.Warning {
		t.Errorf("internal error: got %v", got)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if path != "" {
		// a doclint.toml above the temp dir would be picked up; only check
		// that it is not inside root
		if rel, _ := filepath.Rel(root, path); rel == FileName {
			t.Fatalf("unexpected config %s", path)
		}
	}
	want := filepath.Join(root, "a", FileName)
	if err := os.WriteFile(want, []byte("compliance = \"17\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, err = Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Version() != 17 {
		t.Errorf("expected 17, got %v", c.Version())
	}
}
