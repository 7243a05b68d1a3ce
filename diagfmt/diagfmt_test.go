package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

func sample() diag.Diagnostic {
	return diag.Diagnostic{
		Category:    diag.UndefinedType,
		Severity:    diag.SevWarning,
		Path:        "T.yaml",
		Start:       18,
		End:         21,
		Line:        2,
		Column:      10,
		EndLine:     2,
		EndColumn:   13,
		TemplateID:  diag.UndefinedType.ID(),
		Args:        []string{"Foo"},
		Declaration: "p.T",
	}
}

func TestPretty(t *testing.T) {
	unit := &java.Unit{Path: "T.yaml", Source: []byte("line one\n  {@link Foo}\n")}
	var buf bytes.Buffer
	err := Pretty(&buf, []diag.Diagnostic{sample()}, NewSources([]*java.Unit{unit}), PrettyOpts{Context: true})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := strings.Join([]string{
		"T.yaml:2:10: warning[undefined-type]: Javadoc: Foo cannot be resolved to a type",
		"   2 |   {@link Foo}",
		"     |          ^~~",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{sample()}, nil, PrettyOpts{Context: true}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("expected a single line without a source excerpt, got %q", buf.String())
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		col, end   int
		pad, width int
	}{
		{"plain", "  {@link Foo}", 10, 13, 9, 3},
		{"tab", "\t{@link X}", 9, 10, 11, 1},
		{"wide runes", "日本 {@link X}", 15, 16, 12, 1},
		{"empty span", "abc", 2, 2, 1, 1},
		{"past end", "abc", 10, 20, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.Diagnostic{Line: 1, Column: tt.col, EndLine: 1, EndColumn: tt.end}
			pad, width := caret(tt.line, d)
			if pad != tt.pad || width != tt.width {
				t.Errorf("caret(%q) = %d, %d; want %d, %d", tt.line, pad, width, tt.pad, tt.width)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	errorDiag := sample()
	errorDiag.Severity = diag.SevError
	var buf bytes.Buffer
	if err := Summary(&buf, []diag.Diagnostic{sample(), sample(), errorDiag}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "1 error, 2 warnings\n"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, []diag.Diagnostic{sample()}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity:    "warning",
			Code:        "undefined-type",
			TemplateID:  diag.UndefinedType.ID(),
			Message:     "Javadoc: Foo cannot be resolved to a type",
			Args:        []string{"Foo"},
			Declaration: "p.T",
			Location: LocationJSON{
				File:      "T.yaml",
				StartByte: 18,
				EndByte:   21,
				StartLine: 2,
				StartCol:  10,
				EndLine:   2,
				EndCol:    13,
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Errorf("expected an empty array, got %s", buf.String())
	}
}

func TestJSONRejectsNegativePositions(t *testing.T) {
	d := sample()
	d.Line = -1
	if err := JSON(&bytes.Buffer{}, []diag.Diagnostic{d}); err == nil {
		t.Fatalf("expected an error for a negative line")
	}
}
