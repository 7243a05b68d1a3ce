package lsp

import (
	"net/url"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// utf16Column converts a 1-based byte column on line into the 0-based
// UTF-16 offset editors expect.
func utf16Column(line string, col int) uint32 {
	end := max(0, min(col-1, len(line)))
	units := 0
	for i := 0; i < end; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == utf8.RuneError && size <= 1 {
			units++
			i++
			continue
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return safeUint32(units)
}

func toPosition(src *java.Unit, line, col int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}
	return protocol.Position{
		Line:      safeUint32(line - 1),
		Character: utf16Column(src.Line(line), col),
	}
}

func toSeverity(s diag.Severity) *protocol.DiagnosticSeverity {
	sev := protocol.DiagnosticSeverityWarning
	if s == diag.SevError {
		sev = protocol.DiagnosticSeverityError
	}
	return &sev
}

// toProtocol converts ds, all of which belong to the unit file content.
func toProtocol(content []byte, ds []diag.Diagnostic) []protocol.Diagnostic {
	src := &java.Unit{Source: content}
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		source := lsName
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: toPosition(src, d.Line, d.Column),
				End:   toPosition(src, d.EndLine, d.EndColumn),
			},
			Severity: toSeverity(d.Severity),
			Code:     &protocol.IntegerOrString{Value: d.Category.String()},
			Source:   &source,
			Message:  d.Message(),
		})
	}
	return out
}

// fileError reports a file that could not be checked at its first line.
func fileError(err error) protocol.Diagnostic {
	source := lsName
	return protocol.Diagnostic{
		Severity: toSeverity(diag.SevError),
		Source:   &source,
		Message:  err.Error(),
	}
}

func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
