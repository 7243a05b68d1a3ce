package diagfmt

import (
	"encoding/json"
	"io"

	"fortio.org/safecast"

	"github.com/dhamidi/doclint/diag"
)

// LocationJSON locates a diagnostic in a unit file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

type DiagnosticJSON struct {
	Severity    string       `json:"severity"`
	Code        string       `json:"code"`
	TemplateID  int          `json:"template_id"`
	Message     string       `json:"message"`
	Args        []string     `json:"args,omitempty"`
	Declaration string       `json:"declaration"`
	Location    LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput converts ds without serializing them.
func BuildDiagnosticsOutput(ds []diag.Diagnostic) (DiagnosticsOutput, error) {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(ds)), Count: len(ds)}
	for _, d := range ds {
		loc, err := makeLocation(d)
		if err != nil {
			return DiagnosticsOutput{}, err
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity:    d.Severity.String(),
			Code:        d.Category.String(),
			TemplateID:  d.TemplateID,
			Message:     d.Message(),
			Args:        d.Args,
			Declaration: d.Declaration,
			Location:    loc,
		})
	}
	return out, nil
}

func makeLocation(d diag.Diagnostic) (LocationJSON, error) {
	loc := LocationJSON{File: d.Path}
	for _, f := range []struct {
		dst *uint32
		v   int
	}{
		{&loc.StartByte, d.Start},
		{&loc.EndByte, d.End},
		{&loc.StartLine, d.Line},
		{&loc.StartCol, d.Column},
		{&loc.EndLine, d.EndLine},
		{&loc.EndCol, d.EndColumn},
	} {
		v, err := safecast.Conv[uint32](f.v)
		if err != nil {
			return LocationJSON{}, err
		}
		*f.dst = v
	}
	return loc, nil
}

// JSON writes ds as an indented JSON document.
func JSON(w io.Writer, ds []diag.Diagnostic) error {
	out, err := BuildDiagnosticsOutput(ds)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
