// Package diagfmt renders doc comment diagnostics for people and tools.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color bool
	// Context disables the source excerpt under each diagnostic when false.
	Context bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	pathColor    = color.New(color.Bold)
	gutterColor  = color.New(color.FgBlue)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Sources finds the unit a diagnostic path refers to.
type Sources map[string]*java.Unit

// NewSources indexes units by path.
func NewSources(units []*java.Unit) Sources {
	s := make(Sources, len(units))
	for _, u := range units {
		s[u.Path] = u
	}
	return s
}

// Pretty writes ds in the form
//
//	path:line:col: warning[category]: message
//	   7 |  * See {@link Missing}
//	     |              ^~~~~~~
func Pretty(w io.Writer, ds []diag.Diagnostic, src Sources, opts PrettyOpts) error {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	for _, d := range ds {
		sev := paint(warningColor, d.Severity.String())
		if d.Severity == diag.SevError {
			sev = paint(errorColor, d.Severity.String())
		}
		loc := fmt.Sprintf("%s:%d:%d", d.Path, d.Line, d.Column)
		if _, err := fmt.Fprintf(w, "%s: %s[%s]: %s\n", paint(pathColor, loc), sev, d.Category, d.Message()); err != nil {
			return err
		}
		if !opts.Context {
			continue
		}
		u := src[d.Path]
		if u == nil || d.Line < 1 {
			continue
		}
		line := u.Line(d.Line)
		gutter := fmt.Sprintf("%4d | ", d.Line)
		blank := strings.Repeat(" ", len(gutter)-2) + "| "
		pad, width := caret(line, d)
		if _, err := fmt.Fprintf(w, "%s%s\n%s%s%s\n",
			paint(gutterColor, gutter), expandTabs(line),
			paint(gutterColor, blank), strings.Repeat(" ", pad),
			paint(caretColor, "^"+strings.Repeat("~", width-1))); err != nil {
			return err
		}
	}
	return nil
}

// caret returns the display column and width of the underline for d on
// line. Columns are byte columns; the display accounts for wide runes.
func caret(line string, d diag.Diagnostic) (pad, width int) {
	start := clamp(d.Column-1, 0, len(line))
	end := len(line)
	if d.EndLine == d.Line {
		end = clamp(d.EndColumn-1, start, len(line))
	}
	pad = runewidth.StringWidth(expandTabs(line[:start]))
	width = runewidth.StringWidth(expandTabs(line[start:end]))
	if width < 1 {
		width = 1
	}
	return pad, width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Summary writes a one-line count of errors and warnings.
func Summary(w io.Writer, ds []diag.Diagnostic) error {
	errors, warnings := 0, 0
	for _, d := range ds {
		if d.Severity == diag.SevError {
			errors++
		} else {
			warnings++
		}
	}
	_, err := fmt.Fprintf(w, "%d %s, %d %s\n", errors, plural(errors, "error"), warnings, plural(warnings, "warning"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
