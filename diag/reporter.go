package diag

import (
	"github.com/dhamidi/doclint/java"
)

// Classifier decides the verdict of a category for a declaration.
type Classifier interface {
	Classify(cat Category, decl *java.Declaration) Verdict
}

// Reporter collects the diagnostics of one declaration. It is not safe for
// concurrent use; every declaration gets its own.
type Reporter struct {
	classifier Classifier
	decl       *java.Declaration
	path       string
	diags      []Diagnostic
	ignored    int
}

func NewReporter(c Classifier, decl *java.Declaration) *Reporter {
	r := &Reporter{classifier: c, decl: decl}
	if decl.Unit != nil {
		r.path = decl.Unit.Path
	}
	return r
}

// Verdict classifies cat for the reporter's declaration.
func (r *Reporter) Verdict(cat Category) Verdict {
	return r.classifier.Classify(cat, r.decl)
}

// Applies reports whether checks producing cat should run at all.
func (r *Reporter) Applies(cat Category) bool {
	return r.Verdict(cat) != Suppressed
}

// Report records a finding spanning [start, end) of the declaration's doc
// comment text.
func (r *Reporter) Report(cat Category, start, end int, args ...string) {
	doc := r.decl.Doc
	if doc == nil {
		r.ReportAt(cat, r.decl.Pos, 0, args...)
		return
	}
	if end < start {
		end = start
	}
	from, to := doc.Locate(start), doc.Locate(end)
	r.add(cat, from, to, args)
}

// ReportAt records a finding anchored at a unit file position, such as a
// declaration or a parameter.
func (r *Reporter) ReportAt(cat Category, pos java.Position, length int, args ...string) {
	to := pos
	to.Offset += length
	to.Column += length
	r.add(cat, pos, to, args)
}

func (r *Reporter) add(cat Category, from, to java.Position, args []string) {
	sev, ok := r.Verdict(cat).Severity()
	if !ok {
		r.ignored++
		return
	}
	r.diags = append(r.diags, Diagnostic{
		Category:    cat,
		Severity:    sev,
		Path:        r.path,
		Start:       from.Offset,
		End:         to.Offset,
		Line:        from.Line,
		Column:      from.Column,
		EndLine:     to.Line,
		EndColumn:   to.Column,
		TemplateID:  cat.ID(),
		Args:        args,
		Declaration: r.decl.Name,
	})
}

// Ignored returns the number of findings dropped by an ignore or suppressed
// verdict.
func (r *Reporter) Ignored() int {
	return r.ignored
}

// Diagnostics returns the collected diagnostics ordered by position.
func (r *Reporter) Diagnostics() []Diagnostic {
	out := append([]Diagnostic(nil), r.diags...)
	Sort(out)
	return out
}
