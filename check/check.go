// Package check runs the doc comment pipeline for a single declaration:
// scanning, reference parsing, resolution and rules.
package check

import (
	"fmt"
	"runtime/debug"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
	"github.com/dhamidi/doclint/java/javadoc"
	"github.com/dhamidi/doclint/resolve"
	"github.com/dhamidi/doclint/rules"
)

var log = commonlog.GetLogger("doclint.check")

// Result is the outcome of checking one declaration. Comment and Bindings
// are nil when the declaration has no comment or processing is disabled.
type Result struct {
	Declaration *java.Declaration
	Comment     *javadoc.Comment
	Bindings    resolve.Bindings
	Diagnostics []diag.Diagnostic
	// Ignored counts findings dropped by the configuration.
	Ignored int
}

// Declaration checks the doc comment of decl. A panic raised while checking
// is recovered and reported as an internal error of decl alone.
func Declaration(table *java.Table, cfg *config.Config, decl *java.Declaration) (res *Result) {
	res = &Result{Declaration: decl}
	if cfg.Disabled() {
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic while checking %s: %v\n%s", decl.Name, r, debug.Stack())
			rep := diag.NewReporter(cfg, decl)
			rep.ReportAt(diag.InternalError, decl.Pos, 0, decl.Name, fmt.Sprint(r))
			res = &Result{Declaration: decl, Diagnostics: rep.Diagnostics()}
		}
	}()

	rep := diag.NewReporter(cfg, decl)
	if rules.MissingComment(decl, rep) {
		res.Diagnostics = rep.Diagnostics()
		res.Ignored = rep.Ignored()
		return res
	}

	c := javadoc.Parse(decl.Doc.Text)
	for _, p := range c.Problems {
		rep.Report(p.Category, p.Start, p.End, p.Args...)
	}
	bindings := resolve.New(table, cfg, decl, rep).Resolve(c)
	rules.New(table, cfg, decl, rep, bindings).Check(c)

	res.Comment = c
	res.Bindings = bindings
	res.Diagnostics = rep.Diagnostics()
	res.Ignored = rep.Ignored()
	log.Debugf("%s: %d diagnostics, %d ignored", decl.Name, len(res.Diagnostics), res.Ignored)
	return res
}
