// Package rules applies placement, duplication, description and
// completeness rules to a resolved doc comment.
package rules

import (
	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
	"github.com/dhamidi/doclint/java/javadoc"
	"github.com/dhamidi/doclint/resolve"
)

// Engine checks the comment of one declaration.
type Engine struct {
	table    *java.Table
	config   *config.Config
	decl     *java.Declaration
	rep      *diag.Reporter
	bindings resolve.Bindings
}

func New(table *java.Table, cfg *config.Config, decl *java.Declaration, rep *diag.Reporter, bindings resolve.Bindings) *Engine {
	return &Engine{table: table, config: cfg, decl: decl, rep: rep, bindings: bindings}
}

// MissingComment reports a declaration without a doc comment. It returns
// true when decl has no comment, in which case no other rule applies.
func MissingComment(decl *java.Declaration, rep *diag.Reporter) bool {
	if decl.Doc != nil {
		return false
	}
	rep.ReportAt(diag.MissingComment, decl.Pos, 0, string(decl.Visibility))
	return true
}

// Check runs every rule on c.
func (e *Engine) Check(c *javadoc.Comment) {
	e.placement(c)
	e.duplicates(c)
	e.descriptions(c)
	if !e.inheritsAll(c) {
		e.completeness(c)
	}
}

func (e *Engine) unexpected(t javadoc.Tag) {
	h := t.Header()
	end := h.NameEnd
	if h.Inline && h.Closed {
		end = h.End
	}
	e.rep.Report(diag.UnexpectedTag, h.Start, end)
}

func (e *Engine) isMethod() bool {
	return e.decl.Kind == java.DeclMethod
}

// placement reports tags used where they do not belong.
func (e *Engine) placement(c *javadoc.Comment) {
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline && !h.Closed {
			continue
		}
		info, known := javadoc.LookupTag(h.Name)
		if !known {
			continue
		}
		if h.Inline && !info.Inline || !h.Inline && !info.Block {
			e.unexpected(t)
			continue
		}
		switch t := t.(type) {
		case *javadoc.ReturnTag:
			if t.Inline {
				if !e.config.Supports(config.InlineReturn) || t.Parent >= 0 || !e.isMethod() {
					e.unexpected(t)
				}
				continue
			}
			ret, ok := e.decl.Return()
			if !ok || ret.IsVoid() {
				e.unexpected(t)
			}
		case *javadoc.ParamTag:
			if e.decl.Kind == java.DeclField {
				e.unexpected(t)
			}
		case *javadoc.ThrowsTag:
			if e.decl.Method == nil {
				e.unexpected(t)
			}
		case *javadoc.InheritDocTag:
			if !e.inheritDocAllowed(c, t) {
				e.unexpected(t)
			}
		}
	}
}

// inheritDocAllowed reports whether {@inheritDoc} may appear where t is: in
// the main description of an overriding method, or in the description of
// its @param, @return or @throws tags.
func (e *Engine) inheritDocAllowed(c *javadoc.Comment, t *javadoc.InheritDocTag) bool {
	if !e.isMethod() || !e.decl.IsOverriding() {
		return false
	}
	if t.Parent < 0 {
		return true
	}
	switch c.Tags[t.Parent].(type) {
	case *javadoc.ParamTag, *javadoc.ReturnTag, *javadoc.ThrowsTag:
		return true
	}
	return false
}

// inheritsAll reports whether the main description starts with
// {@inheritDoc} on a method that has something to inherit from.
func (e *Engine) inheritsAll(c *javadoc.Comment) bool {
	if !e.isMethod() || !e.decl.IsOverriding() {
		return false
	}
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline && h.Parent < 0 {
			_, ok := t.(*javadoc.InheritDocTag)
			return ok && h.Closed && h.Start == c.DescStart
		}
		if !h.Inline {
			break
		}
	}
	return false
}

// duplicates reports repeated @param names, block @return tags and
// @deprecated tags. Repeated @throws tags are allowed.
func (e *Engine) duplicates(c *javadoc.Comment) {
	params := make(map[string]bool)
	returns, deprecated := 0, 0
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline {
			continue
		}
		switch t := t.(type) {
		case *javadoc.ParamTag:
			if !t.Valid {
				continue
			}
			key := t.ParamName
			if t.TypeParam {
				key = "<" + key + ">"
			}
			if params[key] {
				e.rep.Report(diag.DuplicateParamTag, t.ParamStart, t.ParamEnd)
			}
			params[key] = true
		case *javadoc.ReturnTag:
			returns++
			if returns > 1 {
				e.rep.Report(diag.DuplicateReturnTag, t.Start, t.NameEnd)
			}
		case *javadoc.TextTag:
			if t.Name == "deprecated" {
				deprecated++
				if deprecated > 1 {
					e.rep.Report(diag.DuplicateTag, t.Start, t.NameEnd, t.Name)
				}
			}
		}
	}
}

// descriptions reports standard block tags missing their description, as
// selected by the missing description scope.
func (e *Engine) descriptions(c *javadoc.Comment) {
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline || !e.config.Describes(h.Name) {
			continue
		}
		if info, ok := javadoc.LookupTag(h.Name); !ok || !info.Described {
			continue
		}
		if !javadoc.HasDescription(c, t) {
			e.rep.Report(diag.MissingDescription, h.Start, h.NameEnd, h.Name)
		}
	}
}

// completeness reports parameters, type parameters, checked exceptions and
// return values without a tag.
func (e *Engine) completeness(c *javadoc.Comment) {
	if !e.rep.Applies(diag.MissingParamTag) {
		return
	}
	d := e.decl
	if d.Kind == java.DeclField {
		return
	}

	documented := make(map[string]bool)
	var throws []*javadoc.ThrowsTag
	blockReturn, inlineReturn := false, false
	for _, t := range c.Tags {
		switch t := t.(type) {
		case *javadoc.ParamTag:
			if t.Valid && !t.Inline {
				if t.TypeParam {
					documented["<"+t.ParamName+">"] = true
				} else {
					documented[t.ParamName] = true
				}
			}
		case *javadoc.ThrowsTag:
			if !t.Inline {
				throws = append(throws, t)
			}
		case *javadoc.ReturnTag:
			if !t.Inline {
				blockReturn = true
			} else if t.Closed && t.Parent < 0 {
				inlineReturn = true
			}
		}
	}

	for _, p := range d.Params() {
		if !documented[p.Name] {
			e.reportDecl(diag.MissingParamTag, p.Pos, p.Name)
		}
	}
	if e.config.Supports(config.TypeParamTags) {
		for _, tp := range d.TypeParams() {
			if !documented["<"+tp.Name+">"] {
				e.reportDecl(diag.MissingParamTag, d.Pos, "<"+tp.Name+">")
			}
		}
	}
	for _, ex := range d.Throws() {
		if !e.table.IsChecked(ex.Name) {
			continue
		}
		if !e.throwsDocumented(ex, throws) {
			e.reportDecl(diag.MissingThrowsTag, d.Pos, ex.SimpleString())
		}
	}
	if ret, ok := d.Return(); ok && !ret.IsVoid() {
		if !blockReturn && !(inlineReturn && e.config.Supports(config.InlineReturn)) {
			e.reportDecl(diag.MissingReturnTag, d.Pos)
		}
	}
}

// throwsDocumented reports whether one of tags names ex or a supertype of
// it. Tags whose type did not resolve count by simple name.
func (e *Engine) throwsDocumented(ex java.Type, tags []*javadoc.ThrowsTag) bool {
	for _, t := range tags {
		if td := e.bindings.TypeOf(t.Ref); td != nil {
			if e.table.IsSubtype(ex.Name, td.Name) {
				return true
			}
			continue
		}
		if t.RawName != "" && java.SimpleName(t.RawName) == java.SimpleName(ex.Name) {
			return true
		}
	}
	return false
}

func (e *Engine) reportDecl(cat diag.Category, pos java.Position, args ...string) {
	if !pos.Known() {
		pos = e.decl.Pos
	}
	e.rep.ReportAt(cat, pos, 0, args...)
}
