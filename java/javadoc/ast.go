// Package javadoc scans Java doc comments into tags and parses the
// references carried by tag arguments.
package javadoc

import (
	"github.com/dhamidi/doclint/diag"
)

// Comment is a scanned doc comment. Offsets are byte offsets into Text.
type Comment struct {
	Text string
	// Start and End delimit the comment content between "/**" and "*/".
	Start, End int
	// DescStart and DescEnd delimit the main description, trimmed.
	DescStart, DescEnd int
	// Tags holds block and inline tags in source order.
	Tags []Tag
	// Problems found while scanning, and later while parsing references.
	Problems []Problem
}

// Problem is a finding positioned in the comment text.
type Problem struct {
	Category diag.Category
	Start    int
	End      int
	Args     []string
}

// Tag is implemented by every concrete tag kind.
type Tag interface {
	Header() *TagHeader
	tag()
}

// TagHeader is shared by all tags.
type TagHeader struct {
	Name   string
	Inline bool
	// Closed is false for an inline tag missing its closing brace.
	Closed bool
	// Start and End delimit the whole tag: "@name ..." or "{@name ...}".
	Start, End int
	// NameStart and NameEnd delimit the name, without "@".
	NameStart, NameEnd int
	// ArgStart and ArgEnd delimit the argument text after the name,
	// trimmed. For a block tag it runs up to the next block tag.
	ArgStart, ArgEnd int
	// Parent is the index of the block tag whose description contains this
	// inline tag, or -1 for the main description.
	Parent int
}

func (h *TagHeader) Header() *TagHeader { return h }

// ParamTag is "@param name" or "@param <T>".
type ParamTag struct {
	TagHeader
	ParamName string
	TypeParam bool
	// ParamStart and ParamEnd delimit the name, including "<>" for type
	// parameters. Both are zero when the name is missing or invalid.
	ParamStart, ParamEnd int
	DescStart            int
	Valid                bool
}

func (*ParamTag) tag() {}

// ReturnTag is a block "@return" or, from Java 16, an inline "{@return}".
type ReturnTag struct {
	TagHeader
}

func (*ReturnTag) tag() {}

// ThrowsTag is "@throws" or "@exception".
type ThrowsTag struct {
	TagHeader
	Ref Reference
	// RawName is the first word of the argument, kept so that a tag whose
	// reference is broken or unresolved still documents an exception.
	RawName   string
	DescStart int
}

func (*ThrowsTag) tag() {}

// SeeTag is "@see", or the module tags "@uses" and "@provides".
type SeeTag struct {
	TagHeader
	Ref Reference
}

func (*SeeTag) tag() {}

// LinkTag is "{@link}" or "{@linkplain}".
type LinkTag struct {
	TagHeader
	Ref   Reference
	Plain bool
}

func (*LinkTag) tag() {}

// ValueTag is "{@value}", optionally naming a constant field.
type ValueTag struct {
	TagHeader
	Ref Reference
}

func (*ValueTag) tag() {}

// InheritDocTag is "{@inheritDoc}", optionally naming the supertype to
// inherit from.
type InheritDocTag struct {
	TagHeader
	Ref Reference
}

func (*InheritDocTag) tag() {}

// VerbatimTag is "{@code}" or "{@literal}"; its content is never
// interpreted.
type VerbatimTag struct {
	TagHeader
	Content string
}

func (*VerbatimTag) tag() {}

// TextTag is any other standard tag: block tags with free text such as
// "@since" or "@deprecated", and inline tags such as "{@docRoot}".
type TextTag struct {
	TagHeader
}

func (*TextTag) tag() {}

// UnknownTag is a custom block tag or an unknown inline tag.
type UnknownTag struct {
	TagHeader
}

func (*UnknownTag) tag() {}

// Reference is the parsed target of a tag argument.
type Reference interface {
	Span() (start, end int)
	reference()
}

// TypeRef names a type, possibly qualified.
type TypeRef struct {
	Segments   []string
	Start, End int
}

func (r *TypeRef) Span() (int, int) { return r.Start, r.End }
func (*TypeRef) reference()         {}

// Name joins the segments with dots.
func (r *TypeRef) Name() string {
	n := 0
	for _, s := range r.Segments {
		n += len(s) + 1
	}
	b := make([]byte, 0, n)
	for i, s := range r.Segments {
		if i > 0 {
			b = append(b, '.')
		}
		b = append(b, s...)
	}
	return string(b)
}

// MemberRef names a field, method or constructor. Owner is nil for "#name".
type MemberRef struct {
	Owner              *TypeRef
	Name               string
	NameStart, NameEnd int
	// HasSignature is set when a parenthesized parameter list was written,
	// even an empty one.
	HasSignature bool
	Params       []ParamRef
	Start, End   int
}

func (r *MemberRef) Span() (int, int) { return r.Start, r.End }
func (*MemberRef) reference()         {}

// ParamRef is one parameter type of a member signature.
type ParamRef struct {
	Type       *TypeRef
	Dims       int
	Varargs    bool
	Name       string // optional parameter name
	Start, End int
}

// String renders the parameter type as written, without the name.
func (p ParamRef) String() string {
	s := p.Type.Name()
	for i := 0; i < p.Dims; i++ {
		if p.Varargs && i == p.Dims-1 {
			return s + "..."
		}
		s += "[]"
	}
	return s
}

// URLRef is an "<a href=...>label</a>" construct.
type URLRef struct {
	Href       string
	Label      string
	Start, End int
}

func (r *URLRef) Span() (int, int) { return r.Start, r.End }
func (*URLRef) reference()         {}

// LiteralRef is a quoted string reference.
type LiteralRef struct {
	Text       string
	Start, End int
}

func (r *LiteralRef) Span() (int, int) { return r.Start, r.End }
func (*LiteralRef) reference()         {}

// RefOf returns the reference carried by t, or nil.
func RefOf(t Tag) Reference {
	switch t := t.(type) {
	case *ThrowsTag:
		return t.Ref
	case *SeeTag:
		return t.Ref
	case *LinkTag:
		return t.Ref
	case *ValueTag:
		return t.Ref
	case *InheritDocTag:
		return t.Ref
	}
	return nil
}
