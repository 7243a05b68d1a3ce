package javadoc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/doclint/diag"
)

type refMode int

const (
	// modeSee accepts every reference form.
	modeSee refMode = iota
	// modeLink rejects quoted strings and links.
	modeLink
	// modeType accepts type references only.
	modeType
	// modeValue accepts a field reference, or nothing.
	modeValue
	// modeOptionalType accepts a type reference, or nothing.
	modeOptionalType
)

// refParser parses one tag argument.
type refParser struct {
	text   string
	pos    int
	end    int
	inline bool
	c      *Comment
}

// ParseReferences parses the argument of every reference-bearing tag of c,
// storing the parsed references on the tags and appending grammar problems
// to c.Problems. The arguments of unterminated inline tags are not parsed.
func ParseReferences(c *Comment) {
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline && !h.Closed {
			continue
		}
		p := &refParser{text: c.Text, pos: h.ArgStart, end: h.ArgEnd, inline: h.Inline, c: c}
		switch t := t.(type) {
		case *ParamTag:
			p.param(t)
		case *ThrowsTag:
			t.Ref = p.reference(h, modeType)
			t.RawName = p.rawToken(h.ArgStart)
			t.DescStart = skipSpace(c.Text, max(p.pos, h.ArgStart+len(t.RawName)), h.ArgEnd)
		case *SeeTag:
			mode := modeSee
			if h.Name != "see" {
				mode = modeType
			}
			t.Ref = p.reference(h, mode)
		case *LinkTag:
			t.Ref = p.reference(h, modeLink)
		case *ValueTag:
			t.Ref = p.reference(h, modeValue)
		case *InheritDocTag:
			t.Ref = p.reference(h, modeOptionalType)
		}
	}
}

func (p *refParser) problem(cat diag.Category, start, end int, args ...string) {
	if end < start {
		end = start
	}
	p.c.Problems = append(p.c.Problems, Problem{Category: cat, Start: start, End: end, Args: args})
}

// reference parses the argument of h according to mode. It returns nil when
// the argument is empty or broken; problems have been recorded by then.
func (p *refParser) reference(h *TagHeader, mode refMode) Reference {
	if p.pos >= p.end {
		switch mode {
		case modeValue, modeOptionalType:
			return nil
		}
		if h.Inline {
			p.problem(diag.MissingReference, h.Start, h.End)
		} else {
			p.problem(diag.MissingReference, h.Start, h.NameEnd)
		}
		return nil
	}

	start := p.pos
	var ref Reference
	switch ch := p.text[p.pos]; {
	case ch == '"':
		ref = p.literal()
	case ch == '<':
		ref = p.link()
	case ch == '#':
		ref = p.member(nil, start)
	case p.hasScheme():
		end := p.tokenEnd(start)
		p.problem(diag.InvalidURLReference, start, end, p.text[start:end])
		return nil
	case p.identStart():
		ref = p.typeOrMember()
	default:
		p.problem(diag.MissingReference, start, p.tokenEnd(start))
		return nil
	}
	if ref == nil {
		return nil
	}

	switch ref.(type) {
	case *TypeRef, *MemberRef:
		if p.pos < p.end && !isSpace(p.text[p.pos]) {
			p.problem(diag.MissingSeparator, p.pos, p.tokenEnd(p.pos))
			return nil
		}
	case *URLRef:
		p.pos = skipSpace(p.text, p.pos, p.end)
		if p.pos < p.end {
			p.problem(diag.UnexpectedText, p.pos, p.end)
		}
	}

	if !accepts(mode, ref) {
		rs, re := ref.Span()
		p.problem(diag.InvalidReference, rs, re)
		return nil
	}
	return ref
}

func accepts(mode refMode, ref Reference) bool {
	switch mode {
	case modeSee:
		return true
	case modeLink:
		switch ref.(type) {
		case *TypeRef, *MemberRef:
			return true
		}
	case modeType, modeOptionalType:
		_, ok := ref.(*TypeRef)
		return ok
	case modeValue:
		m, ok := ref.(*MemberRef)
		return ok && !m.HasSignature
	}
	return false
}

func (p *refParser) literal() Reference {
	start := p.pos
	i := strings.IndexByte(p.text[start+1:p.end], '"')
	if i < 0 {
		p.problem(diag.InvalidReference, start, p.end)
		return nil
	}
	p.pos = start + 1 + i + 1
	return &LiteralRef{Text: CleanText(p.text[start+1 : p.pos-1]), Start: start, End: p.pos}
}

func (p *refParser) typeOrMember() Reference {
	start := p.pos
	t, ok := p.typeName()
	if !ok {
		p.problem(diag.MalformedReference, start, p.tokenEnd(p.pos))
		return nil
	}
	if p.pos < p.end && p.text[p.pos] == '#' {
		return p.member(t, start)
	}
	return t
}

// member parses "#name" or "#name(params)"; p.pos is at '#'.
func (p *refParser) member(owner *TypeRef, start int) Reference {
	hash := p.pos
	p.pos++
	if !p.identStart() {
		if owner == nil && p.inline && p.pos >= p.end {
			p.problem(diag.InvalidReference, hash, p.pos)
		} else {
			p.problem(diag.MissingReference, hash, p.tokenEnd(hash))
		}
		return nil
	}
	m := &MemberRef{Owner: owner, Start: start, NameStart: p.pos}
	m.Name = p.ident()
	m.NameEnd = p.pos
	if p.pos < p.end && p.text[p.pos] == '(' {
		m.HasSignature = true
		if !p.params(m) {
			p.problem(diag.MalformedReference, start, p.tokenEnd(p.pos))
			return nil
		}
	}
	m.End = p.pos
	return m
}

// params parses "(type [name], ...)"; p.pos is at '('.
func (p *refParser) params(m *MemberRef) bool {
	p.pos++
	p.pos = skipSpace(p.text, p.pos, p.end)
	if p.pos < p.end && p.text[p.pos] == ')' {
		p.pos++
		return true
	}
	for {
		if !p.identStart() {
			return false
		}
		pr := ParamRef{Start: p.pos}
		t, ok := p.typeName()
		if !ok {
			return false
		}
		pr.Type = t
		pr.End = p.pos
		for {
			q := skipSpace(p.text, p.pos, p.end)
			if q+1 < p.end && p.text[q] == '[' {
				r := skipSpace(p.text, q+1, p.end)
				if r < p.end && p.text[r] == ']' {
					pr.Dims++
					p.pos = r + 1
					pr.End = p.pos
					continue
				}
				return false
			}
			break
		}
		if strings.HasPrefix(p.text[p.pos:p.end], "...") {
			pr.Dims++
			pr.Varargs = true
			p.pos += 3
			pr.End = p.pos
		}
		p.pos = skipSpace(p.text, p.pos, p.end)
		if p.identStart() {
			pr.Name = p.ident()
			p.pos = skipSpace(p.text, p.pos, p.end)
		}
		m.Params = append(m.Params, pr)
		if p.pos >= p.end {
			return false
		}
		switch p.text[p.pos] {
		case ',':
			p.pos = skipSpace(p.text, p.pos+1, p.end)
		case ')':
			p.pos++
			return true
		default:
			return false
		}
	}
}

// typeName parses "ident(.ident)*". A trailing '.' is an error, except for
// the start of "...".
func (p *refParser) typeName() (*TypeRef, bool) {
	t := &TypeRef{Start: p.pos}
	t.Segments = append(t.Segments, p.ident())
	for p.pos < p.end && p.text[p.pos] == '.' {
		if strings.HasPrefix(p.text[p.pos:p.end], "...") {
			break
		}
		p.pos++
		if !p.identStart() {
			t.End = p.pos
			return t, false
		}
		t.Segments = append(t.Segments, p.ident())
	}
	t.End = p.pos
	return t, true
}

// param parses the name of a @param tag.
func (p *refParser) param(t *ParamTag) {
	if p.pos >= p.end {
		p.problem(diag.MissingParamName, t.Start, t.NameEnd)
		t.DescStart = t.ArgEnd
		return
	}
	start := p.pos
	valid := false
	if p.text[p.pos] == '<' {
		p.pos++
		if p.identStart() {
			t.ParamName = p.ident()
			if p.pos < p.end && p.text[p.pos] == '>' {
				p.pos++
				t.TypeParam = true
				valid = true
			}
		}
	} else if p.identStart() {
		t.ParamName = p.ident()
		valid = true
	}
	if valid && p.pos < p.end && !isSpace(p.text[p.pos]) {
		valid = false
	}
	if !valid {
		t.ParamName = ""
		t.TypeParam = false
		p.problem(diag.InvalidParamTagName, start, p.tokenEnd(start))
		return
	}
	t.Valid = true
	t.ParamStart, t.ParamEnd = start, p.pos
	t.DescStart = skipSpace(p.text, p.pos, p.end)
}

// hasScheme reports whether the argument starts like "word://" or "word:/".
func (p *refParser) hasScheme() bool {
	i := p.pos
	for i < p.end {
		c := p.text[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			i > p.pos && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			i++
			continue
		}
		break
	}
	return i > p.pos && strings.HasPrefix(p.text[i:p.end], ":/")
}

func (p *refParser) identStart() bool {
	if p.pos >= p.end {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.text[p.pos:p.end])
	return isIdentStart(r)
}

func (p *refParser) ident() string {
	start := p.pos
	for p.pos < p.end {
		r, n := utf8.DecodeRuneInString(p.text[p.pos:p.end])
		if p.pos == start && !isIdentStart(r) || !isIdentPart(r) {
			break
		}
		p.pos += n
	}
	return p.text[start:p.pos]
}

// tokenEnd returns the end of the run of non-space characters at pos.
func (p *refParser) tokenEnd(pos int) int {
	for pos < p.end && !isSpace(p.text[pos]) {
		pos++
	}
	return pos
}

func (p *refParser) rawToken(pos int) string {
	return p.text[pos:p.tokenEnd(pos)]
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
