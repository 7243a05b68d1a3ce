package javadoc

import (
	"strings"

	"github.com/dhamidi/doclint/diag"
)

// frame is an open inline tag.
type frame struct {
	// index of the tag in Comment.Tags, or -1 for an invalid tag that only
	// consumes its braces.
	index     int
	verbatim  bool
	depth     int
	firstLine bool
}

// scanner turns raw comment text into tags. It works on bytes: every
// character with syntactic meaning is ASCII.
type scanner struct {
	text         string
	pos          int
	start        int
	end          int
	firstLineEnd int

	c     *Comment
	block int
	stack []*frame
}

// Scan scans a raw doc comment, including its "/**" and "*/" delimiters and
// the leading "*" of continuation lines, into tags. It records scanner
// problems on the comment; references are parsed separately by
// ParseReferences.
func Scan(text string) *Comment {
	s := &scanner{text: text, block: -1}
	s.start, s.end = contentBounds(text)
	s.firstLineEnd = len(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		s.firstLineEnd = i
	}
	s.c = &Comment{Text: text, Start: s.start, End: s.end, DescEnd: -1}
	s.scan()
	return s.c
}

// Parse scans text and parses the references of its tags.
func Parse(text string) *Comment {
	c := Scan(text)
	ParseReferences(c)
	return c
}

func contentBounds(text string) (int, int) {
	start := len(text) - len(strings.TrimLeft(text, " \t\r\n"))
	if strings.HasPrefix(text[start:], "/**") {
		start += 3
	}
	trimmed := strings.TrimRight(text, " \t\r\n")
	end := len(trimmed)
	if strings.HasSuffix(trimmed, "*/") {
		end -= 2
	}
	if end < start {
		end = start
	}
	return start, end
}

func (s *scanner) scan() {
	s.pos = s.skipLinePrefix(s.start)
	s.c.DescStart = s.skipSpace(s.start)
	s.lineStart()

	for s.pos < s.end {
		ch := s.peek()
		switch {
		case ch == '\n':
			s.newline()
			s.pos = s.skipLinePrefix(s.pos + 1)
			s.lineStart()
		case ch == '{' && s.peekAt(1) == '@' && !s.inVerbatim():
			s.openInline()
		case ch == '{':
			if f := s.top(); f != nil {
				f.depth++
			}
			s.advance(1)
		case ch == '}':
			s.closeBrace()
		default:
			s.advance(1)
		}
	}

	end := s.trimBack(s.end)
	s.unterminateAll(end)
	s.finishBlock(s.end)
	if s.c.DescEnd < 0 {
		s.c.DescEnd = end
	}
	if s.c.DescStart > s.c.DescEnd {
		s.c.DescStart = s.c.DescEnd
	}
}

func (s *scanner) peek() byte {
	return s.peekAt(0)
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= s.end {
		return 0
	}
	return s.text[s.pos+n]
}

func (s *scanner) advance(n int) {
	s.pos += n
	if s.pos > s.end {
		s.pos = s.end
	}
}

func (s *scanner) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *scanner) inVerbatim() bool {
	f := s.top()
	return f != nil && f.verbatim
}

// skipLinePrefix skips leading blanks, the run of '*' that prefixes a
// continuation line, and the blanks after it.
func (s *scanner) skipLinePrefix(pos int) int {
	pos = skipBlanks(s.text, pos, s.end)
	for pos < s.end && s.text[pos] == '*' {
		pos++
	}
	return skipBlanks(s.text, pos, s.end)
}

// lineStart handles the first significant character of a logical line.
func (s *scanner) lineStart() {
	if s.peek() != '@' || s.inVerbatim() {
		return
	}
	switch s.peekAt(1) {
	case '@', '*', '/':
		s.advance(2)
		return
	}
	s.openBlock()
}

// newline closes inline tags opened on the first physical line: they may
// not continue past it.
func (s *scanner) newline() {
	if s.pos >= s.firstLineEnd && len(s.stack) > 0 && s.stack[0].firstLine {
		s.unterminateAll(s.trimBack(s.pos))
	}
}

func (s *scanner) openBlock() {
	at := s.pos
	nameStart := at + 1
	nameEnd := scanName(s.text, nameStart, s.end)
	if nameEnd == nameStart {
		s.problem(diag.InvalidTag, at, at+1)
		s.advance(1)
		return
	}

	s.unterminateAll(s.trimBack(at))
	s.finishBlock(at)
	if s.c.DescEnd < 0 {
		s.c.DescEnd = s.trimBack(at)
	}

	name := s.text[nameStart:nameEnd]
	h := TagHeader{
		Name:      name,
		Closed:    true,
		Start:     at,
		NameStart: nameStart,
		NameEnd:   nameEnd,
		ArgStart:  s.skipSpace(nameEnd),
		Parent:    -1,
	}
	s.c.Tags = append(s.c.Tags, newTag(name, h))
	s.block = len(s.c.Tags) - 1
	s.pos = nameEnd
}

// finishBlock ends the current block tag right before at.
func (s *scanner) finishBlock(at int) {
	if s.block < 0 {
		return
	}
	h := s.c.Tags[s.block].Header()
	end := s.trimBack(at)
	if end < h.NameEnd {
		end = h.NameEnd
	}
	h.End = end
	h.ArgEnd = end
	if h.ArgStart > h.ArgEnd {
		h.ArgStart = h.ArgEnd
	}
	s.block = -1
}

func (s *scanner) openInline() {
	at := s.pos
	nameStart := at + 2
	nameEnd := scanName(s.text, nameStart, s.end)
	f := &frame{index: -1, firstLine: at < s.firstLineEnd}
	s.stack = append(s.stack, f)
	s.pos = nameEnd
	if nameEnd == nameStart {
		s.problem(diag.InvalidTag, at, nameStart)
		return
	}

	name := s.text[nameStart:nameEnd]
	info, known := LookupTag(name)
	if !known {
		s.problem(diag.UnknownInlineTag, at, nameEnd, name)
	}
	h := TagHeader{
		Name:      name,
		Inline:    true,
		Start:     at,
		NameStart: nameStart,
		NameEnd:   nameEnd,
		ArgStart:  s.skipSpace(nameEnd),
		Parent:    s.block,
	}
	var t Tag
	if known && info.Verbatim {
		f.verbatim = true
		t = &VerbatimTag{TagHeader: h}
	} else {
		t = newTag(name, h)
	}
	s.c.Tags = append(s.c.Tags, t)
	f.index = len(s.c.Tags) - 1
}

func (s *scanner) closeBrace() {
	f := s.top()
	if f == nil {
		s.advance(1)
		return
	}
	if f.depth > 0 {
		f.depth--
		s.advance(1)
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
	if f.index >= 0 {
		t := s.c.Tags[f.index]
		h := t.Header()
		h.Closed = true
		h.End = s.pos + 1
		h.ArgEnd = s.trimBack(s.pos)
		if h.ArgEnd < h.NameEnd {
			h.ArgEnd = h.NameEnd
		}
		if h.ArgStart > h.ArgEnd {
			h.ArgStart = h.ArgEnd
		}
		s.finishInline(t)
	}
	s.advance(1)
}

// unterminateAll closes every open inline tag at end, reporting each as
// unterminated.
func (s *scanner) unterminateAll(end int) {
	for len(s.stack) > 0 {
		f := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if f.index < 0 {
			continue
		}
		t := s.c.Tags[f.index]
		h := t.Header()
		h.Closed = false
		h.End = max(end, h.NameEnd)
		h.ArgEnd = h.End
		if h.ArgStart > h.ArgEnd {
			h.ArgStart = h.ArgEnd
		}
		s.problem(diag.UnterminatedInlineTag, h.Start, h.End)
		s.finishInline(t)
	}
}

func (s *scanner) finishInline(t Tag) {
	v, ok := t.(*VerbatimTag)
	if !ok {
		return
	}
	v.Content = CleanText(s.text[v.ArgStart:v.ArgEnd])
	if v.Closed && strings.TrimSpace(v.Content) == "" {
		s.problem(diag.EmptyVerbatimTag, v.Start, v.End, v.Name)
	}
}

// trimBack moves pos back over blanks, newlines and line prefixes.
func (s *scanner) trimBack(pos int) int {
	for pos > s.start {
		c := s.text[pos-1]
		if isBlank(c) || c == '\n' {
			pos--
			continue
		}
		if c == '*' && s.isPrefixStar(pos-1) {
			pos--
			continue
		}
		break
	}
	return pos
}

func (s *scanner) isPrefixStar(i int) bool {
	for i >= s.start {
		c := s.text[i]
		switch {
		case c == '\n':
			return true
		case c == '*' || isBlank(c):
			i--
		default:
			return false
		}
	}
	return true
}

// skipSpace skips whitespace, including line breaks and the line prefix
// that follows them.
func (s *scanner) skipSpace(pos int) int {
	return skipSpace(s.text, pos, s.end)
}

func (s *scanner) problem(cat diag.Category, start, end int, args ...string) {
	s.c.Problems = append(s.c.Problems, Problem{Category: cat, Start: start, End: end, Args: args})
}

func newTag(name string, h TagHeader) Tag {
	switch name {
	case "param":
		return &ParamTag{TagHeader: h}
	case "return":
		return &ReturnTag{TagHeader: h}
	case "throws", "exception":
		return &ThrowsTag{TagHeader: h}
	case "see", "uses", "provides":
		return &SeeTag{TagHeader: h}
	case "link", "linkplain":
		return &LinkTag{TagHeader: h, Plain: name == "linkplain"}
	case "value":
		return &ValueTag{TagHeader: h}
	case "inheritDoc":
		return &InheritDocTag{TagHeader: h}
	}
	if _, ok := LookupTag(name); ok {
		return &TextTag{TagHeader: h}
	}
	return &UnknownTag{TagHeader: h}
}

func scanName(text string, pos, end int) int {
	for pos < end && isNameChar(text[pos]) {
		pos++
	}
	return pos
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '-' || c == ':' || c == '_'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f'
}

func isSpace(c byte) bool {
	return isBlank(c) || c == '\n'
}

func skipBlanks(text string, pos, end int) int {
	for pos < end && isBlank(text[pos]) {
		pos++
	}
	return pos
}

func skipSpace(text string, pos, end int) int {
	for pos < end {
		switch c := text[pos]; {
		case isBlank(c):
			pos++
		case c == '\n':
			pos = skipBlanks(text, pos+1, end)
			for pos < end && text[pos] == '*' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

// CleanText removes the line prefixes from a multi-line comment fragment.
func CleanText(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		l := strings.TrimLeft(lines[i], " \t")
		if strings.HasPrefix(l, "*") {
			l = strings.TrimLeft(l, "*")
			l = strings.TrimPrefix(l, " ")
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

// HasDescription reports whether a tag has text after its name and, for
// tags naming a parameter or an exception, after that name.
func HasDescription(c *Comment, t Tag) bool {
	h := t.Header()
	from := h.ArgStart
	switch t := t.(type) {
	case *ParamTag:
		if !t.Valid {
			return true
		}
		from = t.DescStart
	case *ThrowsTag:
		from = t.DescStart
		if from == 0 {
			return true
		}
	}
	if from >= h.ArgEnd {
		return false
	}
	return strings.TrimSpace(CleanText(c.Text[from:h.ArgEnd])) != ""
}
