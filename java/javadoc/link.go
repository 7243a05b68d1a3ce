package javadoc

import (
	"strings"

	"github.com/dhamidi/doclint/diag"
)

type linkState int

const (
	linkStart linkState = iota
	linkSawLT
	linkTagName
	linkAttrName
	linkAttrEquals
	linkAttrValue
	linkLabel
	linkSawLTSlash
	linkCloseTagName
	linkDone
)

// link parses `<a attr="value"...>label</a>`, with the final '>' optional.
// Quoted attribute values are taken verbatim, so "//" inside an href is
// never mistaken for anything else.
func (p *refParser) link() Reference {
	start := p.pos
	ref := &URLRef{Start: start}
	state := linkStart
	var attr string
	var quote byte
	valueStart, labelStart, labelEnd := 0, 0, 0

	for p.pos < p.end && state != linkDone {
		c := p.text[p.pos]
		switch state {
		case linkStart:
			if c != '<' {
				return p.brokenLink(start)
			}
			state = linkSawLT
		case linkSawLT:
			if c != 'a' && c != 'A' {
				return p.brokenLink(start)
			}
			state = linkTagName
		case linkTagName:
			switch {
			case isSpace(c):
				state = linkAttrName
			case c == '>':
				state = linkLabel
				labelStart = p.pos + 1
			default:
				return p.brokenLink(start)
			}
		case linkAttrName:
			switch {
			case isSpace(c):
				if attr != "" {
					state = linkAttrEquals
				}
			case c == '=':
				if attr == "" {
					return p.brokenLink(start)
				}
				state = linkAttrEquals
				p.pos++
				p.pos = skipSpace(p.text, p.pos, p.end)
				if p.pos >= p.end || p.text[p.pos] != '"' && p.text[p.pos] != '\'' {
					return p.brokenLink(start)
				}
				quote = p.text[p.pos]
				valueStart = p.pos + 1
				state = linkAttrValue
			case c == '>' && attr == "":
				state = linkLabel
				labelStart = p.pos + 1
			case isNameChar(c):
				attr += string(c)
			default:
				return p.brokenLink(start)
			}
		case linkAttrEquals:
			switch {
			case isSpace(c):
			case c == '=':
				p.pos = skipSpace(p.text, p.pos+1, p.end)
				if p.pos >= p.end || p.text[p.pos] != '"' && p.text[p.pos] != '\'' {
					return p.brokenLink(start)
				}
				quote = p.text[p.pos]
				valueStart = p.pos + 1
				state = linkAttrValue
			default:
				return p.brokenLink(start)
			}
		case linkAttrValue:
			if c == quote {
				if strings.EqualFold(attr, "href") {
					ref.Href = p.text[valueStart:p.pos]
				}
				attr = ""
				state = linkAttrName
			}
		case linkLabel:
			if c == '<' && p.pos+1 < p.end && p.text[p.pos+1] == '/' {
				labelEnd = p.pos
				state = linkSawLTSlash
				p.pos++
			}
		case linkSawLTSlash:
			next := p.pos + 1
			if (c == 'a' || c == 'A') && (next >= p.end || isSpace(p.text[next]) || p.text[next] == '>') {
				state = linkCloseTagName
			} else {
				// another element closing inside the label, such as "</b>"
				state = linkLabel
			}
		case linkCloseTagName:
			if c == '>' {
				p.pos++
			}
			state = linkDone
			continue
		}
		p.pos++
	}

	if state == linkCloseTagName {
		state = linkDone
	}
	if state != linkDone {
		return p.brokenLink(start)
	}
	ref.Label = strings.TrimSpace(CleanText(p.text[labelStart:labelEnd]))
	ref.End = p.pos
	return ref
}

func (p *refParser) brokenLink(start int) Reference {
	p.problem(diag.MalformedLinkReference, start, p.end)
	p.pos = p.end
	return nil
}
