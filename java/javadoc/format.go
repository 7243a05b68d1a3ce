package javadoc

import (
	"fmt"
	"strings"
)

// Format renders the tags of c, one per line, in source order. Inline tags
// are indented under the block tag that contains them.
func Format(c *Comment) string {
	if c == nil {
		return ""
	}

	var sb strings.Builder
	if desc := strings.TrimSpace(CleanText(c.Text[c.DescStart:c.DescEnd])); desc != "" {
		fmt.Fprintf(&sb, "description %q\n", normalizeWhitespace(desc))
	}
	for _, t := range c.Tags {
		h := t.Header()
		if h.Inline {
			sb.WriteString("  ")
		}
		sb.WriteString(formatTagName(h))
		fmt.Fprintf(&sb, " [%d,%d)", h.Start, h.End)
		if detail := formatDetail(t); detail != "" {
			sb.WriteString(" ")
			sb.WriteString(detail)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTagName(h *TagHeader) string {
	switch {
	case !h.Inline:
		return "@" + h.Name
	case !h.Closed:
		return "{@" + h.Name + " (unterminated)"
	}
	return "{@" + h.Name + "}"
}

func formatDetail(t Tag) string {
	switch t := t.(type) {
	case *ParamTag:
		if !t.Valid {
			return "invalid"
		}
		if t.TypeParam {
			return "<" + t.ParamName + ">"
		}
		return t.ParamName
	case *VerbatimTag:
		return fmt.Sprintf("%q", t.Content)
	}
	if ref := RefOf(t); ref != nil {
		return FormatReference(ref)
	}
	return ""
}

// FormatReference renders a parsed reference in its canonical source form.
func FormatReference(ref Reference) string {
	switch r := ref.(type) {
	case *TypeRef:
		return r.Name()
	case *MemberRef:
		var sb strings.Builder
		if r.Owner != nil {
			sb.WriteString(r.Owner.Name())
		}
		sb.WriteByte('#')
		sb.WriteString(r.Name)
		if r.HasSignature {
			sb.WriteByte('(')
			sb.WriteString(FormatParams(r.Params))
			sb.WriteByte(')')
		}
		return sb.String()
	case *URLRef:
		return fmt.Sprintf("<a href=%q>%s</a>", r.Href, r.Label)
	case *LiteralRef:
		return fmt.Sprintf("%q", r.Text)
	}
	return ""
}

// FormatParams joins the parameter types of a member signature.
func FormatParams(params []ParamRef) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
