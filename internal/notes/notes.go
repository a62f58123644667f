// Package notes models generated study notes as an ordered sequence of
// titled markdown sections, and enforces the per-section word limit.
package notes

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one titled block of note content.
type Section struct {
	Title string
	Body  string
}

// Document is an ordered sequence of sections. Titles are not required to
// be unique; continuation sections reuse their source title with a suffix.
type Document []Section

// Words counts the whitespace-delimited words in a section body.
func (s Section) Words() int {
	return len(strings.Fields(s.Body))
}

// ParseDocument splits generated markdown into sections, one per "##"
// heading. Content before the first heading carries no section context and
// is dropped; input with no headings parses to an empty document.
func ParseDocument(src string) Document {
	b := []byte(src)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(b))

	var doc Document
	var current *Section
	var body bytes.Buffer

	flush := func() {
		if current == nil {
			body.Reset()
			return
		}
		current.Body = strings.TrimSpace(body.String())
		doc = append(doc, *current)
		current = nil
		body.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 2 {
			flush()
			current = &Section{Title: string(h.Text(b))}
			continue
		}
		if current == nil {
			continue
		}
		if t := blockText(n, b); t != "" {
			if body.Len() > 0 {
				body.WriteString("\n\n")
			}
			body.WriteString(t)
		}
	}
	flush()

	return doc
}

// Render writes the document back out as markdown, one "##" block per
// section.
func Render(doc Document) string {
	var sb strings.Builder
	for i, sec := range doc {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## ")
		sb.WriteString(sec.Title)
		sb.WriteString("\n\n")
		if sec.Body != "" {
			sb.WriteString(sec.Body)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// blockText gets the text content of a goldmark AST node, including nested
// inlines and raw block lines.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
