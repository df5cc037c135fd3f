package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/lysyi3m/devto-feed/app/state"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run renders an Atom 1.0 document for entries in the given order.
func (g *Generator) Run(info Info, entries []state.Entry) ([]byte, error) {
	if info.ID == "" {
		return nil, fmt.Errorf("%w: feed id is empty", ErrRender)
	}
	if info.Title == "" {
		return nil, fmt.Errorf("%w: feed title is empty", ErrRender)
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n")

	g.writeElement(&buf, "id", info.ID, 2)
	g.writeElement(&buf, "title", info.Title, 2)
	g.writeElement(&buf, "subtitle", info.Subtitle, 2)
	g.writeElement(&buf, "updated", formatTime(info.Updated), 2)
	g.writeLink(&buf, "self", "application/atom+xml", info.FeedURL, 2)
	g.writeLink(&buf, "alternate", "text/html", info.IndexURL, 2)

	if info.Author != "" {
		buf.WriteString("  <author>\n")
		g.writeElement(&buf, "name", info.Author, 4)
		buf.WriteString("  </author>\n")
	}

	buf.WriteString(fmt.Sprintf("  <generator version=\"%s\">devto-feed</generator>\n",
		html.EscapeString(info.Version)))

	for _, entry := range entries {
		g.writeEntry(&buf, entry)
	}

	buf.WriteString("</feed>\n")

	return buf.Bytes(), nil
}

func (g *Generator) writeEntry(buf *bytes.Buffer, entry state.Entry) {
	buf.WriteString("  <entry>\n")

	g.writeElement(buf, "id", entry.ID, 4)
	g.writeRequiredElement(buf, "title", entry.Title, 4)
	g.writeLink(buf, "alternate", "text/html", entry.Link, 4)
	g.writeElement(buf, "updated", formatTime(entry.Updated), 4)
	g.writeHTMLElement(buf, "summary", entry.SummaryHTML, 4)
	g.writeHTMLElement(buf, "content", entry.ContentHTML, 4)

	buf.WriteString("  </entry>\n")
}

func (g *Generator) writeLink(buf *bytes.Buffer, rel, mediaType, href string, indent int) {
	if href == "" {
		return
	}

	g.writeIndent(buf, indent)
	buf.WriteString(fmt.Sprintf("<link rel=\"%s\" type=\"%s\" href=\"%s\"/>\n",
		rel, mediaType, html.EscapeString(href)))
}

// writeHTMLElement writes escaped markup with type="html" as Atom requires.
func (g *Generator) writeHTMLElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	g.writeIndent(buf, indent)
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(` type="html">`)
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}
	g.writeRequiredElement(buf, tag, content, indent)
}

// writeRequiredElement writes the element even when content is empty.
func (g *Generator) writeRequiredElement(buf *bytes.Buffer, tag, content string, indent int) {
	g.writeIndent(buf, indent)
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) writeIndent(buf *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
