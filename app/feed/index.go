package feed

import (
	"bytes"
	"html"
	"path"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type IndexRenderer struct {
	printer *message.Printer
}

func NewIndexRenderer() *IndexRenderer {
	return &IndexRenderer{printer: message.NewPrinter(language.Japanese)}
}

// Run renders the landing page. All text values are HTML-escaped.
func (r *IndexRenderer) Run(page IndexPage) []byte {
	var buf bytes.Buffer

	title := html.EscapeString(page.Title)
	feedURL := html.EscapeString(page.FeedURL)

	buf.WriteString("<!doctype html>\n")
	buf.WriteString("<html lang=\"ja\">\n")
	buf.WriteString("<head>\n")
	buf.WriteString("  <meta charset=\"utf-8\" />\n")
	buf.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n")
	buf.WriteString("  <title>" + title + "</title>\n")
	buf.WriteString("  <link rel=\"alternate\" type=\"application/atom+xml\" title=\"" + title + "\" href=\"" + feedURL + "\" />\n")
	buf.WriteString("  <style>\n")
	buf.WriteString("    body { font-family: -apple-system, BlinkMacSystemFont, \"Segoe UI\", sans-serif; margin: 2rem; line-height: 1.6; }\n")
	buf.WriteString("    .meta { color: #555; }\n")
	buf.WriteString("  </style>\n")
	buf.WriteString("</head>\n")
	buf.WriteString("<body>\n")
	buf.WriteString("  <h1>" + title + "</h1>\n")
	buf.WriteString("  <p>" + html.EscapeString(page.Description) + "</p>\n")
	buf.WriteString("  <p><a href=\"" + feedURL + "\">" + html.EscapeString(path.Base(page.FeedURL)) + "</a></p>\n")
	buf.WriteString("  <div class=\"meta\">\n")
	buf.WriteString("    <p>最終更新: " + formatTime(page.Updated) + "</p>\n")
	buf.WriteString(r.printer.Sprintf("    <p>min_reactions: %d</p>\n", page.MinReactions))
	buf.WriteString(r.printer.Sprintf("    <p>lookback_days: %d</p>\n", page.LookbackDays))
	buf.WriteString(r.printer.Sprintf("    <p>entries: %d</p>\n", page.EntryCount))
	buf.WriteString("  </div>\n")
	buf.WriteString("</body>\n")
	buf.WriteString("</html>\n")

	return buf.Bytes()
}
