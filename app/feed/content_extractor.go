package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-shiori/go-readability"
)

type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run extracts the readable article body from an HTML page. pageURL resolves
// relative links and may be empty.
func (e *ContentExtractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	var parsedURL *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", fmt.Errorf("invalid page URL %s: %w", pageURL, err)
		}
		parsedURL = u
	}

	article, err := readability.FromReader(bytes.NewReader(data), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(article.Content))

	return article.Content, nil
}
