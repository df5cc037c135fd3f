package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses a rendered feed back into its metadata and items.
func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:     feed.Title,
		Subtitle:  feed.Description,
		Link:      feed.Link,
		FeedLink:  feed.FeedLink,
		UpdatedAt: feed.UpdatedParsed,
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, Item{
			GUID:      item.GUID,
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Content:   item.Content,
			UpdatedAt: item.UpdatedParsed,
		})
	}

	return metadata, items, nil
}

// Validate checks that data parses as a feed carrying exactly the expected entries.
func (p *Parser) Validate(data []byte, entryCount int) error {
	_, items, err := p.Run(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if len(items) != entryCount {
		return fmt.Errorf("%w: expected %d entries, parsed %d", ErrRender, entryCount, len(items))
	}
	return nil
}
