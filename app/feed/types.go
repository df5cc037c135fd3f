package feed

import (
	"errors"
	"time"
)

var (
	ErrRender = errors.New("failed to render feed")
	ErrOutput = errors.New("failed to write output")
)

// Info describes the feed document as a whole.
type Info struct {
	ID       string
	Title    string
	Subtitle string
	Author   string
	FeedURL  string
	IndexURL string
	Updated  time.Time
	Version  string
}

// IndexPage is the data shown on the HTML landing page.
type IndexPage struct {
	Title        string
	Description  string
	FeedURL      string
	Updated      time.Time
	MinReactions int
	LookbackDays int
	EntryCount   int
}

// Parsed feed types

type Metadata struct {
	Title     string
	Subtitle  string
	Link      string
	FeedLink  string
	UpdatedAt *time.Time
}

type Item struct {
	GUID      string
	Title     string
	Link      string
	Summary   string
	Content   string
	UpdatedAt *time.Time
}
