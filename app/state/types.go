package state

import (
	"time"
)

// StoredArticle is the durable form of an article accumulated across runs.
// Key is assigned once at merge time and never changes.
type StoredArticle struct {
	Key                    string   `json:"key"`
	ID                     *int64   `json:"id"`
	CanonicalURL           *string  `json:"canonical_url"`
	URL                    *string  `json:"url"`
	Title                  string   `json:"title"`
	Description            *string  `json:"description"`
	PublishedTimestamp     *string  `json:"published_timestamp"`
	PublishedAt            *string  `json:"published_at"`
	EditedAt               *string  `json:"edited_at"`
	PublicReactionsCount   int      `json:"public_reactions_count"`
	PositiveReactionsCount int      `json:"positive_reactions_count"`
	TagList                []string `json:"tag_list"`
	UserName               *string  `json:"user_name"`
	UserUsername           *string  `json:"user_username"`
	LastSeen               string   `json:"last_seen"` // RFC3339
}

// Entry is the feed-ready view of a StoredArticle. It is never persisted.
type Entry struct {
	ID          string
	Title       string
	Link        string
	Updated     time.Time
	SummaryHTML string
	ContentHTML string // filled only when content extraction is enabled
}

// Logger receives record-level diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Warn(msg string, args ...any)
}

type stateFile struct {
	Items []StoredArticle `json:"items"`
}
