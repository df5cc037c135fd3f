package devto

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Article is one entry of the /api/articles listing. Every field the API may
// omit is a pointer so absence survives decoding.
type Article struct {
	ID                     *int64  `json:"id"`
	Title                  string  `json:"title"`
	URL                    *string `json:"url"`
	CanonicalURL           *string `json:"canonical_url"`
	Description            *string `json:"description"`
	PublishedTimestamp     *string `json:"published_timestamp"`
	PublishedAt            *string `json:"published_at"`
	EditedAt               *string `json:"edited_at"`
	PublicReactionsCount   *int    `json:"public_reactions_count"`
	PositiveReactionsCount *int    `json:"positive_reactions_count"`
	TagList                TagList `json:"tag_list"`
	User                   *User   `json:"user"`
}

type User struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
}

// TagList is the raw comma-separated tag string. The listing endpoint sends an
// array and the single article endpoint a string, so both are accepted.
type TagList string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TagList(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tag_list must be a string or an array of strings: %w", err)
	}
	*t = TagList(strings.Join(list, ","))
	return nil
}

// Query selects which listing pages are fetched.
type Query struct {
	Top      int // lookback window in days
	PerPage  int
	MaxPages int
}
