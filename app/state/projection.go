package state

import (
	"cmp"
	"slices"
	"time"
)

// Project returns the stored articles that reach minReactions, ranked by public
// reactions and then by publish time (newest first, unknown last), capped at
// maxEntries. Ties beyond those two keys keep key order.
func (s *Store) Project(minReactions, maxEntries int) []StoredArticle {
	items := make([]StoredArticle, 0, len(s.Items))
	for _, item := range s.Sorted() {
		if item.PublicReactionsCount >= minReactions {
			items = append(items, item)
		}
	}

	slices.SortStableFunc(items, compareArticles)

	maxEntries = max(maxEntries, 0)
	if len(items) > maxEntries {
		items = items[:maxEntries]
	}
	return items
}

func compareArticles(a, b StoredArticle) int {
	if c := cmp.Compare(b.PublicReactionsCount, a.PublicReactionsCount); c != 0 {
		return c
	}

	aPublished, aOK := PublishedTime(a)
	bPublished, bOK := PublishedTime(b)
	switch {
	case aOK && bOK:
		return bPublished.Compare(aPublished)
	case aOK:
		return -1
	case bOK:
		return 1
	default:
		return 0
	}
}

// PublishedTime prefers published_timestamp and falls back to published_at.
func PublishedTime(item StoredArticle) (time.Time, bool) {
	if t, ok := parseOptionalTime(item.PublishedTimestamp); ok {
		return t, true
	}
	return parseOptionalTime(item.PublishedAt)
}

// UpdatedTime is the later of edited_at and the publish time, whichever exist.
func UpdatedTime(item StoredArticle) (time.Time, bool) {
	edited, editedOK := parseOptionalTime(item.EditedAt)
	published, publishedOK := PublishedTime(item)

	switch {
	case editedOK && publishedOK:
		if edited.After(published) {
			return edited, true
		}
		return published, true
	case editedOK:
		return edited, true
	case publishedOK:
		return published, true
	default:
		return time.Time{}, false
	}
}
