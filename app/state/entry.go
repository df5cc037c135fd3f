package state

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
)

// BuildEntries derives feed entries from projected articles. Articles with
// neither a canonical nor a direct URL have nothing to link to and are dropped.
func BuildEntries(items []StoredArticle, now time.Time, sourceDomain string) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		link, ok := entryLink(item)
		if !ok {
			continue
		}

		updated, ok := UpdatedTime(item)
		if !ok {
			updated = now.UTC()
		}

		entries = append(entries, Entry{
			ID:          EntryID(item, now, sourceDomain),
			Title:       item.Title,
			Link:        link,
			Updated:     updated,
			SummaryHTML: SummaryHTML(item, sourceDomain),
		})
	}
	return entries
}

// FeedUpdated is the latest entry update, or now when there are no entries.
func FeedUpdated(entries []Entry, now time.Time) time.Time {
	if len(entries) == 0 {
		return now.UTC()
	}

	latest := entries[0].Updated
	for _, entry := range entries[1:] {
		if entry.Updated.After(latest) {
			latest = entry.Updated
		}
	}
	return latest
}

func EntryID(item StoredArticle, now time.Time, sourceDomain string) string {
	year := now.UTC().Format("2006")
	if item.ID != nil {
		return fmt.Sprintf("tag:%s,%s:%s", sourceDomain, year, strconv.FormatInt(*item.ID, 10))
	}
	if canonical, ok := nonEmpty(item.CanonicalURL); ok {
		return canonical
	}
	return fmt.Sprintf("tag:%s,%s:unknown", sourceDomain, year)
}

func entryLink(item StoredArticle) (string, bool) {
	if canonical, ok := nonEmpty(item.CanonicalURL); ok {
		return canonical, true
	}
	return nonEmpty(item.URL)
}

func nonEmpty(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

// SummaryHTML renders the fixed summary block shown in feed readers.
func SummaryHTML(item StoredArticle, sourceDomain string) string {
	reactions := fmt.Sprintf("Reactions: public %d / positive %d",
		item.PublicReactionsCount, item.PositiveReactionsCount)

	author := "Author: unknown"
	switch {
	case item.UserName != nil && item.UserUsername != nil:
		author = fmt.Sprintf(`Author: <a href="https://%s/%s">%s</a>`,
			sourceDomain, html.EscapeString(*item.UserUsername), html.EscapeString(*item.UserName))
	case item.UserName != nil:
		author = "Author: " + html.EscapeString(*item.UserName)
	}

	published := "unknown"
	if item.PublishedTimestamp != nil {
		published = *item.PublishedTimestamp
	} else if item.PublishedAt != nil {
		published = *item.PublishedAt
	}

	tags := "Tags: none"
	if len(item.TagList) > 0 {
		tags = "Tags: " + html.EscapeString(strings.Join(item.TagList, ", "))
	}

	description := "Description: none"
	if item.Description != nil {
		description = "Description: " + html.EscapeString(*item.Description)
	}

	return strings.Join([]string{
		reactions,
		author,
		"Published: " + html.EscapeString(published),
		tags,
		description,
	}, "<br/>")
}
