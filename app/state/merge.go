package state

import (
	"strings"
	"time"

	"github.com/lysyi3m/devto-feed/app/devto"
)

// Merge upserts articles by identity. A stored record is replaced as a whole,
// so later duplicates in articles win. Articles without an identity are logged
// and skipped. It returns the number of articles merged.
func (s *Store) Merge(articles []devto.Article, now time.Time, logger Logger) int {
	lastSeen := FormatTime(now)

	merged := 0
	for _, article := range articles {
		key, ok := ArticleKey(article)
		if !ok {
			if logger != nil {
				logger.Warn("Skipping article without identifier", "title", article.Title)
			}
			continue
		}

		s.Items[key] = newStoredArticle(key, article, lastSeen)
		merged++
	}

	return merged
}

func newStoredArticle(key string, article devto.Article, lastSeen string) StoredArticle {
	stored := StoredArticle{
		Key:                    key,
		ID:                     article.ID,
		CanonicalURL:           article.CanonicalURL,
		URL:                    article.URL,
		Title:                  article.Title,
		Description:            article.Description,
		PublishedTimestamp:     article.PublishedTimestamp,
		PublishedAt:            article.PublishedAt,
		EditedAt:               article.EditedAt,
		PublicReactionsCount:   intOrZero(article.PublicReactionsCount),
		PositiveReactionsCount: intOrZero(article.PositiveReactionsCount),
		TagList:                ParseTagList(string(article.TagList)),
		LastSeen:               lastSeen,
	}

	if article.User != nil {
		stored.UserName = article.User.Name
		stored.UserUsername = article.User.Username
	}

	return stored
}

// ParseTagList splits a comma-separated tag string, trimming each tag and
// dropping empty ones. Order and duplicates are preserved.
func ParseTagList(value string) []string {
	tags := []string{}
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
