package feed

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/devto-feed/app/config"
	"github.com/lysyi3m/devto-feed/app/devto"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run drops the articles rejected by any filter and keeps the rest in order.
func (f *Filterer) Run(articles []devto.Article, filters []config.Filter) []devto.Article {
	if len(filters) == 0 {
		return articles
	}

	kept := make([]devto.Article, 0, len(articles))
	for _, article := range articles {
		if isFiltered, reason := f.applyFilters(article, filters); isFiltered {
			slog.Debug("Article filtered", "title", article.Title, "reason", reason)
			continue
		}
		kept = append(kept, article)
	}

	return kept
}

func (f *Filterer) applyFilters(article devto.Article, filters []config.Filter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(article, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(article devto.Article, field string) string {
	switch field {
	case "title":
		return article.Title
	case "description":
		return deref(article.Description)
	case "author":
		if article.User == nil {
			return ""
		}
		return strings.TrimSpace(deref(article.User.Name) + " " + deref(article.User.Username))
	case "tags":
		return string(article.TagList)
	case "url":
		return strings.TrimSpace(deref(article.URL) + " " + deref(article.CanonicalURL))
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
