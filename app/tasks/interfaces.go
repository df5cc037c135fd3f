package tasks

import (
	"context"

	"github.com/lysyi3m/devto-feed/app/database"
	"github.com/lysyi3m/devto-feed/app/devto"
)

// ArticleFetcher supplies candidate articles. *devto.Client implements it.
type ArticleFetcher interface {
	FetchArticles(ctx context.Context, q devto.Query) ([]devto.Article, error)
}

// PageFetcher downloads article pages for content extraction.
type PageFetcher interface {
	FetchHTML(ctx context.Context, pageURL string) ([]byte, error)
}

// RunRecorder persists a summary of each completed build.
type RunRecorder interface {
	InsertRun(run database.Run) error
}
