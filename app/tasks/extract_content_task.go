package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/devto-feed/app/feed"
	"github.com/lysyi3m/devto-feed/app/state"
)

type ExtractContentTask struct {
	Task
	Entries          []state.Entry
	Extracted        int
	pages            PageFetcher
	contentExtractor *feed.ContentExtractor
	timeout          time.Duration
}

// NewExtractContentTask fills ContentHTML of entries in place.
func NewExtractContentTask(entries []state.Entry, pages PageFetcher, contentExtractor *feed.ContentExtractor, timeout time.Duration) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent),
		Entries:          entries,
		pages:            pages,
		contentExtractor: contentExtractor,
		timeout:          timeout,
	}
}

// Execute extracts content for every entry. A failing entry is logged and
// keeps its summary only; it does not fail the task.
func (t *ExtractContentTask) Execute(ctx context.Context) error {
	errorCount := 0

	for i := range t.Entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		extractCtx, cancel := context.WithTimeout(ctx, t.timeout)
		content, err := t.extractContentForEntry(extractCtx, t.Entries[i])
		cancel()

		if err != nil {
			slog.Error("Failed to extract content for entry", "id", t.Entries[i].ID, "url", t.Entries[i].Link, "error", err)
			errorCount++
			continue
		}

		t.Entries[i].ContentHTML = content
		t.Extracted++
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", t.Extracted,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForEntry(ctx context.Context, entry state.Entry) (string, error) {
	data, err := t.pages.FetchHTML(ctx, entry.Link)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article page: %w", err)
	}

	content, err := t.contentExtractor.Run(data, entry.Link)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	return content, nil
}
