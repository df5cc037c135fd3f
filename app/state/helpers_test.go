package state

import (
	"fmt"
	"time"

	"github.com/lysyi3m/devto-feed/app/devto"
)

func ptr[T any](v T) *T {
	return &v
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.messages = append(l.messages, fmt.Sprint(append([]any{msg}, args...)...))
}

var baseTime = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func articleWithID(id int64, reactions int) devto.Article {
	return devto.Article{
		ID:                   ptr(id),
		Title:                fmt.Sprintf("Article %d", id),
		URL:                  ptr(fmt.Sprintf("https://dev.to/someone/article-%d", id)),
		PublicReactionsCount: ptr(reactions),
	}
}

func storedAt(key string, lastSeen time.Time) StoredArticle {
	return StoredArticle{
		Key:      key,
		Title:    "Title " + key,
		TagList:  []string{},
		LastSeen: FormatTime(lastSeen),
	}
}
