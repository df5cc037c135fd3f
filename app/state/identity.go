package state

import (
	"strconv"

	"github.com/lysyi3m/devto-feed/app/devto"
)

// ArticleKey returns the identity of an article: its numeric id when present,
// otherwise its canonical URL. ok is false when neither is available.
func ArticleKey(article devto.Article) (key string, ok bool) {
	if article.ID != nil {
		return strconv.FormatInt(*article.ID, 10), true
	}
	return nonEmpty(article.CanonicalURL)
}
