package feed

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lysyi3m/devto-feed/app/files"
)

// Output names the files produced by a build.
type Output struct {
	FeedPath      string
	IndexPath     string
	LastBuildPath string
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Run writes the feed, the landing page and the build timestamp, then drops
// an empty .nojekyll next to the feed unless one is already there.
func (w *Writer) Run(out Output, feedXML, indexHTML []byte, now time.Time) error {
	outputs := []struct {
		path string
		data []byte
	}{
		{out.FeedPath, feedXML},
		{out.IndexPath, indexHTML},
		{out.LastBuildPath, []byte(formatTime(now))},
	}

	for _, output := range outputs {
		if err := files.WriteAtomic(output.path, output.data); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
	}

	nojekyll := filepath.Join(filepath.Dir(out.FeedPath), ".nojekyll")
	if err := files.WriteIfMissing(nojekyll, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	return nil
}
