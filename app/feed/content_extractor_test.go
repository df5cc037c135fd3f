package feed

import (
	"strings"
	"testing"
)

const devtoArticlePage = `
<!DOCTYPE html>
<html>
<head>
	<title>Understanding Go Channels - DEV Community</title>
</head>
<body>
	<header class="site-header">
		<nav>Home Podcasts Videos Tags</nav>
	</header>
	<main>
		<article>
			<h1>Understanding Go Channels</h1>
			<div id="article-body">
				<p>Channels are the pipes that connect concurrent goroutines. You can send values into channels from one goroutine and receive those values into another goroutine.</p>
				<p>Unbuffered channels block the sender until a receiver is ready, which makes them a synchronization point as much as a transport for data between goroutines.</p>
				<p>Buffered channels accept a limited number of values without a corresponding receiver. See the <a href="/ana/buffered-channels-42">follow-up post</a> for the details.</p>
			</div>
		</article>
	</main>
	<aside>
		<div>Sponsored: try our hosting</div>
	</aside>
	<footer>
		<p>DEV Community footer links</p>
	</footer>
</body>
</html>
`

func TestContentExtractor_ExtractsArticleBody(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run([]byte(devtoArticlePage), "https://dev.to/ana/understanding-go-channels-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "pipes that connect concurrent goroutines") {
		t.Errorf("Expected extracted content to contain the article text")
	}
	if strings.Contains(result, "Sponsored") {
		t.Errorf("Expected extracted content to exclude the sidebar")
	}
	if strings.Contains(result, "footer links") {
		t.Errorf("Expected extracted content to exclude the footer")
	}
}

func TestContentExtractor_ResolvesRelativeLinks(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run([]byte(devtoArticlePage), "https://dev.to/ana/understanding-go-channels-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "https://dev.to/ana/buffered-channels-42") {
		t.Errorf("Expected relative link resolved against the page URL, got: %s", result)
	}
}

func TestContentExtractor_WithoutPageURL(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run([]byte(devtoArticlePage), "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result == "" {
		t.Error("Expected non-empty result")
	}
}

func TestContentExtractor_EmptyData(t *testing.T) {
	extractor := NewContentExtractor()

	for _, data := range [][]byte{nil, {}} {
		result, err := extractor.Run(data, "")
		if err == nil {
			t.Error("Expected error for empty data")
		}
		if result != "" {
			t.Errorf("Expected empty result, got: %s", result)
		}
	}
}

func TestContentExtractor_InvalidPageURL(t *testing.T) {
	extractor := NewContentExtractor()

	_, err := extractor.Run([]byte(devtoArticlePage), "://missing-scheme")
	if err == nil {
		t.Error("Expected error for an invalid page URL")
	}
}
