package feed

import (
	"strings"
	"testing"
	"time"
)

func TestIndexRenderer(t *testing.T) {
	page := IndexPage{
		Title:        `Hot <posts> & "more"`,
		Description:  "Top articles",
		FeedURL:      "https://feeds.example.com/feed.xml",
		Updated:      time.Date(2024, 5, 10, 21, 0, 0, 0, time.FixedZone("JST", 9*3600)),
		MinReactions: 1500,
		LookbackDays: 7,
		EntryCount:   42,
	}

	html := string(NewIndexRenderer().Run(page))

	expected := []string{
		"<!doctype html>",
		`<html lang="ja">`,
		"<title>Hot &lt;posts&gt; &amp; &#34;more&#34;</title>",
		"<h1>Hot &lt;posts&gt; &amp; &#34;more&#34;</h1>",
		"<p>Top articles</p>",
		`<a href="https://feeds.example.com/feed.xml">feed.xml</a>`,
		`type="application/atom+xml"`,
		"最終更新: 2024-05-10T12:00:00Z",
		"min_reactions: 1,500",
		"lookback_days: 7",
		"entries: 42",
	}

	for _, exp := range expected {
		if !strings.Contains(html, exp) {
			t.Errorf("Expected HTML to contain: %s", exp)
		}
	}

	if strings.Contains(html, "<posts>") {
		t.Error("Expected title to be escaped")
	}
}

func TestIndexRenderer_RelativeFeedURL(t *testing.T) {
	html := string(NewIndexRenderer().Run(IndexPage{Title: "t", FeedURL: "atom.xml"}))

	if !strings.Contains(html, `<a href="atom.xml">atom.xml</a>`) {
		t.Errorf("Expected relative feed link, got:\n%s", html)
	}
}
