package state

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/devto-feed/app/devto"
)

func TestMerge_BuildsStoredArticle(t *testing.T) {
	store := NewStore()
	article := devto.Article{
		ID:                     ptr(int64(101)),
		Title:                  "Go generics in practice",
		URL:                    ptr("https://dev.to/ana/go-generics-101"),
		CanonicalURL:           ptr("https://ana.dev/go-generics"),
		Description:            ptr("A tour"),
		PublishedTimestamp:     ptr("2024-05-01T10:00:00Z"),
		PublishedAt:            ptr("2024-05-01T10:00:00Z"),
		EditedAt:               ptr("2024-05-02T08:00:00Z"),
		PublicReactionsCount:   ptr(120),
		PositiveReactionsCount: ptr(118),
		TagList:                " go, generics ,,tutorial ,go",
		User:                   &devto.User{Name: ptr("Ana"), Username: ptr("ana")},
	}

	merged := store.Merge([]devto.Article{article}, baseTime, nil)
	if merged != 1 {
		t.Fatalf("Expected 1 merged article, got %d", merged)
	}

	stored, ok := store.Items["101"]
	if !ok {
		t.Fatal("Expected article stored under key '101'")
	}
	if stored.Key != "101" {
		t.Errorf("Expected key '101', got '%s'", stored.Key)
	}
	if stored.PublicReactionsCount != 120 || stored.PositiveReactionsCount != 118 {
		t.Errorf("Unexpected reaction counts: %d / %d", stored.PublicReactionsCount, stored.PositiveReactionsCount)
	}
	wantTags := []string{"go", "generics", "tutorial", "go"}
	if !reflect.DeepEqual(stored.TagList, wantTags) {
		t.Errorf("Expected tags %v, got %v", wantTags, stored.TagList)
	}
	if stored.UserName == nil || *stored.UserName != "Ana" {
		t.Errorf("Expected user name 'Ana', got %v", stored.UserName)
	}
	if stored.UserUsername == nil || *stored.UserUsername != "ana" {
		t.Errorf("Expected username 'ana', got %v", stored.UserUsername)
	}
	if stored.LastSeen != "2024-05-10T12:00:00Z" {
		t.Errorf("Expected last_seen '2024-05-10T12:00:00Z', got '%s'", stored.LastSeen)
	}
}

func TestMerge_DefaultsMissingCounters(t *testing.T) {
	store := NewStore()
	store.Merge([]devto.Article{{ID: ptr(int64(1)), Title: "quiet"}}, baseTime, nil)

	stored := store.Items["1"]
	if stored.PublicReactionsCount != 0 || stored.PositiveReactionsCount != 0 {
		t.Errorf("Expected zero counters, got %d / %d", stored.PublicReactionsCount, stored.PositiveReactionsCount)
	}
	if stored.TagList == nil || len(stored.TagList) != 0 {
		t.Errorf("Expected empty non-nil tag list, got %#v", stored.TagList)
	}
	if stored.UserName != nil || stored.UserUsername != nil {
		t.Error("Expected no author fields without a user record")
	}
}

func TestMerge_SkipsArticlesWithoutIdentity(t *testing.T) {
	store := NewStore()
	logger := &recordingLogger{}

	merged := store.Merge([]devto.Article{
		{Title: "no identity", URL: ptr("https://dev.to/x/orphan")},
		{CanonicalURL: ptr("https://example.com/post"), Title: "by url"},
	}, baseTime, logger)

	if merged != 1 {
		t.Errorf("Expected 1 merged article, got %d", merged)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored article, got %d", store.Len())
	}
	if _, ok := store.Items["https://example.com/post"]; !ok {
		t.Error("Expected article keyed by canonical URL")
	}
	if len(logger.messages) != 1 || !strings.Contains(logger.messages[0], "no identity") {
		t.Errorf("Expected one diagnostic naming the skipped article, got %v", logger.messages)
	}
}

func TestMerge_LastWriteWinsEntirely(t *testing.T) {
	store := NewStore()
	first := articleWithID(5, 10)
	first.Description = ptr("first description")
	first.TagList = "go"
	store.Merge([]devto.Article{first}, baseTime, nil)

	second := articleWithID(5, 3)
	second.Title = "renamed"
	store.Merge([]devto.Article{second}, baseTime.Add(time.Hour), nil)

	stored := store.Items["5"]
	if stored.Title != "renamed" {
		t.Errorf("Expected title 'renamed', got '%s'", stored.Title)
	}
	if stored.PublicReactionsCount != 3 {
		t.Errorf("Expected reactions 3, got %d", stored.PublicReactionsCount)
	}
	if stored.Description != nil {
		t.Error("Expected description to be cleared by the newer record")
	}
	if len(stored.TagList) != 0 {
		t.Errorf("Expected tags cleared by the newer record, got %v", stored.TagList)
	}
}

func TestMerge_LaterDuplicateInBatchWins(t *testing.T) {
	store := NewStore()
	early := articleWithID(9, 1)
	late := articleWithID(9, 99)

	merged := store.Merge([]devto.Article{early, late}, baseTime, nil)
	if merged != 2 {
		t.Errorf("Expected both duplicates counted as merged, got %d", merged)
	}
	if store.Len() != 1 {
		t.Fatalf("Expected a single record per key, got %d", store.Len())
	}
	if store.Items["9"].PublicReactionsCount != 99 {
		t.Errorf("Expected the later duplicate to win, got %d", store.Items["9"].PublicReactionsCount)
	}
}

func TestMerge_IdempotentWithSameNow(t *testing.T) {
	articles := []devto.Article{articleWithID(1, 10), articleWithID(2, 20)}

	store := NewStore()
	store.Merge(articles, baseTime, nil)
	first, err := store.Encode()
	if err != nil {
		t.Fatal(err)
	}

	store.Merge(articles, baseTime, nil)
	second, err := store.Encode()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("Expected identical store after re-merge:\n%s\n---\n%s", first, second)
	}
}

func TestMerge_AdvancingNowOnlyChangesLastSeen(t *testing.T) {
	articles := []devto.Article{articleWithID(1, 10), articleWithID(2, 20)}

	store := NewStore()
	store.Merge(articles, baseTime, nil)
	before := store.Sorted()

	later := baseTime.Add(6 * time.Hour)
	store.Merge(articles, later, nil)
	after := store.Sorted()

	if len(before) != len(after) {
		t.Fatalf("Expected %d records, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].LastSeen != FormatTime(later) {
			t.Errorf("Expected last_seen %s, got %s", FormatTime(later), after[i].LastSeen)
		}
		after[i].LastSeen = before[i].LastSeen
		if !reflect.DeepEqual(before[i], after[i]) {
			t.Errorf("Expected only last_seen to change for key %s", before[i].Key)
		}
	}
}

func TestMerge_EmptyBatchIsNoOp(t *testing.T) {
	store := NewStore()
	store.Items["1"] = storedAt("1", baseTime.Add(-time.Hour))

	merged := store.Merge(nil, baseTime, nil)
	if merged != 0 {
		t.Errorf("Expected 0 merged, got %d", merged)
	}
	if store.Items["1"].LastSeen != FormatTime(baseTime.Add(-time.Hour)) {
		t.Error("Expected existing last_seen untouched by an empty merge")
	}
}

func TestParseTagList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"go", []string{"go"}},
		{"go, rust", []string{"go", "rust"}},
		{" , ,", []string{}},
		{"b,a,b", []string{"b", "a", "b"}},
	}

	for _, tt := range tests {
		got := ParseTagList(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTagList(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}
