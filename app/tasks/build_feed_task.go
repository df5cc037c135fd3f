package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/devto-feed/app/config"
	"github.com/lysyi3m/devto-feed/app/database"
	"github.com/lysyi3m/devto-feed/app/devto"
	"github.com/lysyi3m/devto-feed/app/feed"
	"github.com/lysyi3m/devto-feed/app/state"
)

// BuildOptions are the per-invocation settings that do not come from the site config.
type BuildOptions struct {
	StatePath string
	Output    feed.Output
	DryRun    bool
	Version   string
}

// Result summarizes one build.
type Result struct {
	Fetched    int
	Candidates int
	Merged     int
	Pruned     int
	Stored     int
	Entries    int
	Extracted  int
	DryRun     bool
}

type BuildFeedTask struct {
	Task
	Result Result

	config    *config.Config
	options   BuildOptions
	fetcher   ArticleFetcher
	pages     PageFetcher
	history   RunRecorder
	filterer  *feed.Filterer
	generator *feed.Generator
	index     *feed.IndexRenderer
	parser    *feed.Parser
	extractor *feed.ContentExtractor
	writer    *feed.Writer
	now       func() time.Time
}

// NewBuildFeedTask wires one pipeline run. pages is only used when content
// extraction is enabled; history may be nil.
func NewBuildFeedTask(siteConfig *config.Config, options BuildOptions, fetcher ArticleFetcher, pages PageFetcher, history RunRecorder) *BuildFeedTask {
	return &BuildFeedTask{
		Task:      NewTask(TaskTypeBuildFeed),
		config:    siteConfig,
		options:   options,
		fetcher:   fetcher,
		pages:     pages,
		history:   history,
		filterer:  feed.NewFilterer(),
		generator: feed.NewGenerator(),
		index:     feed.NewIndexRenderer(),
		parser:    feed.NewParser(),
		extractor: feed.NewContentExtractor(),
		writer:    feed.NewWriter(),
		now:       time.Now,
	}
}

func (t *BuildFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	now := t.now().UTC()
	t.Result = Result{DryRun: t.options.DryRun}

	store, err := state.Load(t.options.StatePath)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	articles, err := t.fetcher.FetchArticles(ctx, devto.Query{
		Top:      t.config.LookbackDays,
		PerPage:  t.config.PerPage,
		MaxPages: t.config.MaxPages,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch articles: %w", err)
	}
	t.Result.Fetched = len(articles)

	candidates := t.filterer.Run(filterByReactions(articles, t.config.MinReactions), t.config.Filters)
	t.Result.Candidates = len(candidates)

	t.Result.Merged = store.Merge(candidates, now, slog.Default())
	t.Result.Pruned = store.Prune(now, t.config.MaxStoredDays, t.config.MaxStoredItems)
	t.Result.Stored = store.Len()

	items := store.Project(t.config.MinReactions, t.config.MaxFeedEntries)
	entries := state.BuildEntries(items, now, t.config.SourceDomain)
	t.Result.Entries = len(entries)

	if t.config.ExtractContent && t.pages != nil {
		extractTask := NewExtractContentTask(entries, t.pages, t.extractor, t.config.GetTimeout())
		extractTask.Start()
		if err := extractTask.Execute(ctx); err != nil {
			return fmt.Errorf("failed to extract content: %w", err)
		}
		t.Result.Extracted = extractTask.Extracted
	}

	feedXML, indexHTML, err := t.render(entries, now)
	if err != nil {
		return err
	}

	if t.options.DryRun {
		slog.Info("Dry run, nothing written",
			"merged", t.Result.Merged,
			"stored", t.Result.Stored,
			"entries", t.Result.Entries)
		return nil
	}

	if err := t.writer.Run(t.options.Output, feedXML, indexHTML, now); err != nil {
		return err
	}

	if err := store.Save(t.options.StatePath); err != nil {
		return err
	}

	t.recordRun(now)

	slog.Info("Task completed",
		"type", t.GetType(),
		"id", t.GetID(),
		"duration", t.GetDuration(),
		"fetched", t.Result.Fetched,
		"merged", t.Result.Merged,
		"pruned", t.Result.Pruned,
		"stored", t.Result.Stored,
		"entries", t.Result.Entries)

	return nil
}

func (t *BuildFeedTask) render(entries []state.Entry, now time.Time) ([]byte, []byte, error) {
	updated := state.FeedUpdated(entries, now)

	feedID := t.config.FeedURL()
	if t.config.SiteURL == "" {
		feedID = fmt.Sprintf("tag:%s,%s:devto-feed", t.config.SourceDomain, now.Format("2006"))
	}

	feedXML, err := t.generator.Run(feed.Info{
		ID:       feedID,
		Title:    t.config.SiteTitle,
		Subtitle: t.config.SiteDescription,
		Author:   t.config.SourceDomain,
		FeedURL:  t.config.FeedURL(),
		IndexURL: t.config.IndexURL(),
		Updated:  updated,
		Version:  t.options.Version,
	}, entries)
	if err != nil {
		return nil, nil, err
	}

	if err := t.parser.Validate(feedXML, len(entries)); err != nil {
		return nil, nil, err
	}

	indexHTML := t.index.Run(feed.IndexPage{
		Title:        t.config.SiteTitle,
		Description:  t.config.SiteDescription,
		FeedURL:      t.config.FeedURL(),
		Updated:      updated,
		MinReactions: t.config.MinReactions,
		LookbackDays: t.config.LookbackDays,
		EntryCount:   len(entries),
	})

	return feedXML, indexHTML, nil
}

// recordRun stores the run summary. History is auxiliary, so failures are
// logged and the build still succeeds.
func (t *BuildFeedTask) recordRun(now time.Time) {
	if t.history == nil {
		return
	}

	startedAt := now
	if t.StartedAt != nil {
		startedAt = *t.StartedAt
	}

	err := t.history.InsertRun(database.Run{
		ID:         t.GetID(),
		StartedAt:  startedAt,
		FinishedAt: t.now(),
		Fetched:    t.Result.Fetched,
		Merged:     t.Result.Merged,
		Pruned:     t.Result.Pruned,
		Stored:     t.Result.Stored,
		Entries:    t.Result.Entries,
	})
	if err != nil {
		slog.Error("Failed to record run", "id", t.GetID(), "error", err)
	}
}

func filterByReactions(articles []devto.Article, minReactions int) []devto.Article {
	filtered := make([]devto.Article, 0, len(articles))
	for _, article := range articles {
		reactions := 0
		if article.PublicReactionsCount != nil {
			reactions = *article.PublicReactionsCount
		}
		if reactions >= minReactions {
			filtered = append(filtered, article)
		}
	}
	return filtered
}
