package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/devto-feed/app/config"
	"github.com/lysyi3m/devto-feed/app/database"
	"github.com/lysyi3m/devto-feed/app/feed"
	"github.com/lysyi3m/devto-feed/app/state"
)

const recentRunsLimit = 20

// NewHandler serves the build outputs. runRepo may be nil when no history
// database is configured.
func NewHandler(siteConfig *config.Config, paths Paths, runRepo database.RunRepository, version string) *Handler {
	return &Handler{
		siteConfig: siteConfig,
		paths:      paths,
		runRepo:    runRepo,
		parser:     feed.NewParser(),
		version:    version,
	}
}

func (h *Handler) GetIndex(c *gin.Context) {
	data, ok := h.readOutput(c, h.paths.Index)
	if !ok {
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

func (h *Handler) GetFeed(c *gin.Context) {
	data, ok := h.readOutput(c, h.paths.Feed)
	if !ok {
		return
	}

	metadata, items, err := h.parser.Run(data)
	if err != nil {
		slog.Error("Feed parse error", "path", h.paths.Feed, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	if metadata.UpdatedAt != nil {
		c.Header("X-Last-Updated", metadata.UpdatedAt.UTC().Format(time.RFC3339))
	}

	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	}

	store, err := state.Load(h.paths.State)
	if err != nil {
		slog.Error("State load error", "path", h.paths.State, "error", err)
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	health["status"] = "ok"
	health["stored_items"] = store.Len()

	if data, err := os.ReadFile(h.paths.LastBuild); err == nil {
		health["last_build"] = strings.TrimSpace(string(data))
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"site_title":       h.siteConfig.SiteTitle,
		"min_reactions":    h.siteConfig.MinReactions,
		"lookback_days":    h.siteConfig.LookbackDays,
		"max_stored_days":  h.siteConfig.MaxStoredDays,
		"max_stored_items": h.siteConfig.MaxStoredItems,
		"max_feed_entries": h.siteConfig.MaxFeedEntries,
		"history_enabled":  h.runRepo != nil,
	}

	if h.runRepo == nil {
		c.JSON(http.StatusOK, stats)
		return
	}

	total, err := h.runRepo.GetRunCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_run_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	runs, err := h.runRepo.GetRecentRuns(recentRunsLimit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	recent := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		recent = append(recent, map[string]interface{}{
			"id":          run.ID,
			"started_at":  run.StartedAt.Format(time.RFC3339),
			"finished_at": run.FinishedAt.Format(time.RFC3339),
			"duration":    run.FinishedAt.Sub(run.StartedAt).String(),
			"fetched":     run.Fetched,
			"merged":      run.Merged,
			"pruned":      run.Pruned,
			"stored":      run.Stored,
			"entries":     run.Entries,
		})
	}

	stats["total_runs"] = total
	stats["recent_runs"] = recent

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) readOutput(c *gin.Context, path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c.String(http.StatusNotFound, "not built yet")
		return nil, false
	}
	if err != nil {
		slog.Error("Output read error", "path", path, "error", err)
		c.Status(http.StatusInternalServerError)
		return nil, false
	}
	return data, true
}
