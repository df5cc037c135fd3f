package api

import (
	"github.com/lysyi3m/devto-feed/app/config"
	"github.com/lysyi3m/devto-feed/app/database"
	"github.com/lysyi3m/devto-feed/app/feed"
)

// Paths locates the files produced by the last build.
type Paths struct {
	State     string
	Feed      string
	Index     string
	LastBuild string
}

type Handler struct {
	siteConfig *config.Config
	paths      Paths
	runRepo    database.RunRepository
	parser     *feed.Parser
	version    string
}
