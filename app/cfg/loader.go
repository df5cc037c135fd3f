package cfg

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input/output paths
	ConfigPath    string `long:"config" env:"CONFIG_PATH" description:"Path to the site YAML configuration" required:"true"`
	StatePath     string `long:"state" env:"STATE_PATH" description:"Path to the JSON state file" required:"true"`
	OutPath       string `long:"out" env:"OUT_PATH" description:"Path of the Atom feed to write" required:"true"`
	IndexPath     string `long:"index" env:"INDEX_PATH" description:"Path of the HTML landing page to write" required:"true"`
	LastBuildPath string `long:"last-build" env:"LAST_BUILD_PATH" description:"Path of the last build timestamp file" required:"true"`
	HistoryDB     string `long:"history-db" env:"HISTORY_DB" description:"SQLite file for run history (optional)"`

	// Run mode
	DryRun bool   `long:"dry-run" env:"DRY_RUN" description:"Run the pipeline without writing any file"`
	Serve  bool   `long:"serve" env:"SERVE" description:"Serve the rendered output instead of building it"`
	Port   string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for --serve"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"devto-feed/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses args (without the program name) and the environment. It returns
// nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Cfg{
		ConfigPath:    raw.ConfigPath,
		StatePath:     raw.StatePath,
		OutPath:       raw.OutPath,
		IndexPath:     raw.IndexPath,
		LastBuildPath: raw.LastBuildPath,
		HistoryDB:     raw.HistoryDB,
		DryRun:        raw.DryRun,
		Serve:         raw.Serve,
		Port:          raw.Port,
		UserAgent:     raw.UserAgent,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}, nil
}
