package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/devto-feed/app/devto"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var validFilterFields = map[string]bool{
	"title":       true,
	"description": true,
	"author":      true,
	"tags":        true,
	"url":         true,
}

// Defaults returns the configuration used for keys absent from the file.
func Defaults() Config {
	return Config{
		FeedPath:       "feed.xml",
		SourceDomain:   "dev.to",
		APIURL:         devto.DefaultBaseURL,
		MinReactions:   0,
		LookbackDays:   7,
		PerPage:        100,
		MaxPages:       3,
		MaxStoredDays:  30,
		MaxStoredItems: 500,
		MaxFeedEntries: 50,
		Timeout:        15,
	}
}

// Load reads and validates the site configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrInvalidConfig, path, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Configuration loaded", "path", path, "min_reactions", config.MinReactions, "filters", len(config.Filters))
	return config, nil
}

// Parse decodes YAML on top of Defaults, so keys set to zero stay zero.
func Parse(data []byte) (*Config, error) {
	config := Defaults()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidConfig, err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &config, nil
}

func validate(config *Config) error {
	requiredFields := []struct {
		name  string
		value string
	}{
		{"site_title", config.SiteTitle},
		{"feed_path", config.FeedPath},
		{"source_domain", config.SourceDomain},
		{"api_url", config.APIURL},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	nonNegativeFields := []struct {
		name  string
		value int
	}{
		{"min_reactions", config.MinReactions},
		{"lookback_days", config.LookbackDays},
		{"max_stored_days", config.MaxStoredDays},
		{"max_stored_items", config.MaxStoredItems},
		{"max_feed_entries", config.MaxFeedEntries},
		{"timeout", config.Timeout},
	}

	for _, field := range nonNegativeFields {
		if field.value < 0 {
			return fmt.Errorf("%s must be non-negative", field.name)
		}
	}

	if strings.TrimLeft(config.FeedPath, "/") == "index.html" {
		return fmt.Errorf("feed_path must not be index.html")
	}

	if config.PerPage < 1 {
		return fmt.Errorf("per_page must be at least 1")
	}
	if config.MaxPages < 1 {
		return fmt.Errorf("max_pages must be at least 1")
	}

	for i, filter := range config.Filters {
		if !validFilterFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
