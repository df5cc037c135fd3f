package config

import (
	"strings"
	"time"
)

// GetTimeout returns the HTTP timeout as time.Duration
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// FeedURL is the public address of the Atom document.
func (c *Config) FeedURL() string {
	return BuildURL(c.SiteURL, c.FeedPath)
}

// IndexURL is the public address of the landing page, relative when no site URL is set.
func (c *Config) IndexURL() string {
	if c.SiteURL == "" {
		return "index.html"
	}
	return BuildURL(c.SiteURL, "index.html")
}

// BuildURL joins base and path with exactly one slash. An empty base yields path as-is.
func BuildURL(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
