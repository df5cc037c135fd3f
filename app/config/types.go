package config

// Config is the site configuration read from the YAML file passed via --config.
type Config struct {
	SiteTitle       string `yaml:"site_title"`
	SiteDescription string `yaml:"site_description"`
	SiteURL         string `yaml:"site_url"`
	FeedPath        string `yaml:"feed_path"`
	SourceDomain    string `yaml:"source_domain"`
	APIURL          string `yaml:"api_url"`

	MinReactions   int  `yaml:"min_reactions"`
	LookbackDays   int  `yaml:"lookback_days"`
	PerPage        int  `yaml:"per_page"`
	MaxPages       int  `yaml:"max_pages"`
	MaxStoredDays  int  `yaml:"max_stored_days"`
	MaxStoredItems int  `yaml:"max_stored_items"`
	MaxFeedEntries int  `yaml:"max_feed_entries"`
	Timeout        int  `yaml:"timeout"` // seconds
	ExtractContent bool `yaml:"extract_content"`

	Filters []Filter `yaml:"filters"`
}

// Filter narrows fetched candidates before they reach the store
type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
