package cfg

type Cfg struct {
	// Input/output paths
	ConfigPath    string
	StatePath     string
	OutPath       string
	IndexPath     string
	LastBuildPath string
	HistoryDB     string

	// Run mode
	DryRun bool
	Serve  bool
	Port   string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
