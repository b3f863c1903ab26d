package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel  string // sets the log level (zap log level values)
	LogFormat string // text vs json
	LogConfig string // path to log config file (zapfilter rules)

	DataDir         string // directory containing the six race csv files
	GridFile        string // starting grid csv (overrides DataDir lookup)
	TelemetryFile   string // telemetry csv
	PitStopsFile    string // pit stops csv
	EventsFile      string // race events csv
	TrackMapFile    string // track map csv
	LeaderboardFile string // leaderboard csv

	TimelineStep string // canonical timeline step (duration value, default 100ms)
	Tolerance    string // nearest-sample tolerance for positions (default 500ms)
	Workers      int    // number of concurrent entity resample workers
)
