package config

// LogSettings configures the logging package's per-subsystem levels,
// named after the teacher's LogLvl/SearchLogLvl pair in
// frankkopp-FrankyGo/config/logconfig.go.
type LogSettings struct {
	LogLevel       string
	SearchLogLevel string
}

// Levels maps the TOML-facing level names to the numeric level
// op/go-logging uses, same mapping as the teacher's LogLevels table.
var Levels = map[string]int{
	"off":      -1,
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}
