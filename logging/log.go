// Package logging wraps github.com/op/go-logging with one preconfigured
// *logging.Logger per subsystem, reducing each call site to a single
// Get call instead of repeating backend/formatter setup. Grounded on
// frankkopp-FrankyGo/logging/log.go's exact shape (package-level
// loggers, a shared standardFormat, a message.Printer for number
// formatting) with the locale switched to English per SPEC_FULL.md,
// since this repository has no reason to localize to German.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maren-voss/corechess/config"
)

// Out formats thousands-separated numbers (node counts, nps figures)
// for log lines, matching FrankyGo's out printer. UCI info lines do not
// use it; they print plain integers.
var Out = message.NewPrinter(language.English)

var (
	engineLog *logging.Logger
	searchLog *logging.Logger
	uciLog    *logging.Logger

	standardFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)
)

func init() {
	engineLog = logging.MustGetLogger("engine")
	searchLog = logging.MustGetLogger("search")
	uciLog = logging.MustGetLogger("uci")
}

func backend(level int) logging.Backend {
	b := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(b, standardFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.Level(level), "")
	return leveled
}

// Engine returns the engine-lifecycle subsystem logger (option changes,
// position setup, search start/stop), leveled from config.Current.Log.
func Engine() *logging.Logger {
	engineLog.SetBackend(backend(config.Levels[config.Current.Log.LogLevel]))
	return engineLog
}

// Search returns the search subsystem logger. Per SPEC_FULL.md's
// logging section, the search package logs only at iteration
// boundaries and on aspiration-window failure, never inside the
// alpha-beta recursion itself.
func Search() *logging.Logger {
	searchLog.SetBackend(backend(config.Levels[config.Current.Log.SearchLogLevel]))
	return searchLog
}

// UCI returns the UCI-protocol logger, always at DEBUG so every
// command/response is visible regardless of the configured level —
// matching the teacher's GetUciLog, which hardcodes logging.DEBUG for
// the same reason (protocol traces are only ever turned on
// deliberately, by running with the logger attached).
func UCI() *logging.Logger {
	uciLog.SetBackend(backend(config.Levels["debug"]))
	return uciLog
}
