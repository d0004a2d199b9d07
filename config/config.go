// Package config reads the engine's TOML configuration file into a
// typed Settings struct. Grounded on frankkopp-FrankyGo/config/config.go's
// package-level Settings-plus-Setup shape, adapted so Setup takes an
// explicit path and returns an error instead of printing one and
// continuing — this repo's config errors are a collaborator boundary
// per SPEC_FULL.md's error-handling section, not a programmer error to
// panic on.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings is the engine's full configuration, decoded from TOML.
// Every field has a zero-value-safe default applied before decoding so
// a missing config file still produces a runnable engine.
type Settings struct {
	Search SearchSettings
	Log    LogSettings
	Eval   EvalSettings
}

// Default is the configuration used when Setup is never called, or
// when the config file omits a section entirely (TOML decoding only
// overwrites fields it finds, so starting from Default and decoding
// on top of it preserves every omitted field).
var Default = Settings{
	Search: SearchSettings{
		HashSizeMB:     64,
		PawnHashSizeMB: 4,
		MultiPV:        1,
		UseBook:        false,
		UseEgbb:        false,
		Verbose:        true,
		OutputDelayMS:  0,
	},
	Log: LogSettings{
		LogLevel:       "info",
		SearchLogLevel: "info",
	},
	Eval: EvalSettings{
		Tempo: 10,
	},
}

// Current is the package-level configuration the rest of the engine
// reads from, mirroring the teacher's global `Settings` variable.
var Current = Default

// Setup decodes the TOML file at path into Current, starting from
// Default so omitted sections keep their defaults, then validates the
// result. A missing file is not an error (the engine runs on defaults,
// same as the teacher's own "config file optional" behavior) — only a
// malformed file, or a present-but-invalid value, returns an error.
func Setup(path string) error {
	Current = Default
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, &Current); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return Current.Validate()
}

// Validate checks the invariants the search/hash layer relies on:
// hash sizes must be positive (the tables round each size down to a
// power of two themselves) and multi_pv must be at least 1.
func (s Settings) Validate() error {
	if s.Search.HashSizeMB <= 0 {
		return fmt.Errorf("config: search.hash_size_mb must be positive, got %d", s.Search.HashSizeMB)
	}
	if s.Search.PawnHashSizeMB <= 0 {
		return fmt.Errorf("config: search.pawn_hash_size_mb must be positive, got %d", s.Search.PawnHashSizeMB)
	}
	if s.Search.MultiPV < 1 {
		return fmt.Errorf("config: search.multi_pv must be >= 1, got %d", s.Search.MultiPV)
	}
	return nil
}

// String renders the configuration field by field, in the teacher's
// terse style, rather than via reflection the way FrankyGo's dumper
// does — this repo has only a handful of fields, so reflection would
// be more code than it saves.
func (s Settings) String() string {
	return fmt.Sprintf(
		"hash=%dMB pawn_hash=%dMB multi_pv=%d use_book=%t use_egbb=%t verbose=%t output_delay=%dms log=%s search_log=%s tempo=%d",
		s.Search.HashSizeMB, s.Search.PawnHashSizeMB, s.Search.MultiPV,
		s.Search.UseBook, s.Search.UseEgbb, s.Search.Verbose, s.Search.OutputDelayMS,
		s.Log.LogLevel, s.Log.SearchLogLevel, s.Eval.Tempo,
	)
}
