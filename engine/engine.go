// Package engine glues board, eval and search behind the lifecycle a
// UCI front-end drives: set up a position, configure options, start a
// search in the background, stop it, and read back the result. It is
// the concrete home for spec.md §6's option/lifecycle contract, which
// spec.md itself treats as an external collaborator.
//
// Grounded on zurichess/uci.go's UCI struct (Engine/timeControl/idle/
// ponder channel shape) with the protocol parsing split out into the
// uci package so this one stays protocol-agnostic, and on
// frankkopp-FrankyGo's config-driven option defaults.
package engine

import (
	"github.com/maren-voss/corechess/board"
	"github.com/maren-voss/corechess/config"
	"github.com/maren-voss/corechess/logging"
	"github.com/maren-voss/corechess/search"
)

// Engine owns one Position and one search.Context, and runs at most one
// search at a time. Callers (the uci package) serialize access to it —
// the engine itself does not lock, matching spec.md's single-threaded
// search model (Non-goal: multi-threaded search).
type Engine struct {
	Position *board.Position
	ctx      *search.Context
	cmd      chan search.Command
	running  chan struct{} // buffered 1; filled while a search goroutine is active

	onEvent func(search.Event)
}

// New builds an Engine from the current configuration. onEvent is
// called from the search goroutine for every progress/PV/bestmove
// event; the uci package supplies one that formats and writes to
// stdout.
func New(onEvent func(search.Event)) *Engine {
	cmd := make(chan search.Command, 4)
	e := &Engine{
		cmd:     cmd,
		running: make(chan struct{}, 1),
		onEvent: onEvent,
	}
	e.ctx = search.NewContext(
		config.Current.Search.HashSizeMB*1024*1024,
		config.Current.Search.PawnHashSizeMB*1024*1024,
		cmd,
		e.dispatch,
	)
	pos, err := board.PositionFromFEN(board.FENStartPos)
	if err != nil {
		panic(err) // the startpos FEN is a repository invariant, not user input
	}
	e.Position = pos
	return e
}

func (e *Engine) dispatch(ev search.Event) {
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

// SetPosition replaces the current position wholesale (the UCI
// "position" command always supplies a complete position, never a
// diff, per spec.md's GLOSSARY entry for FEN).
func (e *Engine) SetPosition(pos *board.Position) {
	e.Position = pos
}

// DoMove plays m on the current position, verifying it first the same
// way every cached-move read inside search does (board.
// IsPseudoMoveLegal then IsMoveLegal) since UCI move strings are
// untrusted external input, not a cache hit.
func (e *Engine) DoMove(m board.Move) bool {
	if !e.Position.IsPseudoMoveLegal(m) || !e.Position.IsMoveLegal(m) {
		return false
	}
	e.Position.DoMove(m)
	return true
}

// NewGame resets the caches between games (spec.md §3: caches persist
// across searches within a game; a new game is the one point they are
// explicitly cleared rather than merely aged).
func (e *Engine) NewGame() {
	e.ctx.TT.Clear()
	e.ctx.Pawns.Clear()
	e.ctx.PVCache.Clear()
	e.ctx.History.Clear()
}

// Go starts a search in its own goroutine and returns immediately;
// result is delivered both via onEvent(EventBestMove) and the returned
// channel, for callers (tests) that want to block on it synchronously.
func (e *Engine) Go(limits search.Limits) <-chan search.Result {
	out := make(chan search.Result, 1)
	select {
	case e.running <- struct{}{}:
	default:
		// A search is already active; spec.md's lifecycle requires
		// "stop" before a new "go", so this is a caller bug, not a
		// recoverable condition.
		panic("engine: Go called while a search is already running")
	}
	logging.Engine().Infof("search starting: %s", config.Current.String())
	go func() {
		defer func() { <-e.running }()
		result := e.ctx.IterativeDeepen(e.Position, limits)
		out <- result
	}()
	return out
}

// Stop requests cancellation of any in-flight search (spec.md §5's
// cooperative cancellation: the worker only observes this at its next
// poll, not synchronously).
func (e *Engine) Stop() {
	select {
	case e.cmd <- search.Command{Abort: true}:
	default:
	}
	e.ctx.Abort()
}

// Options exposes the live configuration so the uci package can answer
// "uci" with option declarations and apply "setoption" changes.
func (e *Engine) Options() *config.Settings {
	return &config.Current
}

// ApplyHashSize rebuilds the transposition table at a new size; UCI's
// "setoption name Hash value N" maps directly onto this (spec.md §3:
// "allocated at size-configuration time ... and zeroed").
func (e *Engine) ApplyHashSize(sizeMB int) {
	config.Current.Search.HashSizeMB = sizeMB
	e.ctx.TT = search.NewTransposition(sizeMB * 1024 * 1024)
}

// ApplyMultiPV updates the number of root lines the next search reports.
func (e *Engine) ApplyMultiPV(n int) {
	config.Current.Search.MultiPV = n
}
