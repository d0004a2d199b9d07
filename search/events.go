// events.go defines the structured progress events the core emits;
// spec.md §1/§6: "The core emits structured progress events; the
// front-end renders them" — this package never formats or writes a
// single byte of UCI text itself, it only calls ctx.onEvent with one of
// these values. The uci package (outside this core) is what turns an
// Event into an "info ..."/"bestmove ..." line.
package search

import (
	"time"

	"github.com/maren-voss/corechess/board"
)

// EventKind discriminates the Event union.
type EventKind int

const (
	EventDepth EventKind = iota
	EventProgress
	EventCurrMove
	EventPV
	EventBestMove
)

// Event is emitted to whatever onEvent callback the Context was built
// with. Fields not meaningful for Kind are left zero.
type Event struct {
	Kind EventKind

	Depth    int
	SelDepth int

	Nodes    uint64
	QNodes   uint64
	PVNodes  uint64
	ElapsedMS int64
	NPS      uint64
	Hashfull int

	CurrMove      board.Move
	CurrMoveNumber int

	MultiPVIndex int
	Score        Score
	IsMate       bool
	PV           []board.Move

	BestMove  board.Move
	PonderMove board.Move
}

func (ctx *Context) emit(e Event) {
	if ctx.onEvent != nil {
		ctx.onEvent(e)
	}
}

// maybeEmitProgress emits an EventProgress line roughly once per
// second, suppressed until OutputDelay has elapsed (spec.md §6's
// output_delay option), called from poll() — never from inside the
// alpha-beta recursion itself.
func (ctx *Context) maybeEmitProgress(soFar time.Duration) {
	if soFar < ctx.outputDelay {
		return
	}
	if soFar-ctx.lastOutputAt < time.Second {
		return
	}
	ctx.lastOutputAt = soFar
	nps := uint64(0)
	if soFar > 0 {
		nps = uint64(float64(ctx.Stats.Nodes) / soFar.Seconds())
	}
	ctx.emit(Event{
		Kind:      EventProgress,
		Nodes:     ctx.Stats.Nodes,
		QNodes:    ctx.Stats.QNodes,
		PVNodes:   ctx.Stats.PVNodes,
		ElapsedMS: soFar.Milliseconds(),
		NPS:       nps,
		Hashfull:  ctx.TT.Hashfull(),
	})
}
