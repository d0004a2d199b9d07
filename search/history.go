// history.go implements the quiet-move ordering heuristics: a
// success/history/failure table indexed by (from, to, side), and the
// per-ply killer slots that live alongside it conceptually (storage for
// the latter is on the ply-indexed node stack, node.go, since it is
// kept per ply rather than decayed like history).
package search

import "github.com/maren-voss/corechess/board"

// MaxHistory is the saturation ceiling: once any entry in the history
// array exceeds this, the whole table is halved. Chosen, like the
// teacher's move_ordering.go mvvlva bonuses, as a scale well above any
// single depth*depth increment so saturation is rare in practice.
const MaxHistory = 1 << 15

const historySize = board.SquareArraySize * board.SquareArraySize * board.ColorArraySize

func historyIndex(from, to board.Square, side board.Color) int {
	return (int(from)*board.SquareArraySize+int(to))*board.ColorArraySize + int(side)
}

// HistoryTable accumulates move-ordering statistics across a search.
// It is not reset between iterative-deepening iterations or between
// top-level searches (only Clear, called by Engine.NewGame, zeroes it),
// so later iterations benefit from earlier ones' ordering.
type HistoryTable struct {
	success [historySize]uint32
	history [historySize]uint32
	failure [historySize]uint32
}

// Clear zeroes the table, used when starting a new game.
func (h *HistoryTable) Clear() {
	h.success = [historySize]uint32{}
	h.history = [historySize]uint32{}
	h.failure = [historySize]uint32{}
}

// Get returns the quiet-move ordering score for m, used directly as the
// "Quiet" class score in the move selector.
func (h *HistoryTable) Get(m board.Move) int64 {
	return int64(h.history[historyIndex(m.From(), m.To(), m.SideToMove())])
}

// RecordCutoff is called once, for the move that caused a fail-high at a
// fail-high node: its success counter is incremented and its history
// weight bumped by depth^2, the standard weighting that rewards deeper
// cutoffs more heavily since they are rarer and more valuable to find
// again early.
func (h *HistoryTable) RecordCutoff(depth int, m board.Move) {
	i := historyIndex(m.From(), m.To(), m.SideToMove())
	h.success[i]++
	h.history[i] += uint32(depth * depth)
	if h.history[i] > MaxHistory {
		h.halve()
	}
}

// RecordFailure is called for every quiet move tried before the cutoff
// move at a fail-high node — never for captures or promotions (spec
// note: "record_failure is called only for quiet non-capture
// non-promotion moves prior to the cutoff move; do not also decrement
// on captures").
func (h *HistoryTable) RecordFailure(m board.Move) {
	i := historyIndex(m.From(), m.To(), m.SideToMove())
	h.failure[i]++
}

// HistoryPruningAllowed reports whether m should be pruned by history:
// true when its failure count dominates its success count scaled by
// depth, i.e. the move has repeatedly failed to cut off at comparable
// depths.
func (h *HistoryTable) HistoryPruningAllowed(depth int, m board.Move) bool {
	i := historyIndex(m.From(), m.To(), m.SideToMove())
	return uint32(depth)*h.success[i] < h.failure[i]
}

func (h *HistoryTable) halve() {
	for i := range h.history {
		h.success[i] /= 2
		h.history[i] /= 2
		h.failure[i] /= 2
	}
}
