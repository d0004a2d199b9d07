// eval.go bridges search to the eval package: simpleEval is a cheap
// material+PST probe (spec.md §6's simple_eval), fullEval adds pawn
// structure through Context's cached PawnTable (spec.md §6's
// full_eval), keeping the cache discipline in search as spec.md §3
// requires ("its cache discipline is core-owned").
package search

import (
	"github.com/maren-voss/corechess/board"
	"github.com/maren-voss/corechess/eval"
)

// simpleEval returns a quick material+PST score, side-relative.
func simpleEval(pos *board.Position) Score {
	total := eval.MaterialAndPST(pos)
	if pos.Us() == board.Black {
		total = -total
	}
	return Score(total)
}

// fullEval returns the complete evaluation, side-relative, using ctx's
// pawn-structure cache.
func fullEval(ctx *Context, pos *board.Position) Score {
	total := eval.MaterialAndPST(pos) + ctx.Pawns.Score(pos)
	if pos.Us() == board.Black {
		total = -total
	}
	return Score(total)
}
