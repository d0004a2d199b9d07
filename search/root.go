// root.go implements the root-move bookkeeping and root_search half of
// C8: the record type spec.md §3 calls "Root move", and the ordering
// rules spec.md §4.6 assigns to ROOT_GEN.
package search

import "github.com/maren-voss/corechess/board"

// RootMove is one candidate at the root, carrying enough state across
// iterations to drive both move ordering (Nodes, from the previous
// iteration) and multi-PV reporting (Score, PV).
type RootMove struct {
	Move         board.Move
	Score        Score
	QSearchScore Score
	Nodes        uint64
	PV           []board.Move
	MaxDepth     int
}

// buildRootMoves generates every legal move (or uses limits.RootMoves
// if the caller restricted the root) and seeds each with a depth-0
// quiescence score, per spec.md §4.6.
func (ctx *Context) buildRootMoves(pos *board.Position) []RootMove {
	var moves []board.Move
	if len(ctx.Limits.RootMoves) > 0 {
		moves = ctx.Limits.RootMoves
	} else {
		moves = pos.GenerateLegalMoves(board.All, nil)
	}

	roots := make([]RootMove, len(moves))
	for i, m := range moves {
		pos.DoMove(m)
		q := -ctx.quiescence(pos, 1, -MateValue, MateValue, 0)
		pos.UndoMove(m)
		roots[i] = RootMove{Move: m, QSearchScore: q, Score: q}
	}
	return roots
}

// obviousMoveMargin is spec.md §4.6's default 200-centipawn threshold
// for declaring a root move "obvious".
const obviousMoveMargin = 200

// findObviousMove returns the index of a root move whose quiescence
// score beats every other move's by at least obviousMoveMargin, or -1.
func findObviousMove(roots []RootMove) int {
	if len(roots) < 2 {
		if len(roots) == 1 {
			return 0
		}
		return -1
	}
	best, second := 0, Score(-MateValue)
	bestIdx := 0
	for i, r := range roots {
		if r.QSearchScore > roots[bestIdx].QSearchScore {
			bestIdx = i
		}
	}
	best = int(roots[bestIdx].QSearchScore)
	for i, r := range roots {
		if i == bestIdx {
			continue
		}
		if int(r.QSearchScore) > int(second) {
			second = r.QSearchScore
		}
	}
	if Score(best)-second >= obviousMoveMargin {
		return bestIdx
	}
	return -1
}

// rootOrder builds the ROOT_GEN ordering that rootSearch iterates,
// implementing spec.md §4.6's rule list: (a) hash move first, (b)
// qsearch score if depth <= 2, (c) root score if multi-PV > 1,
// (d) otherwise the previous iteration's subtree node count.
func rootOrder(roots []RootMove, hashMove board.Move, depth, multiPV int) []board.Move {
	type scored struct {
		m board.Move
		s int64
	}
	list := make([]scored, len(roots))
	for i, r := range roots {
		var s int64
		switch {
		case r.Move == hashMove && hashMove != board.NoMove:
			s = int64(^uint64(0) >> 1) // math.MaxInt64, spec's INT64_MAX
		case depth <= 2:
			s = int64(r.QSearchScore)
		case multiPV > 1:
			s = int64(r.Score)
		default:
			s = int64(r.Nodes)
		}
		list[i] = scored{r.Move, s}
	}
	// Stable-ish insertion sort descending by score; root move counts
	// are small (<= 218 in any legal chess position) so O(n^2) is fine
	// and keeps equal-score ties in generation order, matching the
	// teacher's own shellSortGaps approach of a simple, readable sort
	// over a fancier one at this scale.
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].s > list[j-1].s; j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
	out := make([]board.Move, len(list))
	for i, e := range list {
		out[i] = e.m
	}
	return out
}

func findRootMove(roots []RootMove, m board.Move) int {
	for i, r := range roots {
		if r.Move == m {
			return i
		}
	}
	return -1
}
