// root_search.go drives one iterative-deepening iteration's root move
// loop, the remaining half of C8 spec.md §4.6 describes: ROOT_GEN
// ordering feeds a loop that full-windows the first MultiPV moves and
// zero-windows the rest (no root-level LMR, see DESIGN.md), researching
// on improvement.
package search

import "github.com/maren-voss/corechess/board"

// rootSearchResult is what one call to rootSearch produces: whether
// the aspiration window failed low/high (so the driver can widen and
// retry), and the best score/move found this pass.
type rootSearchResult struct {
	FailLow, FailHigh bool
	BestScore         Score
	BestMove          board.Move
}

func (ctx *Context) rootSearch(pos *board.Position, roots []RootMove, depth int, alpha, beta Score, multiPV int) rootSearchResult {
	var hashMove board.Move
	if entry, ok := ctx.TT.Get(pos.Zobrist()); ok && entry.Move != board.NoMove &&
		pos.IsPseudoMoveLegal(entry.Move) && pos.IsMoveLegal(entry.Move) {
		hashMove = entry.Move
	}

	order := rootOrder(roots, hashMove, depth, multiPV)

	node := &ctx.Nodes[0]
	node.ClearPV()
	node.ResetKillers()

	result := rootSearchResult{BestScore: alpha}
	improved := false

	for i, m := range order {
		idx := findRootMove(roots, m)
		ctx.currentMoveIndex = i + 1

		ctx.emit(Event{Kind: EventCurrMove, CurrMove: m, CurrMoveNumber: i + 1})

		nodesBefore := ctx.Stats.Nodes
		fullWindow := i < multiPV

		var score Score
		pos.DoMove(m)
		if fullWindow {
			score = -ctx.AlphaBeta(pos, 1, -beta, -alpha, depth-1)
		} else {
			score = -ctx.AlphaBeta(pos, 1, -alpha-1, -alpha, depth-1)
			if score > alpha {
				ctx.resolvingFailHigh = true
				score = -ctx.AlphaBeta(pos, 1, -beta, -alpha, depth-1)
				ctx.resolvingFailHigh = false
			}
		}
		pos.UndoMove(m)

		if ctx.Aborted() {
			return result
		}

		roots[idx].Nodes = ctx.Stats.Nodes - nodesBefore
		roots[idx].Score = score
		roots[idx].MaxDepth = depth
		roots[idx].PV = append(roots[idx].PV[:0], m)
		roots[idx].PV = append(roots[idx].PV, ctx.Nodes[1].PVLine()...)

		if score > result.BestScore {
			// spec.md §9 notes the original root-search source has a
			// duplicated "if (score > alpha)" guard here; collapsed to
			// one check, applying its effects (raising alpha) once.
			if score > alpha {
				improved = true
				alpha = score
			}
			result.BestScore = score
			result.BestMove = m
			node.PV[0] = m
			copy(node.PV[1:], ctx.Nodes[1].PVLine())
			node.pvLen = 1 + ctx.Nodes[1].pvLen
		}

		if alpha >= beta {
			result.FailHigh = true
			return result
		}
	}

	if !improved && result.BestMove == board.NoMove {
		result.FailLow = true
	}
	return result
}
