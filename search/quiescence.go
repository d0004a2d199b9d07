// quiescence.go implements C6: the capture-driven tactical stabilizer
// run at depth <= 0. Same skeleton as AlphaBeta (alphabeta.go) with the
// pruning machinery (null-move, razoring, IID, LMR, futility) stripped,
// per spec.md §4.5.
package search

import "github.com/maren-voss/corechess/board"

// quiescenceFutilityMargin is qfutility_margin from spec.md §4.5's
// per-move futility check, a single flat margin since quiescence never
// varies it by depth the way alpha-beta's futilityMargin table does.
const quiescenceFutilityMargin = 50

func (ctx *Context) quiescence(pos *board.Position, ply int, alpha, beta Score, depth int) Score {
	if ctx.Aborted() {
		return 0
	}
	node := &ctx.Nodes[ply]
	node.ClearPV()

	if alpha > MateIn(ply) {
		return alpha
	}
	if ply >= MaxSearchDepth-1 {
		return fullEval(ctx, pos)
	}

	ctx.openNode(ply)

	inCheck := pos.IsChecked(pos.Us())
	evalScore := fullEval(ctx, pos)

	if !inCheck {
		if evalScore > alpha {
			alpha = evalScore
		}
		if alpha >= beta {
			return alpha
		}
	}

	var gen Generation
	if !inCheck {
		if depth >= 0 && evalScore+150 >= alpha {
			gen = QCheckGen
		} else {
			gen = QGen
		}
	} else {
		gen = EscapeGen
	}

	sel := NewSelector(pos, gen, board.NoMove, node, nil, &ctx.History, nil)

	fullWindow := beta-alpha > 1
	numLegal := 0
	for {
		m, ok := sel.Next()
		if !ok {
			break
		}
		numLegal++

		if !fullWindow && !inCheck && pos.MinorsAndMajors(pos.Us()) >= 3 && !m.IsQueenPromotion() {
			captured := pieceValueMG(m.Capture().Figure())
			if evalScore+int32(captured)+quiescenceFutilityMargin < alpha {
				continue
			}
		}

		ctx.Stats.QNodes++
		pos.DoMove(m)
		score := -ctx.quiescence(pos, ply+1, -beta, -alpha, depth-1)
		pos.UndoMove(m)

		if ctx.Aborted() {
			return 0
		}

		if score > alpha {
			alpha = score
			node.UpdatePV(m, &ctx.Nodes[ply+1])
			if alpha >= beta {
				return beta
			}
		}
	}

	if numLegal == 0 && inCheck {
		return MatedIn(ply)
	}
	return alpha
}
