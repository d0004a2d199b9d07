// driver.go implements C8: the iterative-deepening root loop —
// aspiration windows, the "obvious move" early-exit, time control and
// event emission. Grounded in shape on the teacher's time_control.go
// (time-control struct carried as part of Limits on Context) and on
// spec.md §4.6's algorithm directly, since the teacher has no
// iterative-deepening driver of its own to ground this file on beyond
// its timing primitives.
package search

import (
	"github.com/maren-voss/corechess/board"
	"github.com/maren-voss/corechess/logging"
)

// Result is what IterativeDeepen returns: the move to play, its score,
// and the principal variation that justifies it.
type Result struct {
	BestMove   board.Move
	PonderMove board.Move
	Score      Score
	IsMate     bool
	PV         []board.Move
	Depth      int
}

const minDepthForObviousMove = 6
const minDepthForAspiration = 5
const aspirationDelta = 40

// IterativeDeepen runs the root loop from depth 2 up to limits.Depth
// (or MaxSearchDepth-1), returning the best move found in the last
// strictly completed iteration (spec.md §5: "The driver discards
// results after an abort except for the best move found in a strictly
// completed iteration").
func (ctx *Context) IterativeDeepen(pos *board.Position, limits Limits) Result {
	ctx.Reset(limits)

	depthLimit := limits.Depth
	if depthLimit <= 0 || depthLimit > MaxSearchDepth-1 {
		depthLimit = MaxSearchDepth - 1
	}
	multiPV := limits.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	roots := ctx.buildRootMoves(pos)
	if len(roots) == 0 {
		ctx.emit(Event{Kind: EventBestMove, BestMove: board.NoMove})
		return Result{BestMove: board.NoMove}
	}

	obvious := findObviousMove(roots)
	var last Result
	last.BestMove = roots[0].Move
	last.Score = roots[0].QSearchScore

	for depth := 2; depth <= depthLimit; depth++ {
		if ctx.Aborted() {
			break
		}
		ctx.emit(Event{Kind: EventDepth, Depth: depth})

		alpha, beta := Score(-MateValue), Score(MateValue)
		useAspiration := depth > minDepthForAspiration && multiPV == 1
		if useAspiration {
			alpha = last.Score - aspirationDelta
			beta = last.Score + aspirationDelta
		}

		var result rootSearchResult
		for {
			result = ctx.rootSearch(pos, roots, depth, alpha, beta, multiPV)
			if ctx.Aborted() {
				break
			}
			if result.FailLow {
				logging.Search().Debugf("depth %d aspiration fail-low on [%d,%d], re-searching full window", depth, alpha, beta)
				alpha = MatedIn(-1)
				continue
			}
			if result.FailHigh {
				logging.Search().Debugf("depth %d aspiration fail-high on [%d,%d], re-searching full window", depth, alpha, beta)
				beta = MateIn(-1)
				continue
			}
			break
		}
		if ctx.Aborted() {
			break
		}

		best := roots[0]
		if i := findRootMove(roots, result.BestMove); i >= 0 {
			best = roots[i]
		} else {
			for _, r := range roots {
				if r.MaxDepth == depth && r.Score > best.Score {
					best = r
				}
			}
		}

		pv := best.PV
		hashes := pvHashes(pos, pv)
		bound := Exact
		ctx.TT.PutLine(hashes, pv, depth, best.Score, bound)

		if obvious >= 0 && len(pv) > 0 && pv[0] != roots[obvious].Move {
			obvious = -1
		}

		last = Result{
			BestMove: best.Move,
			Score:    best.Score,
			IsMate:   IsMateScore(best.Score),
			PV:       append([]board.Move(nil), pv...),
			Depth:    depth,
		}
		if len(pv) > 1 {
			last.PonderMove = pv[1]
		}

		ctx.emitPVLine(last, multiPV)
		logging.Search().Infof("depth %d: score %d, best %s, nodes %s, pv %v",
			depth, last.Score, last.BestMove.UCI(), logging.Out.Sprintf("%d", ctx.Stats.Nodes), last.PV)

		if !ctx.shouldDeepen(depth, obvious, limits) {
			break
		}
	}

	ctx.emit(Event{Kind: EventBestMove, BestMove: last.BestMove, PonderMove: last.PonderMove})
	return last
}

// pvHashes replays pv on pos to recover the Zobrist hash at each step,
// needed by Transposition.PutLine, then restores pos exactly.
func pvHashes(pos *board.Position, pv []board.Move) []uint64 {
	hashes := make([]uint64, len(pv))
	hashes[0] = pos.Zobrist()
	played := 0
	for i := 1; i < len(pv); i++ {
		if !pos.IsPseudoMoveLegal(pv[i-1]) {
			break
		}
		pos.DoMove(pv[i-1])
		played++
		hashes[i] = pos.Zobrist()
	}
	for ; played > 0; played-- {
		pos.UndoMove(pv[played-1])
	}
	return hashes
}

// shouldDeepen decides whether to start the next iteration (spec.md
// §4.6's should_deepen): an obvious move found at depth >= 6 with no
// depth/node limit imposed lets the driver return early; with MoveTime
// set it stops once MoveTime has elapsed; otherwise it continues (the
// depth-limit loop bound handles the other stopping condition).
func (ctx *Context) shouldDeepen(depth, obvious int, limits Limits) bool {
	if obvious >= 0 && depth >= minDepthForObviousMove && limits.Depth == 0 && limits.Nodes == 0 && !limits.Infinite {
		return false
	}
	if limits.MoveTime > 0 {
		return ctx.Clock.Elapsed() < limits.MoveTime
	}
	return true
}

func (ctx *Context) emitPVLine(r Result, multiPVIndex int) {
	ctx.emit(Event{
		Kind:         EventPV,
		Depth:        r.Depth,
		SelDepth:     ctx.Stats.SelDepth,
		MultiPVIndex: multiPVIndex,
		Score:        r.Score,
		IsMate:       r.IsMate,
		Nodes:        ctx.Stats.Nodes,
		ElapsedMS:    ctx.Clock.Elapsed().Milliseconds(),
		PV:           r.PV,
	})
}
