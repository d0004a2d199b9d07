// Package eval implements static position evaluation: material balance,
// piece-square tables tapered between midgame and endgame, and pawn
// structure scoring. It is the "external collaborator" spec.md §6 calls
// simple_eval/full_eval/material_value; search only ever calls through
// this package's exported functions and never inspects a Position's
// pieces directly for scoring purposes.
package eval

import "github.com/maren-voss/corechess/board"

// Score pairs a midgame and an endgame evaluation, interpolated by game
// phase. Grounded on original_source/eval.h's score_t{midgame, endgame},
// carried over unchanged because it is the cleanest way to express a
// tapered evaluation in Go: a small value type added and subtracted as a
// unit, then collapsed to a single centipawn number at the end.
type Score struct {
	MG, EG int32
}

func (s Score) Add(o Score) Score { return Score{s.MG + o.MG, s.EG + o.EG} }
func (s Score) Sub(o Score) Score { return Score{s.MG - o.MG, s.EG - o.EG} }
func (s Score) Neg() Score        { return Score{-s.MG, -s.EG} }

// PawnValue, KnightValue, ... are the material constants from
// original_source/eval.h's PAWN_VAL/PAWN_VAL_ENDGAME family (the
// "#else" branch, i.e. the engine's tuned values rather than the
// UFO_EVAL debug branch). board.StaticExchangeEval uses its own,
// independent seeValue table for exchange ordering (spec.md's C5
// scoring table only needs victim/attacker comparison, not absolute
// centipawn accuracy), so the two tables are allowed to diverge exactly
// as the original's SEE-adjacent code and eval.h do.
var (
	PawnValue   = Score{100, 130}
	KnightValue = Score{325, 335}
	BishopValue = Score{325, 335}
	RookValue   = Score{500, 505}
	QueenValue  = Score{975, 980}
	KingValue   = Score{20000, 20000}
)

// PieceValue maps a figure to its material Score, indexed like
// board.Figure. Used both by Full/Simple and exposed for search's
// futility-pruning "captured_value" lookups (spec.md §4.4 step 12).
var PieceValue = [board.FigureArraySize]Score{
	board.NoFigure: {},
	board.Pawn:     PawnValue,
	board.Knight:   KnightValue,
	board.Bishop:   BishopValue,
	board.Rook:     RookValue,
	board.Queen:    QueenValue,
	board.King:     KingValue,
}

// PieceValueMG returns the pure midgame centipawn value of a figure, the
// form spec.md's C5 move-ordering table and C7's futility margin want
// (a plain int, not a tapered pair).
func PieceValueMG(fig board.Figure) int32 { return PieceValue[fig].MG }

// phaseWeight gives each non-pawn figure its contribution to the game
// phase counter, following the standard "24 at the start, 0 at the bare
// endgame" tapering scale used by every tapered-eval engine in the
// retrieval pack (4 knights/bishops at 1 each, 4 rooks at 2 each, 2
// queens at 4 each == 24 at the start).
var phaseWeight = [board.FigureArraySize]int32{
	board.Knight: 1, board.Bishop: 1, board.Rook: 2, board.Queen: 4,
}

const totalPhase = 24

// gamePhase returns a value in [0, 256]: 0 at the full-material start,
// 256 once all non-pawn material is off the board. Used to interpolate
// between Score.MG and Score.EG.
func gamePhase(pos *board.Position) int32 {
	phase := int32(totalPhase)
	for fig := board.Knight; fig <= board.Queen; fig++ {
		phase -= int32(pos.ByFigure[fig].Popcnt()) * phaseWeight[fig]
	}
	if phase < 0 {
		phase = 0
	}
	return phase * 256 / totalPhase
}

func taper(s Score, phase int32) int32 {
	return (s.MG*(256-phase) + s.EG*phase) / 256
}

// Simple returns a fast, material-and-PST-only evaluation, side-relative
// to pos.Us(). The search package does not call it: its own simpleEval
// computes the same value from MaterialAndPST.
func Simple(pos *board.Position) int32 {
	return evaluate(pos, false)
}

// Full returns the complete evaluation including pawn structure,
// side-relative to pos.Us(), computing PawnStructure directly with no
// cache. The search package does not call it: its fullEval adds
// search.PawnTable's cached pawn term to MaterialAndPST instead.
func Full(pos *board.Position) int32 {
	total := MaterialAndPST(pos) + PawnStructure(pos)
	if pos.Us() == board.Black {
		total = -total
	}
	return total
}

// MaterialAndPST returns the tapered material-plus-piece-square score,
// White-relative (not yet flipped for the side to move) and without the
// pawn-structure term. The search package's fullEval calls this directly and
// adds its own cached PawnTable.Score in place of PawnStructure, so the
// caching discipline spec.md §3 assigns to the core lives in search,
// not here.
func MaterialAndPST(pos *board.Position) int32 {
	var score Score
	for _, side := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		if side == board.Black {
			sign = -1
		}
		for fig := board.Pawn; fig <= board.King; fig++ {
			bb := pos.ByPiece(side, fig)
			count := int32(bb.Popcnt())
			score = score.Add(Score{PieceValue[fig].MG * count * sign, PieceValue[fig].EG * count * sign})
			for b := bb; b != 0; {
				sq := b.Pop()
				score = score.Add(pstScore(fig, side, sq).Scale(sign))
			}
		}
	}
	phase := gamePhase(pos)
	return taper(score, phase)
}

func evaluate(pos *board.Position, withPawns bool) int32 {
	total := MaterialAndPST(pos)
	if withPawns {
		total += PawnStructure(pos)
	}
	if pos.Us() == board.Black {
		total = -total
	}
	return total
}

// Scale multiplies both halves of a Score by an integer sign, used above
// to fold white/black contributions into one running total without a
// separate side-relative accumulator pair.
func (s Score) Scale(sign int32) Score { return Score{s.MG * sign, s.EG * sign} }
