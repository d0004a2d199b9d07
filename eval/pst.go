package eval

import "github.com/maren-voss/corechess/board"

// pst holds one figure's piece-square values, indexed white-relative
// (rank 0 = the first rank). Black's contribution is looked up by
// mirroring the rank, matching original_source/eval.h's
// piece_square_values[piece][square]/endgame_piece_square_values split
// by game phase — this repo folds the two tables into one Score pair
// per square instead of keeping them as separate int arrays, since
// Score already carries {MG, EG} everywhere else in this package.
var pst [board.FigureArraySize][64]Score

// Hand-authored tables in the classic shape every textbook/engine PST
// uses (center control for knights/bishops, open files for rooks,
// king safety favoring the back rank in the midgame and the center in
// the endgame). daydreamer's own tables are a flattened 0x88 array with
// the same intent but a different indexing scheme; these are redrawn
// to this repo's 0-63 rank-major indexing rather than transliterated,
// since the 0x88 layout has no meaning here.
var (
	knightPST = [8][8]int32{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	}
	bishopPST = [8][8]int32{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 10, 10, 10, 10, 10, 10, -10},
		{-10, 5, 0, 0, 0, 0, 5, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	}
	rookPST = [8][8]int32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{0, 0, 0, 5, 5, 0, 0, 0},
	}
	queenPST = [8][8]int32{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	}
	pawnPSTmg = [8][8]int32{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	kingPSTmg = [8][8]int32{
		{20, 30, 10, 0, 0, 10, 30, 20},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
	}
	kingPSTeg = [8][8]int32{
		{-50, -30, -30, -30, -30, -30, -30, -50},
		{-30, -30, 0, 0, 0, 0, -30, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -20, -10, 0, 0, -10, -20, -30},
		{-50, -40, -30, -20, -20, -30, -40, -50},
	}
)

func init() {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := board.RankFile(r, f)
			pst[board.Knight][sq] = Score{knightPST[r][f], knightPST[r][f]}
			pst[board.Bishop][sq] = Score{bishopPST[r][f], bishopPST[r][f]}
			pst[board.Rook][sq] = Score{rookPST[r][f], rookPST[r][f]}
			pst[board.Queen][sq] = Score{queenPST[r][f], queenPST[r][f]}
			pst[board.Pawn][sq] = Score{pawnPSTmg[r][f], pawnPSTmg[r][f] / 2}
			pst[board.King][sq] = Score{kingPSTmg[r][f], kingPSTeg[r][f]}
		}
	}
}

// pstScore returns fig's piece-square bonus on sq for side, mirroring
// the rank for Black so both colors share the one White-relative table.
func pstScore(fig board.Figure, side board.Color, sq board.Square) Score {
	if side == board.Black {
		sq = board.RankFile(7-sq.Rank(), sq.File())
	}
	return pst[fig][sq]
}
