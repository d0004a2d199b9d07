package eval

import "github.com/maren-voss/corechess/board"

// passedBonus[rank] is the midgame/endgame bonus for a passed pawn on a
// given rank counted from the pawn's own side, rank 0 being its first
// rank (so a pawn on its second rank reads index 1). Ported from original_source/pawn.c's
// passed_bonus[2][8] table, which is itself daydreamer's grounding
// source for spec.md §3's "Pawn table entry ... passed_squares[side][]".
var passedBonus = [8]Score{
	{0, 0}, {10, 20}, {10, 40}, {20, 60}, {30, 80}, {60, 120}, {90, 170}, {0, 0},
}

var doubledPenalty = [8]Score{
	{5, 20}, {10, 20}, {15, 20}, {20, 20}, {20, 20}, {15, 20}, {10, 20}, {5, 20},
}

var isolationPenalty = [8]Score{
	{10, 20}, {10, 20}, {10, 20}, {15, 20}, {15, 20}, {10, 20}, {10, 20}, {10, 20},
}

// passedMask[color][sq] covers sq's file and the two adjacent files on
// every rank ahead of sq (from color's side); it is the bitmask test a
// passed-pawn check reduces to: sq is passed iff none of the enemy's
// pawns occupy these squares. Built once at package init
// from board.FileBb/board.RankBb, replacing daydreamer's per-square
// square-by-square walk (pawn.c's "for (to = sq + push; ...)" loop) with
// a single bitboard AND, the way every bitboard engine in the retrieval
// pack (board's own sibling packages) expresses the same check.
var passedMask [board.ColorArraySize][board.SquareArraySize]board.Bitboard

func init() {
	for sq := board.SquareMinValue; sq <= board.SquareMaxValue; sq++ {
		file := sq.File()
		var files board.Bitboard
		for _, f := range []int{file - 1, file, file + 1} {
			if f >= 0 && f <= 7 {
				files |= board.FileBb(f)
			}
		}
		aheadWhite := files &^ board.Bitboard(1<<(uint(sq.Rank()+1)*8)-1)
		passedMask[board.White][sq] = aheadWhite
		belowMask := board.Bitboard(1<<(uint(sq.Rank())*8) - 1)
		passedMask[board.Black][sq] = files & belowMask
	}
}

// PawnStructure scores pos's pawn skeleton (passed/doubled/isolated
// pawns), White-relative (positive favours White, not flipped for the
// side to move). This is the uncached computation;
// search.PawnTable (the spec's C3) wraps this behind a pawn-hash-keyed
// cache so it is only paid for on a miss.
func PawnStructure(pos *board.Position) int32 {
	var total Score
	for _, side := range [2]board.Color{board.White, board.Black} {
		sign := int32(1)
		if side == board.Black {
			sign = -1
		}
		own := pos.ByPiece(side, board.Pawn)
		enemy := pos.ByPiece(side.Opposite(), board.Pawn)
		for bb := own; bb != 0; {
			sq := bb.Pop()
			file := sq.File()
			rank := relativeRank(side, sq)

			if passedMask[side][sq]&enemy == 0 {
				total = total.Add(passedBonus[rank].Scale(sign))
			}
			if own&board.FileBb(file)&^sq.Bitboard() != 0 {
				total = total.Sub(doubledPenalty[file].Scale(sign))
			}
			if own&adjacentFiles(file) == 0 {
				total = total.Sub(isolationPenalty[file].Scale(sign))
			}
		}
	}
	phase := gamePhase(pos)
	return taper(total, phase)
}

func relativeRank(side board.Color, sq board.Square) int {
	if side == board.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

func adjacentFiles(file int) board.Bitboard {
	var bb board.Bitboard
	if file > 0 {
		bb |= board.FileBb(file - 1)
	}
	if file < 7 {
		bb |= board.FileBb(file + 1)
	}
	return bb
}

// PassedSquares exposes side's passed-pawn bitboard directly, matching
// spec.md §3's pawn table entry shape
// (passed_squares[side][]/num_passed[side]): search.PawnTable stores it,
// and its population count as the passed-pawn number, in each entry.
func PassedSquares(pos *board.Position, side board.Color) board.Bitboard {
	own := pos.ByPiece(side, board.Pawn)
	enemy := pos.ByPiece(side.Opposite(), board.Pawn)
	var passed board.Bitboard
	for bb := own; bb != 0; {
		sq := bb.Pop()
		if passedMask[side][sq]&enemy == 0 {
			passed |= sq.Bitboard()
		}
	}
	return passed
}
