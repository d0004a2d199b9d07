package board

// seeValue assigns each figure a value used only for exchange ordering;
// it has no bearing on the static evaluator's material weights.
var seeValue = [FigureArraySize]int32{
	NoFigure: 0, Pawn: 100, Knight: 325, Bishop: 325, Rook: 500, Queen: 975, King: 20000,
}

// StaticExchangeSign reports whether the exchange started by move is, in
// the end, non-negative for the side making it: a cheap filter used by
// move ordering and quiescence search that avoids computing the exact
// StaticExchangeEval score.
func StaticExchangeSign(pos *Position, m Move) bool {
	if seeValue[m.Capture().Figure()] >= seeValue[m.Piece().Figure()] {
		return true
	}
	return StaticExchangeEval(pos, m) >= 0
}

// StaticExchangeEval runs the "swap" algorithm: it plays out the capture
// sequence on sq assuming both sides always recapture with their least
// valuable attacker, and returns the net material gain for the side
// making m, in centipawns.
func StaticExchangeEval(pos *Position, m Move) int32 {
	// sq is the square the swap happens on: where the moved piece lands,
	// and where every subsequent recapture in the sequence occurs. For en
	// passant this is the empty target square, not the captured pawn's
	// square, which is cleared from occ separately below.
	sq := m.To()

	var gain [32]int32
	depth := 0
	target := m.Piece().Figure()
	gain[0] = seeValue[m.Capture().Figure()]
	if m.MoveType() == Promotion {
		gain[0] += seeValue[m.Promotion().Figure()] - seeValue[Pawn]
		target = m.Promotion().Figure()
	}

	occ := pos.ByColor[White] | pos.ByColor[Black]
	occ &^= m.From().Bitboard()
	if m.MoveType() == Enpassant {
		occ &^= m.CaptureSquare().Bitboard()
	}

	byFigure := pos.ByFigure
	byFigure[m.Piece().Figure()] &^= m.From().Bitboard()

	side := m.SideToMove().Opposite()
	for {
		depth++
		gain[depth] = seeValue[target] - gain[depth-1]
		if max32(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		from, fig, ok := leastValuableAttacker(pos, &byFigure, occ, sq, side)
		if !ok {
			break
		}
		occ &^= from.Bitboard()
		byFigure[fig] &^= from.Bitboard()
		target = fig
		side = side.Opposite()
	}

	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max32(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// leastValuableAttacker finds the cheapest piece of color side attacking
// sq given the (possibly already-reduced) occupancy and per-figure
// bitboards in byFigure. ownColor pieces are located via pos.ByColor
// intersected with byFigure, so pieces already removed during the swap
// don't reappear.
func leastValuableAttacker(pos *Position, byFigure *[FigureArraySize]Bitboard, occ Bitboard, sq Square, side Color) (Square, Figure, bool) {
	own := pos.ByColor[side]

	if pawns := own & byFigure[Pawn]; pawns != 0 {
		var attackers Bitboard
		if side == White {
			attackers = (Backward(White, East(sq.Bitboard())) | Backward(White, West(sq.Bitboard()))) & pawns
		} else {
			attackers = (Backward(Black, East(sq.Bitboard())) | Backward(Black, West(sq.Bitboard()))) & pawns
		}
		if attackers != 0 {
			return attackers.LSB().AsSquare(), Pawn, true
		}
	}
	if knights := own & byFigure[Knight] & BbKnightAttack[sq]; knights != 0 {
		return knights.LSB().AsSquare(), Knight, true
	}
	if bishops := own & byFigure[Bishop] & BishopMobility(sq, occ); bishops != 0 {
		return bishops.LSB().AsSquare(), Bishop, true
	}
	if rooks := own & byFigure[Rook] & RookMobility(sq, occ); rooks != 0 {
		return rooks.LSB().AsSquare(), Rook, true
	}
	if queens := own & byFigure[Queen] & QueenMobility(sq, occ); queens != 0 {
		return queens.LSB().AsSquare(), Queen, true
	}
	if kings := own & byFigure[King] & BbKingAttack[sq]; kings != 0 {
		return kings.LSB().AsSquare(), King, true
	}
	return SquareA1, NoFigure, false
}
