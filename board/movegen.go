package board

// Kind selects which classes of moves a generator produces.
type Kind uint

const (
	Quiet    Kind = 1 << iota // non-captures, non-promotions
	Tactical                  // captures and promotions
	Castles
	All = Quiet | Tactical | Castles
)

// GenerateMoves appends to moves every pseudo-legal move of kind for the
// side to move, i.e. moves that are legal ignoring whether they leave
// the mover's own king in check. Callers filter with IsMoveLegal or play
// the move and check IsChecked after DoMove.
func (pos *Position) GenerateMoves(kind Kind, moves []Move) []Move {
	us, them := pos.Us(), pos.Them()
	all := pos.ByColor[White] | pos.ByColor[Black]
	free := ^all
	enemy := pos.ByColor[them]

	var targetMask Bitboard
	if kind&Quiet != 0 {
		targetMask |= free
	}
	if kind&Tactical != 0 {
		targetMask |= enemy
	}

	moves = pos.genPawnMoves(kind, targetMask, moves)
	moves = pos.genFigureMoves(Knight, us, all, targetMask, moves)
	moves = pos.genFigureMoves(Bishop, us, all, targetMask, moves)
	moves = pos.genFigureMoves(Rook, us, all, targetMask, moves)
	moves = pos.genFigureMoves(Queen, us, all, targetMask, moves)
	moves = pos.genKingMoves(targetMask, moves)
	if kind&Castles != 0 {
		moves = pos.genCastleMoves(moves)
	}
	return moves
}

func (pos *Position) genBitboardMoves(pi Piece, from Square, attack Bitboard, moves []Move) []Move {
	for attack != 0 {
		to := attack.Pop()
		capture := pos.Get(to)
		moves = append(moves, MakeMove(Normal, from, to, capture, pi))
	}
	return moves
}

func (pos *Position) genFigureMoves(fig Figure, us Color, all, targetMask Bitboard, moves []Move) []Move {
	pi := ColorFigure(us, fig)
	for bb := pos.ByPiece(us, fig); bb != 0; {
		from := bb.Pop()
		var attack Bitboard
		switch fig {
		case Knight:
			attack = KnightMobility(from)
		case Bishop:
			attack = BishopMobility(from, all)
		case Rook:
			attack = RookMobility(from, all)
		case Queen:
			attack = QueenMobility(from, all)
		}
		moves = pos.genBitboardMoves(pi, from, attack&targetMask, moves)
	}
	return moves
}

func (pos *Position) genKingMoves(targetMask Bitboard, moves []Move) []Move {
	us := pos.Us()
	pi := ColorFigure(us, King)
	bb := pos.ByPiece(us, King)
	if bb == 0 {
		return moves
	}
	from := bb.AsSquare()
	attack := KingMobility(from) & targetMask
	return pos.genBitboardMoves(pi, from, attack, moves)
}

var castleKingEnd = [ColorArraySize]struct{ oo, ooo Square }{
	{}, {SquareG1, SquareC1}, {SquareG8, SquareC8},
}

func (pos *Position) genCastleMoves(moves []Move) []Move {
	us, them := pos.Us(), pos.Them()
	all := pos.ByColor[White] | pos.ByColor[Black]
	ability := pos.CastlingAbility()
	ends := castleKingEnd[us]

	var ooRight, oooRight Castle
	var kingFrom Square
	if us == White {
		ooRight, oooRight, kingFrom = WhiteOO, WhiteOOO, SquareE1
	} else {
		ooRight, oooRight, kingFrom = BlackOO, BlackOOO, SquareE8
	}

	if ability&ooRight != 0 {
		between := kingFrom.Bitboard()<<1 | kingFrom.Bitboard()<<2
		if all&between == 0 && !pos.squaresAttacked(them, kingFrom, kingFrom.Relative(0, 1), kingFrom.Relative(0, 2)) {
			king := ColorFigure(us, King)
			moves = append(moves, MakeMove(Castling, kingFrom, ends.oo, NoPiece, king))
		}
	}
	if ability&oooRight != 0 {
		between := kingFrom.Bitboard()>>1 | kingFrom.Bitboard()>>2 | kingFrom.Bitboard()>>3
		if all&between == 0 && !pos.squaresAttacked(them, kingFrom, kingFrom.Relative(0, -1), kingFrom.Relative(0, -2)) {
			king := ColorFigure(us, King)
			moves = append(moves, MakeMove(Castling, kingFrom, ends.ooo, NoPiece, king))
		}
	}
	return moves
}

func (pos *Position) squaresAttacked(by Color, squares ...Square) bool {
	for _, sq := range squares {
		if pos.IsAttackedBy(sq, by) {
			return true
		}
	}
	return false
}

func (pos *Position) genPawnMoves(kind Kind, targetMask Bitboard, moves []Move) []Move {
	us := pos.Us()
	all := pos.ByColor[White] | pos.ByColor[Black]
	free := ^all
	pawns := pos.ByPiece(us, Pawn)

	var singlePush, doublePush Bitboard
	var lastRank Bitboard
	var backward func(Bitboard) Bitboard
	if us == White {
		singlePush = Forward(White, pawns) & free
		doublePush = Forward(White, singlePush&RankBb(2)) & free
		lastRank = BbRank8
		backward = func(bb Bitboard) Bitboard { return bb >> 8 }
	} else {
		singlePush = Forward(Black, pawns) & free
		doublePush = Forward(Black, singlePush&RankBb(5)) & free
		lastRank = BbRank1
		backward = func(bb Bitboard) Bitboard { return bb << 8 }
	}

	if kind&Quiet != 0 {
		for bb := singlePush &^ lastRank; bb != 0; {
			to := bb.Pop()
			from := backward(to.Bitboard()).AsSquare()
			moves = append(moves, MakeMove(Normal, from, to, NoPiece, ColorFigure(us, Pawn)))
		}
		for bb := doublePush; bb != 0; {
			to := bb.Pop()
			from := backward(backward(to.Bitboard())).AsSquare()
			moves = append(moves, MakeMove(Normal, from, to, NoPiece, ColorFigure(us, Pawn)))
		}
	}

	if kind&Tactical != 0 {
		for bb := singlePush & lastRank; bb != 0; {
			to := bb.Pop()
			from := backward(to.Bitboard()).AsSquare()
			moves = pos.genPromotions(us, from, to, NoPiece, moves)
		}
		moves = pos.genPawnCaptures(us, pawns, targetMask, lastRank, moves)
		moves = pos.genEnpassant(us, pawns, moves)
	}
	return moves
}

func (pos *Position) genPromotions(us Color, from, to Square, capture Piece, moves []Move) []Move {
	for _, fig := range [4]Figure{Queen, Rook, Bishop, Knight} {
		moves = append(moves, MakeMove(Promotion, from, to, capture, ColorFigure(us, fig)))
	}
	return moves
}

func (pos *Position) genPawnCaptures(us Color, pawns, targetMask, lastRank Bitboard, moves []Move) []Move {
	them := us.Opposite()
	enemy := pos.ByColor[them] & targetMask

	// leftAttack/rightAttack hold the destination squares; West/East is
	// applied to the pawn set before shifting forward, so recovering the
	// origin square inverts both operations in the opposite order.
	leftAttack := Forward(us, West(pawns))
	rightAttack := Forward(us, East(pawns))

	for bb := leftAttack & enemy; bb != 0; {
		to := bb.Pop()
		from := Backward(us, East(to.Bitboard())).AsSquare()
		capture := pos.Get(to)
		if to.Bitboard()&lastRank != 0 {
			moves = pos.genPromotions(us, from, to, capture, moves)
		} else {
			moves = append(moves, MakeMove(Normal, from, to, capture, ColorFigure(us, Pawn)))
		}
	}
	for bb := rightAttack & enemy; bb != 0; {
		to := bb.Pop()
		from := Backward(us, West(to.Bitboard())).AsSquare()
		capture := pos.Get(to)
		if to.Bitboard()&lastRank != 0 {
			moves = pos.genPromotions(us, from, to, capture, moves)
		} else {
			moves = append(moves, MakeMove(Normal, from, to, capture, ColorFigure(us, Pawn)))
		}
	}
	return moves
}

func (pos *Position) genEnpassant(us Color, pawns Bitboard, moves []Move) []Move {
	ep := pos.EnpassantSquare()
	if ep == SquareA1 {
		return moves
	}
	them := us.Opposite()
	epBB := ep.Bitboard()
	captured := ColorFigure(them, Pawn)

	attackers := Backward(us, East(epBB)) & pawns
	attackers |= Backward(us, West(epBB)) & pawns
	for bb := attackers; bb != 0; {
		from := bb.Pop()
		moves = append(moves, MakeMove(Enpassant, from, ep, captured, ColorFigure(us, Pawn)))
	}
	return moves
}

// IsPseudoMoveLegal reports whether move could structurally be played
// in pos right now: the moved piece is actually on From and belongs to
// the side to move, and any declared capture actually sits on the
// capture square. It does not check whether the move exposes the
// mover's king — that is IsMoveLegal's job. This is the cheap check
// spec.md §4.1/§4.2 require before trusting a move retrieved from a
// cache (transposition or PV), since cache keys can collide and hand
// back a move that belongs to a completely different position.
func (pos *Position) IsPseudoMoveLegal(move Move) bool {
	if move == NoMove {
		return false
	}
	pi := move.Target()
	if move.MoveType() == Promotion {
		pi = ColorFigure(pos.SideToMove, Pawn)
	}
	if pi.Color() != pos.SideToMove || pos.Get(move.From()) != pi {
		return false
	}
	captSq := move.CaptureSquare()
	if move.Capture() != NoPiece && pos.Get(captSq) != move.Capture() {
		return false
	}
	if move.Capture() == NoPiece && !pos.IsEmpty(move.To()) && move.MoveType() != Castling {
		return false
	}
	return true
}

// IsMoveLegal reports whether playing move keeps the mover's own king
// safe. Callers must first confirm IsPseudoMoveLegal (or that the move
// came from this position's own generators) — DoMove panics on a
// structural mismatch rather than silently doing the wrong thing.
// Pseudo-legal generators may produce moves that expose check; callers
// filter with this (or DoMove+IsChecked, which is equivalent but more
// expensive on average since it mutates the position).
func (pos *Position) IsMoveLegal(move Move) bool {
	us := pos.Us()
	pos.DoMove(move)
	ok := !pos.IsChecked(us)
	pos.UndoMove(move)
	return ok
}

// GenerateLegalMoves appends every fully-legal move for the side to move.
func (pos *Position) GenerateLegalMoves(kind Kind, moves []Move) []Move {
	pseudo := pos.GenerateMoves(kind, nil)
	for _, m := range pseudo {
		if pos.IsMoveLegal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// GenerateEvasions appends every legal move that gets the side to move
// out of check. The position must be in check.
func (pos *Position) GenerateEvasions(moves []Move) []Move {
	return pos.GenerateLegalMoves(Quiet|Tactical, moves)
}

// GenerateQuiescenceMoves appends tactical moves, plus checking quiet
// moves when includeChecks is set. Used by quiescence search, which
// does not want the full quiet move list.
func (pos *Position) GenerateQuiescenceMoves(includeChecks bool, moves []Move) []Move {
	kind := Tactical
	pseudo := pos.GenerateMoves(kind, nil)
	for _, m := range pseudo {
		if pos.IsMoveLegal(m) {
			moves = append(moves, m)
		}
	}
	if !includeChecks {
		return moves
	}
	quiet := pos.GenerateMoves(Quiet, nil)
	them := pos.Them()
	for _, m := range quiet {
		pos.DoMove(m)
		gives := pos.IsChecked(them)
		ok := !pos.IsChecked(pos.Them())
		pos.UndoMove(m)
		if gives && ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsDraw reports whether the position is a draw by the 50-move rule,
// threefold repetition or insufficient material. It does not detect
// stalemate, which the caller discovers when move generation is empty.
func (pos *Position) IsDraw() bool {
	if pos.HalfMoveClock() >= 100 {
		return true
	}
	if pos.HasInsufficientMaterial() {
		return true
	}
	return pos.IsThreeFoldRepetition()
}
