package board

import (
	"fmt"
	"strconv"
	"strings"
)

// state is the part of a position that do_move cannot recompute from the
// board alone and therefore must be saved for undo_move. The stack holds
// one entry for the root plus one per ply played, so its length is the
// position's ply count plus one.
type state struct {
	castle          Castle
	enpassant       Square
	halfMoveClock   int
	zobrist         uint64
	pawnZobrist     uint64
	move            Move // move that produced this state, NoMove for the root
}

// Position is a mutable chess board. It is externally owned: callers
// mutate it only through DoMove/UndoMove, which maintain the Zobrist
// hashes, piece counts and the 50-move clock incrementally.
type Position struct {
	ByFigure [FigureArraySize]Bitboard
	ByColor  [ColorArraySize]Bitboard

	SideToMove     Color
	FullMoveNumber int

	states []state
	curr   *state

	// moveMask is not read by any move generator; violent-only
	// generation is selected by the generators' kind argument instead.
	moveMask Bitboard
}

var lostCastleRights [SquareArraySize]Castle

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOOO | WhiteOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOOO | BlackOO
	lostCastleRights[SquareH8] = BlackOO
}

// NewPosition returns an empty position with no side to move set.
func NewPosition() *Position {
	pos := &Position{states: make([]state, 1, 64)}
	pos.curr = &pos.states[0]
	pos.curr.enpassant = SquareA1
	return pos
}

// Ply returns the number of moves played since the position was set up.
func (pos *Position) Ply() int { return len(pos.states) - 1 }

// Us returns the side to move.
func (pos *Position) Us() Color { return pos.SideToMove }

// Them returns the side not to move.
func (pos *Position) Them() Color { return pos.SideToMove.Opposite() }

// Zobrist returns the full-position hash.
func (pos *Position) Zobrist() uint64 { return pos.curr.zobrist }

// PawnZobrist returns the pawns-only hash, used by the pawn-structure
// cache. It only changes when a pawn moves, is captured, or promotes.
func (pos *Position) PawnZobrist() uint64 { return pos.curr.pawnZobrist }

// CastlingAbility returns the remaining castling rights.
func (pos *Position) CastlingAbility() Castle { return pos.curr.castle }

// EnpassantSquare returns the en-passant target square, or SquareA1 if
// none (A1 can never legally be an en-passant square).
func (pos *Position) EnpassantSquare() Square { return pos.curr.enpassant }

// HalfMoveClock returns the number of plies since the last capture or
// pawn move, used for the 50-move rule.
func (pos *Position) HalfMoveClock() int { return pos.curr.halfMoveClock }

// LastMove returns the move that produced the current position, or
// NoMove at the root.
func (pos *Position) LastMove() Move { return pos.curr.move }

func (pos *Position) setCastlingAbility(c Castle) {
	pos.curr.zobrist ^= zobristCastle[pos.curr.castle]
	pos.curr.castle = c
	pos.curr.zobrist ^= zobristCastle[pos.curr.castle]
}

func (pos *Position) setSideToMove(c Color) {
	pos.curr.zobrist ^= zobristColor[pos.SideToMove]
	pos.SideToMove = c
	pos.curr.zobrist ^= zobristColor[pos.SideToMove]
}

func (pos *Position) setEnpassantSquare(sq Square) {
	pos.curr.zobrist ^= zobristEnpassant[pos.curr.enpassant]
	pos.curr.enpassant = sq
	pos.curr.zobrist ^= zobristEnpassant[pos.curr.enpassant]
}

// ByPiece is a shortcut for ByColor[col]&ByFigure[fig].
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// Put places a piece on sq, maintaining the Zobrist hashes. Does not
// validate that sq was empty.
func (pos *Position) Put(sq Square, pi Piece) {
	pos.curr.zobrist ^= zobristPiece[pi][sq]
	if pi.Figure() == Pawn {
		pos.curr.pawnZobrist ^= zobristPawnPiece[pi][sq]
	}
	bb := sq.Bitboard()
	pos.ByColor[pi.Color()] |= bb
	pos.ByFigure[pi.Figure()] |= bb
}

// Remove removes a piece from sq. Does not validate that pi is present.
func (pos *Position) Remove(sq Square, pi Piece) {
	if pi == NoPiece {
		return
	}
	pos.curr.zobrist ^= zobristPiece[pi][sq]
	if pi.Figure() == Pawn {
		pos.curr.pawnZobrist ^= zobristPawnPiece[pi][sq]
	}
	bb := ^sq.Bitboard()
	pos.ByColor[pi.Color()] &= bb
	pos.ByFigure[pi.Figure()] &= bb
}

// IsEmpty returns true if sq has no piece on it.
func (pos *Position) IsEmpty(sq Square) bool {
	return (pos.ByColor[White]|pos.ByColor[Black])>>sq&1 == 0
}

func (pos *Position) colorAt(sq Square) Color {
	return White*Color(pos.ByColor[White]>>sq&1) + Black*Color(pos.ByColor[Black]>>sq&1)
}

func (pos *Position) figureAt(sq Square) Figure {
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig]&sq.Bitboard() != 0 {
			return fig
		}
	}
	return NoFigure
}

// Get returns the piece occupying sq, or NoPiece.
func (pos *Position) Get(sq Square) Piece {
	col := pos.colorAt(sq)
	if col == NoColor {
		return NoPiece
	}
	return ColorFigure(col, pos.figureAt(sq))
}

// NumPieces returns the total number of pieces of figure fig, both sides.
func (pos *Position) NumPieces(fig Figure) int { return pos.ByFigure[fig].Popcnt() }

// HasNonPawns reports whether side has any piece other than pawns and
// king, used to gate null-move pruning.
func (pos *Position) HasNonPawns(side Color) bool {
	return pos.ByColor[side]&^(pos.ByFigure[Pawn]|pos.ByFigure[King]) != 0
}

// MinorsAndMajors counts side's knights, bishops, rooks and queens.
func (pos *Position) MinorsAndMajors(side Color) int {
	return (pos.ByColor[side] &^ (pos.ByFigure[Pawn] | pos.ByFigure[King])).Popcnt()
}

// IsChecked returns true if side's king is attacked.
func (pos *Position) IsChecked(side Color) bool {
	kingBB := pos.ByPiece(side, King)
	if kingBB == 0 {
		return false
	}
	return pos.IsAttackedBy(kingBB.AsSquare(), side.Opposite())
}

// IsAttackedBy returns true if sq is attacked by any piece of color co.
func (pos *Position) IsAttackedBy(sq Square, co Color) bool {
	enemy := pos.ByColor[co]

	pawns := pos.ByPiece(co, Pawn)
	if pawns != 0 {
		pawnsLeft := (BbPawnLeftAttack & pawns) >> 1
		pawnsRight := (BbPawnRightAttack & pawns) << 1
		bb := sq.Bitboard()
		if co == White {
			bb >>= 8
		} else {
			bb <<= 8
		}
		if bb&(pawnsLeft|pawnsRight) != 0 {
			return true
		}
	}

	if BbKnightAttack[sq]&enemy&pos.ByFigure[Knight] != 0 {
		return true
	}

	// Quick reject: can any super-piece (B/R/Q/K) reach sq on an empty board?
	if BbSuperAttack[sq]&(enemy&^pos.ByFigure[Pawn]) == 0 {
		return false
	}

	if BbKingAttack[sq]&enemy&pos.ByFigure[King] != 0 {
		return true
	}

	all := pos.ByColor[White] | pos.ByColor[Black]
	bishops := enemy & (pos.ByFigure[Bishop] | pos.ByFigure[Queen])
	if bishops != 0 && bishops&BishopMobility(sq, all) != 0 {
		return true
	}
	rooks := enemy & (pos.ByFigure[Rook] | pos.ByFigure[Queen])
	if rooks != 0 && rooks&RookMobility(sq, all) != 0 {
		return true
	}
	return false
}

// GetAttacker returns the figure of some piece of color them attacking sq,
// or NoFigure. Used by static exchange evaluation.
func (pos *Position) GetAttacker(sq Square, them Color) Figure {
	enemy := pos.ByColor[them]
	all := pos.ByColor[White] | pos.ByColor[Black]

	pawns := pos.ByPiece(them, Pawn)
	if pawns != 0 {
		bb := sq.Bitboard()
		pawnsLeft := (BbPawnLeftAttack & pawns) >> 1
		pawnsRight := (BbPawnRightAttack & pawns) << 1
		if them == White {
			bb >>= 8
		} else {
			bb <<= 8
		}
		if bb&(pawnsLeft|pawnsRight) != 0 {
			return Pawn
		}
	}
	if BbKnightAttack[sq]&enemy&pos.ByFigure[Knight] != 0 {
		return Knight
	}
	if BbSuperAttack[sq]&(enemy&^pos.ByFigure[Pawn]) == 0 {
		return NoFigure
	}
	if bishops := enemy & pos.ByFigure[Bishop]; bishops != 0 && bishops&BishopMobility(sq, all) != 0 {
		return Bishop
	}
	if rooks := enemy & pos.ByFigure[Rook]; rooks != 0 && rooks&RookMobility(sq, all) != 0 {
		return Rook
	}
	if queens := enemy & pos.ByFigure[Queen]; queens != 0 && queens&QueenMobility(sq, all) != 0 {
		return Queen
	}
	if BbKingAttack[sq]&enemy&pos.ByFigure[King] != 0 {
		return King
	}
	return NoFigure
}

// HasInsufficientMaterial returns true if neither side has enough force
// to deliver checkmate (K vs K, K+N vs K, K+B vs K with same-color
// bishops only).
func (pos *Position) HasInsufficientMaterial() bool {
	if pos.ByFigure[Pawn] != 0 || pos.ByFigure[Rook] != 0 || pos.ByFigure[Queen] != 0 {
		return false
	}
	minors := pos.ByFigure[Knight] | pos.ByFigure[Bishop]
	if minors.Popcnt() <= 1 {
		return true
	}
	if pos.ByFigure[Knight] == 0 && minors.Popcnt() >= 2 {
		// Only bishops left: draw only if all on the same color complex.
		return minors&BbWhiteSquares == minors || minors&BbBlackSquares == minors
	}
	return false
}

// IsThreeFoldRepetition walks the state stack backwards in steps of two
// plies (same side to move) up to the last irreversible move and reports
// whether the current position has occurred twice before.
func (pos *Position) IsThreeFoldRepetition() bool {
	key := pos.Zobrist()
	count := 1
	limit := len(pos.states) - 1 - pos.curr.halfMoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(pos.states) - 3; i >= limit; i -= 2 {
		if pos.states[i].zobrist == key {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// pushState copies the current state onto the stack so DoMove can mutate
// the copy in place, leaving the original reachable for UndoMove.
func (pos *Position) pushState(move Move) {
	pos.states = append(pos.states, *pos.curr)
	pos.curr = &pos.states[len(pos.states)-1]
	pos.curr.move = move
}

func (pos *Position) popState() {
	pos.states = pos.states[:len(pos.states)-1]
	pos.curr = &pos.states[len(pos.states)-1]
}

// DoMove plays move, which must be (pseudo-)legal in the current
// position, i.e. moves the correct piece color and captures the right
// target. Panics on a structural mismatch; these never happen for moves
// produced by this package's own generators.
func (pos *Position) DoMove(move Move) {
	pos.pushState(move)

	pi := move.Target()
	if move.MoveType() == Promotion {
		pi = ColorFigure(pos.SideToMove, Pawn)
	}
	if pi.Color() != pos.SideToMove {
		panic(fmt.Errorf("board: DoMove %v: expected %v piece at %v, got %v", move, pos.SideToMove, move.From(), pi))
	}

	pos.setCastlingAbility(pos.curr.castle &^ lostCastleRights[move.From()] &^ lostCastleRights[move.To()])

	if move.MoveType() == Castling {
		rook, rookStart, rookEnd := CastlingRook(move.To())
		pos.Remove(rookStart, rook)
		pos.Put(rookEnd, rook)
	}

	if pi.Figure() == Pawn && move.From().Bitboard()&BbPawnStartRank != 0 && move.To().Bitboard()&BbPawnDoubleRank != 0 {
		pos.setEnpassantSquare((move.From() + move.To()) / 2)
	} else {
		pos.setEnpassantSquare(SquareA1)
	}

	captSq := move.CaptureSquare()
	if move.Capture() != NoPiece && pos.IsEmpty(captSq) {
		panic(fmt.Errorf("board: DoMove %v: expected capture %v at %v, found empty", move, move.Capture(), captSq))
	}

	pos.Remove(move.From(), pi)
	pos.Remove(captSq, move.Capture())
	pos.Put(move.To(), move.Target())
	pos.setSideToMove(pos.SideToMove.Opposite())

	if pi.Figure() == Pawn || move.Capture() != NoPiece {
		pos.curr.halfMoveClock = 0
	} else {
		pos.curr.halfMoveClock++
	}
	if pos.SideToMove == White {
		pos.FullMoveNumber++
	}
}

// UndoMove reverses the most recent DoMove. move must be that same move.
func (pos *Position) UndoMove(move Move) {
	pos.setSideToMove(pos.SideToMove.Opposite())

	pi := move.Target()
	if move.MoveType() == Promotion {
		pi = ColorFigure(pos.SideToMove, Pawn)
	}
	captSq := move.CaptureSquare()

	pos.Put(move.From(), pi)
	if move.MoveType() == Promotion {
		pos.Remove(move.To(), move.Target())
	} else {
		pos.Remove(move.To(), pi)
	}
	pos.Put(captSq, move.Capture())

	if move.MoveType() == Castling {
		rook, rookStart, rookEnd := CastlingRook(move.To())
		pos.Put(rookStart, rook)
		pos.Remove(rookEnd, rook)
	}

	if pos.SideToMove == Black {
		pos.FullMoveNumber--
	}
	pos.popState()
}

// DoNullMove passes the turn without moving a piece, clearing the
// en-passant square. Used by null-move pruning.
func (pos *Position) DoNullMove() {
	pos.pushState(NoMove)
	pos.setEnpassantSquare(SquareA1)
	pos.setSideToMove(pos.SideToMove.Opposite())
	pos.curr.halfMoveClock++
}

// UndoNullMove reverses DoNullMove.
func (pos *Position) UndoNullMove() {
	pos.setSideToMove(pos.SideToMove.Opposite())
	pos.popState()
}

// String renders the board as 8 ranks of piece symbols, for
// debugging.
func (pos *Position) String() string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			sq := RankFile(r, f)
			if sq == pos.EnpassantSquare() {
				b.WriteByte(',')
			} else {
				b.WriteString(pieceToSymbol[pos.Get(sq)])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FEN renders the position in Forsyth-Edwards Notation.
func (pos *Position) FEN() string {
	var ranks []string
	for r := 7; r >= 0; r-- {
		space := 0
		row := ""
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				space++
				continue
			}
			if space != 0 {
				row += strconv.Itoa(space)
				space = 0
			}
			row += pieceToSymbol[pi]
		}
		if space != 0 {
			row += strconv.Itoa(space)
		}
		ranks = append(ranks, row)
	}

	stm := "w"
	if pos.SideToMove == Black {
		stm = "b"
	}
	ep := "-"
	if pos.EnpassantSquare() != SquareA1 {
		ep = pos.EnpassantSquare().String()
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		strings.Join(ranks, "/"), stm, pos.CastlingAbility().String(), ep,
		pos.HalfMoveClock(), pos.FullMoveNumber)
}
