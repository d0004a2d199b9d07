package board

// MoveType distinguishes the handful of moves that need special handling
// in do/undo and in move generation.
type MoveType uint8

const (
	NoMoveType MoveType = iota
	Normal
	Promotion
	Castling
	Enpassant
)

// Move is a compact encoding of a chess move: source and destination
// squares, the figure moved, the figure captured (if any) and, for
// promotions, the resulting figure. NoMove is the zero value and denotes
// "no move".
//
// Layout (low to high bits): From(6) To(6) MoveType(3) Capture(5) Target(5).
type Move uint32

const NoMove Move = 0

const (
	moveFromShift  = 0
	moveToShift    = 6
	moveTypeShift  = 12
	moveCaptShift  = 15
	moveTargShift  = 20
	moveFromMask   = 0x3f
	moveToMask     = 0x3f
	moveTypeMask   = 0x7
	movePieceMask  = 0x1f
)

// MakeMove builds a Move. target is the piece that ends up on the To
// square after the move completes (for promotions this is the promoted
// piece, not the pawn).
func MakeMove(mt MoveType, from, to Square, capture, target Piece) Move {
	return Move(from)<<moveFromShift |
		Move(to)<<moveToShift |
		Move(mt)<<moveTypeShift |
		Move(capture)<<moveCaptShift |
		Move(target)<<moveTargShift
}

func (m Move) From() Square     { return Square(m >> moveFromShift & moveFromMask) }
func (m Move) To() Square       { return Square(m >> moveToShift & moveToMask) }
func (m Move) MoveType() MoveType { return MoveType(m >> moveTypeShift & moveTypeMask) }
func (m Move) Capture() Piece   { return Piece(m >> moveCaptShift & movePieceMask) }
func (m Move) Target() Piece    { return Piece(m >> moveTargShift & movePieceMask) }

// SideToMove returns the color of the player making the move.
func (m Move) SideToMove() Color { return m.Target().Color() }

// CaptureSquare returns the square of the captured piece. Undefined if
// the move is not a capture.
func (m Move) CaptureSquare() Square {
	if m.MoveType() == Enpassant {
		return m.From()&0x38 + m.To()&0x7
	}
	return m.To()
}

// Piece returns the piece that moved, i.e. the pawn for a promotion.
func (m Move) Piece() Piece {
	if m.MoveType() != Promotion {
		return m.Target()
	}
	return ColorFigure(m.Target().Color(), Pawn)
}

// Promotion returns the promoted-to piece, or NoPiece if this isn't a
// promotion.
func (m Move) Promotion() Piece {
	if m.MoveType() != Promotion {
		return NoPiece
	}
	return m.Target()
}

// IsViolent reports whether the move can change the position's material
// balance significantly: captures and promotions.
func (m Move) IsViolent() bool {
	return m.Capture() != NoPiece || m.MoveType() == Promotion
}

// IsQueenPromotion reports whether the move promotes to a queen.
func (m Move) IsQueenPromotion() bool {
	return m.MoveType() == Promotion && m.Target().Figure() == Queen
}

// UCI renders the move in UCI coordinate notation, e.g. "e2e4" or "a7a8q".
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.MoveType() == Promotion {
		s += lowerFigureSymbol[m.Promotion().Figure()]
	}
	return s
}

var lowerFigureSymbol = [FigureArraySize]string{"", "p", "n", "b", "r", "q", "k"}

func (m Move) String() string { return m.UCI() }
