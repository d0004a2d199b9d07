package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN for the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var symbolToFigure = map[byte]Figure{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

var symbolToCastle = map[byte]Castle{
	'K': WhiteOO, 'Q': WhiteOOO, 'k': BlackOO, 'q': BlackOOO,
}

// PositionFromFEN parses a position in Forsyth-Edwards Notation.
func PositionFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: invalid FEN %q: want at least 4 fields, got %d", fen, len(fields))
	}

	pos := NewPosition()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: invalid FEN %q: want 8 ranks, got %d", fen, len(ranks))
	}
	for i, row := range ranks {
		r := 7 - i
		f := 0
		for _, ch := range []byte(row) {
			if ch >= '1' && ch <= '8' {
				f += int(ch - '0')
				continue
			}
			if f >= 8 {
				return nil, fmt.Errorf("board: invalid FEN %q: rank %d overflows", fen, r+1)
			}
			col := White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				col = Black
			} else {
				lower = ch - 'A' + 'a'
			}
			fig, ok := symbolToFigure[lower]
			if !ok {
				return nil, fmt.Errorf("board: invalid FEN %q: unknown piece %q", fen, string(ch))
			}
			pos.Put(RankFile(r, f), ColorFigure(col, fig))
			f++
		}
	}

	switch fields[1] {
	case "w":
		pos.setSideToMove(White)
	case "b":
		pos.setSideToMove(Black)
	default:
		return nil, fmt.Errorf("board: invalid FEN %q: bad side to move %q", fen, fields[1])
	}

	var castle Castle
	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			bit, ok := symbolToCastle[ch]
			if !ok {
				return nil, fmt.Errorf("board: invalid FEN %q: bad castling rights %q", fen, fields[2])
			}
			castle |= bit
		}
	}
	pos.setCastlingAbility(castle)

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad en-passant square %q", fen, fields[3])
		}
		pos.setEnpassantSquare(sq)
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad half-move clock %q", fen, fields[4])
		}
		pos.curr.halfMoveClock = n
	}
	pos.FullMoveNumber = 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err == nil && n > 0 {
			pos.FullMoveNumber = n
		}
	}

	return pos, nil
}
