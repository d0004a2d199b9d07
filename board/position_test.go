package board

import "testing"

func TestStartPosPerft(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, c := range cases {
		got := Perft(pos, c.depth)
		if got != c.nodes {
			t.Errorf("Perft(startpos, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestKiwipetePerft(t *testing.T) {
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := PositionFromFEN(kiwipete)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	if got, want := Perft(pos, 1), uint64(48); got != want {
		t.Errorf("Perft(kiwipete, 1) = %d, want %d", got, want)
	}
	if got, want := Perft(pos, 2), uint64(2039); got != want {
		t.Errorf("Perft(kiwipete, 2) = %d, want %d", got, want)
	}
}

func TestDoUndoMoveRestoresZobrist(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	before := pos.Zobrist()
	var moves []Move
	moves = pos.GenerateLegalMoves(All, moves)
	for _, m := range moves {
		pos.DoMove(m)
		pos.UndoMove(m)
		if pos.Zobrist() != before {
			t.Fatalf("Zobrist not restored after do/undo of %v: got %x, want %x", m, pos.Zobrist(), before)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	} {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("PositionFromFEN(%q): %v", fen, err)
		}
		got := pos.FEN()
		pos2, err := PositionFromFEN(got)
		if err != nil {
			t.Fatalf("PositionFromFEN(round-tripped %q): %v", got, err)
		}
		if pos2.Zobrist() != pos.Zobrist() {
			t.Errorf("FEN round-trip changed position: %q -> %q", fen, got)
		}
	}
}

func TestMateInOne(t *testing.T) {
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	from, _ := SquareFromString("a1")
	to, _ := SquareFromString("a8")
	m := MakeMove(Normal, from, to, NoPiece, WhiteRook)
	pos.DoMove(m)
	defer pos.UndoMove(m)
	if !pos.IsChecked(Black) {
		t.Fatalf("Ra8 should check the black king")
	}
	var moves []Move
	moves = pos.GenerateEvasions(moves)
	if len(moves) != 0 {
		t.Fatalf("expected no evasions after Ra8#, got %d", len(moves))
	}
}

func TestStaticExchangeEvalSimpleCapture(t *testing.T) {
	// White pawn on e4 takes a hanging black knight on d5, undefended:
	// the exchange should net a full knight (no recapture available).
	pos, err := PositionFromFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	from, _ := SquareFromString("e4")
	to, _ := SquareFromString("d5")
	m := MakeMove(Normal, from, to, BlackKnight, WhitePawn)
	if got := StaticExchangeEval(pos, m); got != seeValue[Knight] {
		t.Errorf("StaticExchangeEval = %d, want %d", got, seeValue[Knight])
	}
}
