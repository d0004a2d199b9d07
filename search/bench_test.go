// bench_test.go benchmarks node counts across recorded games, replayed
// move by move with a fixed-depth search after each ply — the
// non-functional regression check the teacher's internal/bench/bench.go
// and bench/bench_test.go ran as a standalone CLI tool. Adapted here as
// a Go benchmark instead: same three recorded games (kept verbatim,
// they are just move lists, not engine-specific code), replayed through
// Context.IterativeDeepen rather than the teacher's own Engine.Play.
package search

import (
	"strings"
	"testing"

	"github.com/maren-voss/corechess/board"
)

type recordedGame struct {
	description string
	moves       []string
}

var benchGames = []recordedGame{
	{
		"Garry Kasparov - Veselin Topalov, Wijk aan Zee 1999.01.20",
		strings.Fields("e2e4 d7d6 d2d4 g8f6 b1c3 g7g6 c1e3 f8g7 d1d2 c7c6 f2f3 b7b5 g1e2 b8d7 e3h6 g7h6 d2h6 c8b7 a2a3 e7e5"),
	},
	{
		"Vladimir Kramnik - Alexey Shirov, Linares 1994",
		strings.Fields("g1f3 d7d5 d2d4 c8f5 c2c4 e7e6 b1c3 c7c6 d1b3 d8b6 c4c5 b6c7 c1f4 c7c8 e2e3 g8f6 b3a4 b8d7 b2b4 a7a6"),
	},
	{
		"Mikhail Tal - Boris Spassky, Leningrad 1954",
		strings.Fields("c2c4 g8f6 b1c3 e7e6 d2d4 c7c5 d4d5 e6d5 c4d5 g7g6 g1f3 f8g7 c1f4 d7d6 h2h3 e8g8 e2e3 f6e8 f1e2 b8d7"),
	},
}

func uciMove(pos *board.Position, s string) board.Move {
	for _, m := range pos.GenerateLegalMoves(board.All, nil) {
		if m.UCI() == s {
			return m
		}
	}
	return board.NoMove
}

func benchmarkGame(b *testing.B, g recordedGame, depth int) {
	pos, err := board.PositionFromFEN(board.FENStartPos)
	if err != nil {
		b.Fatal(err)
	}
	ctx := NewContext(1<<21, 1<<17, nil, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var nodes uint64
		for _, s := range g.moves {
			result := ctx.IterativeDeepen(pos, Limits{Depth: depth})
			nodes += ctx.Stats.Nodes
			_ = result
			m := uciMove(pos, s)
			if m == board.NoMove {
				b.Fatalf("%s: move %s not legal", g.description, s)
			}
			pos.DoMove(m)
		}
		b.ReportMetric(float64(nodes), "nodes")
	}
}

func BenchmarkKasparovTopalov(b *testing.B) { benchmarkGame(b, benchGames[0], 4) }
func BenchmarkKramnikShirov(b *testing.B)   { benchmarkGame(b, benchGames[1], 4) }
func BenchmarkTalSpassky(b *testing.B)      { benchmarkGame(b, benchGames[2], 4) }
