// Command perft is a move-generation correctness and speed checker,
// counting leaf nodes of the game tree to a given depth and comparing
// against known node counts for standard test positions. Adapted from
// the teacher's perft/perft.go, replacing its stale
// bitbucket.org/brtzsnr/zurichess/engine import with this repository's
// own board package, and its single-threaded split with a
// golang.org/x/sync/errgroup-parallel divide across root moves —
// SPEC_FULL.md's DOMAIN STACK wires errgroup here specifically because
// perft is a correctness tool, not the search core, so running it
// concurrently does not touch spec.md's Non-goal excluding
// multi-threaded search.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maren-voss/corechess/board"
)

var (
	fenFlag  = flag.String("fen", "startpos", "position to search")
	minDepth = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth    = flag.Int("depth", 0, "if non zero, searches only this depth")
)

var known = map[string]string{
	"startpos": board.FENStartPos,
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"duplain":  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

// expected holds known-good node counts by depth (index 0 is depth 0),
// the same fixtures the teacher's perft tool ships inline.
var expected = map[string][]uint64{
	board.FENStartPos: {1, 20, 400, 8902, 197281, 4865609, 119060324, 3195901860},
	known["kiwipete"]: {1, 48, 2039, 97862, 4085603, 193690690, 8031647685},
	known["duplain"]:  {1, 14, 191, 2812, 43238, 674624, 11030083, 178633661},
}

// perftParallel counts leaf nodes at depth by dividing the first ply
// across goroutines, one per legal root move: each goroutine parses
// its own Position from FEN (board.Position is not safe to share
// across goroutines since DoMove/UndoMove mutate it in place) and
// recurses sequentially from there via board.Perft.
func perftParallel(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	moves := pos.GenerateLegalMoves(board.All, nil)
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	fens := make([]string, len(moves))
	for i, m := range moves {
		pos.DoMove(m)
		fens[i] = pos.FEN()
		pos.UndoMove(m)
	}

	results := make([]uint64, len(moves))
	g, gctx := errgroup.WithContext(ctx)
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			child, err := board.PositionFromFEN(fen)
			if err != nil {
				return err
			}
			results[i] = board.Perft(child, depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total uint64
	for _, r := range results {
		total += r
	}
	return total, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	fen := *fenFlag
	if s, ok := known[fen]; ok {
		fen = s
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	fmt.Printf("Searching FEN %q\n", fen)
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		log.Fatalln("cannot parse --fen:", err)
	}

	fmt.Printf("depth        nodes   KNps   elapsed\n")
	fmt.Printf("-----+------------+------+---------\n")

	want := expected[fen]
	ctx := context.Background()
	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		nodes, err := perftParallel(ctx, pos, d)
		if err != nil {
			log.Fatalln("perft:", err)
		}
		elapsed := time.Since(start)

		status := ""
		if d < len(want) {
			if nodes == want[d] {
				status = "good"
			} else {
				status = "bad"
			}
		}

		fmt.Printf("   %2d %12d %-4s %6.0f %v\n",
			d, nodes, status, float64(nodes)/elapsed.Seconds()/1e3, elapsed)

		if status == "bad" {
			fmt.Printf("   %2d %12d expected\n", d, want[d])
			break
		}
	}
}
