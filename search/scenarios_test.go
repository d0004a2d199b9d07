// scenarios_test.go exercises the concrete perft/search fixtures
// spec.md §8 enumerates by name, run against the real search engine
// end to end (board.PositionFromFEN -> Context.IterativeDeepen).
// Adapted from internal/mates/mates_test.go's EPD-file-driven fixture
// runner: that file depended on a notation.ParseEPD format and on
// testdata/*.epd files this retrieval pack never shipped, so rather
// than carry a dead dependency on missing fixtures, the positions
// spec.md names explicitly are inlined here as literal FEN strings.
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maren-voss/corechess/board"
)

func newTestContext() *Context {
	return NewContext(1<<20, 1<<16, nil, nil)
}

func TestScenarioStartingPositionDepth1(t *testing.T) {
	pos, err := board.PositionFromFEN(board.FENStartPos)
	require.NoError(t, err)

	ctx := newTestContext()
	result := ctx.IterativeDeepen(pos, Limits{Depth: 1})

	require.NotEqual(t, board.NoMove, result.BestMove)
	assert.LessOrEqual(t, abs32(result.Score), Score(50))

	legal := pos.GenerateLegalMoves(board.All, nil)
	assert.Contains(t, legal, result.BestMove)
}

func TestScenarioRookMateIn5(t *testing.T) {
	pos, err := board.PositionFromFEN("k7/8/1K6/8/8/8/8/R7 w - - 0 1")
	require.NoError(t, err)

	ctx := newTestContext()
	result := ctx.IterativeDeepen(pos, Limits{Depth: 10})

	assert.GreaterOrEqual(t, result.Score, MateIn(5))
	require.NotEmpty(t, result.PV)
	assert.Equal(t, board.Rook, result.PV[0].Piece().Figure())
}

func TestScenarioKPKWinningPawnEnding(t *testing.T) {
	pos, err := board.PositionFromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	ctx := newTestContext()
	result := ctx.IterativeDeepen(pos, Limits{Depth: 14, MultiPV: 1})

	assert.Greater(t, result.Score, Score(0))
	require.NotEmpty(t, result.PV)
	first := result.PV[0].UCI()
	assert.Contains(t, []string{"e2e4", "e1d2", "e1f2"}, first)
}

func TestScenarioStalemateReturnsDrawValue(t *testing.T) {
	pos, err := board.PositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	ctx := newTestContext()
	result := ctx.IterativeDeepen(pos, Limits{Depth: 4})

	assert.Equal(t, board.NoMove, result.BestMove)
	assert.Equal(t, DrawValue, result.Score)
}

func TestScenarioMateIn1(t *testing.T) {
	pos, err := board.PositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	ctx := newTestContext()
	result := ctx.IterativeDeepen(pos, Limits{Depth: 2})

	assert.Equal(t, MateIn(1), result.Score)
	require.Len(t, result.PV, 1)
	assert.Equal(t, "a1a8", result.PV[0].UCI())
}

func TestScenarioDeterministicAcrossClearedCaches(t *testing.T) {
	pos, err := board.PositionFromFEN(board.FENStartPos)
	require.NoError(t, err)

	ctx1 := newTestContext()
	first := ctx1.IterativeDeepen(pos, Limits{Depth: 4})

	ctx2 := newTestContext()
	second := ctx2.IterativeDeepen(pos, Limits{Depth: 4})

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.BestMove, second.BestMove)
}
