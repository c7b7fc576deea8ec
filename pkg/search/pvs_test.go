package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/eval"
	"github.com/arborchess/arbor/pkg/search"
)

func runToCompletion(t *testing.T, pos *board.Position, opt search.Options) search.PV {
	t.Helper()
	it := search.NewIterative(eval.Default{})
	_, out := it.Launch(context.Background(), pos, search.NoTranspositionTable{}, opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	return last
}

func TestIterativeFindsMateIn1(t *testing.T) {
	// Back-rank mate: Rd1-d8#.
	pos, err := fen.Decode("6k1/5ppp/8/8/8/8/8/K2R4 w - - 0 1")
	require.NoError(t, err)

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 2})

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, board.D1, pv.Moves[0].From)
	assert.Equal(t, board.D8, pv.Moves[0].To)

	mateIn, ok := pv.Score.MateIn()
	assert.True(t, ok)
	assert.Equal(t, 1, mateIn)
}

func TestIterativeFindsHangingQueen(t *testing.T) {
	// White knight on e5 can capture an undefended black queen on d7. The white rook keeps
	// the position from becoming an insufficient-material draw once the queen is gone.
	pos, err := fen.Decode("7k/3q4/8/4N3/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 3})

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, board.E5, pv.Moves[0].From)
	assert.Equal(t, board.D7, pv.Moves[0].To)
	assert.Greater(t, int(pv.Score), 400) // at least a minor-for-queen swing
}

func TestIterativeFindsMateInThree(t *testing.T) {
	pos, err := fen.Decode("r2qk2r/pp2n1pp/2n1p3/2ppPp2/3P4/2PB1N2/PP3PPP/R1BQK2R w KQkq - 0 1")
	require.NoError(t, err)

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 6})

	require.NotEmpty(t, pv.Moves)
	mateIn, ok := pv.Score.MateIn()
	require.True(t, ok)
	assert.LessOrEqual(t, mateIn, 3)
}

func TestIterativeFindsQueenForBishopSwap(t *testing.T) {
	// Black bishop on f5 attacks the white queen on d3 through the empty e4 square. The
	// queen is defended only by the c2 and e2 pawns, so Bxd3 wins the exchange of queen for
	// bishop even after the recapture.
	pos, err := fen.Decode("rn1qkbnr/ppp1pppp/8/3p1b2/3P4/P2Q4/1PP1PPPP/RNB1KBNR b KQkq - 0 3")
	require.NoError(t, err)

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 3})

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, board.F5, pv.Moves[0].From)
	assert.Equal(t, board.D3, pv.Moves[0].To)
	assert.Greater(t, int(pv.Score), 400)
}

func TestIterativeAvoidsRepetitionFromSeededHistory(t *testing.T) {
	// White queen plus king versus a lone king: every safe queen move keeps a huge material
	// edge, except Qd4-d5, which would repeat a position already recorded as played earlier
	// in the game. A correctly wired position-history set must steer the search away from it.
	pos, err := fen.Decode("7k/8/8/8/3Q4/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	repeated, err := fen.Decode("7k/8/8/3Q4/8/8/8/K7 b - - 1 1")
	require.NoError(t, err)

	hist := board.NewPositionHistory()
	hist.Push(repeated.PieceStateKey())

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 1, History: hist})

	require.NotEmpty(t, pv.Moves)
	assert.False(t, pv.Moves[0].From == board.D4 && pv.Moves[0].To == board.D5,
		"must avoid repeating a position already in the game's history")
	assert.Greater(t, int(pv.Score), 400)
}

func TestIterativeRespectsDepthLimit(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	pv := runToCompletion(t, pos, search.Options{DepthLimit: 2})
	assert.Equal(t, 2, pv.Depth)
	assert.NotEmpty(t, pv.Moves)
}

func TestIterativeHaltStopsSearch(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	it := search.NewIterative(eval.Default{})
	h, out := it.Launch(context.Background(), pos, search.NoTranspositionTable{}, search.Options{})

	// Drain at least one completed depth before halting so the handle is initialized.
	<-out

	pv := h.Halt()
	assert.GreaterOrEqual(t, pv.Depth, 1)

	// Halt is idempotent.
	pv2 := h.Halt()
	assert.Equal(t, pv.Depth, pv2.Depth)
}
