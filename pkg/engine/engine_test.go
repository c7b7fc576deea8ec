package engine_test

import (
	"context"
	"testing"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/engine"
	"github.com/arborchess/arbor/pkg/search"
	"github.com/arborchess/arbor/pkg/search/searchctl"
)

func withDepth(depth int) searchctl.Options {
	return searchctl.Options{DepthLimit: lang.Some(depth)}
}

func TestNewDefaultsToInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	assert.Equal(t, fen.Initial, e.Position())
}

func TestResetToCustomPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, e.Reset(ctx, kiwipete))
	assert.Equal(t, kiwipete, e.Position())
}

func TestResetRejectsMalformedFEN(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	assert.Error(t, e.Reset(ctx, "not a fen"))
}

func TestMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestTakeBackWithNoHistoryErrors(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	assert.Error(t, e.TakeBack(ctx))
}

func TestSetOptionsPersistsInMemory(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	e.SetDepth(6)
	e.SetHash(16)
	e.SetNoise(5)
	e.SetOwnBook(true)

	opt := e.Options()
	assert.EqualValues(t, 6, opt.Depth)
	assert.EqualValues(t, 16, opt.Hash)
	assert.EqualValues(t, 5, opt.Noise)
	assert.True(t, opt.OwnBook)
}

func TestAnalyzeFindsMateInOne(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	require.NoError(t, e.Reset(ctx, "6k1/5ppp/8/8/8/8/8/K2R4 w - - 0 1"))

	out, err := e.Analyze(ctx, withDepth(2))
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}

	require.NotEmpty(t, last.Moves)
	mateIn, ok := last.Score.MateIn()
	assert.True(t, ok)
	assert.Equal(t, 1, mateIn)
}

func TestAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	_, err := e.Analyze(ctx, withDepth(3))
	require.NoError(t, err)

	_, err = e.Analyze(ctx, withDepth(3))
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}

func TestHaltWithNoActiveSearchErrors(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	_, err := e.Halt(ctx)
	assert.Error(t, err)
}

func TestAnalyzeUsesOwnBookWhenEnabled(t *testing.T) {
	ctx := context.Background()
	book, err := engine.NewBook([]engine.Line{{"e2e4"}})
	require.NoError(t, err)

	e := engine.New(ctx, "arbor", "tester", engine.WithBook(book))
	defer e.Close()
	e.SetOwnBook(true)

	out, err := e.Analyze(ctx, withDepth(4))
	require.NoError(t, err)

	pv := <-out
	require.Len(t, pv.Moves, 1)
	assert.Equal(t, "e2e4", pv.Moves[0].String())
	assert.Equal(t, 0, pv.Depth)
}
