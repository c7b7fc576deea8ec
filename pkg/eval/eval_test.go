package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/eval"
)

func TestEvaluateInitialPositionIsZeroSum(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.Score(0), eval.Evaluate(pos))
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	white, err := fen.Decode("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := fen.Decode("4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, eval.Evaluate(white), eval.Evaluate(black))
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, int(eval.Evaluate(pos)), 0)
}

func TestEvaluateInsufficientMaterialIsDraw(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, board.DrawValue, eval.Evaluate(pos))
}

func TestScoreClamp(t *testing.T) {
	assert.Equal(t, board.MaxScore, (board.MaxScore + 1000).Clamp())
	assert.Equal(t, board.MinScore, (board.MinScore - 1000).Clamp())
}

func TestRandomNoiseBounded(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	r := eval.NewRandom(20, 1)
	for i := 0; i < 100; i++ {
		s := r.Evaluate(pos)
		assert.True(t, s >= -10 && s <= 10, "noise %v out of expected range", s)
	}
}

func TestRandomDisabledByNonPositiveLimit(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	r := eval.NewRandom(0, 1)
	assert.Equal(t, board.Score(0), r.Evaluate(pos))
}
