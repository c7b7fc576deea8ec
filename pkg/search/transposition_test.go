package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/search"
)

func TestTranspositionReadWriteRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(1 << 20)

	hash := board.ZobristHash(12345)
	move := board.Move{From: board.E2, To: board.E4}
	ok := tt.Write(hash, search.ExactBound, 4, board.Score(37), move)
	assert.True(t, ok)

	bound, depth, score, stored, found := tt.Read(hash)
	assert.True(t, found)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 4, depth)
	assert.Equal(t, board.Score(37), score)
	assert.Equal(t, move, stored)
}

func TestTranspositionMissReturnsFalse(t *testing.T) {
	tt := search.NewTranspositionTable(1 << 20)
	_, _, _, _, found := tt.Read(board.ZobristHash(999))
	assert.False(t, found)
}

func TestTranspositionDepthPreferredReplacement(t *testing.T) {
	tt := search.NewTranspositionTable(1 << 10) // small table; every write below uses one key

	hash := board.ZobristHash(7)
	tt.Write(hash, search.ExactBound, 8, board.Score(10), board.Move{})

	// A shallower write for the same hash must not overwrite a deeper entry.
	tt.Write(hash, search.ExactBound, 2, board.Score(99), board.Move{})

	_, depth, score, _, found := tt.Read(hash)
	assert.True(t, found)
	assert.Equal(t, 8, depth)
	assert.Equal(t, board.Score(10), score)
}

func TestNoTranspositionTableAlwaysMisses(t *testing.T) {
	var tt search.NoTranspositionTable
	_, _, _, _, found := tt.Read(board.ZobristHash(1))
	assert.False(t, found)
	assert.False(t, tt.Write(board.ZobristHash(1), search.ExactBound, 1, 0, board.Move{}))
	assert.Equal(t, uint64(0), tt.Size())
}
