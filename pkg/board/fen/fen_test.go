package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
)

func TestDecodeInitial(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, pos.Turn())
	assert.Equal(t, board.FullCastlingRights, pos.Castling())
	assert.Equal(t, 0, pos.HalfmoveClock())
	assert.Equal(t, 1, pos.FullmoveNumber())

	_, ok := pos.EnPassant()
	assert.False(t, ok)

	c, p, ok := pos.Square(board.E1)
	require.True(t, ok)
	assert.Equal(t, board.White, c)
	assert.Equal(t, board.King, p)
}

func TestRoundTrip(t *testing.T) {
	fens := []string{
		fen.Initial,
		"8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	for _, f := range fens {
		pos, err := fen.Decode(f)
		require.NoError(t, err, f)
		assert.Equal(t, f, fen.Encode(pos))
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",  // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1", // short rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad color
		"8/8/8/8/8/8/8/4K3 w - - 0 1",                             // missing black king
		"4k3/8/8/8/8/8/8/4KK2 w - - 0 1",                          // two white kings
		"pppppppp/pppppppp/8/8/4k3/8/8/4K3 w - - 0 1",             // 16 black pawns
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",                           // K right without a rook on h1
		"4k3/8/8/8/8/8/8/4K3 w Q - 0 1",                           // Q right without a rook on a1
		"4k3/8/8/8/3p4/8/8/4K3 w - d6 0 1",                        // en passant target with no pawn to justify it
	}
	for _, f := range cases {
		_, err := fen.Decode(f)
		assert.Error(t, err, f)
	}
}
