package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
)

// perft counts leaf nodes at the given depth and also checks, at every node, that Unmake
// restores the hash and FEN exactly.
func perft(t *testing.T, pos *board.Position, depth int) int64 {
	t.Helper()
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range board.GenerateLegal(pos) {
		before := fen.Encode(pos)
		beforeHash := pos.ZobristHash()

		pos.Make(m.Move)
		nodes += perft(t, pos, depth-1)
		pos.Unmake()

		assert.Equal(t, before, fen.Encode(pos), "fen not restored after %v", m.Move)
		assert.Equal(t, beforeHash, pos.ZobristHash(), "hash not restored after %v", m.Move)
	}
	return nodes
}

func TestPerftInitialPosition(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, int64(20), perft(t, pos, 1))
	assert.Equal(t, int64(400), perft(t, pos, 2))
	assert.Equal(t, int64(8902), perft(t, pos, 3))
	assert.Equal(t, int64(197281), perft(t, pos, 4))
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assert.Equal(t, int64(48), perft(t, pos, 1))
	assert.Equal(t, int64(2039), perft(t, pos, 2))
	assert.Equal(t, int64(97862), perft(t, pos, 3))
}

func TestPerftPosition3(t *testing.T) {
	// The canonical third perft test position, heavy on en passant and rook/king endgame
	// edge cases (pins along open ranks, no castling rights).
	pos, err := fen.Decode("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, int64(14), perft(t, pos, 1))
	assert.Equal(t, int64(191), perft(t, pos, 2))
	assert.Equal(t, int64(2812), perft(t, pos, 3))
	assert.Equal(t, int64(43238), perft(t, pos, 4))
}

func TestEnPassantCapturesCheckingPawn(t *testing.T) {
	// Black king c5 is put in check by the white pawn that just double-pushed to d4;
	// capturing it en passant (c4xd3) removes the checking piece and must appear among the
	// legal evasions alongside the king's own escape squares.
	pos, err := fen.Decode("8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3")
	require.NoError(t, err)

	require.True(t, pos.IsCheck())

	found := false
	for _, m := range board.GenerateLegal(pos) {
		if m.Move.From == board.C4 && m.Move.To == board.D3 {
			found = true
		}
	}
	assert.True(t, found, "en passant capture of the checking pawn must be a legal evasion")
}

func TestPerftEnPassantDiscoveredCheck(t *testing.T) {
	// Black king a4, black pawn e4, white pawn d4 (just double-pushed), white rook h4.
	// Capturing en passant (exd3) would empty both d4 and e4, exposing the king to the
	// rook along the 4th rank, so it must not appear among the legal moves.
	pos, err := fen.Decode("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	for _, m := range board.GenerateLegal(pos) {
		assert.False(t, m.Move.From == board.E4 && m.Move.To == board.D3, "illegal en passant capture allowed")
	}
}

func TestMakeUnmakeRestoresState(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := fen.Encode(pos)
	beforeHash := pos.ZobristHash()

	for _, str := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := board.ParseMove(str)
		require.NoError(t, err)
		pos.Make(m)
	}
	for i := 0; i < 3; i++ {
		pos.Unmake()
	}

	assert.Equal(t, before, fen.Encode(pos))
	assert.Equal(t, beforeHash, pos.ZobristHash())
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	pos, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	m := board.Move{From: board.A1, To: board.A8}
	pos.Make(m)

	assert.False(t, pos.Castling().IsAllowed(board.BlackQueenSideCastle))
	assert.False(t, pos.Castling().IsAllowed(board.WhiteQueenSideCastle))
}

func TestStalemate(t *testing.T) {
	pos, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	assert.False(t, pos.IsCheck())
	assert.False(t, board.HasLegalMove(pos))
}

func TestNotStalemateWhenMoveAvailable(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.True(t, board.HasLegalMove(pos))
}

func TestCheckmateMateIn1(t *testing.T) {
	// Back-rank mate: white to move, Rd8#. Black king boxed in by its own pawns.
	pos, err := fen.Decode("6k1/5ppp/8/8/8/8/8/K2R4 w - - 0 1")
	require.NoError(t, err)

	m := board.Move{From: board.D1, To: board.D8}
	pos.Make(m)

	assert.True(t, pos.IsCheck())
	assert.False(t, board.HasLegalMove(pos))
}
