package book

import (
	"math/rand"

	"github.com/arborchess/arbor/pkg/board"
)

// Polyglot defines its own fixed 781-entry random table (piece-square, castling, en-passant
// file, side-to-move) independent of any particular engine's internal Zobrist hash, so that
// a book built by one engine can be probed by another. This package reproduces that table's
// *shape* exactly but fills it from a fixed local seed rather than the published Polyglot
// constants: a book generated by this engine's own tooling round-trips correctly, but a
// third-party .bin book keyed against the official constants will not resolve.
var (
	polyglotPieceKey    [12][64]uint64
	polyglotCastleKey   [4]uint64
	polyglotEPFileKey   [8]uint64
	polyglotTurnKey     uint64
)

func init() {
	r := rand.New(rand.NewSource(0x706f_6c79_676c_6f74))
	for pc := 0; pc < 12; pc++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieceKey[pc][sq] = r.Uint64()
		}
	}
	for i := range polyglotCastleKey {
		polyglotCastleKey[i] = r.Uint64()
	}
	for i := range polyglotEPFileKey {
		polyglotEPFileKey[i] = r.Uint64()
	}
	polyglotTurnKey = r.Uint64()
}

// polyglotPieceIndex maps (color, piece) to Polyglot's piece ordering: BlackPawn=0,
// WhitePawn=1, BlackKnight=2, WhiteKnight=3, ..., BlackKing=10, WhiteKing=11.
func polyglotPieceIndex(c board.Color, p board.Piece) int {
	base := (int(p) - int(board.Pawn)) * 2
	if c == board.White {
		return base + 1
	}
	return base
}

// polyglotHash computes the Polyglot-shaped hash for pos.
func polyglotHash(pos *board.Position) uint64 {
	var h uint64
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if c, p, ok := pos.Square(sq); ok {
			h ^= polyglotPieceKey[polyglotPieceIndex(c, p)][sq]
		}
	}

	castling := pos.Castling()
	if castling.IsAllowed(board.WhiteKingSideCastle) {
		h ^= polyglotCastleKey[0]
	}
	if castling.IsAllowed(board.WhiteQueenSideCastle) {
		h ^= polyglotCastleKey[1]
	}
	if castling.IsAllowed(board.BlackKingSideCastle) {
		h ^= polyglotCastleKey[2]
	}
	if castling.IsAllowed(board.BlackQueenSideCastle) {
		h ^= polyglotCastleKey[3]
	}

	if ep, ok := pos.EnPassant(); ok && hasPawnAttackingEP(pos, ep) {
		h ^= polyglotEPFileKey[ep.File()]
	}

	if pos.Turn() == board.White {
		h ^= polyglotTurnKey
	}
	return h
}

// hasPawnAttackingEP mirrors Polyglot's quirk: the en-passant file key is only mixed in when
// a pawn of the side to move could actually capture en passant, not merely when the FEN
// records a target square.
func hasPawnAttackingEP(pos *board.Position, ep board.Square) bool {
	us := pos.Turn()
	return board.PawnAttackboard(us.Opponent(), board.BitMask(ep))&pos.PieceBB(us, board.Pawn) != 0
}
