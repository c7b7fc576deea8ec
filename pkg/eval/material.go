// Package eval provides static position evaluation: tapered material plus piece-square
// scoring, and the terminal/draw handling a leaf node needs before a score means anything.
package eval

import "github.com/arborchess/arbor/pkg/board"

// MGValue and EGValue are the middlegame and endgame material values in centipawns, indexed
// by board.Piece. PeSTO-style: in the endgame the rook and queen gain value relative to the
// minors, which both drop, although the queen itself is worth somewhat less.
var (
	MGValue = [board.NumPieces]int32{
		board.Pawn: 82, board.Knight: 337, board.Bishop: 365, board.Rook: 477, board.Queen: 1025, board.King: 0,
	}
	EGValue = [board.NumPieces]int32{
		board.Pawn: 94, board.Knight: 281, board.Bishop: 297, board.Rook: 512, board.Queen: 936, board.King: 0,
	}
)

// PhaseWeight is the contribution of one piece of the given type to the game-phase counter;
// the start position (2N+2B+2R+Q per side) sums to 24, which is also the clip ceiling.
var PhaseWeight = [board.NumPieces]int32{
	board.Pawn: 0, board.Knight: 1, board.Bishop: 1, board.Rook: 2, board.Queen: 4, board.King: 0,
}

const MaxPhase = 24

// Phase computes the game-phase counter for pos: the sum of PhaseWeight over every non-king
// piece on the board, clipped to MaxPhase (a promotion-heavy position could in principle
// exceed it).
func Phase(pos *board.Position) int32 {
	var phase int32
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.Pawn; p < board.King; p++ {
			phase += int32(pos.PieceBB(c, p).PopCount()) * PhaseWeight[p]
		}
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

// taperedMaterial returns (white material - black material) in centipawns, interpolated
// between MGValue and EGValue by the given phase fractions.
func taperedMaterial(pos *board.Position, mgFrac, egFrac float64) float64 {
	var total float64
	for p := board.Pawn; p <= board.King; p++ {
		v := float64(MGValue[p])*mgFrac + float64(EGValue[p])*egFrac
		white := pos.PieceBB(board.White, p).PopCount()
		black := pos.PieceBB(board.Black, p).PopCount()
		total += v * float64(white-black)
	}
	return total
}
