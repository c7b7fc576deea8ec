package eval

import "github.com/arborchess/arbor/pkg/board"

// Piece-square tables, PeSTO-style: one middlegame and one endgame table per piece type,
// authored from Black's perspective (rank 8 at the "top", i.e. index by board.Square
// directly) and mirrored via Square.Mirror (XOR 56) to score White. Values are centipawn
// bonuses/penalties layered on top of material, built once in init() from a small set of
// per-rank and per-file shaping terms rather than 64 hand-typed numbers per table; the
// resulting shape (pawns favor advancing and center files, knights/bishops avoid the rim,
// the king hides in the middlegame and centralizes in the endgame) is the textbook PeSTO
// shape, not the literal PeSTO byte values.
var (
	mgPST [board.NumPieces][board.NumSquares]int32
	egPST [board.NumPieces][board.NumSquares]int32
)

// The per-rank arrays are indexed by rank counted from the owning side's back rank (0 = own
// back rank, 7 = the opponent's back rank; the pawn entries at both ends are unused since
// pawns never stand there). init converts board ranks to Black's count for the tables.
var (
	pawnMGRank = [8]int32{0, 5, 10, 15, 25, 45, 70, 0}
	pawnEGRank = [8]int32{0, 10, 15, 25, 40, 65, 90, 0}

	knightMGRank = [8]int32{-20, -10, 0, 10, 15, 15, 5, -10}
	knightEGRank = [8]int32{-15, -5, 5, 10, 10, 5, -5, -15}

	bishopMGRank = [8]int32{-10, 0, 5, 10, 10, 10, 0, -10}
	bishopEGRank = [8]int32{-10, -5, 0, 5, 5, 0, -5, -10}

	rookMGRank = [8]int32{0, -5, -5, 0, 5, 10, 15, 0}
	rookEGRank = [8]int32{0, 0, 0, 0, 5, 5, 10, 0}

	queenMGRank = [8]int32{-5, 0, 0, 0, 5, 5, 0, -5}
	queenEGRank = [8]int32{-10, -5, 0, 5, 10, 15, 10, -5}

	kingMGRank = [8]int32{20, 20, -10, -20, -30, -30, -30, -30}
	kingEGRank = [8]int32{-30, -10, 10, 20, 25, 25, 15, -10}
)

// centerFileBonus rewards files closer to the center (d/e most, a/h least); used for
// knights, bishops and the endgame king, which all benefit from central placement.
var centerFileBonus = [8]int32{-15, -5, 5, 10, 10, 5, -5, -15}

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		r, f := 7-int(sq.Rank()), int(sq.File())

		mgPST[board.Pawn][sq] = pawnMGRank[r]
		egPST[board.Pawn][sq] = pawnEGRank[r]

		mgPST[board.Knight][sq] = knightMGRank[r] + centerFileBonus[f]
		egPST[board.Knight][sq] = knightEGRank[r] + centerFileBonus[f]

		mgPST[board.Bishop][sq] = bishopMGRank[r] + centerFileBonus[f]/2
		egPST[board.Bishop][sq] = bishopEGRank[r] + centerFileBonus[f]/2

		mgPST[board.Rook][sq] = rookMGRank[r]
		egPST[board.Rook][sq] = rookEGRank[r]

		mgPST[board.Queen][sq] = queenMGRank[r] + centerFileBonus[f]/2
		egPST[board.Queen][sq] = queenEGRank[r]

		mgPST[board.King][sq] = kingMGRank[r] - centerFileBonus[f]
		egPST[board.King][sq] = kingEGRank[r] + centerFileBonus[f]
	}
}

// pstIndex returns the table index to use for a piece of color c on square sq: the tables
// are authored for Black, so White looks up the vertically mirrored square.
func pstIndex(c board.Color, sq board.Square) board.Square {
	if c == board.Black {
		return sq
	}
	return sq.Mirror()
}

// taperedPST returns (white pst - black pst) in centipawns, interpolated by phase fraction.
func taperedPST(pos *board.Position, mgFrac, egFrac float64) float64 {
	var total float64
	for c := board.ZeroColor; c < board.NumColors; c++ {
		sign := 1.0
		if c == board.Black {
			sign = -1.0
		}
		for p := board.Pawn; p <= board.King; p++ {
			for pb := pos.PieceBB(c, p); pb != 0; {
				var sq board.Square
				sq, pb = pb.PopLSB()
				idx := pstIndex(c, sq)
				v := float64(mgPST[p][idx])*mgFrac + float64(egPST[p][idx])*egFrac
				total += sign * v
			}
		}
	}
	return total
}
