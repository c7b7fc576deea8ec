package board

import "strings"

// Castling represents the set of castling rights still available to either side. 4 bits.
type Castling uint8

const (
	WhiteKingSideCastle Castling = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
)

const (
	ZeroCastling      Castling = 0
	NumCastling       Castling = 16
	FullCastlingRights Castling = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// KingSideRight and QueenSideRight return the castling right belonging to c.
func KingSideRight(c Color) Castling {
	if c == White {
		return WhiteKingSideCastle
	}
	return BlackKingSideCastle
}

func QueenSideRight(c Color) Castling {
	if c == White {
		return WhiteQueenSideCastle
	}
	return BlackQueenSideCastle
}

// IsAllowed returns true iff any of the given rights is present.
func (c Castling) IsAllowed(right Castling) bool {
	return c&right != 0
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}

// castlingRightsLost returns the bits that are cleared when a piece departs from or a rook
// is captured on the given square. Moving the king clears both of its side's rights; moving
// or capturing a rook on its home square clears that one right.
func castlingRightsLost(sq Square) Castling {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	default:
		return 0
	}
}

// CastlingRookSquares returns the rook's from/to squares for a castle of the given kind
// (king-side if kingSide, else queen-side) by color.
func CastlingRookSquares(c Color, kingSide bool) (from, to Square) {
	if c == White {
		if kingSide {
			return H1, F1
		}
		return A1, D1
	}
	if kingSide {
		return H8, F8
	}
	return A8, D8
}

// CastlingKingSquares returns the king's from/to squares for a castle of the given kind.
func CastlingKingSquares(c Color, kingSide bool) (from, to Square) {
	if c == White {
		if kingSide {
			return E1, G1
		}
		return E1, C1
	}
	if kingSide {
		return E8, G8
	}
	return E8, C8
}

// CastlingTransitSquares returns the squares (other than the king's origin) that must be
// empty and not attacked by the opponent for the castle to be legal: the king's destination
// and the square(s) it passes through.
func CastlingTransitSquares(c Color, kingSide bool) []Square {
	if c == White {
		if kingSide {
			return []Square{F1, G1}
		}
		return []Square{D1, C1}
	}
	if kingSide {
		return []Square{F8, G8}
	}
	return []Square{D8, C8}
}

// CastlingEmptySquares returns every square (beyond the king's transit) that must be vacant
// for the castle to be possible; this differs from CastlingTransitSquares only on the
// queen-side, where b1/b8 must be empty but is not on the king's path and so is never
// attack-checked.
func CastlingEmptySquares(c Color, kingSide bool) []Square {
	if kingSide {
		return CastlingTransitSquares(c, kingSide)
	}
	if c == White {
		return []Square{B1, C1, D1}
	}
	return []Square{B8, C8, D8}
}
