package board

// Sliding-piece attacks use the classical ray/first-blocker technique: for each square and
// each of the 8 compass directions, a precomputed ray runs to the edge of the board. At
// lookup time, the first blocker along a ray (if any) is found via a single bitscan and the
// squares beyond it are removed from the ray with a second table lookup and XOR. This is the
// well-known byte-plain alternative to magic/rotated bitboards: it is contract-equivalent
// (spec: "either a direct per-square mask -> attacks map, or magic bitboards, is acceptable")
// and far easier to hand-verify without running the code.

type direction int

const (
	dirN direction = iota
	dirS
	dirE
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
	numDirections
)

// positiveDir is true for directions in which the square index increases monotonically
// (N, E, NE, NW); false for directions in which it decreases (S, W, SE, SW). This determines
// whether the first blocker is found via LSB or MSB.
var positiveDir = [numDirections]bool{
	dirN: true, dirS: false, dirE: true, dirW: false,
	dirNE: true, dirNW: true, dirSE: false, dirSW: false,
}

var dirDF = [numDirections]int{dirN: 0, dirS: 0, dirE: 1, dirW: -1, dirNE: 1, dirNW: -1, dirSE: 1, dirSW: -1}
var dirDR = [numDirections]int{dirN: 1, dirS: -1, dirE: 0, dirW: 0, dirNE: 1, dirNW: 1, dirSE: -1, dirSW: -1}

var rayAttacks [numDirections][NumSquares]Bitboard

// rayBetween[a][b] is the open interval of squares strictly between a and b if they share a
// rank, file or diagonal; otherwise empty. rayLine[a][b] is the full line through a and b
// (including both endpoints and everything beyond them to the edges) if aligned, else empty.
var (
	rayBetween [NumSquares][NumSquares]Bitboard
	rayLine    [NumSquares][NumSquares]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		f, r := int(sq.File()), int(sq.Rank())
		for d := direction(0); d < numDirections; d++ {
			var ray Bitboard
			cf, cr := f+dirDF[d], r+dirDR[d]
			for cf >= 0 && cf < 8 && cr >= 0 && cr < 8 {
				ray |= BitMask(NewSquare(File(cf), Rank(cr)))
				cf += dirDF[d]
				cr += dirDR[d]
			}
			rayAttacks[d][sq] = ray
		}
	}

	for a := ZeroSquare; a < NumSquares; a++ {
		for d := direction(0); d < numDirections; d++ {
			ray := rayAttacks[d][a]
			for ray != 0 {
				var b Square
				b, ray = ray.PopLSB()

				// Squares between a and b along this ray: the ray from a up to (but not
				// including) b, intersected with the reverse ray from b back towards a.
				opposite := opposite(d)
				between := rayAttacks[d][a] & rayAttacks[opposite][b]
				rayBetween[a][b] = between
				rayLine[a][b] = rayAttacks[d][a] | rayAttacks[opposite][b] | BitMask(a) | BitMask(b)
			}
		}
	}
}

func opposite(d direction) direction {
	switch d {
	case dirN:
		return dirS
	case dirS:
		return dirN
	case dirE:
		return dirW
	case dirW:
		return dirE
	case dirNE:
		return dirSW
	case dirSW:
		return dirNE
	case dirNW:
		return dirSE
	case dirSE:
		return dirNW
	default:
		panic("board: opposite: invalid direction")
	}
}

// Ray returns the full line through a and b (both endpoints and the squares beyond them to
// the board edges) if they share a rank, file or diagonal; otherwise the empty bitboard.
func Ray(a, b Square) Bitboard {
	return rayLine[a][b]
}

// Between returns the open interval of squares strictly between a and b along a shared
// rank/file/diagonal; otherwise the empty bitboard. Used for check-blocking and pin tests.
func Between(a, b Square) Bitboard {
	return rayBetween[a][b]
}

func slideAttacks(sq Square, occupied Bitboard, dirs [4]direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rayAttacks[d][sq]
		attacks |= ray
		if blockers := ray & occupied; blockers != 0 {
			var blocker Square
			if positiveDir[d] {
				blocker = blockers.LSB()
			} else {
				blocker = blockers.MSB()
			}
			attacks &^= rayAttacks[d][blocker]
		}
	}
	return attacks
}

var rookDirs = [4]direction{dirN, dirS, dirE, dirW}
var bishopDirs = [4]direction{dirNE, dirNW, dirSE, dirSW}

// RookAttackboard returns all squares a rook on sq can reach given the occupancy. Blockers
// are included in the result; squares behind them are not.
func RookAttackboard(sq Square, occupied Bitboard) Bitboard {
	return slideAttacks(sq, occupied, rookDirs)
}

// BishopAttackboard returns all squares a bishop on sq can reach given the occupancy.
func BishopAttackboard(sq Square, occupied Bitboard) Bitboard {
	return slideAttacks(sq, occupied, bishopDirs)
}

// QueenAttackboard is a convenience union of rook and bishop attacks.
func QueenAttackboard(sq Square, occupied Bitboard) Bitboard {
	return RookAttackboard(sq, occupied) | BishopAttackboard(sq, occupied)
}
