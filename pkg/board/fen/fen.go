// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arborchess/arbor/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// DecodeError reports a malformed FEN string: invalid piece counts, a badly-shaped field, an
// illegal castling flag, or an impossible en-passant square.
type DecodeError struct {
	FEN    string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fen: invalid FEN %q: %v", e.FEN, e.Reason)
}

func fail(fen, reason string) error {
	return &DecodeError{FEN: fen, Reason: reason}
}

// Decode parses a FEN record into a fresh Position.
func Decode(s string) (*board.Position, error) {
	fen := strings.TrimSpace(s)
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fail(fen, fmt.Sprintf("expected 6 fields, found %d", len(parts)))
	}

	pos := board.NewPosition()

	rank, file := board.Rank8, board.FileA
	ranksSeen := 1
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return nil, fail(fen, "rank does not sum to 8 squares")
			}
			if rank == board.Rank1 {
				return nil, fail(fen, "too many ranks")
			}
			rank--
			file = board.FileA
			ranksSeen++

		case unicode.IsDigit(r):
			n := int(r - '0')
			if n < 1 || n > 8 || int(file)+n > 8 {
				return nil, fail(fen, "invalid blank-square count")
			}
			file += board.File(n)

		case unicode.IsLetter(r):
			if int(file) >= 8 {
				return nil, fail(fen, "rank overflows 8 squares")
			}
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fail(fen, fmt.Sprintf("invalid piece letter %q", r))
			}
			pos.PlacePiece(color, piece, board.NewSquare(file, rank))
			file++

		default:
			return nil, fail(fen, fmt.Sprintf("invalid character %q", r))
		}
	}
	if file != board.NumFiles || ranksSeen != 8 {
		return nil, fail(fen, "piece placement does not describe exactly 8 ranks of 8 squares")
	}

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fail(fen, "invalid active color")
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fail(fen, "invalid castling availability")
	}

	var epSquare board.Square
	epValid := false
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fail(fen, "invalid en passant target")
		}
		if sq.Rank() != board.Rank3 && sq.Rank() != board.Rank6 {
			return nil, fail(fen, "en passant target not on rank 3 or 6")
		}
		if err := validateEnPassant(pos, active, sq); err != nil {
			return nil, fail(fen, err.Error())
		}
		epSquare, epValid = sq, true
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fail(fen, "invalid halfmove clock")
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fail(fen, "invalid fullmove number")
	}

	if err := validatePieceCounts(pos); err != nil {
		return nil, fail(fen, err.Error())
	}
	if err := validateCastlingRights(pos, castling); err != nil {
		return nil, fail(fen, err.Error())
	}

	pos.SetStartState(active, castling, epSquare, epValid, halfmove, fullmove)
	return pos, nil
}

// validatePieceCounts rejects some piece placements no legal game can reach: a side without
// exactly one king, more than 8 pawns, or more than 16 pieces in total. Officer counts are
// not checked one by one, since promotions can raise them.
func validatePieceCounts(pos *board.Position) error {
	for _, c := range []board.Color{board.White, board.Black} {
		kings := pos.PieceBB(c, board.King).PopCount()
		if kings != 1 {
			return fmt.Errorf("%v has %d kings, expected exactly 1", c, kings)
		}
		if n := pos.PieceBB(c, board.Pawn).PopCount(); n > 8 {
			return fmt.Errorf("%v has %d pawns, expected at most 8", c, n)
		}
		if n := pos.ColorBB(c).PopCount(); n > 16 {
			return fmt.Errorf("%v has %d pieces, expected at most 16", c, n)
		}
	}
	return nil
}

// validateCastlingRights rejects a castling flag whose king or rook is not on its home
// square: such a right could never have been earned, regardless of move history.
func validateCastlingRights(pos *board.Position, castling board.Castling) error {
	check := func(right board.Castling, king, rook board.Square, rookPiece board.Color) error {
		if !castling.IsAllowed(right) {
			return nil
		}
		if c, p, ok := pos.Square(king); !ok || p != board.King || c != rookPiece {
			return fmt.Errorf("castling right %v set without king on %v", right, king)
		}
		if c, p, ok := pos.Square(rook); !ok || p != board.Rook || c != rookPiece {
			return fmt.Errorf("castling right %v set without rook on %v", right, rook)
		}
		return nil
	}
	if err := check(board.WhiteKingSideCastle, board.E1, board.H1, board.White); err != nil {
		return err
	}
	if err := check(board.WhiteQueenSideCastle, board.E1, board.A1, board.White); err != nil {
		return err
	}
	if err := check(board.BlackKingSideCastle, board.E8, board.H8, board.Black); err != nil {
		return err
	}
	if err := check(board.BlackQueenSideCastle, board.E8, board.A8, board.Black); err != nil {
		return err
	}
	return nil
}

// validateEnPassant rejects an en-passant target that is not consistent with a pawn having
// just made the double push it implies: the mover must be the side that can capture, and the
// opponent pawn must actually sit where that double push would have left it.
func validateEnPassant(pos *board.Position, active board.Color, sq board.Square) error {
	var moverRank board.Rank
	var mover board.Color
	switch sq.Rank() {
	case board.Rank3:
		moverRank, mover = board.Rank4, board.White
	default:
		moverRank, mover = board.Rank5, board.Black
	}
	if active != mover.Opponent() {
		return fmt.Errorf("en passant target %v inconsistent with active color %v", sq, active)
	}
	pawnSq := board.NewSquare(sq.File(), moverRank)
	if c, p, ok := pos.Square(pawnSq); !ok || p != board.Pawn || c != mover {
		return fmt.Errorf("en passant target %v has no %v pawn on %v", sq, mover, pawnSq)
	}
	return nil
}

// Encode renders pos as a FEN record.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := board.NumRanks - 1; ; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, board.Rank(r)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == 0 {
			break
		}
		sb.WriteString("/")
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.Turn()), printCastling(pos.Castling()), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
