package board

import "fmt"

// MoveType tags a move with the category used for search ordering and for the UCI/PGN
// annotation layer. A move carries exactly one of these; Check is detected lazily (it is not
// known until the move is made), so generators may leave it as Other/Capture/Promotion and
// let the caller upgrade it after Position.Make reports the resulting side is in check.
type MoveType uint8

const (
	Other MoveType = iota
	Capture
	Promotion
	Check
)

func (t MoveType) String() string {
	switch t {
	case Capture:
		return "capture"
	case Promotion:
		return "promotion"
	case Check:
		return "check"
	default:
		return "other"
	}
}

// Move is a single, fully-specified chess move: source and destination square, and an
// optional promotion piece. It carries no board state of its own; Position.Make interprets
// it against the current position to discover capture/en-passant/castling side effects.
type Move struct {
	From      Square
	To        Square
	Promotion Piece // NoPiece unless this is a pawn promotion
}

// NewMove builds a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// NewPromotion builds a promoting move.
func NewPromotion(from, to Square, promo Piece) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// NullMove is the sentinel "pass" move used by null-move pruning. It is never legal and is
// never returned by move generation; Position.PushNull/PopNull bypass Move entirely.
var NullMove = Move{}

func (m Move) IsNull() bool {
	return m.From == m.To
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// String renders the move in long algebraic notation (UCI wire format), e.g. "e2e4",
// "e7e8q".
func (m Move) String() string {
	if m.Promotion == NoPiece {
		return fmt.Sprintf("%v%v", m.From, m.To)
	}
	return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
}

// ParseMove parses a UCI long-algebraic move string against no particular position; it only
// validates syntax (from/to squares and an optional trailing promotion letter), since
// legality/semantics require a Position to resolve.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("board: invalid move syntax: %q", s)
	}
	from, err := ParseSquareStr(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("board: invalid move %q: %w", s, err)
	}
	to, err := ParseSquareStr(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("board: invalid move %q: %w", s, err)
	}
	promo := NoPiece
	if len(s) == 5 {
		p, ok := ParsePiece(rune(s[4]))
		if !ok || p == Pawn || p == King {
			return Move{}, fmt.Errorf("board: invalid promotion piece in move %q", s)
		}
		promo = p
	}
	return Move{From: from, To: to, Promotion: promo}, nil
}

// ScoredMove pairs a move with its MoveType and an ordering key. Generation fills in Move and
// Type only and leaves Score zero; the search orders moves through a MovePriorityFn on a
// MoveList rather than through this field.
type ScoredMove struct {
	Move  Move
	Type  MoveType
	Score int32
}
