package eval

import "github.com/arborchess/arbor/pkg/board"

// Evaluator is a static position evaluator; Random composes with Material+PST evaluation to
// inject a small amount of noise (see random.go), mirroring how the search layer blends a
// primary evaluator with auxiliary ones.
type Evaluator interface {
	Evaluate(pos *board.Position) board.Score
}

// Default is the tapered material+piece-square evaluator described by Evaluate.
type Default struct{}

// Evaluate returns pos's score from the side-to-move's perspective, in centipawns. It
// handles draw detection (insufficient material, 75-move rule, repetition is left to the
// search, which has the position history); it does not detect checkmate/stalemate, since
// that requires a legal-move probe the search already performs before calling Evaluate.
func (Default) Evaluate(pos *board.Position) board.Score {
	if pos.IsInsufficientMaterial() || pos.IsSeventyFiveMoves() {
		return board.DrawValue
	}

	phase := Phase(pos)
	mgFrac := float64(phase) / float64(MaxPhase)
	egFrac := 1 - mgFrac

	material := taperedMaterial(pos, mgFrac, egFrac)
	pst := taperedPST(pos, mgFrac, egFrac)

	score := material + pst
	if pos.Turn() == board.Black {
		score = -score
	}
	return board.Score(score).Clamp()
}

// Evaluate is a package-level convenience wrapping Default{}.Evaluate, used by callers that
// do not need to swap in a different evaluator.
func Evaluate(pos *board.Position) board.Score {
	return Default{}.Evaluate(pos)
}
