package eval

import "github.com/arborchess/arbor/pkg/board"

// noisy composes the default material+PST evaluator with a Random noise term, so the
// search layer only needs one Evaluator regardless of whether noise is configured.
type noisy struct {
	primary Evaluator
	noise   Random
}

// WithNoise wraps primary with the given noise term. A zero Random (limit <= 0) is a no-op.
func WithNoise(primary Evaluator, noise Random) Evaluator {
	return noisy{primary: primary, noise: noise}
}

func (n noisy) Evaluate(pos *board.Position) board.Score {
	return (n.primary.Evaluate(pos) + n.noise.Evaluate(pos)).Clamp()
}
