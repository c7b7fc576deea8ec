package eval

import (
	"math/rand"

	"github.com/arborchess/arbor/pkg/board"
)

// Random adds a small amount of noise to break ties between otherwise-equal evaluations,
// e.g. to avoid always repeating the exact same game against itself. Limit is the peak
// amplitude in centipawns, split evenly above and below zero; a non-positive limit disables
// it entirely.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(pos *board.Position) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}
