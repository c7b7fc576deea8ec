package search

import (
	"math"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/eval"
)

// Tuning constants named directly after the algorithm they parameterize; see the null-move
// and late-move-reduction steps in run.negamax.
const (
	NMPDepth      = 3
	NMPReduction  = 2
	LMRDepth      = 3
	maxQDepth     = 100
	repetitionHit = 2 // occurrence count (including current) that triggers the in-search draw guard
)

// Control is the cooperative cancellation signal shared by every node of one search; it is
// checked cheaply and often rather than threaded through a context.Context, since the search
// hot path must not allocate or do interface dispatch per node.
type Control struct {
	stopped  func() bool
	deadline func() bool // not set by NewControl and never polled; only stopped is checked
}

func NewControl(stopped func() bool) *Control {
	return &Control{stopped: stopped}
}

func (c *Control) isStopped() bool {
	return c.stopped != nil && c.stopped()
}

// run holds the mutable state of one iterative-deepening search: the position being
// searched (mutated in place via Make/Unmake and always restored before run.negamax
// returns), the shared heuristic tables, and node accounting.
type run struct {
	pos     *board.Position
	tt      TranspositionTable
	killers *KillerTable
	history *HistoryTable
	// posHistory is the game-spanning position-history set (distinct from history, the
	// move-ordering history heuristic table above); nil when the caller supplied none.
	posHistory *board.PositionHistory
	pv         *pvTable
	eval       eval.Evaluator
	ctrl       *Control
	nodes      uint64
}

// negamax implements principal variation search with null-move pruning, late-move
// reductions, mate-distance pruning, transposition-table probing/storing, and killer/history
// move ordering. It returns the score from the side-to-move's perspective at ply, and
// populates r.pv for the node on a PV line.
func (r *run) negamax(depth, ply int, alpha, beta board.Score, canNull bool) board.Score {
	r.nodes++
	r.pv.clear(ply)

	if r.ctrl.isStopped() {
		return 0
	}

	root := ply == 0
	pvNode := alpha != beta-1

	if !root {
		if a := board.Score(ply) - board.MateValue; alpha < a {
			alpha = a
		}
		if b := board.MateValue - board.Score(ply) - 1; beta > b {
			beta = b
		}
		if alpha >= beta {
			return alpha
		}
		if r.pos.IsRepetition(repetitionHit) || r.pos.IsFiftyMoves() || r.pos.IsInsufficientMaterial() {
			return board.DrawValue
		}
		if r.posHistory != nil && r.posHistory.Contains(r.pos.PieceStateKey()) {
			return board.DrawValue
		}
	}

	if depth <= 0 {
		return r.quiescence(ply, alpha, beta)
	}

	inCheck := r.pos.IsCheck()
	origAlpha := alpha

	hash := r.pos.ZobristHash()
	var hashMove board.Move
	hasHash := false
	if bound, ttDepth, score, move, ok := r.tt.Read(hash); ok {
		hashMove, hasHash = move, true
		if ttDepth >= depth {
			switch bound {
			case ExactBound:
				return score
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if !root && depth >= NMPDepth && canNull && !inCheck && !pvNode && hasNonPawnMaterial(r.pos) {
		r.pos.PushNull()
		score := -r.negamax(depth-1-NMPReduction, ply+1, -beta, -beta+1, false)
		r.pos.PopNull()
		if score >= beta {
			r.tt.Write(hash, LowerBound, depth, score, board.Move{})
			return score
		}
	}

	moves := board.GenerateLegal(r.pos)
	if len(moves) == 0 {
		if inCheck {
			return -board.MateValue + board.Score(ply)
		}
		return board.DrawValue
	}

	ml := board.NewMoveList(extractMoves(moves), orderingFn(r.pos, hashMove, hasHash, r.killers, r.history, ply))

	var best board.Score = -board.MateValue - 1
	var bestMove board.Move
	foundPV := false
	triedCount := 0

	for {
		m, ok := ml.Next()
		if !ok {
			break
		}

		tactical := isCaptureOrEP(r.pos, m) || m.Promotion != board.NoPiece

		r.pos.Make(m)

		var score board.Score
		if foundPV {
			score = -r.negamax(depth-1, ply+1, -alpha-1, -alpha, true)
			if score > alpha && score < beta {
				score = -r.negamax(depth-1, ply+1, -beta, -alpha, true)
			}
		} else {
			reduction := 0
			if depth >= LMRDepth && !inCheck && !root && !tactical {
				reduction = lmrReduction(depth, triedCount)
			}
			score = -r.negamax(depth-1-reduction, ply+1, -beta, -alpha, true)
			if reduction > 0 && score > alpha {
				score = -r.negamax(depth-1, ply+1, -beta, -alpha, true)
			}
		}

		r.pos.Unmake()
		triedCount++

		if r.ctrl.isStopped() {
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			foundPV = true
			r.pv.update(ply, m, r.pv.get(ply+1))

			if alpha >= beta {
				if !tactical {
					r.killers.Add(ply, m)
					r.history.Add(r.pos.Turn(), m, depth)
				}
				break
			}
			if !tactical {
				r.history.Add(r.pos.Turn(), m, depth)
			}
		}
	}

	var bound Bound
	switch {
	case best >= beta:
		bound = LowerBound
	case best <= origAlpha:
		bound = UpperBound
	default:
		bound = ExactBound
	}
	r.tt.Write(hash, bound, depth, best, bestMove)

	return best
}

func extractMoves(scored []board.ScoredMove) []board.Move {
	out := make([]board.Move, len(scored))
	for i, sm := range scored {
		out[i] = sm.Move
	}
	return out
}

func hasNonPawnMaterial(pos *board.Position) bool {
	us := pos.Turn()
	count := 0
	for p := board.Knight; p <= board.Queen; p++ {
		count += pos.PieceBB(us, p).PopCount()
	}
	return count >= 2
}

// lmrReduction computes the late-move reduction for the current depth and the number of
// moves already tried at this node (0 for the first move).
func lmrReduction(depth, triedCount int) int {
	r := int(0.5 * (math.Sqrt(float64(depth-1)) + math.Sqrt(float64(triedCount))))
	if r > depth-1 {
		r = depth - 1
	}
	if r < 0 {
		r = 0
	}
	return r
}
