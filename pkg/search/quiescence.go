package search

import "github.com/arborchess/arbor/pkg/board"

// quiescence extends search along tactical lines only (captures, promotions, quiet checks,
// and — when in check — every evasion) until the position is "quiet", avoiding the horizon effect where a
// depth-limited search stops mid-exchange. stand-pat lets a side decline every further
// capture if its static evaluation already beats beta.
func (r *run) quiescence(ply int, alpha, beta board.Score) board.Score {
	r.nodes++

	if r.ctrl.isStopped() {
		return 0
	}
	if r.pos.IsInsufficientMaterial() || r.pos.IsFiftyMoves() {
		return board.DrawValue
	}

	inCheck := r.pos.IsCheck()

	var standPat board.Score
	if !inCheck {
		standPat = r.eval.Evaluate(r.pos)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	if ply >= maxQDepth {
		return alpha
	}

	var candidates []board.ScoredMove
	if inCheck {
		candidates = board.GenerateLegal(r.pos)
		if len(candidates) == 0 {
			return -board.MateValue + board.Score(ply)
		}
	} else {
		candidates = board.GenerateTacticalLegal(r.pos)
	}

	ml := board.NewMoveList(extractMoves(candidates), func(m board.Move) board.MovePriority {
		return board.MovePriority(board.MVVLVA(r.pos, m))
	})

	for {
		m, ok := ml.Next()
		if !ok {
			break
		}

		r.pos.Make(m)
		score := -r.quiescence(ply+1, -beta, -alpha)
		r.pos.Unmake()

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
