package search

import (
	"math"

	"github.com/arborchess/arbor/pkg/board"
)

// Move ordering tiers, highest priority first: TT (hash) move, captures and promotions in
// MVV-LVA order, killer quiets, then remaining quiets by history counter. Each tier occupies
// a disjoint numeric band so within-tier ordering (e.g. MVV-LVA, history magnitude) never
// bleeds into the next tier.
const (
	priorityHash    = math.MaxInt32
	priorityTactic  = int32(1) << 24
	priorityKiller0 = int32(1) << 22
	priorityKiller1 = priorityKiller0 - 1
)

func isCaptureOrEP(pos *board.Position, m board.Move) bool {
	if _, _, ok := pos.Square(m.To); ok {
		return true
	}
	_, moving, _ := pos.Square(m.From)
	if ep, valid := pos.EnPassant(); valid && moving == board.Pawn && m.To == ep {
		return true
	}
	return false
}

// orderingFn builds the move-priority function for the given node: hash (TT) move first,
// then tactical moves (captures/promotions) by MVV-LVA, then killers, then quiets by
// history. hasHash distinguishes "no hash move" from a zero-value Move (a1a1, which is never
// generated), so the zero value is not matched against the move list by accident.
func orderingFn(pos *board.Position, hashMove board.Move, hasHash bool, killers *KillerTable, history *HistoryTable, ply int) board.MovePriorityFn {
	turn := pos.Turn()
	k0, k1 := killers.Probe(ply)

	return func(m board.Move) board.MovePriority {
		if hasHash && hashMove.Equals(m) {
			return priorityHash
		}
		if isCaptureOrEP(pos, m) || m.Promotion != board.NoPiece {
			return board.MovePriority(priorityTactic + board.MVVLVA(pos, m))
		}
		if k0.Equals(m) {
			return priorityKiller0
		}
		if k1.Equals(m) {
			return priorityKiller1
		}
		h := history.Score(turn, m)
		if h >= int64(priorityKiller1) {
			h = int64(priorityKiller1) - 1
		}
		return board.MovePriority(h)
	}
}
