package search

import "github.com/arborchess/arbor/pkg/board"

const killersPerPly = 2

// KillerTable holds, per search ply, up to two quiet moves that recently caused a beta
// cutoff there. They are tried early in move ordering on the theory that a move which
// refuted a sibling line is likely to refute this one too.
type KillerTable struct {
	killers [][killersPerPly]board.Move
}

func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{killers: make([][killersPerPly]board.Move, maxPly+1)}
}

// Add records m as a killer at ply, evicting the older slot. Re-adding the move already in
// the first slot is a no-op.
func (k *KillerTable) Add(ply int, m board.Move) {
	if ply >= len(k.killers) {
		return
	}
	slots := &k.killers[ply]
	if slots[0].Equals(m) {
		return
	}
	slots[1] = slots[0]
	slots[0] = m
}

// Probe returns the two killer moves for ply (zero value if unset).
func (k *KillerTable) Probe(ply int) (board.Move, board.Move) {
	if ply >= len(k.killers) {
		return board.Move{}, board.Move{}
	}
	return k.killers[ply][0], k.killers[ply][1]
}

// IsKiller reports whether m is one of ply's recorded killers.
func (k *KillerTable) IsKiller(ply int, m board.Move) bool {
	a, b := k.Probe(ply)
	return (a != board.Move{} && a.Equals(m)) || (b != board.Move{} && b.Equals(m))
}
