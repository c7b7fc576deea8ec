package search

import "github.com/arborchess/arbor/pkg/board"

// HistoryTable scores quiet moves by (color, from, to) using the history heuristic: each
// time a quiet move raises alpha (or causes a cutoff) at depth d, its counter gains 2^d, so
// moves that have repeatedly worked well across the tree are tried earlier even away from
// their original line.
type HistoryTable struct {
	counters [board.NumColors][board.NumSquares][board.NumSquares]int64
}

func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Add increments the counter for (c, m.From, m.To) by 2^depth.
func (h *HistoryTable) Add(c board.Color, m board.Move, depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth > 62 {
		depth = 62
	}
	h.counters[c][m.From][m.To] += int64(1) << uint(depth)
}

// Score returns the current history counter for (c, m.From, m.To).
func (h *HistoryTable) Score(c board.Color, m board.Move) int64 {
	return h.counters[c][m.From][m.To]
}

// Clear resets every counter to zero, e.g. between separate searches from a UCI "ucinewgame".
func (h *HistoryTable) Clear() {
	h.counters = [board.NumColors][board.NumSquares][board.NumSquares]int64{}
}
