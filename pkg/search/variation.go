package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/arborchess/arbor/pkg/board"
)

// PV is the result of searching to some depth: the principal variation, its score, and node
// accounting, reported to the UCI layer after every completed iterative-deepening depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
}

func (p PV) String() string {
	parts := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		parts[i] = m.String()
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, strings.Join(parts, " "))
}

// pvTable is a triangular principal-variation table: pvTable.line[ply] holds the best
// continuation found from that ply onward, rebuilt bottom-up as the search unwinds. At a
// node that raises alpha, the caller copies []Move{move} followed by the child's line into
// its own slot.
type pvTable struct {
	line [][]board.Move
}

func newPVTable(maxPly int) *pvTable {
	return &pvTable{line: make([][]board.Move, maxPly+1)}
}

func (t *pvTable) update(ply int, m board.Move, child []board.Move) {
	line := make([]board.Move, 0, len(child)+1)
	line = append(line, m)
	line = append(line, child...)
	t.line[ply] = line
}

func (t *pvTable) clear(ply int) {
	if ply < len(t.line) {
		t.line[ply] = nil
	}
}

func (t *pvTable) get(ply int) []board.Move {
	if ply >= len(t.line) {
		return nil
	}
	return t.line[ply]
}
