package board

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// MovePriority is the move-ordering key: higher values are tried first.
type MovePriority int32

// MovePriorityFn assigns a priority to a move for ordering purposes.
type MovePriorityFn func(move Move) MovePriority

// First puts the given move first, ahead of everything else, falling back to fn for the
// rest. Used to force the TT/PV move to be searched before heuristic ordering kicks in.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return math.MaxInt32
		}
		return fn(m)
	}
}

// SortByPriority sorts moves by descending priority, preserving relative order of ties.
func SortByPriority(moves []Move, fn MovePriorityFn) {
	sort.SliceStable(moves, func(i, j int) bool {
		return fn(moves[i]) > fn(moves[j])
	})
}

// MoveList is a fixed-size move priority queue used to stage move generation: the search
// loop repeatedly pulls the single highest-priority remaining move rather than sorting the
// whole list up front, which matters when a beta cutoff ends the loop early.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a move list with priorities assigned by fn, heap-ordered so that Next
// always returns the current maximum.
func NewMoveList(moves []Move, fn MovePriorityFn) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops and returns the highest-priority remaining move.
func (ml *MoveList) Next() (Move, bool) {
	if ml.Size() == 0 {
		return Move{}, false
	}
	ret := heap.Pop(&ml.h).(elm)
	return ret.m, true
}

func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].m, ml.Size())
}

type elm struct {
	m   Move
	val MovePriority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { panic("board: MoveList is a fixed-size heap") }

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	ret := (*h)[n-1]
	*h = (*h)[0 : n-1]
	return ret
}
