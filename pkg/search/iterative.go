package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/eval"
)

// Options hold the per-search depth bound and an optional soft time deadline; the hard
// deadline is layered on top by the searchctl package, which calls Halt on the returned
// Handle from a timer.
type Options struct {
	// DepthLimit caps the iterative-deepening loop; zero means no limit (run until halted).
	DepthLimit int
	// SoftDeadline, if non-zero, stops the loop from starting a new depth once passed; the
	// depth already in flight still completes normally.
	SoftDeadline time.Time
	// History is the game-spanning position-history set consulted by the repetition guard,
	// alongside the position's own in-line keys. Nil disables the game-spanning check.
	History *board.PositionHistory
}

func (o Options) String() string {
	switch {
	case o.DepthLimit > 0 && !o.SoftDeadline.IsZero():
		return fmt.Sprintf("[depth=%v, soft=%v]", o.DepthLimit, o.SoftDeadline)
	case o.DepthLimit > 0:
		return fmt.Sprintf("[depth=%v]", o.DepthLimit)
	case !o.SoftDeadline.IsZero():
		return fmt.Sprintf("[soft=%v]", o.SoftDeadline)
	default:
		return "[no limit]"
	}
}

// Launcher starts an iterative-deepening search in the background and streams a PV after
// every completed depth.
type Launcher interface {
	Launch(ctx context.Context, pos *board.Position, tt TranspositionTable, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop an in-flight search and retrieve its best result so far.
// Idempotent: calling Halt twice returns the same PV without side effects the second time.
type Handle interface {
	Halt() PV
}

// Iterative is the default Launcher: iterative deepening from depth 1, reusing one
// transposition table, one killer table and one history table across depths so later,
// deeper iterations benefit from the ordering information earlier ones produced.
type Iterative struct {
	Eval eval.Evaluator
}

func NewIterative(e eval.Evaluator) *Iterative {
	if e == nil {
		e = eval.Default{}
	}
	return &Iterative{Eval: e}
}

func (it *Iterative) Launch(ctx context.Context, pos *board.Position, tt TranspositionTable, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{init: make(chan struct{}), quit: make(chan struct{})}
	go h.process(ctx, it.Eval, pos, tt, opt, out)
	return h, out
}

type handle struct {
	init, quit         chan struct{}
	initialized, done  atomic.Bool

	mu sync.Mutex
	pv PV
}

func (h *handle) process(ctx context.Context, e eval.Evaluator, pos *board.Position, tt TranspositionTable, opt Options, out chan PV) {
	defer h.markInitialized()
	defer close(out)

	killers := NewKillerTable(maxQDepth + 256)
	history := NewHistoryTable()
	ctrl := NewControl(func() bool { return isClosed(h.quit) })

	for depth := 1; ; depth++ {
		start := time.Now()

		r := &run{pos: pos, tt: tt, killers: killers, history: history, posHistory: opt.History, pv: newPVTable(maxQDepth + 256), eval: e, ctrl: ctrl}
		score := r.negamax(depth, 0, -board.MateValue-1, board.MateValue+1, true)

		if isClosed(h.quit) && depth > 1 {
			return
		}

		pv := PV{
			Depth: depth,
			Moves: r.pv.get(0),
			Score: score,
			Nodes: r.nodes,
			Time:  time.Since(start),
		}

		logw.Debugf(ctx, "searched to depth %v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.markInitialized()

		if opt.DepthLimit > 0 && depth >= opt.DepthLimit {
			return
		}
		if isClosed(h.quit) {
			return
		}
		if score.IsMateScore() {
			return
		}
		if len(pv.Moves) == 0 {
			return
		}
		if !opt.SoftDeadline.IsZero() && time.Now().After(opt.SoftDeadline) {
			return
		}
	}
}

func (h *handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		close(h.quit)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
