package searchctl

import (
	"context"
	"time"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/search"
)

// Iterative adapts a search.Iterative (depth/score/nodes loop) to the Launcher interface by
// translating the dynamic per-"go" Options into a soft/hard time budget: the hard limit is
// enforced by halting the search from a timer once launched, the soft limit by telling the
// inner loop not to start another depth.
type Iterative struct {
	Inner *search.Iterative
}

func (i *Iterative) Launch(ctx context.Context, pos *board.Position, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV) {
	inner := search.Options{History: opt.History}
	if v, ok := opt.DepthLimit.V(); ok {
		inner.DepthLimit = v
	}
	if tc, ok := opt.TimeControl.V(); ok {
		soft, _ := tc.Limits(pos.Turn())
		inner.SoftDeadline = time.Now().Add(soft)
	}

	h, out := i.Inner.Launch(ctx, pos, tt, inner)
	EnforceTimeControl(ctx, h, opt.TimeControl, pos.Turn())
	return h, out
}
