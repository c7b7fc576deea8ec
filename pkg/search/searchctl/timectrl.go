// Package searchctl contains the time-control and option plumbing the UCI driver uses to
// launch and bound iterative-deepening searches.
package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/arborchess/arbor/pkg/board"
)

// TimeControl carries the UCI "go" time parameters: remaining clock per side, increments,
// and moves-to-go if the GUI is using a classical time control.
type TimeControl struct {
	White, Black         time.Duration
	WhiteInc, BlackInc   time.Duration
	MovesToGo            int // 0 == rest of game
	MoveTime             time.Duration // "go movetime N": fixed time for this move only, overrides clocks
}

// Limits returns the soft and hard time budgets for the side to move: after the soft limit,
// no new iterative-deepening depth is started; the hard limit forcibly halts an in-flight
// search. Assumes 40 moves remain if MovesToGo is unset.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	if t.MoveTime > 0 {
		return t.MoveTime, t.MoveTime
	}

	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	moves := time.Duration(40)
	if t.MovesToGo > 0 {
		moves = time.Duration(t.MovesToGo) + 1
	}

	soft = remainder/(2*moves) + inc/2
	hard = 3 * soft
	if hard > remainder/2 {
		hard = remainder / 2
	}
	return soft, hard
}

func (t TimeControl) String() string {
	if t.MoveTime > 0 {
		return fmt.Sprintf("movetime=%v", t.MoveTime)
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.MovesToGo)
}

// EnforceTimeControl schedules a hard halt at the time-control's hard limit, if set, and
// returns the soft limit the iterative-deepening loop should stop starting new depths at.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "time control limits for %v: [soft=%v, hard=%v]", c, soft, hard)
	return soft, true
}
