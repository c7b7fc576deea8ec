package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/search"
)

// Options hold the dynamic parameters of a single "go" command.
type Options struct {
	DepthLimit  lang.Optional[int]
	TimeControl lang.Optional[TimeControl]
	// History is the game-spanning position-history set the repetition guard consults, in
	// addition to the line explored within this search. Nil means no game history is known
	// (e.g. analyzing an arbitrary FEN with no prior moves).
	History *board.PositionHistory
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher starts an iterative-deepening search from a position, streaming a PV after every
// completed depth. The caller owns pos for the duration of the search: Launch takes it over
// (mutating it via Make/Unmake) until the returned Handle is halted and the PV channel
// closes.
type Launcher interface {
	Launch(ctx context.Context, pos *board.Position, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the engine stop an in-flight search, synchronously returning its best PV so
// far. Halt is idempotent and safe to call before the first depth has completed (it blocks
// until depth 1, which always completes per the cancellation contract).
type Handle interface {
	Halt() search.PV
}
