// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"

	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/engine"
	"github.com/arborchess/arbor/pkg/search"
	"github.com/arborchess/arbor/pkg/search/searchctl"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	d.out <- "option name Hash type spin default 32 min 0 max 4096"
	d.out <- "option name Depth type spin default 0 min 0 max 64"
	d.out <- "option name Noise type spin default 0 min 0 max 100"
	d.out <- "option name OwnBook type check default false"

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 || parts[0] == "" {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				// No additional debug stream. Accepted and ignored.

			case "setoption":
				d.handleSetOption(args)

			case "register":
				// Registration is not required by this engine.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				if err := d.handlePosition(ctx, line, args); err != nil {
					logw.Errorf(ctx, "Invalid position: %v: %v", line, err)
					d.lastPosition = ""
				}

			case "go":
				d.handleGo(ctx, args)

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// Pondering is not implemented; a ponderhit is a no-op since the engine
				// never starts a speculative search on its own.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handleSetOption(args []string) {
	var name, value string
	if len(args) > 1 {
		name = args[1]
	}
	if len(args) > 3 {
		value = strings.Join(args[3:], " ")
	}

	switch name {
	case "Hash":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			d.e.SetHash(uint(n))
		}
	case "Depth":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			d.e.SetDepth(uint(n))
		}
	case "Noise":
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			d.e.SetNoise(uint(n))
		}
	case "OwnBook":
		if b, err := strconv.ParseBool(value); err == nil {
			d.e.SetOwnBook(b)
		}
	}
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) error {
	d.ensureInactive(ctx)

	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, arg := range strings.Split(moves, " ") {
			if arg == "" || arg == "moves" {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				return err
			}
		}
		d.lastPosition = line
		return nil
	}

	position := fen.Initial
	rest := args
	if len(args) >= 1 && args[0] == "fen" {
		if len(args) < 7 {
			return fmt.Errorf("short fen in position command")
		}
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	} else if len(args) >= 1 && args[0] == "startpos" {
		rest = args[1:]
	}

	if err := d.e.Reset(ctx, position); err != nil {
		return err
	}

	move := false
	for _, arg := range rest {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			return err
		}
	}
	d.lastPosition = line
	return nil
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	var opt searchctl.Options
	var tc searchctl.TimeControl
	haveTC := false
	infinite := false

	for i := 0; i < len(args); i++ {
		cmd := args[i]
		switch cmd {
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime":
			i++
			if i == len(args) {
				logw.Errorf(ctx, "No argument for %v", cmd)
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "Invalid argument for %v: %v", cmd, err)
				return
			}

			switch cmd {
			case "depth":
				opt.DepthLimit = lang.Some(n)
			case "wtime":
				tc.White = time.Millisecond * time.Duration(n)
				haveTC = true
			case "btime":
				tc.Black = time.Millisecond * time.Duration(n)
				haveTC = true
			case "winc":
				tc.WhiteInc = time.Millisecond * time.Duration(n)
				haveTC = true
			case "binc":
				tc.BlackInc = time.Millisecond * time.Duration(n)
				haveTC = true
			case "movestogo":
				tc.MovesToGo = n
				haveTC = true
			case "movetime":
				tc.MoveTime = time.Millisecond * time.Duration(n)
				haveTC = true
			}

		case "infinite":
			infinite = true

		default:
			// searchmoves, ponder, nodes, mate: not implemented. Silently ignored.
		}
	}

	if haveTC {
		opt.TimeControl = lang.Some(tc)
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		if !infinite {
			d.searchCompleted(ctx, last)
		}
	}()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if mate, ok := pv.Score.MateIn(); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", mate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		var moves []string
		for _, m := range pv.Moves {
			moves = append(moves, m.String())
		}
		parts = append(parts, "pv "+strings.Join(moves, " "))
	}

	return strings.Join(parts, " ")
}
