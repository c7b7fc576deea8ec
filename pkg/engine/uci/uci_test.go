package uci

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/engine"
	"github.com/arborchess/arbor/pkg/search"
)

func TestPrintPVFormatsCpScore(t *testing.T) {
	pv := search.PV{
		Depth: 4,
		Score: board.Score(37),
		Nodes: 1000,
		Time:  time.Second,
		Moves: []board.Move{{From: board.E2, To: board.E4}},
	}

	line := printPV(pv)
	assert.Contains(t, line, "depth 4")
	assert.Contains(t, line, "score cp 37")
	assert.Contains(t, line, "nodes 1000")
	assert.Contains(t, line, "nps 1000")
	assert.Contains(t, line, "pv e2e4")
}

func TestPrintPVFormatsMateScore(t *testing.T) {
	pv := search.PV{
		Depth: 3,
		Score: board.MateValue - 1,
		Moves: []board.Move{{From: board.D1, To: board.D8}},
	}

	line := printPV(pv)
	assert.Contains(t, line, "score mate")
	assert.NotContains(t, line, "score cp")
}

// readUntil reads lines from out until pred matches one, or fails the test after a bounded
// number of lines (guards against the driver wedging instead of hanging the test forever).
func readUntil(t *testing.T, out <-chan string, pred func(string) bool) string {
	t.Helper()
	for i := 0; i < 1000; i++ {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("output channel closed before match")
			}
			if pred(line) {
				return line
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for matching output line")
		}
	}
	t.Fatalf("exceeded line budget waiting for match")
	return ""
}

func TestDriverHandshakeAndBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	in := make(chan string, 10)
	d, out := NewDriver(ctx, e, in)
	defer d.Close()

	idLine := readUntil(t, out, func(s string) bool { return strings.HasPrefix(s, "id name") })
	assert.Contains(t, idLine, "arbor")

	readUntil(t, out, func(s string) bool { return s == "uciok" })

	in <- "isready"
	readUntil(t, out, func(s string) bool { return s == "readyok" })

	in <- "position startpos"
	in <- "go depth 2"

	best := readUntil(t, out, func(s string) bool { return strings.HasPrefix(s, "bestmove") })
	assert.True(t, strings.HasPrefix(best, "bestmove "))

	in <- "quit"
}

func TestDriverSetOptionAppliesToEngine(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "arbor", "tester")
	defer e.Close()

	in := make(chan string, 10)
	d, out := NewDriver(ctx, e, in)
	defer d.Close()

	readUntil(t, out, func(s string) bool { return s == "uciok" })

	in <- "setoption name Depth value 5"
	in <- "isready"
	readUntil(t, out, func(s string) bool { return s == "readyok" })

	require.EqualValues(t, 5, e.Options().Depth)

	in <- "quit"
}
