package engine

import "github.com/arborchess/arbor/pkg/board"

// Game wraps the position under play with the PositionHistory set that records every
// position reached so far in the game, not merely within one search's explored line.
// Engine hands a fresh history snapshot to each search so the negamax repetition guard can
// see repeats against moves already played. The history starts at the position the game was
// created from (a FEN loaded mid-game contributes only that one position) and grows with
// each Make.
type Game struct {
	pos     *board.Position
	history *board.PositionHistory
}

// NewGame starts a game rooted at pos, with pos's own position as the first history entry.
func NewGame(pos *board.Position) *Game {
	g := &Game{pos: pos, history: board.NewPositionHistory()}
	g.history.Push(pos.PieceStateKey())
	return g
}

func (g *Game) Position() *board.Position {
	return g.pos
}

// Make plays m and records the resulting position in the game's history.
func (g *Game) Make(m board.Move) {
	g.pos.Make(m)
	g.history.Push(g.pos.PieceStateKey())
}

// Unmake takes back the latest move, unwinding the history entry it added.
func (g *Game) Unmake() {
	g.history.Pop(g.pos.PieceStateKey())
	g.pos.Unmake()
}

func (g *Game) CanUnmake() bool {
	return g.pos.CanUnmake()
}

// History returns a snapshot of the game's position-history set, safe to hand to a search
// running concurrently with further Make/Unmake calls on g.
func (g *Game) History() *board.PositionHistory {
	return g.history.Clone()
}
