package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arborchess/arbor/pkg/board"
	"github.com/arborchess/arbor/pkg/board/fen"
	"github.com/arborchess/arbor/pkg/engine/book"
)

// Book represents an opening book. Once Find returns an empty list for a position, the
// caller should stop consulting the book for the rest of the game.
type Book interface {
	Find(ctx context.Context, fen string) ([]board.Move, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &lineBook{moves: map[string][]board.Move{}}

// NewBook builds an in-memory opening book out of human-authored opening lines, replaying
// each line from the initial position to validate it and key the result by truncated FEN.
func NewBook(lines []Line) (Book, error) {
	m := map[string]map[board.Move]bool{}
	for _, line := range lines {
		pos, err := fen.Decode(fen.Initial)
		if err != nil {
			return nil, err
		}
		key := fen.Initial

		for _, str := range line {
			next, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			found := false
			for _, candidate := range board.GenerateLegal(pos) {
				if !candidate.Move.Equals(next) {
					continue
				}
				found = true

				if m[fenKey(key)] == nil {
					m[fenKey(key)] = map[board.Move]bool{}
				}
				m[fenKey(key)][candidate.Move] = true

				pos.Make(candidate.Move)
				key = fen.Encode(pos)
				break
			}
			if !found {
				return nil, fmt.Errorf("invalid line '%v': move %v not legal", line, next)
			}
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range m {
		var list []board.Move
		for move := range v {
			list = append(list, move)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
		dedup[k] = list
	}
	return &lineBook{moves: dedup}, nil
}

type lineBook struct {
	moves map[string][]board.Move // cropped fen -> []move
}

func (b *lineBook) Find(ctx context.Context, pos string) ([]board.Move, error) {
	return b.moves[fenKey(pos)], nil
}

func fenKey(pos string) string {
	parts := strings.Split(pos, " ")
	if len(parts) < 4 {
		return pos
	}
	return strings.Join(parts[:4], " ")
}

// polyglotBook adapts a Polyglot binary book to the Book interface: it is keyed by live
// Position rather than by FEN line, so Find has to re-decode the FEN it is handed.
type polyglotBook struct {
	b *book.Book
}

// NewPolyglotBook wraps a loaded Polyglot book as a Book.
func NewPolyglotBook(b *book.Book) Book {
	return &polyglotBook{b: b}
}

func (p *polyglotBook) Find(ctx context.Context, position string) ([]board.Move, error) {
	pos, err := fen.Decode(position)
	if err != nil {
		return nil, err
	}
	if m, ok := p.b.Probe(pos); ok {
		return []board.Move{m}, nil
	}
	return nil, nil
}
