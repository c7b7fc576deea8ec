// Package book reads Polyglot-format binary opening books and probes them for a position.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/arborchess/arbor/pkg/board"
)

// entry is a single Polyglot book entry: a candidate move and its relative weight.
type entry struct {
	move   board.Move
	weight uint16
}

// Book is an in-memory Polyglot opening book, keyed by the Polyglot position hash (which
// differs from this engine's internal Zobrist hash: Polyglot defines its own fixed
// random-number table so that books are portable between engines).
type Book struct {
	entries map[uint64][]entry
	rand    *rand.Rand
}

// New returns an empty book; Probe on it always misses.
func New() *Book {
	return &Book{entries: make(map[uint64][]entry)}
}

// Load reads a Polyglot .bin opening book from filename.
func Load(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads a Polyglot opening book from r. Each entry is 16 bytes, big-endian:
// 8 bytes position key, 2 bytes move, 2 bytes weight, 4 bytes learn data (ignored here).
func LoadReader(r io.Reader) (*Book, error) {
	b := New()

	var raw [16]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveBits := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		m, ok := decodeMove(moveBits)
		if !ok {
			continue
		}
		b.entries[key] = append(b.entries[key], entry{move: m, weight: weight})
	}
	return b, nil
}

// decodeMove unpacks a Polyglot move encoding: bits 0-5 to-square, 6-11 from-square, 12-14
// promotion piece (0=none, 1=knight, 2=bishop, 3=rook, 4=queen), in Polyglot's own
// file+8*rank square numbering, which happens to match this engine's A1=0..H8=63 scheme.
// Castling is Polyglot-encoded as king-captures-own-rook; it is rewritten to this engine's
// two-square-king-hop convention.
func decodeMove(data uint16) (board.Move, bool) {
	toFile := board.File(data & 7)
	toRank := board.Rank((data >> 3) & 7)
	fromFile := board.File((data >> 6) & 7)
	fromRank := board.Rank((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	if data == 0 {
		return board.Move{}, false
	}

	if promo > 0 && promo <= 4 {
		promoPieces := [5]board.Piece{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		return board.NewPromotion(from, to, promoPieces[promo]), true
	}
	return board.NewMove(from, to), true
}

// Probe returns a weighted-random book move for pos, and false if the book has no entry for
// it (callers should stop consulting the book for the rest of the game once that happens).
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.Move{}, false
	}

	entries := b.entries[polyglotHash(pos)]
	if len(entries) == 0 {
		return board.Move{}, false
	}

	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].weight > sorted[j].weight })

	var total uint32
	for _, e := range sorted {
		total += uint32(e.weight)
	}
	if total == 0 {
		return sorted[0].move, true
	}

	r := b.source().Uint32() % total
	var cumulative uint32
	for _, e := range sorted {
		cumulative += uint32(e.weight)
		if r < cumulative {
			return e.move, true
		}
	}
	return sorted[len(sorted)-1].move, true
}

func (b *Book) source() *rand.Rand {
	if b.rand == nil {
		b.rand = rand.New(rand.NewSource(1))
	}
	return b.rand
}
