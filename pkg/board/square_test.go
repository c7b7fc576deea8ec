package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborchess/arbor/pkg/board"
)

func TestSquareNumbering(t *testing.T) {
	assert.Equal(t, board.Square(0), board.A1)
	assert.Equal(t, board.Square(63), board.H8)
	assert.Equal(t, board.File(0), board.A1.File())
	assert.Equal(t, board.Rank(0), board.A1.Rank())
	assert.Equal(t, board.File(7), board.H8.File())
	assert.Equal(t, board.Rank(7), board.H8.Rank())
}

func TestSquareMirror(t *testing.T) {
	assert.Equal(t, board.A8, board.A1.Mirror())
	assert.Equal(t, board.H1, board.H8.Mirror())
	assert.Equal(t, board.E4, board.E5.Mirror())
}

func TestParseSquareStr(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.E4, sq)

	_, err = board.ParseSquareStr("z9")
	assert.Error(t, err)
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "e4", board.E4.String())
	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "h8", board.H8.String())
}
