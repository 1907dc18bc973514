// Package board implements shogi board representation using 128-bit bitboards.
package board

import (
	"errors"
	"fmt"
)

// Edge is the side length of the bordered board: nine playable files and
// ranks plus a one-square frame on every side.
const Edge = 11

// Square represents a square on the bordered board (0-120).
// Index = row*11 + column; columns and rows 1..9 are playable, 0 and 10 are the frame.
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = 127

// ErrInvalidSquare is returned for malformed square text.
var ErrInvalidSquare = errors.New("invalid square")

// NewSquare creates a square from column and row (1-indexed for playable squares).
func NewSquare(col, row int) Square {
	return Square(row*Edge + col)
}

// Column returns the column of the square (1-9 when playable).
func (sq Square) Column() int {
	return int(sq) % Edge
}

// Row returns the row of the square (1-9 when playable).
func (sq Square) Row() int {
	return int(sq) / Edge
}

// IsPlayable returns true if the square is inside the 9x9 board.
func (sq Square) IsPlayable() bool {
	if int(sq) >= NumBits {
		return false
	}
	c, r := sq.Column(), sq.Row()
	return c >= 1 && c <= 9 && r >= 1 && r <= 9
}

// String returns the column digit followed by the row letter (e.g. "7c").
func (sq Square) String() string {
	if !sq.IsPlayable() {
		return "-"
	}
	return fmt.Sprintf("%d%c", sq.Column(), 'a'+sq.Row()-1)
}

// ParseSquare parses "<column digit><row letter>" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0] - '0')
	row := int(s[1]-'a') + 1

	if col < 1 || col > 9 || row < 1 || row > 9 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(col, row), nil
}
