package board

import (
	"errors"
	"fmt"
)

// Move encodes a shogi move in 16 bits:
// bits 0-6:   from square (0-120), or the dropped piece code for drops
// bits 7-13:  to square (0-120)
// bit 14:     promote
// bit 15:     drop
type Move uint16

// Move flags
const (
	FlagPromotion uint16 = 1 << 14
	FlagDrop      uint16 = 1 << 15
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// MaxMoves bounds the number of moves generated for one position.
const MaxMoves = 1024

// ErrInvalidMove is returned for malformed move text.
var ErrInvalidMove = errors.New("invalid move")

// NewMove creates a board move, optionally promoting.
func NewMove(from, to Square, promote bool) Move {
	m := Move(from) | Move(to)<<7
	if promote {
		m |= Move(FlagPromotion)
	}
	return m
}

// NewDrop creates a drop of piece onto to.
func NewDrop(piece Piece, to Square) Move {
	return Move(piece&0x7F) | Move(to)<<7 | Move(FlagDrop)
}

// From returns the origin square. Meaningless for drops.
func (m Move) From() Square {
	return Square(m & 0x7F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 7) & 0x7F)
}

// Piece returns the dropped piece (only valid if IsDrop() is true).
func (m Move) Piece() Piece {
	return Piece(m & 0x7F)
}

// IsPromotion returns true if the moving piece promotes.
func (m Move) IsPromotion() bool {
	return uint16(m)&FlagPromotion != 0
}

// IsDrop returns true if the move places a piece from hand.
func (m Move) IsDrop() bool {
	return uint16(m)&FlagDrop != 0
}

// String returns the move text: "7c7d", "7c7d+", "P*5e" (Black) or "p*5e" (White).
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	if m.IsDrop() {
		return m.Piece().String() + "*" + m.To().String()
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// ParseMove parses move text as produced by Move.String.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	if s[1] == '*' {
		if len(s) != 4 {
			return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
		}
		pc := PieceFromChar(s[0])
		if pc == NoPiece || pc.Type() == King {
			return NoMove, fmt.Errorf("%w: bad drop piece in %q", ErrInvalidMove, s)
		}
		return NewDrop(pc, to), nil
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	promote := false
	if len(s) == 5 {
		if s[4] != '+' {
			return NoMove, fmt.Errorf("%w: bad suffix in %q", ErrInvalidMove, s)
		}
		promote = true
	}

	return NewMove(from, to, promote), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list for reuse.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the moves as a slice sharing the list's storage.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Contains returns true if m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for _, x := range ml.moves[:ml.count] {
		if x == m {
			return true
		}
	}
	return false
}
