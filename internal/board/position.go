package board

import (
	"errors"
	"fmt"
)

// Position represents a shogi position: piece placement plus both hands.
// Side to move and move number belong to the game, not the position.
type Position struct {
	// Types[pt] holds the squares carrying type pt; Types[NoPieceType]
	// holds the empty playable squares.
	Types [NumPieceTypes]Bitboard

	// Occupancy bitboards
	Owned    [2]Bitboard // All pieces of each color
	Occupied Bitboard    // All pieces on the board

	Hand Hand

	kernel Kernel
}

// NewPosition creates an empty board with empty hands.
func NewPosition() *Position {
	p := &Position{kernel: ScalarKernel{}}
	p.Types[NoPieceType] = PlayableMask
	return p
}

// StartPosition creates the standard starting position.
func StartPosition() *Position {
	p := NewPosition()
	back := [9]PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for col := 1; col <= 9; col++ {
		p.Deploy(NewSquare(col, 1), back[col-1], Black)
		p.Deploy(NewSquare(col, 3), Pawn, Black)
		p.Deploy(NewSquare(col, 9), back[col-1], White)
		p.Deploy(NewSquare(col, 7), Pawn, White)
	}
	p.Deploy(NewSquare(2, 2), Bishop, Black)
	p.Deploy(NewSquare(8, 2), Rook, Black)
	p.Deploy(NewSquare(8, 8), Bishop, White)
	p.Deploy(NewSquare(2, 8), Rook, White)
	return p
}

// Clone creates a deep copy of the position.
func (p *Position) Clone() *Position {
	newPos := *p
	return &newPos
}

// Kernel returns the batch kernel used by this position.
func (p *Position) Kernel() Kernel {
	if p.kernel == nil {
		return ScalarKernel{}
	}
	return p.kernel
}

// SetKernel sets the batch kernel; nil restores the scalar kernel.
func (p *Position) SetKernel(k Kernel) {
	if k == nil {
		k = ScalarKernel{}
	}
	p.kernel = k
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)

	if !p.Occupied.Intersects(bb) {
		return NoPiece
	}

	c := Black
	if p.Owned[White].Intersects(bb) {
		c = White
	}

	for pt := King; pt <= ProPawn; pt++ {
		if p.Types[pt].Intersects(bb) {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// IsEmpty returns true if the square holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.Occupied.IsSet(sq)
}

// Pieces returns the squares holding type pt owned by c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.Types[pt].And(p.Owned[c])
}

// Kings returns every square holding a king, of either side.
func (p *Position) Kings() Bitboard {
	return p.Types[King]
}

// Deploy places a piece of type pt owned by c on sq, replacing whatever was there.
func (p *Position) Deploy(sq Square, pt PieceType, c Color) {
	p.Remove(sq)
	if pt == NoPieceType {
		return
	}
	bb := SquareBB(sq)
	p.Types[NoPieceType] = p.Types[NoPieceType].AndNot(bb)
	p.Types[pt] = p.Types[pt].Or(bb)
	p.Owned[c] = p.Owned[c].Or(bb)
	p.Occupied = p.Occupied.Or(bb)
}

// Remove empties sq.
func (p *Position) Remove(sq Square) {
	bb := SquareBB(sq)
	for pt := King; pt <= ProPawn; pt++ {
		p.Types[pt] = p.Types[pt].AndNot(bb)
	}
	p.Owned[Black] = p.Owned[Black].AndNot(bb)
	p.Owned[White] = p.Owned[White].AndNot(bb)
	p.Occupied = p.Occupied.AndNot(bb)
	if sq.IsPlayable() {
		p.Types[NoPieceType] = p.Types[NoPieceType].Or(bb)
	}
}

// Validate checks the layer invariants of the position.
func (p *Position) Validate() error {
	if p.Owned[Black].Intersects(p.Owned[White]) {
		return errors.New("square owned by both sides")
	}
	if p.Owned[Black].Or(p.Owned[White]) != p.Occupied {
		return errors.New("ownership does not match occupancy")
	}
	if p.Occupied.Intersects(FrameMask) {
		return errors.New("piece on frame")
	}

	var seen Bitboard
	for pt := NoPieceType; pt <= ProPawn; pt++ {
		if seen.Intersects(p.Types[pt]) {
			return fmt.Errorf("square in more than one type layer (%s)", pt)
		}
		seen = seen.Or(p.Types[pt])
	}
	if seen != PlayableMask {
		return errors.New("type layers do not cover the board")
	}
	if p.Types[NoPieceType] != PlayableMask.AndNot(p.Occupied) {
		return errors.New("empty layer does not match occupancy")
	}
	return nil
}

// String returns a visual representation of the position, row 9 first.
func (p *Position) String() string {
	s := ""
	for row := 9; row >= 1; row-- {
		s += fmt.Sprintf("%c ", 'a'+row-1)
		for col := 1; col <= 9; col++ {
			pc := p.PieceAt(NewSquare(col, row))
			switch {
			case pc == NoPiece:
				s += " . "
			case pc.Type().IsPromoted():
				s += pc.String() + " "
			default:
				s += " " + pc.String() + " "
			}
		}
		s += "\n"
	}
	s += "   1  2  3  4  5  6  7  8  9\n"
	s += "hand: " + p.Hand.String() + "\n"
	return s
}
