package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a 128-bit set over the 11x11 bordered board.
// Bit i corresponds to square index i (row*11 + column). Only bits 0..120
// carry meaning; bits 121..127 are padding and are kept zero by every
// operation below.
type Bitboard struct {
	Lo uint64 // bits 0..63
	Hi uint64 // bits 64..127
}

// NumBits is the number of meaningful bits in a Bitboard.
const NumBits = Edge * Edge

// hiMask keeps bits 64..120 of the Hi word.
const hiMask uint64 = 1<<(NumBits-64) - 1

// Special sets
var (
	Empty    = Bitboard{}
	Universe = Bitboard{Lo: ^uint64(0), Hi: hiMask}
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if sq < 64 {
		return Bitboard{Lo: 1 << sq}
	}
	if int(sq) >= NumBits {
		return Empty
	}
	return Bitboard{Hi: 1 << (sq - 64)}
}

func (b Bitboard) norm() Bitboard {
	b.Hi &= hiMask
	return b
}

// And returns the intersection of b and o.
func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

// Or returns the union of b and o.
func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

// Xor returns the symmetric difference of b and o.
func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo ^ o.Lo, Hi: b.Hi ^ o.Hi}
}

// AndNot returns b with every bit of o cleared.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

// Not returns the complement of b within the 121-bit universe.
func (b Bitboard) Not() Bitboard {
	return Bitboard{Lo: ^b.Lo, Hi: ^b.Hi}.norm()
}

// Shl shifts toward higher square indices, filling with zeros.
func (b Bitboard) Shl(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{Hi: b.Lo << (n - 64)}.norm()
	}
	return Bitboard{Lo: b.Lo << n, Hi: b.Hi<<n | b.Lo>>(64-n)}.norm()
}

// Shr shifts toward lower square indices, filling with zeros.
func (b Bitboard) Shr(n uint) Bitboard {
	switch {
	case n == 0:
		return b
	case n >= 128:
		return Empty
	case n >= 64:
		return Bitboard{Lo: b.Hi >> (n - 64)}
	}
	return Bitboard{Lo: b.Lo>>n | b.Hi<<(64-n), Hi: b.Hi >> n}
}

// Shift moves every bit by delta squares. Positive deltas shift up.
func (b Bitboard) Shift(delta int) Bitboard {
	if delta >= 0 {
		return b.Shl(uint(delta))
	}
	return b.Shr(uint(-delta))
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b.Or(SquareBB(sq))
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b.AndNot(SquareBB(sq))
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b.Intersects(SquareBB(sq))
}

// Intersects reports whether b and o share a set bit.
func (b Bitboard) Intersects(o Bitboard) bool {
	return b.Lo&o.Lo != 0 || b.Hi&o.Hi != 0
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// Any returns true if there are any bits set.
func (b Bitboard) Any() bool {
	return !b.IsEmpty()
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() uint32 {
	return uint32(bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	if b.Lo != 0 {
		sq := Square(bits.TrailingZeros64(b.Lo))
		b.Lo &= b.Lo - 1
		return sq
	}
	if b.Hi != 0 {
		sq := Square(64 + bits.TrailingZeros64(b.Hi))
		b.Hi &= b.Hi - 1
		return sq
	}
	return NoSquare
}

// Squares returns the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, int(b.PopCount()))
	for b.Any() {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// ForEach calls fn for every set square in ascending order.
func (b Bitboard) ForEach(fn func(Square)) {
	for b.Any() {
		fn(b.PopLSB())
	}
}

// All yields the set squares in ascending order.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		bb := b
		for bb.Any() {
			if !yield(bb.PopLSB()) {
				return
			}
		}
	}
}

// String returns a visual representation of the bitboard, top row first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for row := Edge - 1; row >= 0; row-- {
		for col := 0; col < Edge; col++ {
			if b.IsSet(Square(row*Edge + col)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
