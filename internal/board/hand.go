package board

import (
	"fmt"
	"strings"
)

// Hand holds captured pieces per side, indexed by unpromoted type.
type Hand [2][Pawn + 1]uint8

// handOrder is the SFEN order of hand pieces.
var handOrder = []PieceType{King, Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// Count returns how many pieces of type pt side c holds.
// Promoted types are never held and count 0.
func (h *Hand) Count(c Color, pt PieceType) int {
	if !inHand(c, pt) {
		return 0
	}
	return int(h[c][pt])
}

// Add puts one piece of type pt into side c's hand, demoted.
func (h *Hand) Add(c Color, pt PieceType) {
	h.AddN(c, pt, 1)
}

// AddN puts n pieces of type pt into side c's hand, demoted.
func (h *Hand) AddN(c Color, pt PieceType, n int) {
	pt = pt.Demote()
	if !inHand(c, pt) {
		panic(fmt.Sprintf("board: %s cannot be held by %s", pt, c))
	}
	h[c][pt] += uint8(n)
}

// Remove takes one piece of type pt from side c's hand.
// It panics when the hand holds none.
func (h *Hand) Remove(c Color, pt PieceType) {
	if h.Count(c, pt) == 0 {
		panic(fmt.Sprintf("board: no %s in %s hand", pt, c))
	}
	h[c][pt]--
}

func inHand(c Color, pt PieceType) bool {
	return c <= White && pt >= King && pt <= Pawn
}

// Types returns the types side c holds at least once, King..Pawn order.
func (h *Hand) Types(c Color) []PieceType {
	var types []PieceType
	for pt := King; pt <= Pawn; pt++ {
		if h[c][pt] > 0 {
			types = append(types, pt)
		}
	}
	return types
}

// IsEmpty returns true if neither side holds anything.
func (h *Hand) IsEmpty() bool {
	return *h == Hand{}
}

// String returns the SFEN hand field: Black's pieces, then White's, or "-".
func (h *Hand) String() string {
	var sb strings.Builder
	for _, c := range []Color{Black, White} {
		for _, pt := range handOrder {
			n := h[c][pt]
			if n == 0 {
				continue
			}
			if n > 1 {
				fmt.Fprintf(&sb, "%d", n)
			}
			sb.WriteString(NewPiece(pt, c).String())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
