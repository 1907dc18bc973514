package board

import "fmt"

// Color represents the side owning a piece or the side to move.
// Black moves first and starts on rows 1-3.
type Color uint8

const (
	Black Color = iota
	White
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns "b", "w" or "-".
func (c Color) String() string {
	switch c {
	case Black:
		return "b"
	case White:
		return "w"
	default:
		return "-"
	}
}

// ParseColor parses "b" or "w".
func ParseColor(s string) (Color, error) {
	switch s {
	case "b":
		return Black, nil
	case "w":
		return White, nil
	}
	return NoColor, fmt.Errorf("invalid side: %q", s)
}

// PieceType represents the kind of a shogi piece, promoted kinds included.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Gold
	Rook
	Bishop
	Silver
	Knight
	Lance
	Pawn
	Dragon
	Horse
	ProSilver
	ProKnight
	ProLance
	ProPawn
)

// PromoteOffset separates a promotable type from its promoted form.
const PromoteOffset = Dragon - Rook

// NumPieceTypes counts every type tag, NoPieceType included.
const NumPieceTypes = int(ProPawn) + 1

// CanPromote returns true for the six types that have a promoted form.
func (pt PieceType) CanPromote() bool {
	return pt >= Rook && pt <= Pawn
}

// IsPromoted returns true for Dragon through ProPawn.
func (pt PieceType) IsPromoted() bool {
	return pt >= Dragon && pt <= ProPawn
}

// Promote returns the promoted form, or pt itself when it cannot promote.
func (pt PieceType) Promote() PieceType {
	if !pt.CanPromote() {
		return pt
	}
	return pt + PromoteOffset
}

// Demote returns the unpromoted form of a captured piece.
func (pt PieceType) Demote() PieceType {
	if !pt.IsPromoted() {
		return pt
	}
	return pt - PromoteOffset
}

// Char returns the lowercase letter of the unpromoted form.
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'k', 'g', 'r', 'b', 's', 'n', 'l', 'p'}
	base := pt.Demote()
	if int(base) >= len(chars) {
		return ' '
	}
	return chars[base]
}

// String returns the piece type name.
func (pt PieceType) String() string {
	names := [...]string{
		"None", "King", "Gold", "Rook", "Bishop", "Silver", "Knight", "Lance", "Pawn",
		"Dragon", "Horse", "ProSilver", "ProKnight", "ProLance", "ProPawn",
	}
	if int(pt) >= len(names) {
		return "None"
	}
	return names[pt]
}

// typeFromChar maps a lowercase letter to its unpromoted type.
func typeFromChar(c byte) PieceType {
	switch c {
	case 'k':
		return King
	case 'g':
		return Gold
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 's':
		return Silver
	case 'n':
		return Knight
	case 'l':
		return Lance
	case 'p':
		return Pawn
	}
	return NoPieceType
}

// Piece combines PieceType and Color into a single byte.
// Encoded as: pieceType | color<<6, the same code a drop move carries.
type Piece uint8

// NoPiece represents an empty square.
const NoPiece Piece = 0

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || int(pt) >= NumPieceTypes || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	pt := PieceType(p & 0x3F)
	if int(pt) >= NumPieceTypes {
		return NoPieceType
	}
	return pt
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p.Type() == NoPieceType {
		return NoColor
	}
	return Color(p >> 6 & 1)
}

// String returns the SFEN text for the piece.
// Uppercase for Black, lowercase for White, '+' prefix when promoted.
func (p Piece) String() string {
	pt := p.Type()
	if pt == NoPieceType {
		return " "
	}
	ch := pt.Char()
	if p.Color() == Black {
		ch -= 'a' - 'A'
	}
	if pt.IsPromoted() {
		return "+" + string(ch)
	}
	return string(ch)
}

// PieceFromChar converts an SFEN letter to an unpromoted Piece.
func PieceFromChar(c byte) Piece {
	if c >= 'A' && c <= 'Z' {
		return NewPiece(typeFromChar(c+('a'-'A')), Black)
	}
	return NewPiece(typeFromChar(c), White)
}
