package board

// Board-shape masks. They are computed once and never modified.
var (
	// FrameMask covers the one-square ring around the playable area.
	FrameMask Bitboard
	// PlayableMask covers the 81 playable squares.
	PlayableMask Bitboard

	promotionZone [2]Bitboard
	lastRank      [2]Bitboard
	lastTwoRanks  [2]Bitboard
	columnMask    [Edge]Bitboard
	rowMask       [Edge]Bitboard
)

func init() {
	initMasks()
}

func initMasks() {
	for row := 0; row < Edge; row++ {
		for col := 0; col < Edge; col++ {
			sq := NewSquare(col, row)
			rowMask[row] = rowMask[row].Set(sq)
			columnMask[col] = columnMask[col].Set(sq)
			if sq.IsPlayable() {
				PlayableMask = PlayableMask.Set(sq)
			} else {
				FrameMask = FrameMask.Set(sq)
			}
		}
	}

	promotionZone[Black] = rowMask[7].Or(rowMask[8]).Or(rowMask[9])
	promotionZone[White] = rowMask[1].Or(rowMask[2]).Or(rowMask[3])
	lastRank[Black] = rowMask[9].And(PlayableMask)
	lastRank[White] = rowMask[1].And(PlayableMask)
	lastTwoRanks[Black] = rowMask[8].Or(rowMask[9]).And(PlayableMask)
	lastTwoRanks[White] = rowMask[1].Or(rowMask[2]).And(PlayableMask)
	promotionZone[Black] = promotionZone[Black].And(PlayableMask)
	promotionZone[White] = promotionZone[White].And(PlayableMask)
}

// PromotionZone returns the three far ranks of side c.
func PromotionZone(c Color) Bitboard {
	return promotionZone[c]
}

// LastRank returns the farthest rank of side c.
func LastRank(c Color) Bitboard {
	return lastRank[c]
}

// LastTwoRanks returns the two farthest ranks of side c.
func LastTwoRanks(c Color) Bitboard {
	return lastTwoRanks[c]
}

// ColumnMask returns the playable squares of a column (1-9).
func ColumnMask(col int) Bitboard {
	return columnMask[col].And(PlayableMask)
}
