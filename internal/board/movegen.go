package board

// LegalDestinations returns the squares the piece on sq can move to.
// Own pieces block and are excluded; an enemy piece is included and stops
// the slide. The frame stops everything. Self-check is not considered.
func (p *Position) LegalDestinations(sq Square) Bitboard {
	pc := p.PieceAt(sq)
	if pc == NoPiece {
		return Empty
	}

	us := pc.Color()
	own := p.Owned[us]
	enemies := p.Owned[us.Other()]
	origin := SquareBB(sq)

	var dests Bitboard
	for _, mo := range MovementPattern(pc.Type()) {
		delta := mo.Delta(us)
		cur := origin
		for {
			next := cur.Shift(delta)
			if next.IsEmpty() || next.Intersects(FrameMask) || next.Intersects(own) {
				break
			}
			dests = dests.Or(next)
			if mo.Reach != Slide || next.Intersects(enemies) {
				break
			}
			cur = next
		}
	}
	return dests
}

// PromotableSubset returns the part of dests where the piece on sq may promote:
// all of them when it starts in its promotion zone, otherwise those inside the zone.
func (p *Position) PromotableSubset(sq Square, dests Bitboard) Bitboard {
	pc := p.PieceAt(sq)
	if !pc.Type().CanPromote() {
		return Empty
	}
	zone := promotionZone[pc.Color()]
	if zone.IsSet(sq) {
		return dests
	}
	return dests.And(zone)
}

// DroppableSquares returns where side c may drop a piece of type pt.
func (p *Position) DroppableSquares(c Color, pt PieceType) Bitboard {
	empty := p.Types[NoPieceType]

	switch pt {
	case Gold, Silver, Rook, Bishop:
		return empty
	case Knight:
		return empty.AndNot(lastTwoRanks[c])
	case Lance:
		return empty.AndNot(lastRank[c])
	case Pawn:
		pawns := p.Pieces(c, Pawn)
		cols := make([]Bitboard, 0, int(pawns.PopCount()))
		for sq := range pawns.All() {
			cols = append(cols, ColumnMask(sq.Column()))
		}
		blocked := p.Kernel().OrBatch(cols)
		return empty.AndNot(lastRank[c]).AndNot(blocked)
	}
	return Empty
}

// GenerateMoves appends every move of side c to ml.
// Order: own pieces by ascending square, each with its non-promoting moves
// then its promoting moves; then drops by hand type, King..Pawn.
func (p *Position) GenerateMoves(c Color, ml *MoveList) {
	for from := range p.Owned[c].All() {
		dests := p.LegalDestinations(from)
		promos := p.PromotableSubset(from, dests)
		for to := range dests.All() {
			ml.Add(NewMove(from, to, false))
		}
		for to := range promos.All() {
			ml.Add(NewMove(from, to, true))
		}
	}

	for _, pt := range p.Hand.Types(c) {
		pc := NewPiece(pt, c)
		for to := range p.DroppableSquares(c, pt).All() {
			ml.Add(NewDrop(pc, to))
		}
	}
}

// SearchMoves returns every move of side c in generation order.
func (p *Position) SearchMoves(c Color) []Move {
	ml := NewMoveList()
	p.GenerateMoves(c, ml)
	moves := make([]Move, ml.Len())
	copy(moves, ml.Slice())
	return moves
}
