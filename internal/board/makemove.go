package board

import "fmt"

// Apply plays m on the position. A piece on the destination is captured:
// demoted and added to the mover's hand. Moves that break the generation
// contract (empty origin, empty hand, impossible promotion) panic.
func (p *Position) Apply(m Move) {
	to := m.To()

	var mover Color
	var pt PieceType
	if m.IsDrop() {
		pc := m.Piece()
		mover, pt = pc.Color(), pc.Type()
		if pt == NoPieceType {
			panic(fmt.Sprintf("board: drop without piece: %s", m))
		}
	} else {
		pc := p.PieceAt(m.From())
		if pc == NoPiece {
			panic(fmt.Sprintf("board: no piece at origin of %s", m))
		}
		mover, pt = pc.Color(), pc.Type()
		if m.IsPromotion() {
			if !pt.CanPromote() {
				panic(fmt.Sprintf("board: %s cannot promote in %s", pt, m))
			}
			pt = pt.Promote()
		}
	}

	if captured := p.PieceAt(to); captured != NoPiece {
		p.Hand.Add(mover, captured.Type().Demote())
		p.Remove(to)
	}

	if m.IsDrop() {
		p.Hand.Remove(mover, pt)
	} else {
		p.Remove(m.From())
	}
	p.Deploy(to, pt, mover)
}

// IsFinished reports whether a king has left the board. The winner is the
// owner of the only remaining king, or NoColor when that is ambiguous.
func (p *Position) IsFinished() (bool, Color) {
	kings := p.Kings()
	if kings.PopCount() == 2 {
		return false, NoColor
	}

	blackKing := kings.Intersects(p.Owned[Black])
	whiteKing := kings.Intersects(p.Owned[White])
	switch {
	case blackKing && !whiteKing:
		return true, Black
	case whiteKing && !blackKing:
		return true, White
	}
	return true, NoColor
}
