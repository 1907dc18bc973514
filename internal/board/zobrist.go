package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][NumPieceTypes][NumBits]uint64 // [Color][PieceType][Square]
	zobristHand       [2][Pawn + 1][19]uint64           // [Color][PieceType][Count]
	zobristSideToMove uint64                            // XOR when White to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x5A0E1B0A4D5C3F21)

	for c := Black; c <= White; c++ {
		for pt := King; pt <= ProPawn; pt++ {
			for sq := range PlayableMask.All() {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	// Count 0 keeps key 0 so an empty hand contributes nothing.
	for c := Black; c <= White; c++ {
		for pt := King; pt <= Pawn; pt++ {
			for n := 1; n < len(zobristHand[c][pt]); n++ {
				zobristHand[c][pt][n] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// ZobristSideToMove returns the Zobrist key for White to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// ComputeHash computes the Zobrist hash of the board and both hands.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for c := Black; c <= White; c++ {
		for pt := King; pt <= ProPawn; pt++ {
			for sq := range p.Pieces(c, pt).All() {
				hash ^= zobristPiece[c][pt][sq]
			}
		}
		for pt := King; pt <= Pawn; pt++ {
			n := p.Hand.Count(c, pt)
			if n >= len(zobristHand[c][pt]) {
				n = len(zobristHand[c][pt]) - 1
			}
			hash ^= zobristHand[c][pt][n]
		}
	}

	return hash
}
