package board

// Direction is one of the eight compass directions, seen from Black.
// White uses the mirrored delta.
type Direction uint8

const (
	Up Direction = iota
	UpLeft
	Left
	DownLeft
	Down
	DownRight
	Right
	UpRight
)

// blackDelta is the index delta of one step for Black.
var blackDelta = [8]int{
	Up:        Edge,
	UpLeft:    Edge - 1,
	Left:      -1,
	DownLeft:  -Edge - 1,
	Down:      -Edge,
	DownRight: -Edge + 1,
	Right:     1,
	UpRight:   Edge + 1,
}

// Delta returns the square index delta of one step in d for side c.
func (d Direction) Delta(c Color) int {
	if c == White {
		return -blackDelta[d]
	}
	return blackDelta[d]
}

// Reach describes how far a piece travels along a direction.
type Reach uint8

const (
	// Step moves exactly one square.
	Step Reach = iota
	// Jump moves one extra square forward and ignores the square in between.
	Jump
	// Slide repeats until blocked.
	Slide
)

// Motion is one entry of a movement pattern.
type Motion struct {
	Dir   Direction
	Reach Reach
}

// Delta returns the index delta of one application of the motion for side c.
func (m Motion) Delta(c Color) int {
	d := m.Dir.Delta(c)
	if m.Reach == Jump {
		d += Up.Delta(c)
	}
	return d
}

var (
	kingPattern = []Motion{
		{Up, Step}, {UpLeft, Step}, {Left, Step}, {DownLeft, Step},
		{Down, Step}, {DownRight, Step}, {Right, Step}, {UpRight, Step},
	}
	goldPattern = []Motion{
		{Up, Step}, {UpLeft, Step}, {Left, Step},
		{Down, Step}, {Right, Step}, {UpRight, Step},
	}
	rookPattern = []Motion{
		{Up, Slide}, {Left, Slide}, {Down, Slide}, {Right, Slide},
	}
	bishopPattern = []Motion{
		{UpLeft, Slide}, {DownLeft, Slide}, {DownRight, Slide}, {UpRight, Slide},
	}
	silverPattern = []Motion{
		{Up, Step}, {UpLeft, Step}, {DownLeft, Step}, {DownRight, Step}, {UpRight, Step},
	}
	knightPattern = []Motion{{UpLeft, Jump}, {UpRight, Jump}}
	lancePattern  = []Motion{{Up, Slide}}
	pawnPattern   = []Motion{{Up, Step}}
	dragonPattern = []Motion{
		{Up, Slide}, {Left, Slide}, {Down, Slide}, {Right, Slide},
		{UpLeft, Step}, {DownLeft, Step}, {DownRight, Step}, {UpRight, Step},
	}
	horsePattern = []Motion{
		{UpLeft, Slide}, {DownLeft, Slide}, {DownRight, Slide}, {UpRight, Slide},
		{Up, Step}, {Left, Step}, {Down, Step}, {Right, Step},
	}
)

// MovementPattern returns the motions of a piece type. Promoted minor
// pieces move like Gold. The returned slice must not be modified.
func MovementPattern(pt PieceType) []Motion {
	switch pt {
	case King:
		return kingPattern
	case Gold, ProSilver, ProKnight, ProLance, ProPawn:
		return goldPattern
	case Rook:
		return rookPattern
	case Bishop:
		return bishopPattern
	case Silver:
		return silverPattern
	case Knight:
		return knightPattern
	case Lance:
		return lancePattern
	case Pawn:
		return pawnPattern
	case Dragon:
		return dragonPattern
	case Horse:
		return horsePattern
	}
	return nil
}
