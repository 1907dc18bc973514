// Package game sequences moves on a shogi position: turn order, move
// numbering and the end-of-game rules.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

// MaxPly is the move number at which a game ends without a winner.
const MaxPly = 500

// ErrGameOver is returned when a move is applied to a finished game.
var ErrGameOver = errors.New("game is over")

// Rand picks uniform indices for random play.
type Rand interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// Game is a position plus the side to move and the move number.
type Game struct {
	Position *board.Position
	Ply      int         // starts at 1, incremented by every applied move
	Turn     board.Color // side to move
	Winner   board.Color // NoColor until a side wins

	moves *board.MoveList
}

// New creates a game at the starting position with Black to move.
func New() *Game {
	return FromPosition(board.StartPosition(), board.Black, 1)
}

// FromPosition wraps pos with the given side to move and move number.
func FromPosition(pos *board.Position, turn board.Color, ply int) *Game {
	g := &Game{Position: pos, Ply: ply, Turn: turn, Winner: board.NoColor}
	if done, winner := g.IsFinished(); done {
		g.Winner = winner
	}
	return g
}

// Parse reads "startpos" or "<board> <b|w> <hand> [<ply>]".
func Parse(s string) (*Game, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && fields[0] == board.StartKeyword {
		return New(), nil
	}
	if len(fields) < 3 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: expected board, side, hand and move number", board.ErrInvalidSFEN)
	}

	pos, err := board.ParseSFEN(fields[0] + " " + fields[2])
	if err != nil {
		return nil, err
	}

	turn, err := board.ParseColor(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrInvalidSFEN, err)
	}

	ply := 1
	if len(fields) == 4 {
		ply, err = strconv.Atoi(fields[3])
		if err != nil || ply < 1 {
			return nil, fmt.Errorf("%w: bad move number %q", board.ErrInvalidSFEN, fields[3])
		}
	}

	return FromPosition(pos, turn, ply), nil
}

// String returns "<board> <side> <hand> <ply>".
func (g *Game) String() string {
	return fmt.Sprintf("%s %s %s %d", g.Position.BoardSFEN(), g.Turn, g.Position.Hand.String(), g.Ply)
}

// Clone creates a deep copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		Position: g.Position.Clone(),
		Ply:      g.Ply,
		Turn:     g.Turn,
		Winner:   g.Winner,
	}
}

// IsFinished reports whether the game is over and who won.
// The move-number cutoff is checked first and has no winner.
func (g *Game) IsFinished() (bool, board.Color) {
	if g.Ply >= MaxPly {
		return true, board.NoColor
	}
	return g.Position.IsFinished()
}

// LegalMoves returns every move for the side to move.
func (g *Game) LegalMoves() []board.Move {
	return g.Position.SearchMoves(g.Turn)
}

// generate fills the game's reusable move list.
func (g *Game) generate() *board.MoveList {
	if g.moves == nil {
		g.moves = board.NewMoveList()
	}
	g.moves.Clear()
	g.Position.GenerateMoves(g.Turn, g.moves)
	return g.moves
}

// ApplyMove plays m for the side to move, then passes the turn.
func (g *Game) ApplyMove(m board.Move) error {
	if done, _ := g.IsFinished(); done {
		return ErrGameOver
	}

	g.Position.Apply(m)
	g.Ply++
	g.Turn = g.Turn.Other()

	if done, winner := g.IsFinished(); done {
		g.Winner = winner
	}
	return nil
}

// PlayRandom plays uniformly random moves until the game is finished or the
// side to move has no moves. It returns the winner, NoColor when undecided.
func (g *Game) PlayRandom(r Rand) board.Color {
	for {
		if done, winner := g.IsFinished(); done {
			return winner
		}
		ml := g.generate()
		if ml.Len() == 0 {
			return board.NoColor
		}
		if err := g.ApplyMove(ml.Get(r.Intn(ml.Len()))); err != nil {
			return board.NoColor
		}
	}
}

// Playable reports whether the side to move can play m.
func (g *Game) Playable(m board.Move) bool {
	return g.generate().Contains(m)
}

// Key returns the position hash with the side to move and the move number
// folded in. Equal boards at different plies are different distances from
// the MaxPly cutoff and get different keys.
func (g *Game) Key() uint64 {
	key := g.Position.ComputeHash()
	if g.Turn == board.White {
		key ^= board.ZobristSideToMove()
	}
	return key ^ plyKey(g.Ply)
}

// plyKey scrambles the move number with the splitmix64 finalizer.
func plyKey(ply int) uint64 {
	z := uint64(ply) * 0x9E3779B97F4A7C15
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}
