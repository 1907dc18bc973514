package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
)

// ErrCandidateMismatch is returned when merging results over different candidate lists.
var ErrCandidateMismatch = errors.New("rollout results have different candidates")

// MoveStats is the tally of one candidate move.
type MoveStats struct {
	Move      board.Move
	BlackWins uint64
	WhiteWins uint64
	Total     uint64
}

// Wins returns the trials won by side c.
func (s MoveStats) Wins(c board.Color) uint64 {
	switch c {
	case board.Black:
		return s.BlackWins
	case board.White:
		return s.WhiteWins
	}
	return 0
}

// Undecided returns the trials that ended without a winner.
func (s MoveStats) Undecided() uint64 {
	return s.Total - s.BlackWins - s.WhiteWins
}

// WinRate returns the fraction of trials won by side c, 0 when untried.
func (s MoveStats) WinRate(c board.Color) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Wins(c)) / float64(s.Total)
}

func (s MoveStats) String() string {
	return fmt.Sprintf("%-6s black=%d white=%d total=%d", s.Move, s.BlackWins, s.WhiteWins, s.Total)
}

// Result holds per-candidate tallies of one or more rollout runs.
// The candidate order is fixed when the result is created.
type Result struct {
	RunID string      // id of the run that produced the result
	Root  string      // game text of the evaluated position
	Turn  board.Color // side to move at the root
	Moves []MoveStats
}

// NewResult creates an empty result over candidates.
func NewResult(turn board.Color, candidates []board.Move) *Result {
	r := &Result{Turn: turn, Moves: make([]MoveStats, len(candidates))}
	for i, m := range candidates {
		r.Moves[i].Move = m
	}
	return r
}

// Record tallies one trial of candidate i. NoColor counts as undecided.
func (r *Result) Record(i int, winner board.Color) {
	s := &r.Moves[i]
	s.Total++
	switch winner {
	case board.Black:
		s.BlackWins++
	case board.White:
		s.WhiteWins++
	}
}

// Merge adds o's tallies into r element-wise.
func (r *Result) Merge(o *Result) error {
	if len(r.Moves) != len(o.Moves) || r.Turn != o.Turn {
		return ErrCandidateMismatch
	}
	for i := range r.Moves {
		if r.Moves[i].Move != o.Moves[i].Move {
			return fmt.Errorf("%w: index %d is %s vs %s", ErrCandidateMismatch, i, r.Moves[i].Move, o.Moves[i].Move)
		}
	}
	for i := range r.Moves {
		r.Moves[i].BlackWins += o.Moves[i].BlackWins
		r.Moves[i].WhiteWins += o.Moves[i].WhiteWins
		r.Moves[i].Total += o.Moves[i].Total
	}
	return nil
}

// Trials returns the number of trials recorded over all candidates.
func (r *Result) Trials() uint64 {
	var n uint64
	for _, s := range r.Moves {
		n += s.Total
	}
	return n
}

// Candidates returns the candidate moves in result order.
func (r *Result) Candidates() []board.Move {
	moves := make([]board.Move, len(r.Moves))
	for i, s := range r.Moves {
		moves[i] = s.Move
	}
	return moves
}

// Best returns the candidate with the highest win rate for the side to
// move. Ties go to the earliest candidate.
func (r *Result) Best() (MoveStats, bool) {
	if len(r.Moves) == 0 {
		return MoveStats{}, false
	}
	best := 0
	bestRate := r.Moves[0].WinRate(r.Turn)
	for i := 1; i < len(r.Moves); i++ {
		if rate := r.Moves[i].WinRate(r.Turn); rate > bestRate {
			best, bestRate = i, rate
		}
	}
	return r.Moves[best], true
}

// Validate checks that no candidate has more wins than trials.
func (r *Result) Validate() error {
	for _, s := range r.Moves {
		if s.BlackWins+s.WhiteWins > s.Total {
			return fmt.Errorf("candidate %s: %d wins over %d trials", s.Move, s.BlackWins+s.WhiteWins, s.Total)
		}
	}
	return nil
}

// Clone creates a deep copy of the result.
func (r *Result) Clone() *Result {
	c := *r
	c.Moves = append([]MoveStats(nil), r.Moves...)
	return &c
}

// String renders one line per candidate.
func (r *Result) String() string {
	var sb strings.Builder
	for _, s := range r.Moves {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
