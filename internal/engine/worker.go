package engine

import (
	"time"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/game"
)

// Worker runs a share of the rollout trials on its own copy of the root
// game. It owns its random source and partial result, so workers never
// share mutable state.
type Worker struct {
	id int

	root       *game.Game
	candidates []board.Move

	rng    *Random
	trials int
	result *Result
}

// WorkerResult reports one worker's finished share.
type WorkerResult struct {
	WorkerID int
	Trials   int
	Elapsed  time.Duration
	Partial  *Result
}

// NewWorker creates a worker that will run trials playouts from root.
func NewWorker(id int, root *game.Game, candidates []board.Move, rng *Random, trials int) *Worker {
	return &Worker{
		id:         id,
		root:       root,
		candidates: candidates,
		rng:        rng,
		trials:     trials,
		result:     NewResult(root.Turn, candidates),
	}
}

// Run plays every assigned trial and returns the partial result.
func (w *Worker) Run() WorkerResult {
	start := time.Now()

	picks := make([]int, w.trials)
	w.rng.FillRange(picks, 0, len(w.candidates)-1)
	for _, idx := range picks {
		w.result.Record(idx, w.playout(idx))
	}

	return WorkerResult{
		WorkerID: w.id,
		Trials:   w.trials,
		Elapsed:  time.Since(start),
		Partial:  w.result,
	}
}

// playout applies candidate idx to a fresh copy of the root and finishes
// the game with random moves.
func (w *Worker) playout(idx int) board.Color {
	g := w.root.Clone()
	if err := g.ApplyMove(w.candidates[idx]); err != nil {
		return board.NoColor
	}
	return g.PlayRandom(w.rng)
}

// shareOf splits trials across workers; the first trials%workers get one extra.
func shareOf(trials, workers, id int) int {
	n := trials / workers
	if id < trials%workers {
		n++
	}
	return n
}
