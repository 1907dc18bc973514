// Package engine estimates move quality by flat Monte-Carlo rollouts:
// every candidate move of the root is tried in random playouts and the
// outcomes are tallied per candidate.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/game"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoCandidates is returned when the side to move has no moves.
var ErrNoCandidates = errors.New("no candidate moves")

// ResultStore accumulates results across runs for the same position.
type ResultStore interface {
	// Accumulate merges r into the stored result under key and returns the total.
	Accumulate(key uint64, r *Result) (*Result, error)
}

// RolloutInfo summarizes a finished estimate.
type RolloutInfo struct {
	RunID      string
	Candidates int
	Trials     int
	Workers    int
	Elapsed    time.Duration
}

// Engine is the rollout estimator.
type Engine struct {
	cfg    Config
	kernel board.Kernel
	logger zerolog.Logger
	store  ResultStore

	// Callbacks
	OnInfo func(RolloutInfo)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Without it the engine is silent.
// Config.LogLevel filters what reaches l.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStore makes Analyze accumulate results into s.
func WithStore(s ResultStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithKernel overrides the batch kernel chosen from the config.
func WithKernel(k board.Kernel) Option {
	return func(e *Engine) { e.kernel = k }
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kernel, err := board.SelectKernel(cfg.Kernel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	level, _ := cfg.level()

	e := &Engine{
		cfg:    cfg,
		kernel: kernel,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Level(level)
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Kernel returns the batch kernel positions are evaluated with.
func (e *Engine) Kernel() board.Kernel {
	return e.kernel
}

// Estimate runs trials rollouts from pos with side to move, spread over workers.
func (e *Engine) Estimate(pos *board.Position, side board.Color, trials, workers int) (*Result, error) {
	return e.EstimateGame(game.FromPosition(pos, side, 1), trials, workers)
}

// EstimateGame runs trials rollouts from g, spread over workers. The
// candidate list is generated once and fixes the result order. Each worker
// tallies into its own partial result; the partials are merged after all
// workers finish.
func (e *Engine) EstimateGame(g *game.Game, trials, workers int) (*Result, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, trials)
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, workers)
	}
	if done, _ := g.IsFinished(); done {
		return nil, game.ErrGameOver
	}

	root := g.Clone()
	root.Position.SetKernel(e.kernel)
	candidates := root.LegalMoves()
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if workers > trials {
		workers = trials
	}

	runID := uuid.NewString()
	start := time.Now()
	e.logger.Debug().
		Str("run", runID).
		Int("candidates", len(candidates)).
		Int("trials", trials).
		Int("workers", workers).
		Str("kernel", e.kernel.Name()).
		Msg("rollout-start")

	results := make([]WorkerResult, workers)
	eg := errgroup.Group{}
	for i := 0; i < workers; i++ {
		w := NewWorker(i, root, candidates, NewRandom(e.cfg.Seed, i), shareOf(trials, workers, i))
		eg.Go(func() error {
			results[i] = w.Run()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := NewResult(root.Turn, candidates)
	result.RunID = runID
	result.Root = root.String()
	for _, wr := range results {
		e.logger.Debug().
			Str("run", runID).
			Int("worker", wr.WorkerID).
			Int("trials", wr.Trials).
			Dur("elapsed", wr.Elapsed).
			Msg("worker-done")
		if err := result.Merge(wr.Partial); err != nil {
			return nil, err
		}
	}

	info := RolloutInfo{
		RunID:      runID,
		Candidates: len(candidates),
		Trials:     trials,
		Workers:    workers,
		Elapsed:    time.Since(start),
	}
	e.logger.Info().
		Str("run", runID).
		Int("trials", trials).
		Dur("elapsed", info.Elapsed).
		Msg("rollout-done")
	if e.OnInfo != nil {
		e.OnInfo(info)
	}

	return result, nil
}

// Analyze runs the configured number of trials from g. With a store, the
// result is merged into previous runs for the same position and the
// accumulated total is returned.
func (e *Engine) Analyze(g *game.Game) (*Result, error) {
	result, err := e.EstimateGame(g, e.cfg.Trials, e.cfg.Workers)
	if err != nil {
		return nil, err
	}
	if e.store == nil {
		return result, nil
	}

	total, err := e.store.Accumulate(g.Key(), result)
	if err != nil {
		return nil, fmt.Errorf("accumulate rollout result: %w", err)
	}
	e.logger.Debug().
		Str("run", result.RunID).
		Uint64("trials", total.Trials()).
		Msg("result-accumulated")
	return total, nil
}

// BestMove analyzes g and returns the candidate with the best win rate for
// the side to move.
func (e *Engine) BestMove(g *game.Game) (board.Move, error) {
	result, err := e.Analyze(g)
	if err != nil {
		return board.NoMove, err
	}
	best, ok := result.Best()
	if !ok {
		return board.NoMove, ErrNoCandidates
	}
	return best.Move, nil
}
