// Package usi implements a line-oriented command loop modelled on the
// Universal Shogi Interface.
package usi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/engine"
	"github.com/hailam/shogiplay/internal/game"
	"github.com/hailam/shogiplay/internal/kif"
	"github.com/hailam/shogiplay/internal/storage"
)

// USI reads commands from in and writes responses to out.
type USI struct {
	engine *engine.Engine
	store  *storage.Storage // optional
	game   *game.Game

	in  io.Reader
	out io.Writer
}

// New creates a command loop around eng. store may be nil.
func New(eng *engine.Engine, store *storage.Storage, in io.Reader, out io.Writer) *USI {
	return &USI{
		engine: eng,
		store:  store,
		game:   game.New(),
		in:     in,
		out:    out,
	}
}

// Game returns the current game.
func (u *USI) Game() *game.Game {
	return u.game
}

// Run processes commands until "quit" or end of input.
func (u *USI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "usi":
			u.handleUSI()
		case "isready":
			u.println("readyok")
		case "usinewgame":
			u.game = game.New()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "kif":
			u.handleKIF(args)
		case "stats":
			u.handleStats()
		case "quit":
			return nil
		// Debug commands
		case "d":
			u.println(u.game.Position.String())
			u.println(u.game.String())
		case "moves":
			u.handleMoves()
		default:
			u.info("unknown command: %s", cmd)
		}
	}
	return scanner.Err()
}

func (u *USI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *USI) info(format string, args ...any) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}

// handleUSI responds to the "usi" command.
func (u *USI) handleUSI() {
	cfg := u.engine.Config()
	u.println("id name ShogiPlay")
	u.println("id author ShogiPlay Team")
	fmt.Fprintf(u.out, "option name Trials type spin default %d min 1\n", cfg.Trials)
	fmt.Fprintf(u.out, "option name Workers type spin default %d min 1\n", cfg.Workers)
	fmt.Fprintf(u.out, "option name Kernel type string default %s\n", u.engine.Kernel().Name())
	u.println("usiok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves 3c3d 7g7f
//   - position sfen <board> <b|w> <hand> [<ply>]
//   - position sfen <board> <b|w> <hand> [<ply>] moves 3c3d
func (u *USI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	var g *game.Game
	var err error
	switch args[0] {
	case board.StartKeyword:
		g = game.New()
	case "sfen":
		g, err = game.Parse(strings.Join(args[1:moveStart], " "))
	default:
		err = fmt.Errorf("%w: unknown position kind %q", board.ErrInvalidSFEN, args[0])
	}
	if err != nil {
		u.info("invalid position: %v", err)
		return
	}

	if moveStart < len(args) {
		for _, moveStr := range args[moveStart+1:] {
			if err := playMove(g, moveStr); err != nil {
				u.info("invalid move %s: %v", moveStr, err)
				return
			}
		}
	}
	u.game = g
}

// playMove parses moveStr and applies it if the side to move can play it.
func playMove(g *game.Game, moveStr string) error {
	m, err := board.ParseMove(moveStr)
	if err != nil {
		return err
	}
	if done, _ := g.IsFinished(); done {
		return game.ErrGameOver
	}
	if !g.Playable(m) {
		return fmt.Errorf("%w: %s not playable", board.ErrInvalidMove, m)
	}
	return g.ApplyMove(m)
}

// handleGo runs a rollout estimate. Without arguments the configured
// counts are used and the result is accumulated into the store;
// "go trials N workers M" runs a one-off estimate.
func (u *USI) handleGo(args []string) {
	cfg := u.engine.Config()
	trials, workers := cfg.Trials, cfg.Workers
	oneOff := false

	for i := 0; i+1 < len(args); i += 2 {
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			u.info("bad value for %s: %q", args[i], args[i+1])
			return
		}
		switch args[i] {
		case "trials":
			trials = n
		case "workers":
			workers = n
		default:
			u.info("unknown go option: %s", args[i])
			return
		}
		oneOff = true
	}

	var result *engine.Result
	var err error
	if oneOff {
		result, err = u.engine.EstimateGame(u.game, trials, workers)
	} else {
		result, err = u.engine.Analyze(u.game)
	}
	switch {
	case errors.Is(err, game.ErrGameOver), errors.Is(err, engine.ErrNoCandidates):
		u.println("bestmove resign")
		return
	case err != nil:
		u.info("rollout failed: %v", err)
		return
	}

	for _, s := range result.Moves {
		fmt.Fprintf(u.out, "info move %s wins %d total %d rate %.4f\n",
			s.Move, s.Wins(result.Turn), s.Total, s.WinRate(result.Turn))
	}
	best, _ := result.Best()
	fmt.Fprintf(u.out, "info string run %s trials %d\n", result.RunID, result.Trials())
	u.println("bestmove " + best.Move.String())
}

// handleKIF loads a KIF record and replays it as the current game.
func (u *USI) handleKIF(args []string) {
	if len(args) != 1 {
		u.info("usage: kif <path>")
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		u.info("open record: %v", err)
		return
	}
	defer f.Close()

	rec, err := kif.Parse(f)
	if err != nil {
		u.info("parse record: %v", err)
		return
	}
	g, moves, err := rec.Replay()
	if err != nil {
		u.info("replay record: %v", err)
		return
	}
	u.game = g
	u.info("loaded %d moves, terminal %q, winner %s", len(moves), rec.Terminal, rec.Winner())
}

// handleStats prints the store's totals.
func (u *USI) handleStats() {
	if u.store == nil {
		u.info("no store")
		return
	}
	stats, err := u.store.LoadStats()
	if err != nil {
		u.info("load stats: %v", err)
		return
	}
	u.info("runs %d trials %d positions %d", stats.Runs, stats.Trials, stats.Positions)
}

// handleMoves lists every move of the side to move.
func (u *USI) handleMoves() {
	moves := u.game.LegalMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	u.info("%d moves: %s", len(moves), strings.Join(strs, " "))
}
