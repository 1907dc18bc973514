package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/engine"
	"github.com/hailam/shogiplay/internal/game"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(runID string, wins ...board.Color) *engine.Result {
	candidates := []board.Move{
		board.NewMove(34, 45, false),
		board.NewMove(36, 47, false),
		board.NewDrop(board.NewPiece(board.Pawn, board.Black), 60),
	}
	r := engine.NewResult(board.Black, candidates)
	r.RunID = runID
	r.Root = "startpos"
	for i, w := range wins {
		r.Record(i%len(candidates), w)
	}
	return r
}

func TestSaveLoadResult(t *testing.T) {
	s := openTestStorage(t)

	if _, ok, err := s.LoadResult(42); err != nil || ok {
		t.Fatalf("LoadResult on empty store = %v, %v", ok, err)
	}

	r := sampleResult("run-1", board.Black, board.White, board.NoColor, board.Black)
	if err := s.SaveResult(42, r); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	got, ok, err := s.LoadResult(42)
	if err != nil || !ok {
		t.Fatalf("LoadResult = %v, %v", ok, err)
	}
	if got.Turn != r.Turn || got.Root != r.Root || got.RunID != "run-1" {
		t.Errorf("loaded header %+v", got)
	}
	for i := range r.Moves {
		if got.Moves[i] != r.Moves[i] {
			t.Errorf("move %d: got %+v, want %+v", i, got.Moves[i], r.Moves[i])
		}
	}
}

func TestAccumulate(t *testing.T) {
	s := openTestStorage(t)

	first, err := s.Accumulate(7, sampleResult("a", board.Black, board.Black))
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	if first.Trials() != 2 {
		t.Errorf("first trials = %d, want 2", first.Trials())
	}

	total, err := s.Accumulate(7, sampleResult("b", board.White, board.White, board.White))
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	if total.Trials() != 5 {
		t.Errorf("total trials = %d, want 5", total.Trials())
	}
	if total.Moves[0].BlackWins != 1 || total.Moves[0].WhiteWins != 1 || total.Moves[0].Total != 2 {
		t.Errorf("candidate 0 = %+v", total.Moves[0])
	}
	if total.RunID != "b" {
		t.Errorf("RunID = %q, want b", total.RunID)
	}

	rec, ok, err := s.LoadRecord(7)
	if err != nil || !ok {
		t.Fatalf("LoadRecord = %v, %v", ok, err)
	}
	if len(rec.Runs) != 2 || rec.Runs[0] != "a" || rec.Runs[1] != "b" {
		t.Errorf("runs = %v", rec.Runs)
	}

	if _, err := s.Accumulate(8, sampleResult("c", board.Black)); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.Runs != 3 || stats.Trials != 6 || stats.Positions != 2 {
		t.Errorf("stats = %+v", stats)
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != 7 || keys[1] != 8 {
		t.Errorf("keys = %v, want [7 8]", keys)
	}

	if err := s.DeleteResult(7); err != nil {
		t.Fatalf("DeleteResult failed: %v", err)
	}
	if _, ok, _ := s.LoadResult(7); ok {
		t.Error("deleted result still present")
	}
}

func TestAccumulateMismatch(t *testing.T) {
	s := openTestStorage(t)
	if _, err := s.Accumulate(1, sampleResult("a", board.Black)); err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	other := engine.NewResult(board.Black, []board.Move{board.NewMove(34, 45, false)})
	if _, err := s.Accumulate(1, other); err == nil {
		t.Error("accumulating different candidates should fail")
	}

	got, _, _ := s.LoadResult(1)
	if got.Trials() != 1 {
		t.Errorf("failed accumulate changed the record: %d trials", got.Trials())
	}
}

func gameAfterOpening() (*game.Game, error) {
	g := game.New()
	m, err := board.ParseMove("7c7d")
	if err != nil {
		return nil, err
	}
	return g, g.ApplyMove(m)
}

func TestEngineUsesStore(t *testing.T) {
	s := openTestStorage(t)

	cfg := engine.DefaultConfig()
	cfg.Trials = 6
	cfg.Workers = 2
	cfg.Seed = 3
	eng, err := engine.NewEngine(cfg, engine.WithStore(s))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	g, err := gameAfterOpening()
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := eng.Analyze(g); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	stored, ok, err := s.LoadResult(g.Key())
	if err != nil || !ok {
		t.Fatalf("LoadResult = %v, %v", ok, err)
	}
	if stored.Trials() != 6 || stored.Turn != board.White {
		t.Errorf("stored %d trials for %s", stored.Trials(), stored.Turn)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveResult(3, sampleResult("disk", board.White)); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if _, ok, err := s.LoadResult(3); err != nil || !ok {
		t.Errorf("result lost across reopen: %v, %v", ok, err)
	}
}

func TestDataPathsHomeOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv(HomeEnv, home)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != home {
		t.Errorf("GetDataDir = %s, want %s", dataDir, home)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if want := filepath.Join(home, "rollouts"); dbDir != want {
		t.Errorf("GetDatabaseDir = %s, want %s", dbDir, want)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}

func TestDataPathsPlatform(t *testing.T) {
	t.Setenv(HomeEnv, "")
	if runtime.GOOS == "linux" {
		xdg := t.TempDir()
		t.Setenv("XDG_DATA_HOME", xdg)

		dataDir, err := GetDataDir()
		if err != nil {
			t.Fatalf("GetDataDir failed: %v", err)
		}
		if want := filepath.Join(xdg, appName); dataDir != want {
			t.Errorf("GetDataDir = %s, want %s", dataDir, want)
		}
		return
	}

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if filepath.Base(dataDir) != appName {
		t.Errorf("GetDataDir = %s, want an %s directory", dataDir, appName)
	}
	t.Logf("Data directory: %s", dataDir)
}
