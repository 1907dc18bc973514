package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/engine"
	"github.com/rs/zerolog"
)

// Storage keys
const (
	keyStats         = "stats"
	keyRolloutPrefix = "rollout/"
)

// maxRunIDs bounds the run history kept per record.
const maxRunIDs = 32

// StoredMove is the persisted tally of one candidate.
type StoredMove struct {
	Move      string `json:"move"`
	BlackWins uint64 `json:"black_wins"`
	WhiteWins uint64 `json:"white_wins"`
	Total     uint64 `json:"total"`
}

// RolloutRecord is the persisted, accumulated result for one position key.
type RolloutRecord struct {
	Key       uint64       `json:"key"`
	Root      string       `json:"root"`
	Turn      string       `json:"turn"`
	Runs      []string     `json:"runs"`
	Moves     []StoredMove `json:"moves"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// AnalysisStats counts everything accumulated into the store.
type AnalysisStats struct {
	Runs      int       `json:"runs"`
	Trials    uint64    `json:"trials"`
	Positions int       `json:"positions"`
	LastRun   time.Time `json:"last_run"`
}

// Storage wraps BadgerDB for persistent rollout results
type Storage struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewStorage opens the store in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the store in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db, logger: zerolog.Nop()}, nil
}

// SetLogger sets the logger for store events.
func (s *Storage) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func rolloutKey(key uint64) []byte {
	return []byte(fmt.Sprintf("%s%016x", keyRolloutPrefix, key))
}

// SaveResult stores r under key, replacing any previous record.
func (s *Storage) SaveResult(key uint64, r *engine.Result) error {
	rec := recordFromResult(key, r)
	return s.db.Update(func(txn *badger.Txn) error {
		return putRecord(txn, rec)
	})
}

// LoadRecord loads the raw record for key.
func (s *Storage) LoadRecord(key uint64) (*RolloutRecord, bool, error) {
	var rec *RolloutRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, key)
		return err
	})
	return rec, rec != nil, err
}

// LoadResult loads the accumulated result for key.
func (s *Storage) LoadResult(key uint64) (*engine.Result, bool, error) {
	rec, ok, err := s.LoadRecord(key)
	if err != nil || !ok {
		return nil, false, err
	}
	r, err := rec.Result()
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// Accumulate merges r into the record for key inside one transaction and
// returns the accumulated result. It implements engine.ResultStore.
func (s *Storage) Accumulate(key uint64, r *engine.Result) (*engine.Result, error) {
	var total *engine.Result
	newPosition := false

	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, key)
		if err != nil {
			return err
		}

		var runs []string
		if rec == nil {
			newPosition = true
			total = r.Clone()
		} else {
			total, err = rec.Result()
			if err != nil {
				return err
			}
			if err := total.Merge(r); err != nil {
				return err
			}
			total.RunID = r.RunID
			runs = rec.Runs
		}

		next := recordFromResult(key, total)
		next.Runs = appendRun(runs, r.RunID)
		if err := putRecord(txn, next); err != nil {
			return err
		}
		return updateStats(txn, r.Trials(), newPosition)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("key", strconv.FormatUint(key, 16)).
		Str("run", r.RunID).
		Uint64("trials", total.Trials()).
		Msg("rollout-stored")
	return total, nil
}

// DeleteResult removes the record for key.
func (s *Storage) DeleteResult(key uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(rolloutKey(key))
	})
}

// Keys lists the position keys with stored results.
func (s *Storage) Keys() ([]uint64, error) {
	var keys []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyRolloutPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			hex := strings.TrimPrefix(string(it.Item().Key()), keyRolloutPrefix)
			k, err := strconv.ParseUint(hex, 16, 64)
			if err != nil {
				return fmt.Errorf("bad rollout key %q: %w", it.Item().Key(), err)
			}
			keys = append(keys, k)
		}
		return nil
	})
	return keys, err
}

// LoadStats loads store statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*AnalysisStats, error) {
	stats := &AnalysisStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = getStats(txn)
		return err
	})
	return stats, err
}

func getRecord(txn *badger.Txn, key uint64) (*RolloutRecord, error) {
	item, err := txn.Get(rolloutKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := &RolloutRecord{}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func putRecord(txn *badger.Txn, rec *RolloutRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return txn.Set(rolloutKey(rec.Key), data)
}

func getStats(txn *badger.Txn) (*AnalysisStats, error) {
	stats := &AnalysisStats{}
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}

func updateStats(txn *badger.Txn, trials uint64, newPosition bool) error {
	stats, err := getStats(txn)
	if err != nil {
		return err
	}

	stats.Runs++
	stats.Trials += trials
	if newPosition {
		stats.Positions++
	}
	stats.LastRun = time.Now()

	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return txn.Set([]byte(keyStats), data)
}

func appendRun(runs []string, id string) []string {
	if id == "" {
		return runs
	}
	runs = append(runs, id)
	if len(runs) > maxRunIDs {
		runs = runs[len(runs)-maxRunIDs:]
	}
	return runs
}

func recordFromResult(key uint64, r *engine.Result) *RolloutRecord {
	rec := &RolloutRecord{
		Key:       key,
		Root:      r.Root,
		Turn:      r.Turn.String(),
		Runs:      appendRun(nil, r.RunID),
		Moves:     make([]StoredMove, len(r.Moves)),
		UpdatedAt: time.Now(),
	}
	for i, s := range r.Moves {
		rec.Moves[i] = StoredMove{
			Move:      s.Move.String(),
			BlackWins: s.BlackWins,
			WhiteWins: s.WhiteWins,
			Total:     s.Total,
		}
	}
	return rec
}

// Result converts the record back into an engine result.
func (rec *RolloutRecord) Result() (*engine.Result, error) {
	turn, err := board.ParseColor(rec.Turn)
	if err != nil {
		return nil, fmt.Errorf("record %016x: %w", rec.Key, err)
	}

	r := &engine.Result{
		Root:  rec.Root,
		Turn:  turn,
		Moves: make([]engine.MoveStats, len(rec.Moves)),
	}
	if len(rec.Runs) > 0 {
		r.RunID = rec.Runs[len(rec.Runs)-1]
	}
	for i, sm := range rec.Moves {
		m, err := board.ParseMove(sm.Move)
		if err != nil {
			return nil, fmt.Errorf("record %016x: %w", rec.Key, err)
		}
		r.Moves[i] = engine.MoveStats{
			Move:      m,
			BlackWins: sm.BlackWins,
			WhiteWins: sm.WhiteWins,
			Total:     sm.Total,
		}
	}
	return r, r.Validate()
}
