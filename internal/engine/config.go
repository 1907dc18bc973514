package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/rs/zerolog"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config controls rollout estimation.
type Config struct {
	Trials   int    `json:"trials"`    // rollouts per Analyze call
	Workers  int    `json:"workers"`   // parallel workers
	Kernel   string `json:"kernel"`    // "auto", "scalar" or "wide"
	Seed     uint64 `json:"seed"`      // 0 draws fresh entropy
	LogLevel string `json:"log_level"` // zerolog level name
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Trials:   1000,
		Workers:  runtime.NumCPU(),
		Kernel:   board.KernelAuto,
		Seed:     0,
		LogLevel: "info",
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Kernel {
	case board.KernelAuto, board.KernelScalar, board.KernelWide:
	default:
		return fmt.Errorf("%w: unknown kernel %q", ErrInvalidConfig, c.Kernel)
	}
	if _, err := c.level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(c.LogLevel)
}
