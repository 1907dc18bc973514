// Package storage persists accumulated rollout results.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "shogiplay"

// HomeEnv overrides the data directory when set.
const HomeEnv = "SHOGIPLAY_HOME"

// GetDataDir returns the data directory, creating it if needed:
// $SHOGIPLAY_HOME when set, otherwise the platform location
// (Application Support on macOS, %APPDATA% on Windows, XDG data home elsewhere).
func GetDataDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return ensureDir(dir)
	}
	base, err := platformDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the directory of the rollout store.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "rollouts"))
}

func platformDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
