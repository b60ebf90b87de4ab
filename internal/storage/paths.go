// Package storage archives played games and perft counts in BadgerDB.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessrules"

// baseDataDir picks the per-user data root for goos. Environment lookups
// and the home directory are passed in so every platform can be tested
// from any host.
func baseDataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	var envVar string
	var fallback []string

	switch goos {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		envVar = "APPDATA"
		fallback = []string{"AppData", "Roaming"}
	default:
		envVar = "XDG_DATA_HOME"
		fallback = []string{".local", "share"}
	}

	if envVar != "" {
		if dir := getenv(envVar); dir != "" {
			return dir, nil
		}
	}
	h, err := home()
	if err != nil {
		return "", fmt.Errorf("storage: locate home directory: %w", err)
	}
	return filepath.Join(append([]string{h}, fallback...)...), nil
}

// mkdir creates dir and its parents if needed and returns it.
func mkdir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return dir, nil
}

// GetDataDir returns the application's data directory, creating it if needed:
// ~/Library/Application Support/chessrules on macOS, %APPDATA%\chessrules on
// Windows and $XDG_DATA_HOME/chessrules (default ~/.local/share) elsewhere.
func GetDataDir() (string, error) {
	base, err := baseDataDir(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return mkdir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the "db" directory under GetDataDir used by Open
// when no directory is given.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return mkdir(filepath.Join(dataDir, "db"))
}
