package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultLogDir returns the OS-appropriate directory for the log file.
// Tracker data itself stays under the HOME-based root from the config;
// only diagnostics live here.
//
//   - macOS:   ~/Library/Application Support/triday
//   - Linux:   $XDG_STATE_HOME/triday (fallback ~/.local/state/triday)
//   - Windows: %LOCALAPPDATA%\triday (fallback %APPDATA%\triday)
func DefaultLogDir() string {
	return defaultLogDirForOS(runtime.GOOS)
}

func defaultLogDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "triday")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "triday")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "triday")
		}
		return filepath.Join(home, "triday")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
			return filepath.Join(dir, "triday")
		}
		return filepath.Join(home, ".local", "state", "triday")
	}
}
