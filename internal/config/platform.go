package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// UserCacheDir resolves the per-user cache directory for name.
//
//	darwin: <home>/Library/Caches/<name>
//	linux:  $XDG_CACHE_HOME/<name>, or <home>/.cache/<name> when unset
//
// Every other goos is rejected with ErrUnsupportedPlatform.
func UserCacheDir(goos string, getenv func(string) string, home string, name string) (string, error) {
	var base string
	switch goos {
	case "darwin":
		base = filepath.Join(home, "Library", "Caches")
	case "linux":
		base = getenv("XDG_CACHE_HOME")
		if base == "" {
			base = filepath.Join(home, ".cache")
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	return filepath.Join(base, name), nil
}

// DefaultProceduresDir is the procedures directory next to the running
// executable.
func DefaultProceduresDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "procedures"), nil
}
