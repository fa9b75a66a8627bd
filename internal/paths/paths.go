// Package paths resolves the configuration directory and database file
// locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "donations"

	// DefaultDBFileName is the database file created in the working
	// directory when nothing else names one.
	DefaultDBFileName = "donation_app.db"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir = "DONATIONS_CONFIG_DIR"
	EnvDBPath    = "DONATIONS_DB"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/donations (fallback ~/.config/donations)
// macOS:   ~/Library/Application Support/donations
// Windows: %APPDATA%/donations
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > DONATIONS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the database file following the precedence chain:
// flag > config.yaml db_path > DONATIONS_DB env > $(CWD)/donation_app.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDBFileName), nil
}
