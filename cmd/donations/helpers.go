package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gobusters/ectologger"

	"github.com/mesh-intelligence/donations/internal/logging"
	"github.com/mesh-intelligence/donations/internal/paths"
	"github.com/mesh-intelligence/donations/internal/sqlite"
	"github.com/mesh-intelligence/donations/pkg/types"
)

// newLogger builds the logger at --log-level, falling back to config.yaml.
func newLogger() (ectologger.Logger, error) {
	level := flagLogLevel
	if level == "" {
		level = cfg.GetString(cfgKeyLogLevel)
	}
	logger, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return logger, nil
}

// storeConfig resolves the database path and start-up switches. Only the
// interactive session honours reset_on_start and seed_sample_data; the
// scripted subcommands work on the existing rows.
func storeConfig(interactive bool) (types.Config, error) {
	dbPath, err := paths.ResolveDBPath(flagDBPath, cfg.GetString(cfgKeyDBPath))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve database path: %w", err)
	}
	config := types.Config{DBPath: dbPath}
	if interactive {
		config.ResetOnStart = cfg.GetBool(cfgKeyResetOnStart)
		config.SeedSampleData = cfg.GetBool(cfgKeySeedSampleData)
	}
	return config, nil
}

// attachBackend creates a SQLite backend and attaches it. The caller must
// defer backend.Detach().
func attachBackend(ctx context.Context, logger ectologger.Logger, config types.Config) (*sqlite.Backend, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	backend := sqlite.NewBackend(logger)
	if err := backend.Attach(ctx, config); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return backend, nil
}
