package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/ledgerrecon/internal/config"
)

// loadConfig reads the config at path, applies LEDGER_* overrides and makes
// relative paths relative to the config's directory. A missing file falls
// back to defaults unless required is set.
func loadConfig(path string, required bool) (*config.Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(absPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !required:
		cfg = config.Default()
	default:
		return nil, err
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", absPath, err)
	}
	cfg.Resolve(filepath.Dir(absPath))

	if cfg.HostLabel == "" {
		if host, err := os.Hostname(); err == nil {
			cfg.HostLabel = host
		}
	}
	return cfg, nil
}
