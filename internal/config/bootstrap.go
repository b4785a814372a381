// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

package config

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"

	saierr "github.com/sourcedestination/saidb/pkg/errors"
)

//go:embed saidb.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath returns ~/.config/saidb/saidb.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", saierr.Errorf(saierr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "saidb", "saidb.yaml"), nil
}

// BootstrapConfig writes the commented default config to DefaultConfigPath
// unless a file is already there. It returns the path written, or "" when
// nothing was written. Failures are logged at debug level and skipped.
func BootstrapConfig() string {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		slog.Debug("skipping config bootstrap", "error", err)
		return ""
	}
	return bootstrapAt(cfgPath)
}

func bootstrapAt(cfgPath string) string {
	if _, err := os.Stat(cfgPath); err == nil {
		return ""
	}

	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Debug("skipping config bootstrap: cannot create directory", "path", dir, "error", err)
		return ""
	}

	if err := os.WriteFile(cfgPath, DefaultConfigYAML, 0o600); err != nil {
		slog.Debug("skipping config bootstrap: cannot write config", "path", cfgPath, "error", err)
		return ""
	}

	slog.Info("created default config", "path", cfgPath)
	return cfgPath
}
