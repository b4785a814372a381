// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 saidb Contributors

//go:build !windows

package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefaultLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestWarnInsecurePermissions(t *testing.T) {
	tests := []struct {
		name       string
		perm       os.FileMode
		expectWarn bool
	}{
		{"secure 0600", 0o600, false},
		{"secure 0400", 0o400, false},
		{"group readable 0640", 0o640, true},
		{"other readable 0604", 0o604, true},
		{"world readable 0644", 0o644, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "saidb.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  backend: sqlite\n"), 0o600))
			// WriteFile is subject to umask, so set the mode explicitly.
			require.NoError(t, os.Chmod(configPath, tt.perm))

			buf := captureDefaultLog(t)
			WarnInsecurePermissions(configPath)

			out := buf.String()
			if tt.expectWarn {
				assert.Contains(t, out, "insecure permissions")
				assert.Contains(t, out, "password")
				assert.Contains(t, out, configPath)
				assert.Contains(t, out, "0600")
			} else {
				assert.NotContains(t, out, "insecure permissions")
			}
		})
	}
}

func TestWarnInsecurePermissions_EmptyPath(t *testing.T) {
	buf := captureDefaultLog(t)
	WarnInsecurePermissions("")
	assert.Empty(t, buf.String())
}

func TestWarnInsecurePermissions_MissingFile(t *testing.T) {
	buf := captureDefaultLog(t)
	WarnInsecurePermissions(filepath.Join(t.TempDir(), "missing.yaml"))

	out := buf.String()
	assert.Contains(t, out, "could not stat")
	assert.NotContains(t, out, "insecure permissions")
}
