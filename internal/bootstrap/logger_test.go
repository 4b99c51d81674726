package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := range 12 {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_10-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event_deadletter.jsonl"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "event_deadletter.jsonl", "non-log files are kept")
	assert.NotContains(t, names, "session_2026-01-03_10-00-00.log")
	assert.Contains(t, names, "session_2026-01-04_10-00-00.log")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("stdout only", func(t *testing.T) {
		f, err := SetupLogger(testConfig())
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("session file", func(t *testing.T) {
		cfg := testConfig()
		cfg.LogDir = filepath.Join(t.TempDir(), "logs")

		f, err := SetupLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, f)
		t.Cleanup(func() { _ = f.Close() })

		slog.Info("hello from the test")
		data, err := os.ReadFile(f.Name())
		require.NoError(t, err)
		assert.Contains(t, string(data), LogMsgStartingCoffeePOS)
		assert.Contains(t, string(data), "hello from the test")
	})
}
