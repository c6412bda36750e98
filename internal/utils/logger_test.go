package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info("listing %d files", 2)
	logger.Debug("debug line")
	logger.Error("failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "listing 2 files")
	assert.Contains(t, out, "DEBUG: ")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "failed: boom")
}

func TestLoggerDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{console: &buf}

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestLoggerWriteSplitsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	n, err := logger.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, len("first\nsecond\n"), n)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("INFO: ")))
}

func TestLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := NewLogger(dir, false)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, logger.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
