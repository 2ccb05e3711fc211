package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagedriver.log")

	logger, err := NewFileLogger("test", path)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("hello %s", "world")
	logger.Errorf("boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[INFO] hello world")
	assert.Contains(t, content, "[ERROR] boom")
	assert.Contains(t, content, "[test]")
}

func TestFileLoggerSharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.log")

	first, err := NewFileLogger("alpha", path)
	require.NoError(t, err)
	defer first.Close()

	second, err := NewFileLogger("beta", path)
	require.NoError(t, err)
	defer second.Close()

	first.Infof("from alpha")
	second.Infof("from beta")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[alpha]")
	assert.Contains(t, string(data), "[beta]")
}

func TestFileLoggerFallsBackToStderr(t *testing.T) {
	logger, err := NewFileLogger("test", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
	require.NotNil(t, logger)

	// Fallback logger must still be usable.
	logger.Infof("still alive")
	assert.Equal(t, os.Stderr, logger.Writer())
}

func TestRunIDStable(t *testing.T) {
	a := NewLogger("one")
	b := NewLogger("two")
	assert.Equal(t, a.RunID(), b.RunID())
	assert.Len(t, a.RunID(), 8)
	assert.False(t, strings.Contains(a.RunID(), " "))
}

func TestCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.log")
	logger, err := NewFileLogger("test", path)
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
