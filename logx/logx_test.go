package logx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsCarryCategory(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("STORE", "opened ", "db")
	Warn("BENCH", "degraded")
	Error("IMPORT", "stream broke")
	Debug("LEDGER", "block ", 7)

	out := buf.String()
	assert.Contains(t, out, "[INFO][STORE]")
	assert.Contains(t, out, "opened db")
	assert.Contains(t, out, "[WARN][BENCH]")
	assert.Contains(t, out, "[ERROR][IMPORT]")
	assert.Contains(t, out, "[DEBUG][LEDGER]")
	assert.Contains(t, out, "block 7")
}

func TestErrorfReturnsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	cause := errors.New("disk full")
	err := Errorf("write failed: %w", cause)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buf.String(), "write failed: disk full")
}

func TestEnvIntFallback(t *testing.T) {
	t.Setenv("LOGFILE_MAX_SIZE_MB", "not-a-number")
	assert.Equal(t, defaultMaxSizeMB, getMaxSize())

	t.Setenv("LOGFILE_MAX_AGE_DAYS", "3")
	assert.Equal(t, 3, getMaxAge())

	t.Setenv("LOGFILE", "")
	assert.Equal(t, defaultLogFile, getLogFilename())
}
