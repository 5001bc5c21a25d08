package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("Ledger saved", "phone", "9000000001")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Ledger saved")
	assert.Contains(t, out, "phone=9000000001")
	assert.NotContains(t, out, "\x1b[", "no color codes outside a terminal")
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "app.log"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, isTerminal(f), "regular files are not terminals")
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
