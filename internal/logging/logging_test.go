package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDisabled(t *testing.T) {
	logger, err := New("", "debug")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNewWritesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "choromap.log")
	logger, err := New(p, "debug")
	require.NoError(t, err)
	logger.Debug("classified", zap.String("prop", "density"))
	_ = logger.Sync()

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"classified"`)
	assert.Contains(t, string(data), `"prop":"density"`)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	assert.Error(t, err)
}
