package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"kayoemoeda/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "kayoe.log")
	l, err := logger.Init("production", file)
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())

	zap.S().Infow("order created", "orderCode", "KM-1")
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "KM-1")
}

func TestInitDevelopment(t *testing.T) {
	l, err := logger.Init("development", "")
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())
	assert.Same(t, l, zap.L())
}
