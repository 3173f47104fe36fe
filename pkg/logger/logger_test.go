package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCallerPointsAtCallSite(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core, zap.AddCaller()))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("via wrapper")
	L().Info("via L")
	Warn("warn", zap.String("k", "v"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File), e.Message)
	}
	assert.Equal(t, "v", entries[2].ContextMap()["k"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })
	require.NoError(t, Init("not-a-level", "json"))
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
}
