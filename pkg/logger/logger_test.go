package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		require.NoError(t, Init(level, "json"), "level %s", level)
		require.NotNil(t, Logger())
	}
}

func TestInitFallsBackToInfoOnUnknownLevel(t *testing.T) {
	require.NoError(t, Init("shouting", "console"))
	require.NotNil(t, Logger())
}

func TestWithModuleReturnsChildLogger(t *testing.T) {
	require.NoError(t, Init("info", "json"))
	child := WithModule("engine")
	require.NotNil(t, child)
	require.NotSame(t, Logger(), child)
}
