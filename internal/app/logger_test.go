package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charlesng35/codeshelf/pkg/logger"
)

func TestConfigureLogging(t *testing.T) {
	t.Cleanup(logger.Replace(nil))

	require.NoError(t, ConfigureLogging("", ""))
	require.True(t, logger.Logger().Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Logger().Core().Enabled(zap.DebugLevel))

	require.NoError(t, ConfigureLogging("warn", " Console "))
	require.False(t, logger.Logger().Core().Enabled(zap.InfoLevel))

	require.ErrorContains(t, ConfigureLogging("info", "xml"), "unsupported log format")
}
