package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	env   string
	level string
}

func (c testConfig) GetEnv() string      { return c.env }
func (c testConfig) GetLogLevel() string { return c.level }

func TestLevelFromString(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, levelFromString("debug"))
	require.Equal(t, zerolog.WarnLevel, levelFromString("warning"))
	require.Equal(t, zerolog.ErrorLevel, levelFromString("error"))
	require.Equal(t, zerolog.InfoLevel, levelFromString("bogus"))
}

func TestSetup_JSONOutsideDev(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := setup(testConfig{env: "PROD", level: "info"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("user", "alice").Msg("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"user":"alice"`)
	require.Contains(t, out, `"message":"visible"`)
}
