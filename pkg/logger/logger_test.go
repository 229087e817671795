package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInitAttachesServiceFields(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Service: "designdesk", Env: "test", Output: &buf})
	l := Component("auth")
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "designdesk", entry["service"])
	require.Equal(t, "test", entry["env"])
	require.Equal(t, "auth", entry["component"])
	require.Equal(t, "hello", entry["message"])
}

func TestInitOnlyOnce(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	l := Get()
	l.Info().Msg("x")

	require.NotZero(t, first.Len())
	require.Zero(t, second.Len())
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	require.Panics(t, func() { Get() })
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.TraceLevel, ParseLevel("TRACE"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}
