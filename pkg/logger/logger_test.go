package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Service: "bodegas-api", Out: &buf})

	c := l.Component("ordering")
	c.Info().Str("order_id", "o1").Msg("transición de orden")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "bodegas-api", event["service"])
	assert.Equal(t, "ordering", event["component"])
	assert.Equal(t, "o1", event["order_id"])
	assert.Equal(t, "info", event["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}

func TestNop_NoEscribe(t *testing.T) {
	l := Nop()
	l.Info().Msg("nada")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
