package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", Format: "json", Out: &buf})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("merchant", "tam").Msg("observed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "observed", entry["message"])
	assert.Equal(t, "tam", entry["merchant"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Out: &buf})
	require.NoError(t, err)

	log.Info().Msg("quiet")
	assert.Empty(t, buf.String())
	log.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Level: "shouty"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}
