package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: http://127.0.0.1:8080")
	assert.Contains(t, out, "Request URL: http://127.0.0.1:8080/api/v2/Item")
	assert.Contains(t, out, "Threshold: 250000 bytes")
	assert.Contains(t, out, "Rate: unlimited")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetAndShow(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "", "settings", "set", "gate.threshold_bytes", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "Set gate.threshold_bytes = 1000")

	out, err = execute(t, s, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Threshold: 1000 bytes")
}

func TestSettingsCmd_SetWarnsOnInvalidCombination(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "", "settings", "set", "watch.mode", "spool")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "spool")
}

func TestSettingsCmd_SetRejects(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := execute(t, s, "", "settings", "set", "no.such.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, s, "", "settings", "set", "endpoint.schema", "v3")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSchema)
}

func TestSettingsCmd_Keys(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "", "settings", "keys")

	require.NoError(t, err)
	keys := strings.Fields(out)
	assert.Contains(t, keys, "endpoint.schema")
	assert.Contains(t, keys, "gate.threshold_bytes")
	assert.Equal(t, s.Settings.Keys(), keys)
}

func TestSettingsCmd_Schema(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "", "settings", "schema", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "Wire schema set to: v1")

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaV1, settings.Endpoint.Schema)
}

func TestSettingsCmd_SchemaInteractive(t *testing.T) {
	s, _ := newTestServices(t)

	out, err := execute(t, s, "3\n", "settings", "schema")

	require.NoError(t, err)
	assert.Contains(t, out, "Select Wire Schema")
	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.SchemaV2URLPath, settings.Endpoint.Schema)
}

func TestSettingsCmd_SchemaInvalidSelection(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := execute(t, s, "9\n", "settings", "schema")
	assert.EqualError(t, err, "invalid selection")

	_, err = execute(t, s, "", "settings", "schema", "v3")
	assert.ErrorIs(t, err, domain.ErrUnsupportedSchema)
}

func TestParseChoice(t *testing.T) {
	assert.Equal(t, 2, parseChoice("2", 3, 0))
	assert.Equal(t, 1, parseChoice("", 3, 1))
	assert.Equal(t, 0, parseChoice("4", 3, 0))
	assert.Equal(t, 0, parseChoice("x", 3, 0))
}
