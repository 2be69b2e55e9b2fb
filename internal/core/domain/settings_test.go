package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "http://127.0.0.1:8080", s.Endpoint.BaseURL)
	assert.Equal(t, SchemaV2, s.Endpoint.Schema)
	assert.Equal(t, 10*time.Second, s.Endpoint.Timeout)
	assert.Equal(t, DefaultThresholdBytes, s.Gate.ThresholdBytes)
	assert.Equal(t, 16, s.Dispatch.QueueSize)
	assert.Zero(t, s.Dispatch.RatePerSecond)
	assert.Equal(t, MissingTimeOmit, s.Timestamp.Missing)
	assert.Equal(t, HistoryMemory, s.History.Backend)
	assert.Equal(t, WatchPoll, s.Watch.Mode)
	assert.NoError(t, s.Validate())
}

func TestEndpointSettings_URL(t *testing.T) {
	e := EndpointSettings{BaseURL: "http://host:1", Schema: SchemaV2URLPath}
	assert.Equal(t, "http://host:1/api/v2/Item1712345678901", e.URL("1712345678901"))

	e.Path = "/custom"
	assert.Equal(t, "/custom", e.RequestPath())
	assert.Equal(t, "http://host:1/custom", e.URL(""))
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *AppSettings)
		err    error
	}{
		{"empty base url", func(s *AppSettings) { s.Endpoint.BaseURL = "" }, ErrInvalidInput},
		{"bad scheme", func(s *AppSettings) { s.Endpoint.BaseURL = "ftp://host" }, ErrInvalidInput},
		{"unknown schema", func(s *AppSettings) { s.Endpoint.Schema = "v3" }, ErrUnsupportedSchema},
		{"zero timeout", func(s *AppSettings) { s.Endpoint.Timeout = 0 }, ErrInvalidInput},
		{"negative threshold", func(s *AppSettings) { s.Gate.ThresholdBytes = -1 }, ErrInvalidInput},
		{"zero queue", func(s *AppSettings) { s.Dispatch.QueueSize = 0 }, ErrInvalidInput},
		{"negative rate", func(s *AppSettings) { s.Dispatch.RatePerSecond = -1 }, ErrInvalidInput},
		{"unknown policy", func(s *AppSettings) { s.Timestamp.Missing = "guess" }, ErrInvalidInput},
		{"unknown backend", func(s *AppSettings) { s.History.Backend = "redis" }, ErrInvalidInput},
		{"unknown watch mode", func(s *AppSettings) { s.Watch.Mode = "inotify" }, ErrInvalidInput},
		{"spool without dir", func(s *AppSettings) { s.Watch.Mode = WatchSpool }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.err)
		})
	}
}

func TestAppSettings_ValidateZeroThreshold(t *testing.T) {
	s := DefaultAppSettings()
	s.Gate.ThresholdBytes = 0

	assert.NoError(t, s.Validate(), "zero skips every item but is allowed")
}

func TestEnums(t *testing.T) {
	assert.True(t, MissingTimeNow.IsValid())
	assert.Equal(t, "zero", MissingTimeZero.String())
	assert.True(t, HistorySQLite.IsValid())
	assert.Equal(t, "sqlite", HistorySQLite.String())
	assert.True(t, WatchSpool.IsValid())
	assert.Equal(t, "spool", WatchSpool.String())
}
