package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyEndpointBaseURL  = "endpoint.base_url"
	keyEndpointPath     = "endpoint.path"
	keyEndpointSchema   = "endpoint.schema"
	keyEndpointTimeout  = "endpoint.timeout_seconds"
	keyEndpointInsecure = "endpoint.insecure_skip_verify"
	keyGateThreshold    = "gate.threshold_bytes"
	keyDispatchQueue    = "dispatch.queue_size"
	keyDispatchRate     = "dispatch.rate_per_second"
	keyDispatchBurst    = "dispatch.burst"
	keyTimestampMissing = "timestamp.missing"
	keyHistoryBackend   = "history.backend"
	keyHistoryKeep      = "history.keep"
	keyWatchMode        = "watch.mode"
	keyWatchInterval    = "watch.interval_ms"
	keyWatchSpoolDir    = "watch.spool_dir"
)

// settableKeys lists the keys accepted by Set, in display order.
var settableKeys = []string{
	keyEndpointBaseURL,
	keyEndpointPath,
	keyEndpointSchema,
	keyEndpointTimeout,
	keyEndpointInsecure,
	keyGateThreshold,
	keyDispatchQueue,
	keyDispatchRate,
	keyDispatchBurst,
	keyTimestampMissing,
	keyHistoryBackend,
	keyHistoryKeep,
	keyWatchMode,
	keyWatchInterval,
	keyWatchSpoolDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Endpoint: domain.EndpointSettings{
			BaseURL:            strings.TrimRight(s.getString(keyEndpointBaseURL, defaults.Endpoint.BaseURL), "/"),
			Path:               s.configStore.GetString(keyEndpointPath), // No default - empty means schema path
			Schema:             s.getSchema(defaults.Endpoint.Schema),
			Timeout:            time.Duration(s.getInt(keyEndpointTimeout, int(defaults.Endpoint.Timeout/time.Second))) * time.Second,
			InsecureSkipVerify: s.getBool(keyEndpointInsecure, defaults.Endpoint.InsecureSkipVerify),
		},
		Gate: domain.GateSettings{
			ThresholdBytes: s.getInt(keyGateThreshold, defaults.Gate.ThresholdBytes),
		},
		Dispatch: domain.DispatchSettings{
			QueueSize:     s.getInt(keyDispatchQueue, defaults.Dispatch.QueueSize),
			RatePerSecond: s.getFloat(keyDispatchRate, defaults.Dispatch.RatePerSecond),
			Burst:         s.getInt(keyDispatchBurst, defaults.Dispatch.Burst),
		},
		Timestamp: domain.TimestampSettings{
			Missing: s.getMissingPolicy(defaults.Timestamp.Missing),
		},
		History: domain.HistorySettings{
			Backend: s.getHistoryBackend(defaults.History.Backend),
			Keep:    s.getInt(keyHistoryKeep, defaults.History.Keep),
		},
		Watch: domain.WatchSettings{
			Mode:     s.getWatchMode(defaults.Watch.Mode),
			Interval: time.Duration(s.getInt(keyWatchInterval, int(defaults.Watch.Interval/time.Millisecond))) * time.Millisecond,
			SpoolDir: s.configStore.GetString(keyWatchSpoolDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyEndpointBaseURL, settings.Endpoint.BaseURL},
		{keyEndpointPath, settings.Endpoint.Path},
		{keyEndpointSchema, settings.Endpoint.Schema.String()},
		{keyEndpointTimeout, int(settings.Endpoint.Timeout / time.Second)},
		{keyEndpointInsecure, settings.Endpoint.InsecureSkipVerify},
		{keyGateThreshold, settings.Gate.ThresholdBytes},
		{keyDispatchQueue, settings.Dispatch.QueueSize},
		{keyDispatchRate, settings.Dispatch.RatePerSecond},
		{keyDispatchBurst, settings.Dispatch.Burst},
		{keyTimestampMissing, settings.Timestamp.Missing.String()},
		{keyHistoryBackend, settings.History.Backend.String()},
		{keyHistoryKeep, settings.History.Keep},
		{keyWatchMode, settings.Watch.Mode.String()},
		{keyWatchInterval, int(settings.Watch.Interval / time.Millisecond)},
		{keyWatchSpoolDir, settings.Watch.SpoolDir},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by its dotted key.
// The value is parsed according to the key's type and validated.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var parsed any
	switch key {
	case keyEndpointBaseURL:
		parsed = strings.TrimRight(value, "/")
	case keyEndpointPath, keyWatchSpoolDir:
		parsed = value
	case keyEndpointSchema:
		if !domain.SchemaVersion(value).IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedSchema, value)
		}
		parsed = value
	case keyTimestampMissing:
		if !domain.MissingTimePolicy(value).IsValid() {
			return fmt.Errorf("%w: missing timestamp policy %q", domain.ErrInvalidInput, value)
		}
		parsed = value
	case keyHistoryBackend:
		if !domain.HistoryBackend(value).IsValid() {
			return fmt.Errorf("%w: history backend %q", domain.ErrInvalidInput, value)
		}
		parsed = value
	case keyWatchMode:
		if !domain.WatchMode(value).IsValid() {
			return fmt.Errorf("%w: watch mode %q", domain.ErrInvalidInput, value)
		}
		parsed = value
	case keyEndpointInsecure:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case keyDispatchRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: %s expects a non-negative number", domain.ErrInvalidInput, key)
		}
		parsed = f
	case keyEndpointTimeout, keyGateThreshold, keyDispatchQueue, keyDispatchBurst,
		keyHistoryKeep, keyWatchInterval:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.configStore.Set(key, parsed)
}

// SetSchema updates the active wire schema.
func (s *SettingsService) SetSchema(schema domain.SchemaVersion) error {
	return s.Set(keyEndpointSchema, schema.String())
}

// Validate checks if current settings can run the relay.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settableKeys))
	copy(keys, settableKeys)
	return keys
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt keeps an explicit zero so gate.threshold_bytes = 0 is honoured.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch val.(type) {
	case int, int64:
		return s.configStore.GetInt(key)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	// TOML numbers are parsed as int64 or float64
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getSchema(defaultVal domain.SchemaVersion) domain.SchemaVersion {
	schema := domain.SchemaVersion(s.configStore.GetString(keyEndpointSchema))
	if !schema.IsValid() {
		return defaultVal
	}
	return schema
}

func (s *SettingsService) getMissingPolicy(defaultVal domain.MissingTimePolicy) domain.MissingTimePolicy {
	policy := domain.MissingTimePolicy(s.configStore.GetString(keyTimestampMissing))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getHistoryBackend(defaultVal domain.HistoryBackend) domain.HistoryBackend {
	backend := domain.HistoryBackend(s.configStore.GetString(keyHistoryBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getWatchMode(defaultVal domain.WatchMode) domain.WatchMode {
	mode := domain.WatchMode(s.configStore.GetString(keyWatchMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
