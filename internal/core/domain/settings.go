package domain

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultThresholdBytes is the summed item size at which items are skipped.
const DefaultThresholdBytes = 250 * 1000

// MissingTimePolicy decides what to send when an item has no usable copy time.
type MissingTimePolicy string

// Available policies.
const (
	// MissingTimeOmit leaves the time out (null in v1, absent in v2).
	MissingTimeOmit MissingTimePolicy = "omit"

	// MissingTimeZero sends zero.
	MissingTimeZero MissingTimePolicy = "zero"

	// MissingTimeNow sends the current time in unix milliseconds.
	MissingTimeNow MissingTimePolicy = "now"
)

// IsValid returns true if the policy is recognised.
func (p MissingTimePolicy) IsValid() bool {
	switch p {
	case MissingTimeOmit, MissingTimeZero, MissingTimeNow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p MissingTimePolicy) String() string {
	return string(p)
}

// HistoryBackend selects where outcome history is kept.
type HistoryBackend string

// Available history backends.
const (
	// HistoryMemory keeps outcomes for the life of the process.
	HistoryMemory HistoryBackend = "memory"

	// HistorySQLite keeps outcomes in a local SQLite database.
	HistorySQLite HistoryBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b HistoryBackend) IsValid() bool {
	return b == HistoryMemory || b == HistorySQLite
}

// String returns the string representation.
func (b HistoryBackend) String() string {
	return string(b)
}

// WatchMode selects the clipboard change trigger used by long-running commands.
type WatchMode string

// Available watch modes.
const (
	// WatchPoll polls the system clipboard.
	WatchPoll WatchMode = "poll"

	// WatchSpool watches a directory the clipboard manager drops items into.
	WatchSpool WatchMode = "spool"
)

// IsValid returns true if the mode is recognised.
func (m WatchMode) IsValid() bool {
	return m == WatchPoll || m == WatchSpool
}

// String returns the string representation.
func (m WatchMode) String() string {
	return string(m)
}

// EndpointSettings describes where envelopes are delivered.
type EndpointSettings struct {
	// BaseURL is scheme, host and port, e.g. http://127.0.0.1:8080.
	BaseURL string

	// Path overrides the schema's default request path when set.
	Path string

	// Schema is the active wire schema.
	Schema SchemaVersion

	// Timeout bounds each request.
	Timeout time.Duration

	// InsecureSkipVerify accepts self-signed certificates.
	InsecureSkipVerify bool
}

// RequestPath returns the path envelopes are posted to, before any suffix.
func (e EndpointSettings) RequestPath() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Schema.DefaultPath()
}

// URL returns the full request URL for an envelope path suffix.
func (e EndpointSettings) URL(suffix string) string {
	return e.BaseURL + e.RequestPath() + suffix
}

// GateSettings controls the size gate.
type GateSettings struct {
	// ThresholdBytes rejects items whose summed size reaches it.
	ThresholdBytes int
}

// DispatchSettings controls asynchronous delivery.
type DispatchSettings struct {
	// QueueSize bounds pending items.
	QueueSize int

	// RatePerSecond limits requests. Zero disables limiting.
	RatePerSecond float64

	// Burst is the rate limiter bucket size.
	Burst int
}

// TimestampSettings controls copy time extraction.
type TimestampSettings struct {
	// Missing is applied when an item has no usable copy time.
	Missing MissingTimePolicy
}

// HistorySettings controls outcome history.
type HistorySettings struct {
	Backend HistoryBackend

	// Keep is the number of outcomes retained.
	Keep int
}

// WatchSettings controls clipboard change triggers.
type WatchSettings struct {
	Mode WatchMode

	// Interval is the poll period.
	Interval time.Duration

	// SpoolDir is the directory watched in spool mode.
	SpoolDir string
}

// AppSettings holds every user-configurable setting.
type AppSettings struct {
	Endpoint  EndpointSettings
	Gate      GateSettings
	Dispatch  DispatchSettings
	Timestamp TimestampSettings
	History   HistorySettings
	Watch     WatchSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Endpoint: EndpointSettings{
			BaseURL: "http://127.0.0.1:8080",
			Schema:  SchemaV2,
			Timeout: 10 * time.Second,
		},
		Gate: GateSettings{
			ThresholdBytes: DefaultThresholdBytes,
		},
		Dispatch: DispatchSettings{
			QueueSize: 16,
			Burst:     1,
		},
		Timestamp: TimestampSettings{
			Missing: MissingTimeOmit,
		},
		History: HistorySettings{
			Backend: HistoryMemory,
			Keep:    100,
		},
		Watch: WatchSettings{
			Mode:     WatchPoll,
			Interval: 500 * time.Millisecond,
		},
	}
}

// Validate checks settings for values the relay cannot run with.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.Endpoint.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: endpoint base url %q", ErrInvalidInput, s.Endpoint.BaseURL)
	}
	if !s.Endpoint.Schema.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedSchema, s.Endpoint.Schema)
	}
	if s.Endpoint.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.Gate.ThresholdBytes < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalidInput)
	}
	if s.Dispatch.QueueSize <= 0 {
		return fmt.Errorf("%w: queue size must be positive", ErrInvalidInput)
	}
	if s.Dispatch.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}
	if !s.Timestamp.Missing.IsValid() {
		return fmt.Errorf("%w: missing timestamp policy %q", ErrInvalidInput, s.Timestamp.Missing)
	}
	if !s.History.Backend.IsValid() {
		return fmt.Errorf("%w: history backend %q", ErrInvalidInput, s.History.Backend)
	}
	if !s.Watch.Mode.IsValid() {
		return fmt.Errorf("%w: watch mode %q", ErrInvalidInput, s.Watch.Mode)
	}
	if s.Watch.Mode == WatchSpool && s.Watch.SpoolDir == "" {
		return fmt.Errorf("%w: spool mode requires a spool directory", ErrInvalidInput)
	}
	return nil
}
