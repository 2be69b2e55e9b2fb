package domain

import "time"

// OutcomeStatus is the terminal state of one relay invocation.
type OutcomeStatus string

// Terminal states.
const (
	// OutcomeSkipped means the item was filtered out before encoding.
	OutcomeSkipped OutcomeStatus = "skipped"

	// OutcomeSent means the remote accepted the envelope.
	OutcomeSent OutcomeStatus = "sent"

	// OutcomeFailed means encoding, building or delivery failed.
	OutcomeFailed OutcomeStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s OutcomeStatus) IsValid() bool {
	switch s {
	case OutcomeSkipped, OutcomeSent, OutcomeFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s OutcomeStatus) String() string {
	return string(s)
}

// Reasons attached to outcomes.
const (
	ReasonDelivered      = "delivered"
	ReasonDuplicate      = "duplicate"
	ReasonSizeLimit      = "size limit exceeded"
	ReasonEmptyItem      = "empty item"
	ReasonEncoding       = "encoding failed"
	ReasonBuild          = "envelope build failed"
	ReasonNetwork        = "network failure"
	ReasonRemoteStatus   = "remote rejected request"
	ReasonDispatchPanic  = "dispatch panic"
	ReasonMissingTime    = "missing timestamp"
	ReasonNotConfigured  = "relay not configured"
	ReasonCancelled      = "cancelled"
	ReasonInvalidRequest = "invalid request"
)

// Outcome records what happened to one clipboard item.
// It never carries the item's payload.
type Outcome struct {
	// ID uniquely identifies the attempt.
	ID string

	// Status is the terminal state.
	Status OutcomeStatus

	// Reason is a short machine-friendly explanation.
	Reason string

	// Schema is the wire schema that was active.
	Schema SchemaVersion

	// URL is the request URL, empty when nothing was sent.
	URL string

	// ItemBytes is the summed size of every format, counted up to the gate.
	ItemBytes int

	// PayloadBytes is the length of the request body.
	PayloadBytes int

	// StatusCode is the HTTP status returned, zero if no response.
	StatusCode int

	// Hash is the content hash for schemas that carry one.
	Hash string

	// Error is the error message for failed outcomes.
	Error string

	// StartedAt is when the invocation started.
	StartedAt time.Time

	// Duration is how long the invocation took.
	Duration time.Duration
}

// Succeeded reports whether the invocation ended without failure.
func (o Outcome) Succeeded() bool {
	return o.Status != OutcomeFailed
}

// DeliveryStats aggregates outcome counts.
type DeliveryStats struct {
	Skipped int
	Sent    int
	Failed  int

	// LastFailure is when the most recent failure happened.
	LastFailure time.Time

	// LastError is the message of the most recent failure.
	LastError string
}

// Total returns the number of recorded invocations.
func (s DeliveryStats) Total() int {
	return s.Skipped + s.Sent + s.Failed
}

// Add folds an outcome into the stats.
func (s *DeliveryStats) Add(o Outcome) {
	switch o.Status {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeSent:
		s.Sent++
	case OutcomeFailed:
		s.Failed++
		if o.StartedAt.After(s.LastFailure) || s.LastFailure.IsZero() {
			s.LastFailure = o.StartedAt
			s.LastError = o.Error
		}
	}
}

// Response summarises an HTTP response whose body was discarded.
type Response struct {
	StatusCode int
	BodyBytes  int64
}
