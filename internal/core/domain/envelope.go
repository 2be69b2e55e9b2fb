package domain

import (
	"encoding/json"
	"strconv"
)

// Envelope is the record delivered to the remote endpoint.
// It is one of EnvelopeV1, EnvelopeV2 or EnvelopeV2URLPath.
type Envelope interface {
	// Schema reports which wire schema the envelope belongs to.
	Schema() SchemaVersion

	// PathSuffix is appended to the request path. Empty for body-only schemas.
	PathSuffix() string

	isEnvelope()
}

// EnvelopeV1 is the four-field record posted to the v1 API.
// A nil Time serialises as null.
type EnvelopeV1 struct {
	Time *int64 `json:"ClipboardItemTime"`
	Text string `json:"ClipboardItemText"`
	Hash string `json:"ClipboardItemHash"`
	Data string `json:"ClipboardItemData"`
}

// EnvelopeV2 carries only the copy time and the payload.
type EnvelopeV2 struct {
	Time *int64 `json:"Time,omitempty"`
	Data string `json:"Data"`
}

// EnvelopeV2URLPath moves the copy time into the request path.
type EnvelopeV2URLPath struct {
	Time int64  `json:"-"`
	Data string `json:"Data"`
}

// Schema implements Envelope.
func (EnvelopeV1) Schema() SchemaVersion { return SchemaV1 }

// Schema implements Envelope.
func (EnvelopeV2) Schema() SchemaVersion { return SchemaV2 }

// Schema implements Envelope.
func (EnvelopeV2URLPath) Schema() SchemaVersion { return SchemaV2URLPath }

// PathSuffix implements Envelope.
func (EnvelopeV1) PathSuffix() string { return "" }

// PathSuffix implements Envelope.
func (EnvelopeV2) PathSuffix() string { return "" }

// PathSuffix implements Envelope.
func (e EnvelopeV2URLPath) PathSuffix() string {
	return strconv.FormatInt(e.Time, 10)
}

func (EnvelopeV1) isEnvelope()        {}
func (EnvelopeV2) isEnvelope()        {}
func (EnvelopeV2URLPath) isEnvelope() {}

// MarshalEnvelope renders the JSON request body of an envelope.
func MarshalEnvelope(env Envelope) ([]byte, error) {
	if env == nil {
		return nil, ErrInvalidInput
	}
	return json.Marshal(env)
}
