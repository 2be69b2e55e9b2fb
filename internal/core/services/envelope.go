package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// ContentHash returns the hex SHA-256 of the blob's transport bytes.
func ContentHash(blob domain.EncodedBlob) string {
	sum := sha256.Sum256(blob.Bytes())
	return hex.EncodeToString(sum[:])
}

// EnvelopeBuilder assembles versioned envelopes.
type EnvelopeBuilder struct {
	missing domain.MissingTimePolicy
	now     func() time.Time
}

// NewEnvelopeBuilder creates a builder applying policy to items without a
// usable copy time.
func NewEnvelopeBuilder(policy domain.MissingTimePolicy) *EnvelopeBuilder {
	if !policy.IsValid() {
		policy = domain.MissingTimeOmit
	}
	return &EnvelopeBuilder{
		missing: policy,
		now:     time.Now,
	}
}

// WithClock replaces the clock used by the "now" policy.
func (b *EnvelopeBuilder) WithClock(now func() time.Time) *EnvelopeBuilder {
	b.now = now
	return b
}

// Build creates the envelope for schema from the item and its encoded blob.
func (b *EnvelopeBuilder) Build(
	item *domain.ClipboardItem,
	blob domain.EncodedBlob,
	schema domain.SchemaVersion,
) (domain.Envelope, error) {
	ts := b.timestamp(item)

	switch schema {
	case domain.SchemaV1:
		return domain.EnvelopeV1{
			Time: ts,
			Text: item.Text(),
			Hash: ContentHash(blob),
			Data: blob.Text,
		}, nil

	case domain.SchemaV2:
		return domain.EnvelopeV2{
			Time: ts,
			Data: blob.Text,
		}, nil

	case domain.SchemaV2URLPath:
		if ts == nil {
			return nil, fmt.Errorf("%w: schema %s puts the time in the request path",
				domain.ErrMissingTimestamp, schema)
		}
		return domain.EnvelopeV2URLPath{
			Time: *ts,
			Data: blob.Text,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSchema, schema)
	}
}

// timestamp resolves the copy time, or nil when it should be left out.
func (b *EnvelopeBuilder) timestamp(item *domain.ClipboardItem) *int64 {
	if ms, ok := item.UserCopyTime(); ok {
		return &ms
	}

	logger.Warn("envelope: %s", logger.Fields(
		"format", domain.FormatUserCopyTime,
		"present", item.Has(domain.FormatUserCopyTime),
		"policy", b.missing,
	))

	switch b.missing {
	case domain.MissingTimeZero:
		var zero int64
		return &zero
	case domain.MissingTimeNow:
		ms := b.now().UnixMilli()
		return &ms
	default:
		return nil
	}
}
