package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// Ensure RelayService implements the interface.
var _ driving.Relay = (*RelayService)(nil)

// RelayConfig holds the settings a relay runs with.
type RelayConfig struct {
	Endpoint       domain.EndpointSettings
	ThresholdBytes int

	// HistoryKeep is the number of outcomes kept in history. Zero keeps all.
	HistoryKeep int
}

// RelayConfigFromSettings extracts the relay configuration.
func RelayConfigFromSettings(s domain.AppSettings) RelayConfig {
	return RelayConfig{
		Endpoint:       s.Endpoint,
		ThresholdBytes: s.Gate.ThresholdBytes,
		HistoryKeep:    s.History.Keep,
	}
}

// RelayService runs the gate, encode, build and send pipeline.
// Invocations share nothing but counters.
type RelayService struct {
	config    RelayConfig
	encoder   *ItemEncoder
	builder   *EnvelopeBuilder
	transport driven.Transport
	history   driven.OutcomeStore

	newID func() string
	now   func() time.Time

	mu    sync.Mutex
	stats domain.DeliveryStats
}

// NewRelayService creates a relay. history may be nil.
func NewRelayService(
	config RelayConfig,
	encoder *ItemEncoder,
	builder *EnvelopeBuilder,
	transport driven.Transport,
	history driven.OutcomeStore,
) *RelayService {
	return &RelayService{
		config:    config,
		encoder:   encoder,
		builder:   builder,
		transport: transport,
		history:   history,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Process handles one clipboard item synchronously.
func (r *RelayService) Process(ctx context.Context, item *domain.ClipboardItem) domain.Outcome {
	out := domain.Outcome{
		ID:        r.newID(),
		Schema:    r.config.Endpoint.Schema,
		StartedAt: r.now(),
	}

	r.run(ctx, item, &out)

	out.Duration = r.now().Sub(out.StartedAt)
	r.finish(ctx, out)
	return out
}

// Stats returns counters for invocations handled by this relay.
func (r *RelayService) Stats() domain.DeliveryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Config returns the configuration the relay runs with.
func (r *RelayService) Config() RelayConfig {
	return r.config
}

// run fills in the outcome. Every return leaves a terminal status.
func (r *RelayService) run(ctx context.Context, item *domain.ClipboardItem, out *domain.Outcome) {
	if r.encoder == nil || r.builder == nil || r.transport == nil {
		fail(out, domain.ReasonNotConfigured, errors.New("relay not configured"))
		return
	}
	if item == nil {
		fail(out, domain.ReasonInvalidRequest, fmt.Errorf("%w: nil item", domain.ErrInvalidInput))
		return
	}

	exceeds, counted := measure(item, r.config.ThresholdBytes)
	out.ItemBytes = counted
	if exceeds {
		out.Status = domain.OutcomeSkipped
		out.Reason = domain.ReasonSizeLimit
		return
	}

	blob, err := r.encoder.Encode(item)
	if err != nil {
		fail(out, domain.ReasonEncoding, err)
		return
	}

	env, err := r.builder.Build(item, blob, r.config.Endpoint.Schema)
	if err != nil {
		reason := domain.ReasonBuild
		if errors.Is(err, domain.ErrMissingTimestamp) {
			reason = domain.ReasonMissingTime
		}
		fail(out, reason, err)
		return
	}
	if v1, ok := env.(domain.EnvelopeV1); ok {
		out.Hash = v1.Hash
	}

	body, err := domain.MarshalEnvelope(env)
	if err != nil {
		fail(out, domain.ReasonEncoding, fmt.Errorf("%w: %v", domain.ErrEncoding, err))
		return
	}
	out.PayloadBytes = len(body)
	out.URL = r.config.Endpoint.URL(env.PathSuffix())

	resp, err := r.transport.Post(ctx, out.URL, body)
	if resp != nil {
		out.StatusCode = resp.StatusCode
	}
	if err != nil {
		var statusErr *domain.RemoteStatusError
		switch {
		case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusConflict:
			out.Status = domain.OutcomeSent
			out.Reason = domain.ReasonDuplicate
			out.StatusCode = statusErr.StatusCode
		case errors.As(err, &statusErr):
			out.StatusCode = statusErr.StatusCode
			fail(out, domain.ReasonRemoteStatus, err)
		case ctx.Err() != nil:
			fail(out, domain.ReasonCancelled, err)
		default:
			fail(out, domain.ReasonNetwork, err)
		}
		return
	}

	out.Status = domain.OutcomeSent
	out.Reason = domain.ReasonDelivered
}

// finish counts, records and logs a completed outcome.
func (r *RelayService) finish(ctx context.Context, out domain.Outcome) {
	r.mu.Lock()
	r.stats.Add(out)
	r.mu.Unlock()

	fields := logger.Fields(
		"outcome", out.Status,
		"id", out.ID,
		"schema", out.Schema,
		"bytes", out.ItemBytes,
		"status", out.StatusCode,
		"reason", out.Reason,
		"duration", out.Duration.Round(time.Millisecond),
	)
	if out.Status == domain.OutcomeFailed {
		logger.Error("relay: %s error=%q", fields, out.Error)
	} else {
		logger.Info("relay: %s", fields)
	}

	if r.history == nil {
		return
	}
	// History must not depend on the request context, which may be cancelled.
	histCtx := context.WithoutCancel(ctx)
	if err := r.history.Record(histCtx, out); err != nil {
		logger.Warn("relay: failed to record outcome %s: %v", out.ID, err)
		return
	}
	if r.config.HistoryKeep > 0 {
		if err := r.history.Prune(histCtx, r.config.HistoryKeep); err != nil {
			logger.Warn("relay: failed to prune history: %v", err)
		}
	}
}

func fail(out *domain.Outcome, reason string, err error) {
	out.Status = domain.OutcomeFailed
	out.Reason = reason
	if err != nil {
		out.Error = err.Error()
	}
}
