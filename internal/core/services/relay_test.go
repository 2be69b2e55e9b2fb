package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/transport/httpclient"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// postCall records one Post invocation.
type postCall struct {
	url  string
	body []byte
}

// mockTransport implements driven.Transport for testing.
type mockTransport struct {
	mu      sync.Mutex
	calls   []postCall
	respond func(n int) (*domain.Response, error)
}

func (m *mockTransport) Post(_ context.Context, url string, body []byte) (*domain.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, postCall{url: url, body: append([]byte(nil), body...)})
	n := len(m.calls)
	m.mu.Unlock()

	if m.respond != nil {
		return m.respond(n)
	}
	return &domain.Response{StatusCode: http.StatusOK}, nil
}

func (m *mockTransport) Calls() []postCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]postCall(nil), m.calls...)
}

// Ensure mocks implement interfaces
var _ driven.Transport = (*mockTransport)(nil)

func testRelayConfig(schema domain.SchemaVersion) RelayConfig {
	settings := domain.DefaultAppSettings()
	settings.Endpoint.Schema = schema
	return RelayConfigFromSettings(settings)
}

func newTestRelay(t *testing.T, config RelayConfig, transport driven.Transport, history driven.OutcomeStore) *RelayService {
	t.Helper()
	return NewRelayService(
		config,
		NewItemEncoder(newTestPacker(t)),
		NewEnvelopeBuilder(domain.MissingTimeOmit),
		transport,
		history,
	)
}

func TestRelay_EndToEnd_SmallItemPostsOnce(t *testing.T) {
	var mu sync.Mutex
	var requests []*http.Request
	var bodies [][]byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, r)
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := testRelayConfig(domain.SchemaV2)
	config.Endpoint.BaseURL = server.URL
	relay := newTestRelay(t, config, httpclient.New(httpclient.Config{Timeout: 5 * time.Second}), nil)

	item := domain.NewTextItem("0123456789", 1700000000)
	require.Equal(t, 10, len(item.Text()))

	out := relay.Process(context.Background(), item)

	assert.Equal(t, domain.OutcomeSent, out.Status)
	assert.Equal(t, domain.ReasonDelivered, out.Reason)
	assert.Equal(t, http.StatusOK, out.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v2/Item", requests[0].URL.Path)
	assert.Equal(t, "application/json", requests[0].Header.Get("Content-Type"))

	var env map[string]any
	require.NoError(t, json.Unmarshal(bodies[0], &env))
	assert.Len(t, env, 2)
	assert.Equal(t, float64(1700000000), env["Time"])
	assert.NotEmpty(t, env["Data"])
}

func TestRelay_EndToEnd_LargeItemNeverPosts(t *testing.T) {
	transport := &mockTransport{}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2), transport, nil)

	item := domain.NewClipboardItem(map[domain.Format][]byte{
		domain.FormatText: bytes.Repeat([]byte{'x'}, 1000000),
	})

	out := relay.Process(context.Background(), item)

	assert.Equal(t, domain.OutcomeSkipped, out.Status)
	assert.Equal(t, domain.ReasonSizeLimit, out.Reason)
	assert.True(t, out.Succeeded())
	assert.Empty(t, transport.Calls())
	assert.Equal(t, "", out.URL)
}

func TestRelay_FailureIsolation(t *testing.T) {
	transport := &mockTransport{
		respond: func(n int) (*domain.Response, error) {
			if n == 1 {
				return nil, fmt.Errorf("%w: connection refused", domain.ErrNetwork)
			}
			return &domain.Response{StatusCode: http.StatusCreated}, nil
		},
	}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2), transport, nil)

	first := relay.Process(context.Background(), domain.NewTextItem("first", 1))
	second := relay.Process(context.Background(), domain.NewTextItem("second", 2))

	assert.Equal(t, domain.OutcomeFailed, first.Status)
	assert.Equal(t, domain.ReasonNetwork, first.Reason)
	assert.Contains(t, first.Error, "connection refused")

	assert.Equal(t, domain.OutcomeSent, second.Status)
	assert.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Len(t, transport.Calls(), 2)

	stats := relay.Stats()
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Sent)
	assert.Contains(t, stats.LastError, "connection refused")
}

func TestRelay_RemoteStatus(t *testing.T) {
	tests := []struct {
		code   int
		status domain.OutcomeStatus
		reason string
	}{
		{http.StatusConflict, domain.OutcomeSent, domain.ReasonDuplicate},
		{http.StatusBadRequest, domain.OutcomeFailed, domain.ReasonRemoteStatus},
		{http.StatusInternalServerError, domain.OutcomeFailed, domain.ReasonRemoteStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			transport := &mockTransport{
				respond: func(int) (*domain.Response, error) {
					return &domain.Response{StatusCode: tt.code}, &domain.RemoteStatusError{StatusCode: tt.code}
				},
			}
			relay := newTestRelay(t, testRelayConfig(domain.SchemaV1), transport, nil)

			out := relay.Process(context.Background(), domain.NewTextItem("hello", 1700000000))

			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.reason, out.Reason)
			assert.Equal(t, tt.code, out.StatusCode)
		})
	}
}

func TestRelay_V1_RecordsHashAndURL(t *testing.T) {
	transport := &mockTransport{}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV1), transport, nil)
	item := domain.NewTextItem("hello", 1700000000)

	out := relay.Process(context.Background(), item)

	require.Equal(t, domain.OutcomeSent, out.Status)
	assert.Equal(t, "http://127.0.0.1:8080/api/v1/ClipboardItem", out.URL)
	assert.Equal(t, ContentHash(encodeForTest(t, item)), out.Hash)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, out.PayloadBytes, len(calls[0].body))

	var env domain.EnvelopeV1
	require.NoError(t, json.Unmarshal(calls[0].body, &env))
	assert.Equal(t, "hello", env.Text)
	assert.Equal(t, out.Hash, env.Hash)
}

func TestRelay_V2URLPath(t *testing.T) {
	transport := &mockTransport{}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2URLPath), transport, nil)

	out := relay.Process(context.Background(), domain.NewTextItem("hello", 1700000000))
	require.Equal(t, domain.OutcomeSent, out.Status)

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "http://127.0.0.1:8080/api/v2/Item1700000000", calls[0].url)

	missing := relay.Process(context.Background(), domain.NewTextItem("hello", 0))
	assert.Equal(t, domain.OutcomeFailed, missing.Status)
	assert.Equal(t, domain.ReasonMissingTime, missing.Reason)
	assert.Len(t, transport.Calls(), 1, "no request without a timestamp")
}

func TestRelay_PathOverride(t *testing.T) {
	transport := &mockTransport{}
	config := testRelayConfig(domain.SchemaV2)
	config.Endpoint.Path = "/ingest"
	relay := newTestRelay(t, config, transport, nil)

	relay.Process(context.Background(), domain.NewTextItem("hello", 1))

	calls := transport.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "http://127.0.0.1:8080/ingest", calls[0].url)
}

func TestRelay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transport := &mockTransport{
		respond: func(int) (*domain.Response, error) {
			cancel()
			return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, context.Canceled)
		},
	}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2), transport, nil)

	out := relay.Process(ctx, domain.NewTextItem("hello", 1))

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	assert.Equal(t, domain.ReasonCancelled, out.Reason)
}

func TestRelay_NotConfigured(t *testing.T) {
	relay := NewRelayService(testRelayConfig(domain.SchemaV2), nil, nil, nil, nil)

	out := relay.Process(context.Background(), domain.NewTextItem("hello", 1))

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	assert.Equal(t, domain.ReasonNotConfigured, out.Reason)
}

func TestRelay_NilItem(t *testing.T) {
	transport := &mockTransport{}
	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2), transport, nil)

	out := relay.Process(context.Background(), nil)

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	assert.Equal(t, domain.ReasonInvalidRequest, out.Reason)
	assert.Empty(t, transport.Calls())
}

func TestRelay_EncodingFailure(t *testing.T) {
	transport := &mockTransport{}
	relay := NewRelayService(
		testRelayConfig(domain.SchemaV2),
		NewItemEncoder(failingPacker{}),
		NewEnvelopeBuilder(domain.MissingTimeOmit),
		transport,
		nil,
	)

	out := relay.Process(context.Background(), domain.NewTextItem("hello", 1))

	assert.Equal(t, domain.OutcomeFailed, out.Status)
	assert.Equal(t, domain.ReasonEncoding, out.Reason)
	assert.Empty(t, transport.Calls())
}

func TestRelay_RecordsHistory(t *testing.T) {
	history := memory.NewOutcomeStore()
	config := testRelayConfig(domain.SchemaV2)
	config.HistoryKeep = 2
	relay := newTestRelay(t, config, &mockTransport{}, history)

	var ids []string
	for i := 0; i < 3; i++ {
		out := relay.Process(context.Background(), domain.NewTextItem(fmt.Sprintf("item %d", i), int64(i+1)))
		ids = append(ids, out.ID)
	}

	recent, err := history.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].ID)
	assert.Equal(t, ids[1], recent[1].ID)
	assert.NotEqual(t, ids[0], ids[1])

	stats := relay.Stats()
	assert.Equal(t, 3, stats.Sent)
	assert.Equal(t, 3, stats.Total())
}

func TestRelay_HistoryIgnoresCancelledContext(t *testing.T) {
	history := memory.NewOutcomeStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	relay := newTestRelay(t, testRelayConfig(domain.SchemaV2), &mockTransport{}, history)
	out := relay.Process(ctx, domain.NewTextItem("hello", 1))

	got, err := history.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Status, got.Status)
}

func TestRelayConfigFromSettings(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Gate.ThresholdBytes = 10
	settings.History.Keep = 7

	config := RelayConfigFromSettings(settings)

	assert.Equal(t, 10, config.ThresholdBytes)
	assert.Equal(t, 7, config.HistoryKeep)
	assert.Equal(t, settings.Endpoint, config.Endpoint)
}
