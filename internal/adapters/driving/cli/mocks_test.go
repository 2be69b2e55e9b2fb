package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/adapters/driven/codec/cbor"
	"github.com/custodia-labs/cliprelay/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driving"
	coreservices "github.com/custodia-labs/cliprelay/internal/core/services"
)

// mockRelay records processed items and answers with a fixed outcome.
type mockRelay struct {
	mu      sync.Mutex
	outcome domain.Outcome
	items   []*domain.ClipboardItem
}

func (m *mockRelay) Process(_ context.Context, item *domain.ClipboardItem) domain.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return m.outcome
}

func (m *mockRelay) Stats() domain.DeliveryStats {
	return domain.DeliveryStats{}
}

func (m *mockRelay) processed() []*domain.ClipboardItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ClipboardItem, len(m.items))
	copy(out, m.items)
	return out
}

// mockHistory serves a fixed list of outcomes.
type mockHistory struct {
	outcomes  []domain.Outcome
	stats     domain.DeliveryStats
	err       error
	lastLimit int
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]domain.Outcome, error) {
	m.lastLimit = limit
	return m.outcomes, m.err
}

func (m *mockHistory) Get(_ context.Context, id string) (*domain.Outcome, error) {
	for i := range m.outcomes {
		if m.outcomes[i].ID == id {
			return &m.outcomes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistory) Stats(_ context.Context) (domain.DeliveryStats, error) {
	return m.stats, m.err
}

// mockClipboard returns a fixed item.
type mockClipboard struct {
	item *domain.ClipboardItem
	err  error
}

func (m *mockClipboard) CurrentItem(_ context.Context) (*domain.ClipboardItem, error) {
	return m.item, m.err
}

func sentOutcome() domain.Outcome {
	return domain.Outcome{
		ID:         "out-1",
		Status:     domain.OutcomeSent,
		Reason:     domain.ReasonDelivered,
		Schema:     domain.SchemaV2,
		URL:        "http://127.0.0.1:8080/api/v2/Item",
		StatusCode: 201,
		ItemBytes:  5,
	}
}

// newTestServices wires real settings over an in-memory config store
// around a mock relay.
func newTestServices(t *testing.T) (*Services, *mockRelay) {
	t.Helper()
	packer, err := cbor.NewPacker()
	require.NoError(t, err)

	relay := &mockRelay{outcome: sentOutcome()}
	s := &Services{
		Settings: coreservices.NewSettingsService(memory.NewConfigStore()),
		Relay:    relay,
		History:  &mockHistory{},
		Packer:   packer,
		NewDispatcher: func(onOutcome func(domain.Outcome)) driving.Dispatcher {
			d := coreservices.NewDispatchService(relay, 4)
			d.OnOutcome(onOutcome)
			return d
		},
	}
	return s, relay
}

// resetCommandState clears flag values left by a previous execution.
func resetCommandState() {
	sendText, sendTime, sendFormats, sendStdin, sendClipboard = "", 0, nil, "", false
	historyLimit, historyJSON = 20, false
	receiveAddr, receiveKeep = "127.0.0.1:8080", 100
	configDir, verbose = "", false

	var visit func(c *cobra.Command)
	visit = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			visit(sub)
		}
	}
	visit(rootCmd)
}

// execute runs the root command against s and returns its output.
func execute(t *testing.T, s *Services, stdin string, args ...string) (string, error) {
	t.Helper()
	resetCommandState()
	SetServices(s)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		SetServices(nil)
		SetBootstrap(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
