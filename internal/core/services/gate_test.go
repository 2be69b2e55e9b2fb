package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// strictSource is a FormatSource that fails the test when a format is
// read after the running total already reached the limit.
type strictSource struct {
	t       *testing.T
	formats []domain.Format
	sizes   map[domain.Format]int
	limit   int
	seen    int
	reads   int
}

func (s *strictSource) Formats() []domain.Format { return s.formats }

func (s *strictSource) Data(f domain.Format) []byte {
	if s.seen >= s.limit {
		s.t.Fatalf("format %q queried after the threshold was crossed", f)
	}
	s.reads++
	n := s.sizes[f]
	s.seen += n
	return bytes.Repeat([]byte{'x'}, n)
}

func itemOfSize(n int) *domain.ClipboardItem {
	return domain.NewClipboardItem(map[domain.Format][]byte{
		domain.FormatText: bytes.Repeat([]byte{'a'}, n),
	})
}

func TestExceedsThreshold_Boundary(t *testing.T) {
	limit := domain.DefaultThresholdBytes

	assert.True(t, ExceedsThreshold(itemOfSize(250000), limit), "exactly the threshold is rejected")
	assert.False(t, ExceedsThreshold(itemOfSize(249999), limit), "one byte below is accepted")
	assert.True(t, ExceedsThreshold(itemOfSize(1000000), limit))
	assert.False(t, ExceedsThreshold(itemOfSize(10), limit))
}

func TestExceedsThreshold_SumsAcrossFormats(t *testing.T) {
	item := domain.NewClipboardItem(map[domain.Format][]byte{
		"text/plain": bytes.Repeat([]byte{'a'}, 100),
		"text/html":  bytes.Repeat([]byte{'b'}, 100),
		"image/png":  bytes.Repeat([]byte{'c'}, 50),
	})

	assert.True(t, ExceedsThreshold(item, 250))
	assert.False(t, ExceedsThreshold(item, 251))
}

func TestExceedsThreshold_NoFormats(t *testing.T) {
	assert.False(t, ExceedsThreshold(domain.NewClipboardItem(nil), domain.DefaultThresholdBytes))
	assert.False(t, ExceedsThreshold(nil, domain.DefaultThresholdBytes))
}

func TestExceedsThreshold_ShortCircuits(t *testing.T) {
	src := &strictSource{
		t:       t,
		formats: []domain.Format{"a", "b", "c", "d"},
		sizes:   map[domain.Format]int{"a": 100, "b": 200, "c": 5, "d": 5},
		limit:   250,
	}

	assert.True(t, ExceedsThreshold(src, 250))
	assert.Equal(t, 2, src.reads)
}

func TestExceedsThreshold_ZeroLimit(t *testing.T) {
	// With a zero limit any item with at least one format is rejected
	assert.True(t, ExceedsThreshold(itemOfSize(0), 0))
	assert.False(t, ExceedsThreshold(domain.NewClipboardItem(nil), 0))
}

func TestMeasure_ReportsCountedBytes(t *testing.T) {
	tests := []struct {
		size    int
		limit   int
		exceeds bool
	}{
		{10, 100, false},
		{100, 100, true},
		{150, 100, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.size, tt.limit), func(t *testing.T) {
			exceeds, counted := measure(itemOfSize(tt.size), tt.limit)
			assert.Equal(t, tt.exceeds, exceeds)
			assert.Equal(t, tt.size, counted)
		})
	}
}
