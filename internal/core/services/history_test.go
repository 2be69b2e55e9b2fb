package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

func TestHistoryService_Recent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOutcomeStore()
	for i := 0; i < 30; i++ {
		require.NoError(t, store.Record(ctx, domain.Outcome{
			ID:        fmt.Sprintf("o%02d", i),
			Status:    domain.OutcomeSent,
			StartedAt: time.Now(),
		}))
	}
	service := NewHistoryService(store)

	recent, err := service.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "o29", recent[0].ID)

	defaulted, err := service.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, defaultHistoryLimit)
}

func TestHistoryService_Get(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOutcomeStore()
	require.NoError(t, store.Record(ctx, domain.Outcome{ID: "abc", Status: domain.OutcomeFailed}))
	service := NewHistoryService(store)

	got, err := service.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailed, got.Status)

	_, err = service.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryService_Stats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOutcomeStore()
	_ = store.Record(ctx, domain.Outcome{ID: "a", Status: domain.OutcomeSent})
	_ = store.Record(ctx, domain.Outcome{ID: "b", Status: domain.OutcomeSkipped})

	stats, err := NewHistoryService(store).Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Skipped)
}

func TestHistoryService_NilStore(t *testing.T) {
	ctx := context.Background()
	service := NewHistoryService(nil)

	recent, err := service.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	_, err = service.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total())
}
