package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

func outcome(id string, status domain.OutcomeStatus, at time.Time) domain.Outcome {
	return domain.Outcome{
		ID:        id,
		Status:    status,
		Schema:    domain.SchemaV2,
		StartedAt: at,
	}
}

func TestOutcomeStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewOutcomeStore()
	now := time.Now()

	require.NoError(t, store.Record(ctx, outcome("a", domain.OutcomeSent, now)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSent, got.Status)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOutcomeStore_Record_RequiresID(t *testing.T) {
	store := NewOutcomeStore()

	err := store.Record(context.Background(), domain.Outcome{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOutcomeStore_Record_ReplacesSameID(t *testing.T) {
	ctx := context.Background()
	store := NewOutcomeStore()
	now := time.Now()

	_ = store.Record(ctx, outcome("a", domain.OutcomeFailed, now))
	_ = store.Record(ctx, outcome("a", domain.OutcomeSent, now))

	recent, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, domain.OutcomeSent, recent[0].Status)
}

func TestOutcomeStore_Recent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewOutcomeStore()
	base := time.Now()

	for i := 0; i < 5; i++ {
		_ = store.Record(ctx, outcome(fmt.Sprintf("o%d", i), domain.OutcomeSent, base.Add(time.Duration(i)*time.Second)))
	}

	recent, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "o4", recent[0].ID)
	assert.Equal(t, "o3", recent[1].ID)
	assert.Equal(t, "o2", recent[2].ID)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestOutcomeStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := NewOutcomeStore()
	now := time.Now()

	_ = store.Record(ctx, outcome("a", domain.OutcomeSent, now))
	_ = store.Record(ctx, outcome("b", domain.OutcomeSkipped, now))
	failed := outcome("c", domain.OutcomeFailed, now.Add(time.Second))
	failed.Error = "connection refused"
	_ = store.Record(ctx, failed)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, stats.Total())
	assert.Equal(t, "connection refused", stats.LastError)
}

func TestOutcomeStore_Prune(t *testing.T) {
	ctx := context.Background()
	store := NewOutcomeStore()
	now := time.Now()

	for i := 0; i < 10; i++ {
		_ = store.Record(ctx, outcome(fmt.Sprintf("o%d", i), domain.OutcomeSent, now))
	}

	require.NoError(t, store.Prune(ctx, 4))

	recent, _ := store.Recent(ctx, 0)
	require.Len(t, recent, 4)
	assert.Equal(t, "o9", recent[0].ID)
	assert.Equal(t, "o6", recent[3].ID)

	require.NoError(t, store.Prune(ctx, 10))
	recent, _ = store.Recent(ctx, 0)
	assert.Len(t, recent, 4)

	assert.ErrorIs(t, store.Prune(ctx, -1), domain.ErrInvalidInput)
}
