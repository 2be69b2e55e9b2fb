package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// Ensure outcomeStore implements the interface.
var _ driven.OutcomeStore = (*outcomeStore)(nil)

// outcomeStore implements driven.OutcomeStore using SQLite.
type outcomeStore struct {
	store *Store
}

const outcomeColumns = `id, status, reason, schema_version, url, item_bytes, payload_bytes,
	status_code, hash, error, started_at, duration_ms`

// Record persists an outcome. An outcome with an existing ID is updated.
func (s *outcomeStore) Record(ctx context.Context, o domain.Outcome) error {
	if o.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO outcomes (`+outcomeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			reason = excluded.reason,
			schema_version = excluded.schema_version,
			url = excluded.url,
			item_bytes = excluded.item_bytes,
			payload_bytes = excluded.payload_bytes,
			status_code = excluded.status_code,
			hash = excluded.hash,
			error = excluded.error,
			started_at = excluded.started_at,
			duration_ms = excluded.duration_ms
	`, o.ID, string(o.Status), o.Reason, string(o.Schema), o.URL,
		o.ItemBytes, o.PayloadBytes, o.StatusCode, o.Hash,
		nullString(o.Error), o.StartedAt.UnixMilli(), o.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes, most recent first.
// A non-positive limit returns every outcome.
func (s *outcomeStore) Recent(ctx context.Context, limit int) ([]domain.Outcome, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+outcomeColumns+`
		FROM outcomes
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []domain.Outcome{}
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		outcomes = append(outcomes, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return outcomes, nil
}

// Get retrieves an outcome by ID.
func (s *outcomeStore) Get(ctx context.Context, id string) (*domain.Outcome, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+outcomeColumns+`
		FROM outcomes WHERE id = ?
	`, id)

	o, err := scanOutcome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting outcome: %w", err)
	}
	return o, nil
}

// Stats aggregates every stored outcome.
func (s *outcomeStore) Stats(ctx context.Context) (domain.DeliveryStats, error) {
	var stats domain.DeliveryStats

	rows, err := s.store.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM outcomes GROUP BY status")
	if err != nil {
		return stats, fmt.Errorf("counting outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("scanning outcome count: %w", err)
		}
		switch domain.OutcomeStatus(status) {
		case domain.OutcomeSkipped:
			stats.Skipped = count
		case domain.OutcomeSent:
			stats.Sent = count
		case domain.OutcomeFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating outcome counts: %w", err)
	}

	var startedAt int64
	var lastErr sql.NullString
	err = s.store.db.QueryRowContext(ctx, `
		SELECT started_at, error FROM outcomes
		WHERE status = ?
		ORDER BY started_at DESC, seq DESC
		LIMIT 1
	`, string(domain.OutcomeFailed)).Scan(&startedAt, &lastErr)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return stats, fmt.Errorf("getting last failure: %w", err)
	default:
		stats.LastFailure = time.UnixMilli(startedAt)
		stats.LastError = lastErr.String
	}

	return stats, nil
}

// Prune removes all but the most recent keep outcomes.
func (s *outcomeStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM outcomes
		WHERE seq NOT IN (SELECT seq FROM outcomes ORDER BY seq DESC LIMIT ?)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning outcomes: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOutcome(row rowScanner) (*domain.Outcome, error) {
	var o domain.Outcome
	var status, schema string
	var errMsg sql.NullString
	var startedAt, durationMS int64

	err := row.Scan(&o.ID, &status, &o.Reason, &schema, &o.URL,
		&o.ItemBytes, &o.PayloadBytes, &o.StatusCode, &o.Hash,
		&errMsg, &startedAt, &durationMS)
	if err != nil {
		return nil, err
	}

	o.Status = domain.OutcomeStatus(status)
	o.Schema = domain.SchemaVersion(schema)
	o.Error = errMsg.String
	o.StartedAt = time.UnixMilli(startedAt)
	o.Duration = time.Duration(durationMS) * time.Millisecond
	return &o, nil
}

// nullString returns nil for empty strings.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
