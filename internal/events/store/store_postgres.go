package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"credipet/internal/events/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

const maxBatch = 1000

// PostgresStore persists the event log in the registry_events table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed event log.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const eventColumns = `seq, id, type, principal, badge_id, idx, old_value, new_value, flag, target, detail, occurred_at, relayed_at`

func (s *PostgresStore) Append(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO registry_events (id, type, principal, badge_id, idx, old_value, new_value, flag, target, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq
	`
	var seq int64
	err := s.execer(ctx).QueryRowContext(ctx, query,
		event.ID,
		string(event.Type),
		event.Principal.Bytes(),
		int64(event.BadgeID),
		int16(event.Index),
		int64(event.OldValue),
		int64(event.NewValue),
		event.Flag,
		event.Target.Bytes(),
		event.Detail,
		event.OccurredAt,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	event.Seq = uint64(seq) // #nosec G115 -- BIGSERIAL is positive
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Event, error) {
	var (
		conds = []string{"seq > $1"}
		args  = []any{int64(filter.AfterSeq)}
	)
	if filter.Principal != nil {
		args = append(args, filter.Principal.Bytes())
		conds = append(conds, fmt.Sprintf("principal = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 || limit > maxBatch {
		limit = maxBatch
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM registry_events WHERE %s ORDER BY seq LIMIT $%d`,
		eventColumns, strings.Join(conds, " AND "), len(args))
	return s.query(ctx, query, args...)
}

// FetchUnrelayed returns the oldest events not yet published.
// Uses FOR UPDATE SKIP LOCKED so concurrent relays do not block each other.
func (s *PostgresStore) FetchUnrelayed(ctx context.Context, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		return nil, nil
	}
	if limit > maxBatch {
		limit = maxBatch
	}
	query := fmt.Sprintf(`
		SELECT %s FROM registry_events
		WHERE relayed_at IS NULL
		ORDER BY seq
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, eventColumns)
	return s.query(ctx, query, limit)
}

func (s *PostgresStore) MarkRelayed(ctx context.Context, seq uint64, at time.Time) error {
	result, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE registry_events SET relayed_at = $2 WHERE seq = $1`,
		int64(seq), at,
	)
	if err != nil {
		return fmt.Errorf("mark event relayed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountUnrelayed(ctx context.Context) (int64, error) {
	var n int64
	if err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registry_events WHERE relayed_at IS NULL`,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unrelayed events: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]*models.Event, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (*models.Event, error) {
	var (
		e                  models.Event
		seq, badgeID       int64
		oldValue, newValue int64
		idx                int16
		eventID            uuid.UUID
		eventType          string
		principal, target  []byte
		relayedAt          sql.NullTime
	)
	if err := rows.Scan(&seq, &eventID, &eventType, &principal, &badgeID, &idx, &oldValue, &newValue,
		&e.Flag, &target, &e.Detail, &e.OccurredAt, &relayedAt); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	var err error
	if e.Principal, err = id.PrincipalFromBytes(principal); err != nil {
		return nil, fmt.Errorf("decode event principal: %w", err)
	}
	if e.Target, err = id.PrincipalFromBytes(target); err != nil {
		return nil, fmt.Errorf("decode event target: %w", err)
	}
	// Columns are non-negative by table constraint.
	e.Seq = uint64(seq)
	e.ID = eventID
	e.Type = models.Type(eventType)
	e.BadgeID = id.BadgeID(badgeID)
	e.Index = uint8(idx)
	e.OldValue = uint64(oldValue)
	e.NewValue = uint64(newValue)
	if relayedAt.Valid {
		t := relayedAt.Time
		e.RelayedAt = &t
	}
	return &e, nil
}
