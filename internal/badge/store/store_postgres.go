package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"credipet/internal/badge/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

// PostgresStore persists badges in PostgreSQL. Writes join the ledger's
// transaction when one is present in the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed badge store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// NextID returns MAX(id)+1. Callers hold the ledger lock, so the value
// cannot be taken by a concurrent mint before Create.
func (s *PostgresStore) NextID(ctx context.Context) (id.BadgeID, error) {
	var next int64
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM badges`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next badge id: %w", err)
	}
	return id.BadgeID(next), nil
}

func (s *PostgresStore) Create(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badges (id, owner, stage, is_weakened, minted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		int64(badge.ID), //nolint:gosec // ids are dense from 1
		badge.Owner.Bytes(),
		int16(badge.Stage),
		badge.IsWeakened,
		badge.MintedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("owner %s already holds a badge: %w", badge.Owner, sentinel.ErrConflict)
		}
		return fmt.Errorf("create badge: %w", err)
	}
	return nil
}

const badgeColumns = `id, owner, stage, is_weakened, minted_at`

func (s *PostgresStore) FindByID(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE id = $1`
	badge, err := scanBadge(s.execer(ctx).QueryRowContext(ctx, query, int64(badgeID))) //nolint:gosec // ids are dense from 1
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find badge by id: %w", err)
	}
	return badge, nil
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner id.Principal) (*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE owner = $1`
	badge, err := scanBadge(s.execer(ctx).QueryRowContext(ctx, query, owner.Bytes()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find badge by owner: %w", err)
	}
	return badge, nil
}

func (s *PostgresStore) Update(ctx context.Context, badge *models.Badge) error {
	query := `UPDATE badges SET stage = $2, is_weakened = $3 WHERE id = $1`
	res, err := s.execer(ctx).ExecContext(ctx, query,
		int64(badge.ID), //nolint:gosec // ids are dense from 1
		int16(badge.Stage),
		badge.IsWeakened,
	)
	if err != nil {
		return fmt.Errorf("update badge: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update badge rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveApproval(ctx context.Context, badgeID id.BadgeID, approved id.Principal) error {
	var err error
	if approved.IsZero() {
		_, err = s.execer(ctx).ExecContext(ctx, `DELETE FROM badge_approvals WHERE badge_id = $1`, int64(badgeID)) //nolint:gosec // ids are dense from 1
	} else {
		_, err = s.execer(ctx).ExecContext(ctx, `
			INSERT INTO badge_approvals (badge_id, approved)
			VALUES ($1, $2)
			ON CONFLICT (badge_id) DO UPDATE SET approved = EXCLUDED.approved
		`, int64(badgeID), approved.Bytes()) //nolint:gosec // ids are dense from 1
	}
	if err != nil {
		return fmt.Errorf("save approval: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindApproval(ctx context.Context, badgeID id.BadgeID) (id.Principal, error) {
	var raw []byte
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT approved FROM badge_approvals WHERE badge_id = $1`, int64(badgeID), //nolint:gosec // ids are dense from 1
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return id.ZeroPrincipal, nil
		}
		return id.ZeroPrincipal, fmt.Errorf("find approval: %w", err)
	}
	return id.PrincipalFromBytes(raw)
}

func (s *PostgresStore) SetOperator(ctx context.Context, owner, operator id.Principal, approved bool) error {
	var err error
	if approved {
		_, err = s.execer(ctx).ExecContext(ctx, `
			INSERT INTO badge_operators (owner, operator)
			VALUES ($1, $2)
			ON CONFLICT (owner, operator) DO NOTHING
		`, owner.Bytes(), operator.Bytes())
	} else {
		_, err = s.execer(ctx).ExecContext(ctx,
			`DELETE FROM badge_operators WHERE owner = $1 AND operator = $2`,
			owner.Bytes(), operator.Bytes())
	}
	if err != nil {
		return fmt.Errorf("set operator: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsOperator(ctx context.Context, owner, operator id.Principal) (bool, error) {
	var exists bool
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM badge_operators WHERE owner = $1 AND operator = $2)`,
		owner.Bytes(), operator.Bytes(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check operator: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) LoadSettings(ctx context.Context) (*models.Settings, error) {
	var owner, authority []byte
	settings := &models.Settings{}
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT owner, evolution_authority, base_uri FROM badge_registry_settings WHERE singleton`,
	).Scan(&owner, &authority, &settings.BaseURI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load badge settings: %w", err)
	}
	if settings.Owner, err = id.PrincipalFromBytes(owner); err != nil {
		return nil, fmt.Errorf("decode owner: %w", err)
	}
	if settings.EvolutionAuthority, err = id.PrincipalFromBytes(authority); err != nil {
		return nil, fmt.Errorf("decode evolution authority: %w", err)
	}
	return settings, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO badge_registry_settings (singleton, owner, evolution_authority, base_uri)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE
		SET owner = EXCLUDED.owner,
			evolution_authority = EXCLUDED.evolution_authority,
			base_uri = EXCLUDED.base_uri
	`, settings.Owner.Bytes(), settings.EvolutionAuthority.Bytes(), settings.BaseURI)
	if err != nil {
		return fmt.Errorf("save badge settings: %w", err)
	}
	return nil
}

func scanBadge(row *sql.Row) (*models.Badge, error) {
	var (
		rawID    int64
		rawOwner []byte
		stage    int16
		badge    models.Badge
	)
	if err := row.Scan(&rawID, &rawOwner, &stage, &badge.IsWeakened, &badge.MintedAt); err != nil {
		return nil, err
	}
	owner, err := id.PrincipalFromBytes(rawOwner)
	if err != nil {
		return nil, err
	}
	badge.ID = id.BadgeID(rawID) //nolint:gosec // ids are positive
	badge.Owner = owner
	badge.Stage = models.Stage(stage) //nolint:gosec // CHECK constraint keeps 0..4
	return &badge, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
