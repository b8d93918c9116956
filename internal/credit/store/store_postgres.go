package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"credipet/internal/credit/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

// PostgresStore persists credit state in PostgreSQL. Writes join the
// ledger's transaction when one is present in the context.
type PostgresStore struct {
	db *sql.DB
}

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

func (s *PostgresStore) FindProfile(ctx context.Context, p id.Principal) (*models.Profile, error) {
	query := `
		SELECT total_loans, total_repaid_on_time, total_defaulted, current_streak, current_tier, updated_at
		FROM credit_profiles
		WHERE principal = $1
	`
	profile := models.NewProfile(p)
	err := s.execer(ctx).QueryRowContext(ctx, query, p.Bytes()).Scan(
		&profile.TotalLoans,
		&profile.TotalRepaidOnTime,
		&profile.TotalDefaulted,
		&profile.CurrentStreak,
		&profile.CurrentTier,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find credit profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO credit_profiles (principal, total_loans, total_repaid_on_time, total_defaulted, current_streak, current_tier, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (principal) DO UPDATE
		SET total_loans = EXCLUDED.total_loans,
			total_repaid_on_time = EXCLUDED.total_repaid_on_time,
			total_defaulted = EXCLUDED.total_defaulted,
			current_streak = EXCLUDED.current_streak,
			current_tier = EXCLUDED.current_tier,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		profile.Principal.Bytes(),
		profile.TotalLoans,
		profile.TotalRepaidOnTime,
		profile.TotalDefaulted,
		profile.CurrentStreak,
		int16(profile.CurrentTier),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save credit profile: %w", err)
	}
	return nil
}

// LoadSettings reads the settings row and the per-tier parameter rows.
func (s *PostgresStore) LoadSettings(ctx context.Context) (*models.Settings, error) {
	var owner, authority []byte
	err := s.execer(ctx).QueryRowContext(ctx,
		`SELECT owner, lending_authority FROM credit_registry_settings WHERE singleton`,
	).Scan(&owner, &authority)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load credit settings: %w", err)
	}

	settings := &models.Settings{}
	if settings.Owner, err = id.PrincipalFromBytes(owner); err != nil {
		return nil, fmt.Errorf("decode owner: %w", err)
	}
	if settings.LendingAuthority, err = id.PrincipalFromBytes(authority); err != nil {
		return nil, fmt.Errorf("decode lending authority: %w", err)
	}
	if err := s.loadParameters(ctx, &settings.Parameters); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *PostgresStore) loadParameters(ctx context.Context, params *models.Parameters) error {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT tier, threshold, collateral_ratio, interest_rate
		FROM credit_tier_parameters
		ORDER BY tier
	`)
	if err != nil {
		return fmt.Errorf("load tier parameters: %w", err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var tier models.Tier
		var threshold, ratio, rate uint64
		if err := rows.Scan(&tier, &threshold, &ratio, &rate); err != nil {
			return fmt.Errorf("scan tier parameters: %w", err)
		}
		if !tier.IsValid() {
			return fmt.Errorf("tier parameters: unexpected tier %d", tier)
		}
		params.Thresholds[tier] = threshold
		params.CollateralRatios[tier] = ratio
		params.InterestRates[tier] = rate
		seen++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tier parameters: %w", err)
	}
	if seen != models.TierCount {
		return fmt.Errorf("tier parameters: expected %d rows, got %d", models.TierCount, seen)
	}
	return nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	exec := s.execer(ctx)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO credit_registry_settings (singleton, owner, lending_authority)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO UPDATE
		SET owner = EXCLUDED.owner,
			lending_authority = EXCLUDED.lending_authority
	`, settings.Owner.Bytes(), settings.LendingAuthority.Bytes())
	if err != nil {
		return fmt.Errorf("save credit settings: %w", err)
	}

	p := settings.Parameters
	for tier := range models.TierCount {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO credit_tier_parameters (tier, threshold, collateral_ratio, interest_rate)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (tier) DO UPDATE
			SET threshold = EXCLUDED.threshold,
				collateral_ratio = EXCLUDED.collateral_ratio,
				interest_rate = EXCLUDED.interest_rate
		`, int16(tier), p.Thresholds[tier], p.CollateralRatios[tier], p.InterestRates[tier])
		if err != nil {
			return fmt.Errorf("save tier %d parameters: %w", tier, err)
		}
	}
	return nil
}
