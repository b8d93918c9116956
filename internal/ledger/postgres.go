package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"credipet/pkg/platform/tx"
)

// advisoryLockKey is the pg_advisory_xact_lock key shared by every
// credipet process writing to the same database.
const advisoryLockKey int64 = 0x43504554 // "CPET"

var errPanic = errors.New("panic during ledger operation")

// Postgres runs each operation in one sql.Tx, serialized across processes
// by a transaction-scoped advisory lock. Stores find the tx via tx.From.
type Postgres struct {
	db   *sql.DB
	opts options
}

// NewPostgres constructs a database-backed ledger.
func NewPostgres(db *sql.DB, opts ...Option) *Postgres {
	return &Postgres{db: db, opts: newOptions(opts)}
}

func (l *Postgres) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if tx.Active(ctx) {
		return fn(ctx)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	ctx, cancel := withDeadline(ctx, l.opts.timeout)
	defer cancel()

	sqlTx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			l.opts.metrics.incOutcome(errPanic)
			panic(p)
		}
		if err != nil {
			_ = sqlTx.Rollback()
		}
		l.opts.metrics.incOutcome(err)
	}()

	lockStart := time.Now()
	if _, err = sqlTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryLockKey); err != nil {
		return fmt.Errorf("acquire ledger lock: %w", err)
	}
	l.opts.metrics.observeLockWait(time.Since(lockStart).Seconds())

	if err = fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}
	return nil
}

// Read runs fn on the pool. Uncommitted rows are never visible outside
// their transaction, so no lock is taken.
func (l *Postgres) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	return fn(withReading(ctx))
}
