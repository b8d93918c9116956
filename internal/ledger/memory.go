package ledger

import (
	"context"
	"sync"
	"time"

	"credipet/pkg/platform/tx"
)

// Memory serializes operations with a process-wide mutex and undoes
// in-memory store writes through a tx.Journal when fn fails. Stores write
// in place, so readers share the same lock and never observe an operation
// that is still running.
type Memory struct {
	mu   sync.RWMutex
	opts options
}

// NewMemory constructs an in-process ledger.
func NewMemory(opts ...Option) *Memory {
	return &Memory{opts: newOptions(opts)}
}

func (l *Memory) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if tx.Active(ctx) {
		return fn(ctx)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	ctx, cancel := withDeadline(ctx, l.opts.timeout)
	defer cancel()

	lockStart := time.Now()
	l.mu.Lock()
	l.opts.metrics.observeLockWait(time.Since(lockStart).Seconds())
	defer l.mu.Unlock()

	if err := checkContext(ctx); err != nil {
		return err
	}

	journal := tx.NewJournal()
	defer func() {
		if p := recover(); p != nil {
			journal.Rollback()
			l.opts.metrics.incOutcome(errPanic)
			panic(p)
		}
		if err != nil {
			journal.Rollback()
		} else {
			journal.Commit()
		}
		l.opts.metrics.incOutcome(err)
	}()

	return fn(tx.WithJournal(ctx, journal))
}

// Read waits for any running operation to finish and holds writers off
// until fn returns.
func (l *Memory) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx.Active(ctx) || reading(ctx) {
		return fn(ctx)
	}
	if err := checkContext(ctx); err != nil {
		return err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(withReading(ctx))
}
