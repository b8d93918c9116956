// Package ledger provides the single-writer execution boundary shared by the
// credit and badge registries. Every mutating call runs inside Execute; it
// either commits all of its state and events or none of them. A call made
// from inside another Execute joins the outer operation.
package ledger

import (
	"context"
	"time"

	dErrors "credipet/pkg/domain-errors"
)

// Ledger runs fn as one atomic operation. Read runs read-only work
// against committed state; called from inside Execute it sees the
// operation's own writes.
type Ledger interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// Reader is the read side of a Ledger.
type Reader interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// Query runs fn through l.Read and returns its result.
func Query[T any](ctx context.Context, l Reader, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := l.Read(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

type readKey struct{}

// reading reports whether ctx already holds a read view, so nested reads
// do not re-enter the lock.
func reading(ctx context.Context) bool {
	_, ok := ctx.Value(readKey{}).(bool)
	return ok
}

func withReading(ctx context.Context) context.Context {
	return context.WithValue(ctx, readKey{}, true)
}

const defaultTimeout = 5 * time.Second

// Option configures a ledger implementation.
type Option func(*options)

type options struct {
	timeout time.Duration
	metrics *Metrics
}

// WithTimeout bounds how long an operation may wait for and hold the writer slot.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMetrics records lock wait and outcome metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// withDeadline applies the default timeout when the caller set none.
func withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "operation aborted: context cancelled")
	}
	return nil
}
