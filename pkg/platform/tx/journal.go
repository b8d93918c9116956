package tx

import (
	"context"
	"sync"
)

type journalKey struct{}

// Journal collects undo steps for in-memory stores. Stores record the
// inverse of every mutation they apply; Rollback replays them newest first.
// Writes that must stay invisible until the operation succeeds register a
// commit step instead; Commit runs those oldest first.
type Journal struct {
	mu      sync.Mutex
	undos   []func()
	commits []func()
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// WithJournal attaches j to ctx.
func WithJournal(ctx context.Context, j *Journal) context.Context {
	if j == nil {
		return ctx
	}
	return context.WithValue(ctx, journalKey{}, j)
}

// JournalFrom returns the journal attached to ctx, if any.
func JournalFrom(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(journalKey{}).(*Journal)
	return j, ok
}

// RecordUndo registers fn with the journal in ctx. Outside an operation
// there is nothing to roll back and the call is a no-op.
func RecordUndo(ctx context.Context, fn func()) {
	j, ok := JournalFrom(ctx)
	if !ok || fn == nil {
		return
	}
	j.mu.Lock()
	j.undos = append(j.undos, fn)
	j.mu.Unlock()
}

// OnCommit registers fn to run when the operation in ctx commits. Outside
// an operation the write is already final, so fn runs immediately.
func OnCommit(ctx context.Context, fn func()) {
	if fn == nil {
		return
	}
	j, ok := JournalFrom(ctx)
	if !ok {
		fn()
		return
	}
	j.mu.Lock()
	j.commits = append(j.commits, fn)
	j.mu.Unlock()
}

// Commit runs the registered commit steps in order and empties the journal.
func (j *Journal) Commit() {
	j.mu.Lock()
	commits := j.commits
	j.commits = nil
	j.undos = nil
	j.mu.Unlock()

	for _, fn := range commits {
		fn()
	}
}

// Rollback runs every recorded undo in reverse order and empties the
// journal. Pending commit steps are discarded.
func (j *Journal) Rollback() {
	j.mu.Lock()
	undos := j.undos
	j.undos = nil
	j.commits = nil
	j.mu.Unlock()

	for i := len(undos) - 1; i >= 0; i-- {
		undos[i]()
	}
}

// Len reports how many undo steps are pending.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.undos)
}

// Active reports whether ctx is already inside a ledger operation, either
// in-memory (journal) or SQL (tx).
func Active(ctx context.Context) bool {
	if _, ok := JournalFrom(ctx); ok {
		return true
	}
	_, ok := From(ctx)
	return ok
}
