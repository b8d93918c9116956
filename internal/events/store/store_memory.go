package store

import (
	"context"
	"sync"
	"time"

	"credipet/internal/events/models"
	"credipet/internal/sentinel"
	"credipet/pkg/platform/tx"
)

// Error Contract:
// - MarkRelayed returns sentinel.ErrNotFound for an unknown sequence number
// - Append assigns Seq; callers must not set it
// - Inside a ledger operation an appended event stays invisible to List and
//   FetchUnrelayed until the operation commits
// - Returned events are copies; mutating them does not affect the log

// InMemoryStore keeps the committed event log in a slice indexed by Seq-1.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []*models.Event
	// last is the highest Seq handed out, staged entries included.
	last uint64
}

// NewInMemory constructs an empty in-memory event log.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	s.last++
	stored := *event
	stored.Seq = s.last
	s.mu.Unlock()
	event.Seq = stored.Seq

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.last--
	})
	tx.OnCommit(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = append(s.events, &stored)
	})
	return nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Event
	for _, e := range s.events {
		if !filter.Matches(e) {
			continue
		}
		copied := *e
		out = append(out, &copied)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) FetchUnrelayed(_ context.Context, limit int) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Event
	for _, e := range s.events {
		if e.RelayedAt != nil {
			continue
		}
		copied := *e
		out = append(out, &copied)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkRelayed(_ context.Context, seq uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == 0 || seq > uint64(len(s.events)) {
		return sentinel.ErrNotFound
	}
	relayedAt := at
	s.events[seq-1].RelayedAt = &relayedAt
	return nil
}

func (s *InMemoryStore) CountUnrelayed(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.events {
		if e.RelayedAt == nil {
			n++
		}
	}
	return n, nil
}
