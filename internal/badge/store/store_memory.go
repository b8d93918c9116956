// Package store persists badges, approvals and registry settings.
package store

import (
	"context"
	"fmt"
	"sync"

	"credipet/internal/badge/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

type operatorKey struct {
	owner    id.Principal
	operator id.Principal
}

// InMemoryStore keeps badge state in maps. Every write registers an undo
// with the surrounding ledger operation, so a failed operation leaves no trace.
// Reads return copies; callers persist changes through Update.
type InMemoryStore struct {
	mu        sync.RWMutex
	badges    map[id.BadgeID]*models.Badge
	byOwner   map[id.Principal]id.BadgeID
	approvals map[id.BadgeID]id.Principal
	operators map[operatorKey]bool
	settings  *models.Settings
	lastID    id.BadgeID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		badges:    make(map[id.BadgeID]*models.Badge),
		byOwner:   make(map[id.Principal]id.BadgeID),
		approvals: make(map[id.BadgeID]id.Principal),
		operators: make(map[operatorKey]bool),
	}
}

// NextID returns the id the next Create will use.
func (s *InMemoryStore) NextID(_ context.Context) (id.BadgeID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID + 1, nil
}

// Create stores a freshly minted badge. The badge id must be NextID.
func (s *InMemoryStore) Create(ctx context.Context, badge *models.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byOwner[badge.Owner]; exists {
		return fmt.Errorf("owner %s already holds a badge: %w", badge.Owner, sentinel.ErrConflict)
	}
	if badge.ID != s.lastID+1 {
		return fmt.Errorf("badge id %d out of sequence: %w", badge.ID, sentinel.ErrConflict)
	}
	stored := *badge
	s.badges[badge.ID] = &stored
	s.byOwner[badge.Owner] = badge.ID
	prevLast := s.lastID
	s.lastID = badge.ID

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.badges, badge.ID)
		delete(s.byOwner, badge.Owner)
		s.lastID = prevLast
	})
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.badges[badgeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *InMemoryStore) FindByOwner(_ context.Context, owner id.Principal) (*models.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	badgeID, ok := s.byOwner[owner]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.badges[badgeID]
	return &copied, nil
}

// Update writes the mutable fields (stage, weakened) of an existing badge.
func (s *InMemoryStore) Update(ctx context.Context, badge *models.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.badges[badge.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	prev := *current
	current.Stage = badge.Stage
	current.IsWeakened = badge.IsWeakened

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		*s.badges[prev.ID] = prev
	})
	return nil
}

// SaveApproval records the single approved principal for a badge.
// The zero principal clears the approval.
func (s *InMemoryStore) SaveApproval(ctx context.Context, badgeID id.BadgeID, approved id.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.approvals[badgeID]
	if approved.IsZero() {
		delete(s.approvals, badgeID)
	} else {
		s.approvals[badgeID] = approved
	}

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if had {
			s.approvals[badgeID] = prev
		} else {
			delete(s.approvals, badgeID)
		}
	})
	return nil
}

// FindApproval returns the approved principal, or the zero principal when none.
func (s *InMemoryStore) FindApproval(_ context.Context, badgeID id.BadgeID) (id.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.approvals[badgeID], nil
}

func (s *InMemoryStore) SetOperator(ctx context.Context, owner, operator id.Principal, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := operatorKey{owner: owner, operator: operator}
	prev := s.operators[key]
	s.setOperatorLocked(key, approved)

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.setOperatorLocked(key, prev)
	})
	return nil
}

func (s *InMemoryStore) setOperatorLocked(key operatorKey, approved bool) {
	if approved {
		s.operators[key] = true
		return
	}
	delete(s.operators, key)
}

func (s *InMemoryStore) IsOperator(_ context.Context, owner, operator id.Principal) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operators[operatorKey{owner: owner, operator: operator}], nil
}

// LoadSettings returns sentinel.ErrNotFound until the registry is bootstrapped.
func (s *InMemoryStore) LoadSettings(_ context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.settings
	return &copied, nil
}

func (s *InMemoryStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.settings
	copied := *settings
	s.settings = &copied

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.settings = prev
	})
	return nil
}
