// Package store persists credit profiles and registry settings.
package store

import (
	"context"
	"sync"

	"credipet/internal/credit/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

// InMemoryStore keeps profiles in a map. Writes register undos with the
// surrounding ledger operation; reads return copies.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[id.Principal]*models.Profile
	settings *models.Settings
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[id.Principal]*models.Profile)}
}

// FindProfile returns sentinel.ErrNotFound for a principal with no history.
func (s *InMemoryStore) FindProfile(_ context.Context, p id.Principal) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[p]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

// SaveProfile inserts or replaces a profile.
func (s *InMemoryStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.profiles[profile.Principal]
	copied := *profile
	s.profiles[profile.Principal] = &copied

	tx.RecordUndo(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if had {
			s.profiles[profile.Principal] = prev
		} else {
			delete(s.profiles, profile.Principal)
		}
	})
	return nil
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
