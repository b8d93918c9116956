package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"credipet/internal/badge/models"
	"credipet/internal/sentinel"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tx"
)

var (
	alice = id.DerivePrincipal("alice")
	bob   = id.DerivePrincipal("bob")
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) mint(ctx context.Context, owner id.Principal) *models.Badge {
	next, err := s.store.NextID(ctx)
	s.Require().NoError(err)
	b, err := models.NewBadge(next, owner, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(ctx, b))
	return b
}

func (s *InMemoryStoreSuite) TestCreateAssignsDenseIDs() {
	a := s.mint(s.ctx, alice)
	b := s.mint(s.ctx, bob)
	s.Equal(id.BadgeID(1), a.ID)
	s.Equal(id.BadgeID(2), b.ID)

	found, err := s.store.FindByOwner(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(b.ID, found.ID)
}

func (s *InMemoryStoreSuite) TestCreateRejectsSecondBadge() {
	s.mint(s.ctx, alice)
	dup, err := models.NewBadge(2, alice, time.Now())
	s.Require().NoError(err)

	err = s.store.Create(s.ctx, dup)
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *InMemoryStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, 7)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByOwner(s.ctx, alice)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.LoadSettings(s.ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestReadsAreCopies() {
	s.mint(s.ctx, alice)
	b, err := s.store.FindByID(s.ctx, 1)
	s.Require().NoError(err)
	b.Stage = models.StageAdult

	again, err := s.store.FindByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(models.StageEgg, again.Stage)
}

func (s *InMemoryStoreSuite) TestJournalUndoesWrites() {
	s.mint(s.ctx, alice)
	s.Require().NoError(s.store.SaveSettings(s.ctx, &models.Settings{Owner: alice, BaseURI: "a/"}))

	journal := tx.NewJournal()
	ctx := tx.WithJournal(s.ctx, journal)

	s.mint(ctx, bob)
	b, err := s.store.FindByID(ctx, 1)
	s.Require().NoError(err)
	b.Stage = models.StageLegendary
	b.IsWeakened = true
	s.Require().NoError(s.store.Update(ctx, b))
	s.Require().NoError(s.store.SaveApproval(ctx, 1, bob))
	s.Require().NoError(s.store.SetOperator(ctx, alice, bob, true))
	s.Require().NoError(s.store.SaveSettings(ctx, &models.Settings{Owner: bob, BaseURI: "b/"}))

	journal.Rollback()

	_, err = s.store.FindByOwner(s.ctx, bob)
	s.ErrorIs(err, sentinel.ErrNotFound)
	next, err := s.store.NextID(s.ctx)
	s.Require().NoError(err)
	s.Equal(id.BadgeID(2), next)

	restored, err := s.store.FindByID(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(models.StageEgg, restored.Stage)
	s.False(restored.IsWeakened)

	approved, err := s.store.FindApproval(s.ctx, 1)
	s.Require().NoError(err)
	s.True(approved.IsZero())

	isOp, err := s.store.IsOperator(s.ctx, alice, bob)
	s.Require().NoError(err)
	s.False(isOp)

	settings, err := s.store.LoadSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(alice, settings.Owner)
	s.Equal("a/", settings.BaseURI)
}

func (s *InMemoryStoreSuite) TestApprovalsAndOperators() {
	s.mint(s.ctx, alice)

	s.Require().NoError(s.store.SaveApproval(s.ctx, 1, bob))
	approved, err := s.store.FindApproval(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(bob, approved)

	s.Require().NoError(s.store.SaveApproval(s.ctx, 1, id.ZeroPrincipal))
	approved, err = s.store.FindApproval(s.ctx, 1)
	s.Require().NoError(err)
	s.True(approved.IsZero())

	s.Require().NoError(s.store.SetOperator(s.ctx, alice, bob, true))
	ok, err := s.store.IsOperator(s.ctx, alice, bob)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.store.IsOperator(s.ctx, bob, alice)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.SetOperator(s.ctx, alice, bob, false))
	ok, err = s.store.IsOperator(s.ctx, alice, bob)
	s.Require().NoError(err)
	s.False(ok)
}
