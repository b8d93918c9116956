package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"credipet/internal/badge/models"
	eventmodels "credipet/internal/events/models"
	eventservice "credipet/internal/events/service"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

func (s *ServiceSuite) TestMint() {
	s.Run("nothing is owned before mint", func() {
		has, err := s.service.HasBadge(context.Background(), alice)
		s.Require().NoError(err)
		s.False(has)
		badgeID, err := s.service.BadgeOf(context.Background(), alice)
		s.Require().NoError(err)
		s.True(badgeID.IsNil())
	})

	s.Run("mints a healthy egg stamped with ledger time", func() {
		badge := s.mint(alice)
		s.Equal(id.BadgeID(1), badge.ID)
		s.Equal(alice, badge.Owner)
		s.Equal(models.StageEgg, badge.Stage)
		s.False(badge.IsWeakened)
		s.Equal(mintTime, badge.MintedAt)

		has, err := s.service.HasBadge(context.Background(), alice)
		s.Require().NoError(err)
		s.True(has)

		minted := s.eventsOf(eventmodels.TypeBadgeMinted)
		s.Require().Len(minted, 1)
		s.Equal(alice, minted[0].Principal)
		s.Equal(id.BadgeID(1), minted[0].BadgeID)
	})

	s.Run("second mint by the same principal fails", func() {
		_, err := s.service.Mint(as(alice))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal("already owns a badge", err.Error())

		badgeID, err := s.service.BadgeOf(context.Background(), alice)
		s.Require().NoError(err)
		s.Equal(id.BadgeID(1), badgeID)
	})

	s.Run("anonymous caller cannot mint", func() {
		_, err := s.service.Mint(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Minted))
}

func (s *ServiceSuite) TestMintIDsAreDenseInCallOrder() {
	for i, p := range []id.Principal{carol, alice, bob, owner} {
		badge := s.mint(p)
		s.Equal(id.BadgeID(i+1), badge.ID)
	}
	_, err := s.service.Mint(as(alice))
	s.Require().Error(err)

	badge := s.mint(authority)
	s.Equal(id.BadgeID(5), badge.ID, "a failed mint does not consume an id")
}

func (s *ServiceSuite) TestEvolve() {
	s.mint(alice)

	s.Run("evolves forward and records old and new stage", func() {
		badge, err := s.service.Evolve(as(authority), alice, models.StageHatchling)
		s.Require().NoError(err)
		s.Equal(models.StageHatchling, badge.Stage)

		evolved := s.eventsOf(eventmodels.TypeBadgeEvolved)
		s.Require().Len(evolved, 1)
		s.Equal(uint64(0), evolved[0].OldValue)
		s.Equal(uint64(1), evolved[0].NewValue)
		s.Equal(id.BadgeID(1), evolved[0].BadgeID)
	})

	s.Run("rejects equal and lower stages", func() {
		for _, stage := range []models.Stage{models.StageEgg, models.StageHatchling} {
			_, err := s.service.Evolve(as(authority), alice, stage)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
			s.Equal("can only evolve forward", err.Error())
		}
	})

	s.Run("rejects stage above legendary", func() {
		_, err := s.service.Evolve(as(authority), alice, 5)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Equal("invalid stage", err.Error())
	})

	s.Run("skips straight to legendary", func() {
		badge, err := s.service.Evolve(as(authority), alice, models.StageLegendary)
		s.Require().NoError(err)
		s.Equal(models.StageLegendary, badge.Stage)
	})

	s.Run("nothing changed by failed calls", func() {
		s.Len(s.eventsOf(eventmodels.TypeBadgeEvolved), 2)
	})
}

func (s *ServiceSuite) TestEvolveAuthorization() {
	s.mint(alice)
	before := s.eventCount()

	for _, caller := range []id.Principal{alice, owner, id.ZeroPrincipal} {
		_, err := s.service.Evolve(as(caller), alice, models.StageHatchling)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden), caller.Hex())
		s.Equal("caller is not the evolution authority", err.Error())
	}

	badge, err := s.service.GetBadge(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(models.StageEgg, badge.Stage)
	s.Equal(before, s.eventCount())
}

func (s *ServiceSuite) TestEvolveWithoutBadge() {
	_, err := s.service.Evolve(as(authority), bob, models.StageHatchling)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("owner has no badge", err.Error())
}

func (s *ServiceSuite) TestSetWeakened() {
	s.mint(alice)

	badge, err := s.service.SetWeakened(as(authority), alice, true)
	s.Require().NoError(err)
	s.True(badge.IsWeakened)

	s.Run("repeating the same flag still records an event", func() {
		_, err := s.service.SetWeakened(as(authority), alice, true)
		s.Require().NoError(err)
		s.Len(s.eventsOf(eventmodels.TypeBadgeHealthChanged), 2)
	})

	s.Run("heals", func() {
		badge, err := s.service.SetWeakened(as(authority), alice, false)
		s.Require().NoError(err)
		s.False(badge.IsWeakened)

		changes := s.eventsOf(eventmodels.TypeBadgeHealthChanged)
		s.Require().Len(changes, 3)
		s.False(changes[2].Flag)
		s.True(changes[0].Flag)
	})

	s.Run("only the evolution authority", func() {
		_, err := s.service.SetWeakened(as(alice), alice, true)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("no badge", func() {
		_, err := s.service.SetWeakened(as(authority), bob, true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestTokenURI() {
	s.mint(alice)
	ctx := context.Background()

	uri, err := s.service.TokenURI(ctx, 1)
	s.Require().NoError(err)
	s.Equal("https://credipet.xyz/metadata/egg.json", uri)

	_, err = s.service.SetWeakened(as(authority), alice, true)
	s.Require().NoError(err)
	uri, err = s.service.TokenURI(ctx, 1)
	s.Require().NoError(err)
	s.Equal("https://credipet.xyz/metadata/egg-weak.json", uri)

	_, err = s.service.Evolve(as(authority), alice, models.StageLegendary)
	s.Require().NoError(err)
	uri, err = s.service.TokenURI(ctx, 1)
	s.Require().NoError(err)
	s.Equal("https://credipet.xyz/metadata/legendary-weak.json", uri)

	_, err = s.service.TokenURI(ctx, 999)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("invalid token id", err.Error())
}

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, *eventmodels.Event) error {
	return dErrors.New(dErrors.CodeInternal, "event log unavailable")
}

func (s *ServiceSuite) TestFailedEmitRollsBackMint() {
	svc, err := New(s.store, ledger.NewMemory(), failingEmitter{})
	s.Require().NoError(err)

	_, err = svc.Mint(as(bob))
	s.Require().Error(err)

	has, err := s.service.HasBadge(context.Background(), bob)
	s.Require().NoError(err)
	s.False(has)
	next, err := s.store.NextID(context.Background())
	s.Require().NoError(err)
	s.Equal(id.BadgeID(1), next)
}

// stallingEmitter holds the operation open until released, then fails it.
type stallingEmitter struct {
	entered chan struct{}
	release chan struct{}
}

func (e stallingEmitter) Emit(context.Context, *eventmodels.Event) error {
	close(e.entered)
	<-e.release
	return dErrors.New(dErrors.CodeInternal, "event log unavailable")
}

func (s *ServiceSuite) TestReadsWaitOutAFailingMint() {
	shared := ledger.NewMemory()
	emitter := stallingEmitter{entered: make(chan struct{}), release: make(chan struct{})}
	writer, err := New(s.store, shared, emitter)
	s.Require().NoError(err)
	reader, err := New(s.store, shared, eventservice.New(s.events))
	s.Require().NoError(err)

	mintErr := make(chan error, 1)
	go func() {
		_, err := writer.Mint(as(bob))
		mintErr <- err
	}()
	<-emitter.entered

	type result struct {
		has bool
		uri error
	}
	read := make(chan result, 1)
	go func() {
		has, _ := reader.HasBadge(context.Background(), bob)
		_, uriErr := reader.TokenURI(context.Background(), 1)
		read <- result{has: has, uri: uriErr}
	}()

	select {
	case <-read:
		s.Fail("badge read completed while the mint was still running")
		close(emitter.release)
		<-mintErr
		return
	case <-time.After(50 * time.Millisecond):
	}
	close(emitter.release)

	s.Require().Error(<-mintErr)
	got := <-read
	s.False(got.has)
	s.True(dErrors.HasCode(got.uri, dErrors.CodeNotFound), "the rolled-back badge was never visible")
}
