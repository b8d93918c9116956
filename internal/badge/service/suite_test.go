package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	badgemetrics "credipet/internal/badge/metrics"
	"credipet/internal/badge/models"
	"credipet/internal/badge/store"
	eventmodels "credipet/internal/events/models"
	eventservice "credipet/internal/events/service"
	eventstore "credipet/internal/events/store"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	"credipet/pkg/requestcontext"
)

var (
	owner     = id.DerivePrincipal("badge-owner")
	authority = id.DerivePrincipal("credit-registry")
	alice     = id.DerivePrincipal("alice")
	bob       = id.DerivePrincipal("bob")
	carol     = id.DerivePrincipal("carol")
	mintTime  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	events  *eventstore.InMemoryStore
	metrics *badgemetrics.Metrics
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.events = eventstore.NewInMemory()
	s.metrics = badgemetrics.New(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := New(s.store, ledger.NewMemory(), eventservice.New(s.events),
		WithLogger(logger),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
	s.service = svc

	s.Require().NoError(s.service.Bootstrap(context.Background(), models.Settings{
		Owner:              owner,
		EvolutionAuthority: authority,
		BaseURI:            models.DefaultBaseURI,
	}))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// as returns a context whose caller is p.
func as(p id.Principal) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), p)
	return requestcontext.WithTime(ctx, mintTime)
}

func (s *ServiceSuite) mint(p id.Principal) *models.Badge {
	badge, err := s.service.Mint(as(p))
	s.Require().NoError(err)
	return badge
}

func (s *ServiceSuite) eventsOf(t eventmodels.Type) []*eventmodels.Event {
	events, err := s.events.List(context.Background(), eventmodels.Filter{Type: t})
	s.Require().NoError(err)
	return events
}

func (s *ServiceSuite) eventCount() int {
	events, err := s.events.List(context.Background(), eventmodels.Filter{})
	s.Require().NoError(err)
	return len(events)
}
