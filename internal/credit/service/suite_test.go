package service

//go:generate mockgen -source=../ports/badge.go -destination=../ports/mocks/badge_mock.go -package=mocks BadgePort

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	creditmetrics "credipet/internal/credit/metrics"
	"credipet/internal/credit/models"
	"credipet/internal/credit/ports/mocks"
	"credipet/internal/credit/store"
	eventmodels "credipet/internal/events/models"
	eventservice "credipet/internal/events/service"
	eventstore "credipet/internal/events/store"
	"credipet/internal/ledger"
	id "credipet/pkg/domain"
	"credipet/pkg/platform/tracer"
	"credipet/pkg/requestcontext"
)

var (
	owner    = id.DerivePrincipal("credit-owner")
	lender   = id.DerivePrincipal("lending-pool")
	alice    = id.DerivePrincipal("alice")
	bob      = id.DerivePrincipal("bob")
	stranger = id.DerivePrincipal("stranger")
	ledgerAt = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	badges  *mocks.MockBadgePort
	store   *store.InMemoryStore
	events  *eventstore.InMemoryStore
	metrics *creditmetrics.Metrics
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.badges = mocks.NewMockBadgePort(s.ctrl)
	s.store = store.NewInMemory()
	s.events = eventstore.NewInMemory()
	s.metrics = creditmetrics.New(prometheus.NewRegistry())
	s.service = s.newService()
}

func (s *ServiceSuite) newService(opts ...Option) *Service {
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	}, opts...)
	svc, err := New(s.store, ledger.NewMemory(), eventservice.New(s.events), s.badges, opts...)
	s.Require().NoError(err)
	s.Require().NoError(svc.Bootstrap(context.Background(), models.Settings{
		Owner:            owner,
		LendingAuthority: lender,
		Parameters:       models.DefaultParameters(),
	}))
	return svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func as(p id.Principal) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), p)
	return requestcontext.WithTime(ctx, ledgerAt)
}

// withoutBadge makes p a principal with no badge for the rest of the test.
func (s *ServiceSuite) withoutBadge(p id.Principal) {
	s.badges.EXPECT().HasBadge(gomock.Any(), p).Return(false, nil).AnyTimes()
}

func (s *ServiceSuite) repay(p id.Principal, n int) *models.Profile {
	var profile *models.Profile
	for range n {
		var err error
		profile, err = s.service.RecordRepayment(as(lender), p)
		s.Require().NoError(err)
	}
	return profile
}

func (s *ServiceSuite) eventsOf(t eventmodels.Type) []*eventmodels.Event {
	events, err := s.events.List(context.Background(), eventmodels.Filter{Type: t})
	s.Require().NoError(err)
	return events
}

func (s *ServiceSuite) allEvents() []*eventmodels.Event {
	events, err := s.events.List(context.Background(), eventmodels.Filter{})
	s.Require().NoError(err)
	return events
}

// spanLog is a tracer that keeps every ended span.
type spanLog struct {
	mu    sync.Mutex
	ended []*loggedSpan
}

type loggedSpan struct {
	log    *spanLog
	name   string
	attrs  map[string]any
	events []string
	err    error
}

func (l *spanLog) Start(ctx context.Context, name string, attrs ...tracer.Attribute) (context.Context, tracer.Span) {
	span := &loggedSpan{log: l, name: name, attrs: map[string]any{}}
	span.SetAttributes(attrs...)
	return ctx, span
}

func (l *spanLog) named(name string) []*loggedSpan {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*loggedSpan
	for _, span := range l.ended {
		if span.name == name {
			out = append(out, span)
		}
	}
	return out
}

func (sp *loggedSpan) SetAttributes(attrs ...tracer.Attribute) {
	for _, a := range attrs {
		sp.attrs[string(a.Key)] = a.Value.AsInterface()
	}
}

func (sp *loggedSpan) AddEvent(name string, _ ...tracer.Attribute) {
	sp.events = append(sp.events, name)
}

func (sp *loggedSpan) End(err error) {
	sp.err = err
	sp.log.mu.Lock()
	defer sp.log.mu.Unlock()
	sp.log.ended = append(sp.log.ended, sp)
}
