package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/platform/tx"
)

type MemoryLedgerSuite struct {
	suite.Suite
	metrics *Metrics
	ledger  *Memory
}

func (s *MemoryLedgerSuite) SetupTest() {
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.ledger = NewMemory(WithMetrics(s.metrics))
}

func TestMemoryLedgerSuite(t *testing.T) {
	suite.Run(t, new(MemoryLedgerSuite))
}

func (s *MemoryLedgerSuite) TestFailedOperationRunsUndos() {
	value := 0
	err := s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		old := value
		value = 10
		tx.RecordUndo(ctx, func() { value = old })
		return errors.New("boom")
	})

	s.Require().Error(err)
	s.Equal(0, value)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Operations.WithLabelValues("rolled_back")))
}

func (s *MemoryLedgerSuite) TestCommittedOperationKeepsWrites() {
	value := 0
	err := s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		old := value
		value = 10
		tx.RecordUndo(ctx, func() { value = old })
		return nil
	})

	s.Require().NoError(err)
	s.Equal(10, value)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Operations.WithLabelValues("committed")))
}

func (s *MemoryLedgerSuite) TestNestedExecuteJoinsOuterOperation() {
	outer, inner := 0, 0
	err := s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		outer = 1
		tx.RecordUndo(ctx, func() { outer = 0 })

		if err := s.ledger.Execute(ctx, func(ctx context.Context) error {
			inner = 1
			tx.RecordUndo(ctx, func() { inner = 0 })
			return nil
		}); err != nil {
			return err
		}
		return errors.New("outer fails after inner succeeded")
	})

	s.Require().Error(err)
	s.Equal(0, outer)
	s.Equal(0, inner, "inner writes roll back with the outer operation")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Operations.WithLabelValues("rolled_back")))
}

func (s *MemoryLedgerSuite) TestPanicRollsBackAndRepanics() {
	value := 0
	s.Panics(func() {
		_ = s.ledger.Execute(context.Background(), func(ctx context.Context) error {
			value = 5
			tx.RecordUndo(ctx, func() { value = 0 })
			panic("bad state")
		})
	})
	s.Equal(0, value)

	// The writer slot is released after a panic.
	err := s.ledger.Execute(context.Background(), func(context.Context) error { return nil })
	s.NoError(err)
}

func (s *MemoryLedgerSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.ledger.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.False(called)
}

func (s *MemoryLedgerSuite) TestCommitStepsRunOnlyOnSuccess() {
	var log []string
	_ = s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		tx.OnCommit(ctx, func() { log = append(log, "failed") })
		return errors.New("boom")
	})
	err := s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		tx.OnCommit(ctx, func() { log = append(log, "committed") })
		return nil
	})

	s.Require().NoError(err)
	s.Equal([]string{"committed"}, log)
}

func (s *MemoryLedgerSuite) TestReadWaitsForRunningOperation() {
	value := 0
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.ledger.Execute(context.Background(), func(ctx context.Context) error {
			value = 1
			tx.RecordUndo(ctx, func() { value = 0 })
			close(started)
			<-release
			return errors.New("rolled back after the read was issued")
		})
	}()
	<-started

	observed := make(chan int, 1)
	go func() {
		_ = s.ledger.Read(context.Background(), func(context.Context) error {
			observed <- value
			return nil
		})
	}()

	select {
	case v := <-observed:
		s.Failf("read ran during an operation", "observed %d", v)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	s.Require().Error(<-done)
	s.Equal(0, <-observed, "the read sees the rolled-back state")
}

func (s *MemoryLedgerSuite) TestReadInsideOperationSeesOwnWrites() {
	value := 0
	err := s.ledger.Execute(context.Background(), func(ctx context.Context) error {
		value = 7
		got, err := Query(ctx, s.ledger, func(context.Context) (int, error) { return value, nil })
		s.Equal(7, got)
		return err
	})
	s.Require().NoError(err)
}

func (s *MemoryLedgerSuite) TestNestedReadDoesNotBlockOnWaitingWriter() {
	entered := make(chan struct{})
	writerDone := make(chan error, 1)

	err := s.ledger.Read(context.Background(), func(ctx context.Context) error {
		go func() {
			close(entered)
			writerDone <- s.ledger.Execute(context.Background(), func(context.Context) error { return nil })
		}()
		<-entered
		time.Sleep(10 * time.Millisecond)
		return s.ledger.Read(ctx, func(context.Context) error { return nil })
	})

	s.Require().NoError(err)
	s.NoError(<-writerDone)
}

func TestMemoryLedger_SerializesWriters(t *testing.T) {
	l := NewMemory()
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Execute(context.Background(), func(context.Context) error {
				v := counter
				counter = v + 1
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
}
