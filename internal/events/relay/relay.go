// Package relay publishes committed registry events to Kafka.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"credipet/internal/events/metrics"
	"credipet/internal/events/models"
	"credipet/internal/platform/kafka/producer"
	"credipet/pkg/platform/tracer"
)

const DefaultTopic = "credipet.registry.events"

// Store is the relay's view of the event log.
type Store interface {
	FetchUnrelayed(ctx context.Context, limit int) ([]*models.Event, error)
	MarkRelayed(ctx context.Context, seq uint64, at time.Time) error
	CountUnrelayed(ctx context.Context) (int64, error)
}

// Producer publishes one message synchronously.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Worker polls the event log and publishes unrelayed entries in seq order.
// Delivery is at-least-once: a crash between publish and mark re-sends the
// event, and consumers dedupe on the event_id header.
type Worker struct {
	store        Store
	producer     Producer
	topic        string
	batchSize    int
	pollInterval time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger
	tracer       tracer.Tracer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures the Worker.
type Option func(*Worker)

func WithTopic(topic string) Option {
	return func(w *Worker) {
		if topic != "" {
			w.topic = topic
		}
	}
}

func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.pollInterval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(w *Worker) {
		w.tracer = t
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// New creates a relay worker. Call Start to begin polling.
func New(store Store, prod Producer, opts ...Option) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		store:        store,
		producer:     prod,
		topic:        DefaultTopic,
		batchSize:    100,
		pollInterval: 250 * time.Millisecond,
		logger:       slog.New(slog.DiscardHandler),
		tracer:       tracer.NewNoop(),
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the polling loop in a background goroutine.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.drain()
			return
		case <-ticker.C:
			w.Poll(w.ctx)
		}
	}
}

// Poll relays one batch and returns how many events were published.
// A failed event stops the batch so later events never overtake it.
func (w *Worker) Poll(ctx context.Context) (published int) {
	start := time.Now()
	defer func() {
		if w.metrics != nil {
			w.metrics.ObservePollDuration(time.Since(start).Seconds())
		}
	}()

	batch, err := w.store.FetchUnrelayed(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("failed to fetch unrelayed events", "error", err)
		w.incFailures()
		return 0
	}
	if len(batch) == 0 {
		return 0
	}
	if w.metrics != nil {
		w.metrics.ObserveBatchSize(len(batch))
	}

	ctx, span := w.tracer.Start(ctx, tracer.SpanEventRelay, tracer.Int64(tracer.AttrBatchSize, int64(len(batch))))
	var failure error
	defer func() {
		span.SetAttributes(tracer.Int64("relay.published", int64(published)))
		span.End(failure)
	}()

	for _, event := range batch {
		if err := w.publish(ctx, event); err != nil {
			failure = err
			w.logger.Error("failed to publish event",
				"seq", event.Seq,
				"type", event.Type,
				"error", err,
			)
			w.incFailures()
			break
		}
		if err := w.store.MarkRelayed(ctx, event.Seq, time.Now().UTC()); err != nil {
			failure = err
			w.logger.Error("failed to mark event relayed",
				"seq", event.Seq,
				"error", err,
			)
			break
		}
		published++
		if w.metrics != nil {
			w.metrics.IncPublished(event.Type.String())
		}
	}
	return published
}

func (w *Worker) publish(ctx context.Context, event *models.Event) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	// Keyed by principal so one account's events stay ordered within a partition.
	msg := &producer.Message{
		Topic: w.topic,
		Key:   []byte(event.Principal.Hex()),
		Value: payload,
		Headers: map[string]string{
			"event_id":   event.ID.String(),
			"event_type": event.Type.String(),
			"seq":        strconv.FormatUint(event.Seq, 10),
		},
	}
	if err := w.producer.Produce(ctx, msg); err != nil {
		return err
	}

	if w.metrics != nil {
		w.metrics.ObservePublishDuration(time.Since(start).Seconds())
	}
	return nil
}

// drain flushes what it can during shutdown.
func (w *Worker) drain() {
	w.logger.Info("draining event relay")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for ctx.Err() == nil {
		if w.Poll(ctx) == 0 {
			return
		}
	}
}

// Stop cancels polling, drains, and waits for the loop to exit.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateMetrics refreshes the pending depth gauge.
func (w *Worker) UpdateMetrics(ctx context.Context) error {
	if w.metrics == nil {
		return nil
	}
	count, err := w.store.CountUnrelayed(ctx)
	if err != nil {
		return err
	}
	w.metrics.SetPendingDepth(count)
	return nil
}

func (w *Worker) incFailures() {
	if w.metrics != nil {
		w.metrics.IncPublishFailures()
	}
}
