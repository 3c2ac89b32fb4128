// Package events is the durable pub/sub layer between the API and the worker.
//
// Messages live in PostgreSQL tables managed by Watermill's SQL transport, so
// the bus needs no extra broker. Two modes exist:
//
//   - plain (NewEventBus): Publish writes straight to the topic table. Used by
//     the worker, which only consumes.
//   - outbox (NewOutboxEventBus): Publish stages messages in an outbox table,
//     and a background relay moves them to their topic. Combined with
//     NewTxPublisher this makes "persist invite + announce it" atomic.
//
// Instances sharing a ServiceName form one consumer group: each message is
// handled by exactly one of them. Handlers must be idempotent because a
// nacked message comes back.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/propstack/pkg/config"
	"github.com/ghuser/propstack/pkg/logger"
)

const (
	handlerRetries = 3
	retryBaseDelay = time.Second
	drainTimeout   = 30 * time.Second
)

// EventBus routes messages through PostgreSQL. Zero value is not usable;
// construct with NewEventBus or NewOutboxEventBus.
type EventBus struct {
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	relay      *outboxRelay
	db         *sql.DB
	log        logger.Logger
	wg         sync.WaitGroup
	outbox     bool
	retryDelay time.Duration
}

// NewEventBus connects to cfg.DatabaseURL and returns a plain-mode bus.
// Watermill creates its topic tables lazily on first use.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

func newEventBus(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	wlog := wmLogger{log: log}

	pub, err := watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    cfg.ServiceName + "-consumer",
		},
		wlog,
	)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	bus := &EventBus{
		subscriber: sub,
		db:         db,
		log:        log,
		outbox:     outbox,
		retryDelay: retryBaseDelay,
	}
	bus.publisher = pub
	if outbox {
		bus.publisher = stageInOutbox(pub)
	}
	return bus, nil
}

// Publish sends msgs to topic. The current trace context is copied into each
// message's metadata so subscribers can continue the span tree on their side.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := b.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic in a background goroutine until ctx is cancelled.
//
// Each message is handed to handler with the publisher's trace restored.
// A nil return acks the message. An error is retried with doubling delays
// (1s, 2s, 4s); once the retries run out the message is nacked and the error
// lands on the returned channel. The channel is buffered; drain it or
// delivery reports get dropped with a log line.
//
// Close waits for in-flight handlers before returning.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errCh)
		for msg := range ch {
			b.dispatch(ctx, topic, msg, handler, errCh)
		}
	}()

	return errCh, nil
}

func (b *EventBus) dispatch(ctx context.Context, topic string, msg *message.Message, handler func(context.Context, *message.Message) error, errCh chan<- error) {
	msgCtx := extractTrace(ctx, msg)

	err := b.deliver(msgCtx, msg, handler)
	if err == nil {
		msg.Ack()
		return
	}

	msg.Nack()
	select {
	case errCh <- err:
	default:
		b.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
			"error", err, "topic", topic)
	}
}

// deliver runs handler with exponential backoff between attempts.
func (b *EventBus) deliver(ctx context.Context, msg *message.Message, handler func(context.Context, *message.Message) error) error {
	var err error
	delay := b.retryDelay
	for attempt := 1; ; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == handlerRetries {
			return fmt.Errorf("events: handler failed after %d attempts: %w", attempt, err)
		}
		b.log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt, "next_delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// DB exposes the bus connection for schema migrations and health probes.
func (b *EventBus) DB() *sql.DB {
	return b.db
}

// Ping reports whether the bus can reach its database.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, shuts down the outbox relay if one is running, waits
// up to 30s for in-flight handlers, then releases the publisher and the
// database connection.
func (b *EventBus) Close() error {
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}

	if b.relay != nil {
		if err := b.relay.close(); err != nil {
			return fmt.Errorf("events: close outbox relay: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	select {
	case <-done:
	case <-ctx.Done():
		b.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return b.db.Close()
}
