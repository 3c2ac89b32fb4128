package events

import (
	"context"
	"database/sql"
	"fmt"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/propstack/pkg/config"
	"github.com/ghuser/propstack/pkg/logger"
)

// outboxTopic is the staging queue the relay drains. Watermill's forwarder
// component wraps each staged message in an envelope naming its real topic.
const outboxTopic = "events_outbox"

// NewOutboxEventBus returns a bus whose Publish stages messages in a durable
// outbox table instead of writing to the topic directly. Nothing reaches
// subscribers until StartRelay is running, but nothing is lost if the process
// dies right after Publish either.
func NewOutboxEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

// stageInOutbox decorates pub so published messages land on outboxTopic.
func stageInOutbox(pub message.Publisher) message.Publisher {
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{
		ForwarderTopic: outboxTopic,
	})
}

// NewTxPublisher binds a publisher to tx so event rows commit or roll back
// together with the caller's own writes. The invite repository uses this to
// close the gap between saving an invite and announcing it.
//
// Schema init is off; the bus constructor already created the tables.
func (b *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(
		tx,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: false,
		},
		wmLogger{log: b.log},
	)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if b.outbox {
		return stageInOutbox(pub), nil
	}
	return pub, nil
}

// outboxRelay owns the forwarder goroutine moving staged messages to their
// target topics.
type outboxRelay struct {
	fwd *forwarder.Forwarder
}

func (r *outboxRelay) close() error {
	return r.fwd.Close()
}

// StartRelay launches the outbox relay and blocks until it is accepting work.
// Call exactly once, and only on a bus built with NewOutboxEventBus.
func (b *EventBus) StartRelay(ctx context.Context) error {
	if !b.outbox {
		return fmt.Errorf("events: StartRelay called on a plain event bus")
	}
	if b.relay != nil {
		return fmt.Errorf("events: outbox relay already started")
	}

	wlog := wmLogger{log: b.log}

	// The relay gets its own subscriber and publisher so its consumer group
	// offsets stay separate from the application's.
	sub, err := watermillsql.NewSubscriber(
		b.db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    "outbox-relay",
		},
		wlog,
	)
	if err != nil {
		return fmt.Errorf("events: new relay subscriber: %w", err)
	}

	pub, err := watermillsql.NewPublisher(
		b.db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		_ = sub.Close()
		return fmt.Errorf("events: new relay publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(sub, pub, wlog, forwarder.Config{
		ForwarderTopic: outboxTopic,
	})
	if err != nil {
		_ = pub.Close()
		_ = sub.Close()
		return fmt.Errorf("events: create outbox relay: %w", err)
	}

	b.relay = &outboxRelay{fwd: fwd}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.log.InfoContext(ctx, "events: outbox relay started")
		if err := fwd.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: outbox relay stopped with error", "error", err)
			return
		}
		b.log.InfoContext(ctx, "events: outbox relay stopped")
	}()

	select {
	case <-fwd.Running():
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for outbox relay: %w", ctx.Err())
	}
	return nil
}
