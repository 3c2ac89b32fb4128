package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/propstack/pkg/app"
	"github.com/ghuser/propstack/pkg/cache"
	"github.com/ghuser/propstack/pkg/config"
	"github.com/ghuser/propstack/pkg/database"
	"github.com/ghuser/propstack/pkg/events"
	"github.com/ghuser/propstack/pkg/logger"
	"github.com/ghuser/propstack/pkg/telemetry"
	"github.com/ghuser/propstack/pkg/workflows"
	inviteWorkflows "github.com/ghuser/propstack/services/invite/application/workflows"
	inviteEvents "github.com/ghuser/propstack/services/invite/domain/events"
	"github.com/ghuser/propstack/services/invite/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// Temporal worker hosting the invite expiry workflow. Optional: without
	// it, expiry is enforced lazily when invites are read or redeemed.
	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()

		w := worker.New(temporalClient.Client, inviteWorkflows.TaskQueue, worker.Options{})
		w.RegisterWorkflow(inviteWorkflows.InviteExpiryWorkflow)
		w.RegisterActivity(inviteWorkflows.NewActivities(postgres.NewInviteRepository(pool, nil)))
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", inviteWorkflows.TaskQueue)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		inviteEvents.TopicInviteCreated:  handleInviteCreated(a),
		inviteEvents.TopicInviteRedeemed: handleInviteClosed(a),
		inviteEvents.TopicInviteRevoked:  handleInviteClosed(a),
	}

	names := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		names = append(names, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", names)
	return nil
}

// handleInviteCreated returns a handler for invite.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so code lookups are served from cache.
func handleInviteCreated(a *app.Application) func(context.Context, *message.Message) error {
	inviteCache := cache.NewInviteCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt inviteEvents.InviteCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := inviteCache.Set(ctx, &cache.CachedInvite{
			ID:        evt.InviteID,
			OrgID:     evt.OrgID,
			Code:      evt.Code,
			Email:     evt.Email,
			Role:      evt.Role,
			Status:    "pending",
			CreatedAt: evt.OccurredAt,
			ExpiresAt: evt.ExpiresAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for invite.created",
				"invite_id", evt.InviteID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"invite_id", evt.InviteID, "org_id", evt.OrgID)
		}

		return nil
	}
}

// handleInviteClosed invalidates the cached invite when it is redeemed or
// revoked. Only pending invites live in the cache.
func handleInviteClosed(a *app.Application) func(context.Context, *message.Message) error {
	inviteCache := cache.NewInviteCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt inviteEvents.InviteRedeemedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		if err := inviteCache.Delete(ctx, evt.Code); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed",
				"invite_id", evt.InviteID, "error", err)
		}
		return nil
	}
}
