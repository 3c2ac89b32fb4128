package services

import (
	"github.com/ghuser/propstack/pkg/app"
	"github.com/ghuser/propstack/pkg/cache"
	"github.com/ghuser/propstack/services/invite/application/workflows"
	"github.com/ghuser/propstack/services/invite/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Invite *InviteService
}

// New wires all invite application services with infrastructure from the
// Application container. The Temporal-backed expiry scheduler is attached
// only when a Temporal client is configured.
func New(a *app.Application) *Services {
	repo := postgres.NewInviteRepository(a.Db, a.EventBus)
	inviteCache := cache.NewInviteCache(a.Redis)

	var scheduler ExpiryScheduler
	if a.TemporalClient != nil {
		scheduler = workflows.NewScheduler(a.TemporalClient)
	}

	return &Services{
		Invite: NewInviteService(
			repo,
			inviteCache,
			scheduler,
			a.Cfg.InviteCodeMaxAttempts,
			a.Cfg.InviteTTL,
		),
	}
}
