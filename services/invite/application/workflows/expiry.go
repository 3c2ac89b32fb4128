// Package workflows holds the Temporal workflow that expires invites at
// their deadline. When Temporal is disabled, expiry is still enforced lazily
// at read/redemption time; the workflow just keeps stored status fresh.
package workflows

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	pkgworkflows "github.com/ghuser/propstack/pkg/workflows"
	invitedomain "github.com/ghuser/propstack/services/invite/domain"
	"github.com/ghuser/propstack/services/invite/domain/models"
	"github.com/ghuser/propstack/services/invite/domain/repositories"
)

// TaskQueue is the Temporal task queue for invite expiry.
const TaskQueue = "invite-expiry"

// ExpiryInput identifies the invite to expire and when.
type ExpiryInput struct {
	InviteID  uuid.UUID
	OrgID     uuid.UUID
	ExpiresAt time.Time
}

// InviteExpiryWorkflow sleeps until the invite's deadline, then marks it
// expired. Workflow time comes from workflow.Now so replays are deterministic.
func InviteExpiryWorkflow(ctx workflow.Context, in ExpiryInput) error {
	if delay := in.ExpiresAt.Sub(workflow.Now(ctx)); delay > 0 {
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 5,
		},
	})
	return workflow.ExecuteActivity(ctx, "ExpireInvite", in).Get(ctx, nil)
}

// Activities carries the repository dependency for expiry activities.
type Activities struct {
	repo repositories.InviteRepository
}

// NewActivities returns Activities backed by the given repository.
func NewActivities(repo repositories.InviteRepository) *Activities {
	return &Activities{repo: repo}
}

// ExpireInvite marks a still-pending invite as expired. Idempotent: invites
// already redeemed, revoked, expired, or deleted are left alone.
func (a *Activities) ExpireInvite(ctx context.Context, in ExpiryInput) error {
	invite, err := a.repo.GetByID(ctx, in.OrgID, in.InviteID)
	if err != nil {
		if errors.Is(err, invitedomain.ErrInviteNotFound) {
			return nil
		}
		return err
	}
	if invite.Status != models.StatusPending {
		return nil
	}
	invite.Expire()
	return a.repo.UpdateStatus(ctx, invite)
}

// Scheduler starts one expiry workflow per invite. It satisfies the
// application service's ExpiryScheduler interface.
type Scheduler struct {
	tc *pkgworkflows.TemporalClient
}

// NewScheduler returns a Scheduler over the given Temporal client.
func NewScheduler(tc *pkgworkflows.TemporalClient) *Scheduler {
	return &Scheduler{tc: tc}
}

// ScheduleExpiry starts InviteExpiryWorkflow for the invite. The workflow ID
// embeds the invite ID so duplicate starts are rejected by Temporal.
func (s *Scheduler) ScheduleExpiry(ctx context.Context, invite *models.Invite) error {
	_, err := s.tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "invite-expiry-" + invite.ID.String(),
		TaskQueue: TaskQueue,
	}, InviteExpiryWorkflow, ExpiryInput{
		InviteID:  invite.ID,
		OrgID:     invite.OrgID,
		ExpiresAt: invite.ExpiresAt,
	})
	return err
}
