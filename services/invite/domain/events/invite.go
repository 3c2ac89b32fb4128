package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the invite bounded context.
const (
	TopicInviteCreated  = "invite.created"
	TopicInviteRedeemed = "invite.redeemed"
	TopicInviteRevoked  = "invite.revoked"
)

// InviteCreatedEvent is published after a new Invite is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicInviteCreated).
type InviteCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	InviteID   uuid.UUID `json:"invite_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Code       string    `json:"code"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InviteRedeemedEvent is published when an invite is consumed.
type InviteRedeemedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	InviteID   uuid.UUID `json:"invite_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InviteRevokedEvent is published when an invite is revoked before use.
type InviteRevokedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	InviteID   uuid.UUID `json:"invite_id"`
	OrgID      uuid.UUID `json:"org_id"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}
