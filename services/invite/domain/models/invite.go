package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies what kind of account an invite provisions.
type Role string

const (
	RoleTenant     Role = "tenant"
	RoleLandlord   Role = "landlord"
	RoleContractor Role = "contractor"
)

// ParseRole validates and returns a Role from its string form.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleTenant, RoleLandlord, RoleContractor:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Status is the invite lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRedeemed Status = "redeemed"
	StatusRevoked  Status = "revoked"
	StatusExpired  Status = "expired"
)

// Invite is the core aggregate for this bounded context. An invite authorizes
// one pending signup into an organization under a given role, identified by
// its unique code.
type Invite struct {
	ID         uuid.UUID
	OrgID      uuid.UUID // tenant scope — always filter by this in queries
	Code       InviteCode
	Email      string
	Role       Role
	Status     Status
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RedeemedAt *time.Time
}

// NewInvite constructs a pending Invite with generated ID and current timestamp.
// The code is produced separately (see domain/services) so the uniqueness
// search stays out of the aggregate constructor.
func NewInvite(orgID uuid.UUID, code InviteCode, email string, role Role, ttl time.Duration) (*Invite, error) {
	if orgID == uuid.Nil {
		return nil, fmt.Errorf("org_id must be set")
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}
	now := time.Now().UTC()
	return &Invite{
		ID:        uuid.New(),
		OrgID:     orgID,
		Code:      code,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
		Status:    StatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired reports whether the invite's deadline has passed at t.
// Status may still read "pending" in storage; expiry is enforced lazily.
func (i *Invite) IsExpired(t time.Time) bool {
	return t.After(i.ExpiresAt)
}

// Redeem transitions a pending, unexpired invite to redeemed at time t.
func (i *Invite) Redeem(t time.Time) error {
	switch i.Status {
	case StatusRedeemed:
		return fmt.Errorf("invite already redeemed")
	case StatusRevoked:
		return fmt.Errorf("invite revoked")
	case StatusExpired:
		return fmt.Errorf("invite expired")
	}
	if i.IsExpired(t) {
		i.Status = StatusExpired
		return fmt.Errorf("invite expired")
	}
	t = t.UTC()
	i.Status = StatusRedeemed
	i.RedeemedAt = &t
	return nil
}

// Revoke transitions a pending invite to revoked. Redeemed invites cannot
// be revoked; revoking twice is a no-op.
func (i *Invite) Revoke() error {
	switch i.Status {
	case StatusRedeemed:
		return fmt.Errorf("cannot revoke a redeemed invite")
	case StatusRevoked:
		return nil
	}
	i.Status = StatusRevoked
	return nil
}

// Expire marks the invite expired. Only pending invites transition.
func (i *Invite) Expire() {
	if i.Status == StatusPending {
		i.Status = StatusExpired
	}
}
