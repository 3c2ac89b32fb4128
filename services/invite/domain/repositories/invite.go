package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/propstack/services/invite/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// InviteRepository is the persistence interface for the Invite aggregate.
// The domain layer owns this interface; infrastructure implements it.
type InviteRepository interface {
	// Save persists a new Invite. Returns ErrInviteAlreadyExists when the
	// code collides with one written after the uniqueness check — the code
	// column's unique index is the authoritative arbiter.
	Save(ctx context.Context, invite *models.Invite) error

	// GetByCode retrieves an invite by its normalized code, across orgs —
	// redemption happens before the caller belongs to any org.
	GetByCode(ctx context.Context, code models.InviteCode) (*models.Invite, error)

	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Invite, error)

	// FindByOrgID retrieves a paginated list of invites for the given org.
	// Returns the invites slice and the total count (ignoring pagination).
	FindByOrgID(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.Invite, int, error)

	// UpdateStatus persists a lifecycle transition (redeem, revoke, expire).
	UpdateStatus(ctx context.Context, invite *models.Invite) error

	// CodeExists reports whether any invite already holds the given code.
	// This is the existence oracle consumed by the uniqueness resolver; it
	// is a pure lookup and reserves nothing.
	CodeExists(ctx context.Context, code models.InviteCode) (bool, error)
}
