package services

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/propstack/services/invite/domain/models"
)

// ValidateInviteForCreation performs cross-field validation on a
// fully-constructed Invite aggregate before it is persisted. It assumes the
// Invite was built via models.NewInvite and adds business-level checks that
// span multiple fields.
func ValidateInviteForCreation(invite *models.Invite) error {
	if invite == nil {
		return fmt.Errorf("invite cannot be nil")
	}

	if invite.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if invite.OrgID == uuid.Nil {
		return fmt.Errorf("org_id must be set")
	}

	if !models.IsValidCodeFormat(invite.Code.String()) {
		return fmt.Errorf("code %q does not match the invite code format", invite.Code)
	}

	if _, err := mail.ParseAddress(invite.Email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	if _, err := models.ParseRole(string(invite.Role)); err != nil {
		return err
	}

	if invite.Status != models.StatusPending {
		return fmt.Errorf("new invites must be pending, got %q", invite.Status)
	}

	if !invite.ExpiresAt.After(invite.CreatedAt) {
		return fmt.Errorf("expires_at must be after created_at")
	}

	if invite.ExpiresAt.Sub(invite.CreatedAt) > 90*24*time.Hour {
		return fmt.Errorf("invite ttl must not exceed 90 days")
	}

	return nil
}
