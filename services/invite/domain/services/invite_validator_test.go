package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/propstack/services/invite/domain/models"
)

func validInvite(t *testing.T) *models.Invite {
	t.Helper()
	invite, err := models.NewInvite(uuid.New(), models.InviteCode("KX7Q2M9A"), "tenant@example.com", models.RoleTenant, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return invite
}

func TestValidateInviteForCreation(t *testing.T) {
	t.Run("valid invite passes", func(t *testing.T) {
		if err := ValidateInviteForCreation(validInvite(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nil invite fails", func(t *testing.T) {
		if err := ValidateInviteForCreation(nil); err == nil {
			t.Fatal("expected error for nil invite")
		}
	})

	t.Run("malformed code fails", func(t *testing.T) {
		invite := validInvite(t)
		invite.Code = models.InviteCode("short")
		if err := ValidateInviteForCreation(invite); err == nil {
			t.Fatal("expected error for malformed code")
		}
	})

	t.Run("invalid email fails", func(t *testing.T) {
		invite := validInvite(t)
		invite.Email = "not-an-email"
		if err := ValidateInviteForCreation(invite); err == nil {
			t.Fatal("expected error for invalid email")
		}
	})

	t.Run("unknown role fails", func(t *testing.T) {
		invite := validInvite(t)
		invite.Role = models.Role("admin")
		if err := ValidateInviteForCreation(invite); err == nil {
			t.Fatal("expected error for unknown role")
		}
	})

	t.Run("non-pending status fails", func(t *testing.T) {
		invite := validInvite(t)
		invite.Status = models.StatusRedeemed
		if err := ValidateInviteForCreation(invite); err == nil {
			t.Fatal("expected error for non-pending status")
		}
	})

	t.Run("ttl over 90 days fails", func(t *testing.T) {
		invite := validInvite(t)
		invite.ExpiresAt = invite.CreatedAt.Add(91 * 24 * time.Hour)
		if err := ValidateInviteForCreation(invite); err == nil {
			t.Fatal("expected error for oversized ttl")
		}
	})
}
