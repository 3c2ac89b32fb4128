package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invitedomain "github.com/ghuser/propstack/services/invite/domain"
	"github.com/ghuser/propstack/services/invite/domain/models"
	"github.com/ghuser/propstack/services/invite/domain/repositories"
)

// fakeRepo is an in-memory InviteRepository. failSaves makes the first n Save
// calls report a duplicate code, simulating losing the check-then-write race.
type fakeRepo struct {
	byCode      map[string]*models.Invite
	failSaves   int
	saveCalls   int
	existsCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byCode: map[string]*models.Invite{}}
}

func (r *fakeRepo) Save(_ context.Context, invite *models.Invite) error {
	r.saveCalls++
	if r.failSaves > 0 {
		r.failSaves--
		return invitedomain.ErrInviteAlreadyExists
	}
	if _, taken := r.byCode[invite.Code.String()]; taken {
		return invitedomain.ErrInviteAlreadyExists
	}
	cp := *invite
	r.byCode[invite.Code.String()] = &cp
	return nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code models.InviteCode) (*models.Invite, error) {
	invite, ok := r.byCode[code.String()]
	if !ok {
		return nil, invitedomain.ErrInviteNotFound
	}
	cp := *invite
	return &cp, nil
}

func (r *fakeRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Invite, error) {
	for _, invite := range r.byCode {
		if invite.ID == id && invite.OrgID == orgID {
			cp := *invite
			return &cp, nil
		}
	}
	return nil, invitedomain.ErrInviteNotFound
}

func (r *fakeRepo) FindByOrgID(_ context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Invite, int, error) {
	var out []*models.Invite
	for _, invite := range r.byCode {
		if invite.OrgID == orgID {
			cp := *invite
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, invite *models.Invite) error {
	stored, ok := r.byCode[invite.Code.String()]
	if !ok {
		return invitedomain.ErrInviteNotFound
	}
	stored.Status = invite.Status
	stored.RedeemedAt = invite.RedeemedAt
	return nil
}

func (r *fakeRepo) CodeExists(_ context.Context, code models.InviteCode) (bool, error) {
	r.existsCalls++
	_, taken := r.byCode[code.String()]
	return taken, nil
}

func newService(repo *fakeRepo) *InviteService {
	return NewInviteService(repo, nil, nil, 10, 7*24*time.Hour)
}

func TestInviteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending invite with valid code", func(t *testing.T) {
		repo := newFakeRepo()
		invite, err := newService(repo).Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)

		require.NoError(t, err)
		assert.True(t, models.IsValidCodeFormat(invite.Code.String()))
		assert.Equal(t, models.StatusPending, invite.Status)
		assert.Equal(t, 1, repo.saveCalls)
	})

	t.Run("uses default ttl when none given", func(t *testing.T) {
		repo := newFakeRepo()
		invite, err := newService(repo).Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)

		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, invite.ExpiresAt.Sub(invite.CreatedAt))
	})

	t.Run("re-resolves after losing the write race", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failSaves = 2

		invite, err := newService(repo).Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)

		require.NoError(t, err)
		assert.Equal(t, 3, repo.saveCalls, "two duplicate hits then success")
		assert.NotNil(t, invite)
	})

	t.Run("gives up after the save budget", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failSaves = 3

		_, err := newService(repo).Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)

		require.ErrorIs(t, err, invitedomain.ErrInviteAlreadyExists)
		assert.Equal(t, 3, repo.saveCalls)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := newService(newFakeRepo()).Create(ctx, uuid.New(), "tenant@example.com", "admin", 0)
		require.ErrorIs(t, err, invitedomain.ErrInvalidInvite)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := newService(newFakeRepo()).Create(ctx, uuid.New(), "not-an-email", "tenant", 0)
		require.ErrorIs(t, err, invitedomain.ErrInvalidInvite)
	})
}

func TestInviteService_Redeem(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, repo *fakeRepo) *models.Invite {
		t.Helper()
		invite, err := newService(repo).Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)
		require.NoError(t, err)
		return invite
	}

	t.Run("redeems pending invite", func(t *testing.T) {
		repo := newFakeRepo()
		created := create(t, repo)

		redeemed, err := newService(repo).Redeem(ctx, created.Code.String())

		require.NoError(t, err)
		assert.Equal(t, models.StatusRedeemed, redeemed.Status)
		assert.NotNil(t, redeemed.RedeemedAt)
	})

	t.Run("normalizes the raw code before lookup", func(t *testing.T) {
		repo := newFakeRepo()
		created := create(t, repo)

		_, err := newService(repo).Redeem(ctx, "  "+created.Code.String()+" \n")
		require.NoError(t, err)
	})

	t.Run("rejects malformed codes without touching the store", func(t *testing.T) {
		_, err := newService(newFakeRepo()).Redeem(ctx, "nope")
		require.ErrorIs(t, err, invitedomain.ErrInvalidInviteCode)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := newService(newFakeRepo()).Redeem(ctx, "KX7Q2M9A")
		require.ErrorIs(t, err, invitedomain.ErrInviteNotFound)
	})

	t.Run("second redemption conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		created := create(t, repo)
		svc := newService(repo)

		_, err := svc.Redeem(ctx, created.Code.String())
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, created.Code.String())
		require.ErrorIs(t, err, invitedomain.ErrInviteAlreadyRedeemed)
	})

	t.Run("revoked invite cannot redeem", func(t *testing.T) {
		repo := newFakeRepo()
		created := create(t, repo)
		svc := newService(repo)

		require.NoError(t, svc.Revoke(ctx, created.OrgID, created.ID))
		_, err := svc.Redeem(ctx, created.Code.String())
		require.ErrorIs(t, err, invitedomain.ErrInviteRevoked)
	})

	t.Run("past-deadline invite expires on redemption", func(t *testing.T) {
		repo := newFakeRepo()
		created := create(t, repo)
		repo.byCode[created.Code.String()].ExpiresAt = time.Now().UTC().Add(-time.Minute)

		_, err := newService(repo).Redeem(ctx, created.Code.String())

		require.ErrorIs(t, err, invitedomain.ErrInviteExpired)
		assert.Equal(t, models.StatusExpired, repo.byCode[created.Code.String()].Status)
	})
}

func TestInviteService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes pending invite", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		invite, err := svc.Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, invite.OrgID, invite.ID))
		assert.Equal(t, models.StatusRevoked, repo.byCode[invite.Code.String()].Status)
	})

	t.Run("redeemed invite cannot be revoked", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		invite, err := svc.Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, invite.Code.String())
		require.NoError(t, err)

		err = svc.Revoke(ctx, invite.OrgID, invite.ID)
		require.ErrorIs(t, err, invitedomain.ErrInviteAlreadyRedeemed)
	})

	t.Run("unknown invite is not found", func(t *testing.T) {
		err := newService(newFakeRepo()).Revoke(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, invitedomain.ErrInviteNotFound)
	})
}

func TestInviteService_GetByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("reports pending invites past deadline as expired", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newService(repo)
		invite, err := svc.Create(ctx, uuid.New(), "tenant@example.com", "tenant", 0)
		require.NoError(t, err)
		repo.byCode[invite.Code.String()].ExpiresAt = time.Now().UTC().Add(-time.Minute)

		got, err := svc.GetByCode(ctx, invite.Code.String())

		require.NoError(t, err)
		assert.Equal(t, models.StatusExpired, got.Status)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		_, err := newService(newFakeRepo()).GetByCode(ctx, "!!")
		require.ErrorIs(t, err, invitedomain.ErrInvalidInviteCode)
	})
}

func TestInviteService_GenerateCode(t *testing.T) {
	svc := newService(newFakeRepo())
	for i := 0; i < 100; i++ {
		assert.True(t, models.IsValidCodeFormat(svc.GenerateCode()))
	}
}
