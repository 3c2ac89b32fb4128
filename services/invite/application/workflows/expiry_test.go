package workflows

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

type stubRepo struct {
	invite        *models.Invite
	statusUpdates int
}

func (r *stubRepo) Save(context.Context, *models.Invite) error { return nil }

func (r *stubRepo) GetByCode(context.Context, models.InviteCode) (*models.Invite, error) {
	return nil, invitedomain.ErrInviteNotFound
}

func (r *stubRepo) GetByID(_ context.Context, orgID, id uuid.UUID) (*models.Invite, error) {
	if r.invite == nil || r.invite.ID != id || r.invite.OrgID != orgID {
		return nil, invitedomain.ErrInviteNotFound
	}
	cp := *r.invite
	return &cp, nil
}

func (r *stubRepo) FindByOrgID(context.Context, uuid.UUID, repositories.QueryOpts) ([]*models.Invite, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, invite *models.Invite) error {
	r.statusUpdates++
	r.invite.Status = invite.Status
	return nil
}

func (r *stubRepo) CodeExists(context.Context, models.InviteCode) (bool, error) {
	return false, nil
}

func pendingInvite(t *testing.T) *models.Invite {
	t.Helper()
	invite, err := models.NewInvite(uuid.New(), models.InviteCode("KX7Q2M9A"), "tenant@example.com", models.RoleTenant, time.Hour)
	require.NoError(t, err)
	return invite
}

func TestExpireInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("expires pending invite", func(t *testing.T) {
		repo := &stubRepo{invite: pendingInvite(t)}
		in := ExpiryInput{InviteID: repo.invite.ID, OrgID: repo.invite.OrgID}

		require.NoError(t, NewActivities(repo).ExpireInvite(ctx, in))
		assert.Equal(t, models.StatusExpired, repo.invite.Status)
	})

	t.Run("leaves redeemed invite alone", func(t *testing.T) {
		repo := &stubRepo{invite: pendingInvite(t)}
		require.NoError(t, repo.invite.Redeem(time.Now().UTC()))
		in := ExpiryInput{InviteID: repo.invite.ID, OrgID: repo.invite.OrgID}

		require.NoError(t, NewActivities(repo).ExpireInvite(ctx, in))
		assert.Equal(t, models.StatusRedeemed, repo.invite.Status)
		assert.Zero(t, repo.statusUpdates)
	})

	t.Run("missing invite is not an error", func(t *testing.T) {
		repo := &stubRepo{}
		in := ExpiryInput{InviteID: uuid.New(), OrgID: uuid.New()}

		require.NoError(t, NewActivities(repo).ExpireInvite(ctx, in))
	})
}
