package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/propstack/pkg/cache"
	invitedomain "github.com/ghuser/propstack/services/invite/domain"
	"github.com/ghuser/propstack/services/invite/domain/models"
	"github.com/ghuser/propstack/services/invite/domain/repositories"
	domainsvcs "github.com/ghuser/propstack/services/invite/domain/services"
)

// saveAttempts bounds how many times Create re-resolves a code after losing
// the check-then-write race to a concurrent creation.
const saveAttempts = 3

// ExpiryScheduler schedules a deferred expiry for a freshly created invite.
// Implemented by the Temporal-backed workflows.Scheduler; nil when Temporal
// is disabled (expiry then happens lazily at read time).
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, invite *models.Invite) error
}

// InviteService orchestrates invite creation, redemption, and revocation.
// Event publishing is handled by the repository layer (outbox pattern).
// Code lookups are served from Redis cache when available.
type InviteService struct {
	repo            repositories.InviteRepository
	cache           *pkgcache.InviteCache
	scheduler       ExpiryScheduler
	maxCodeAttempts int
	defaultTTL      time.Duration
}

// NewInviteService returns an InviteService wired with the given repository,
// cache, and optional expiry scheduler. maxCodeAttempts <= 0 falls back to
// the resolver default; defaultTTL <= 0 falls back to 7 days.
func NewInviteService(repo repositories.InviteRepository, cache *pkgcache.InviteCache, scheduler ExpiryScheduler, maxCodeAttempts int, defaultTTL time.Duration) *InviteService {
	if defaultTTL <= 0 {
		defaultTTL = 7 * 24 * time.Hour
	}
	return &InviteService{
		repo:            repo,
		cache:           cache,
		scheduler:       scheduler,
		maxCodeAttempts: maxCodeAttempts,
		defaultTTL:      defaultTTL,
	}
}

// Create resolves a unique code, builds the Invite aggregate, and persists
// it. Losing the race between CodeExists and the insert surfaces as
// ErrInviteAlreadyExists from Save; Create then resolves a fresh code and
// retries, up to saveAttempts times.
func (s *InviteService) Create(ctx context.Context, orgID uuid.UUID, email, role string, ttl time.Duration) (*models.Invite, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInvite, err)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	var invite *models.Invite
	for attempt := 0; attempt < saveAttempts; attempt++ {
		code, err := domainsvcs.ResolveUniqueCode(ctx, s.repo.CodeExists, s.maxCodeAttempts)
		if err != nil {
			return nil, err
		}

		invite, err = models.NewInvite(orgID, code, email, r, ttl)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInvite, err)
		}
		if err := domainsvcs.ValidateInviteForCreation(invite); err != nil {
			return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInvite, err)
		}

		err = s.repo.Save(ctx, invite)
		if err == nil {
			break
		}
		if errors.Is(err, invitedomain.ErrInviteAlreadyExists) && attempt < saveAttempts-1 {
			continue
		}
		return nil, fmt.Errorf("save invite: %w", err)
	}

	if s.scheduler != nil {
		// Best-effort: a failed schedule does not fail the creation, since
		// expiry is also enforced lazily on read and redemption.
		_ = s.scheduler.ScheduleExpiry(ctx, invite)
	}

	return invite, nil
}

// GenerateCode produces a single format-valid code with no uniqueness check.
func (s *InviteService) GenerateCode() string {
	return domainsvcs.GenerateCode().String()
}

// Redeem consumes a pending invite by code. The raw code is normalized and
// format-checked before any lookup. Returns the redeemed invite so callers
// can provision the account it authorizes.
func (s *InviteService) Redeem(ctx context.Context, rawCode string) (*models.Invite, error) {
	code, err := models.NewInviteCode(rawCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInviteCode, err)
	}

	invite, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}

	switch invite.Status {
	case models.StatusRedeemed:
		return nil, invitedomain.ErrInviteAlreadyRedeemed
	case models.StatusRevoked:
		return nil, invitedomain.ErrInviteRevoked
	case models.StatusExpired:
		return nil, invitedomain.ErrInviteExpired
	}

	now := time.Now().UTC()
	if invite.IsExpired(now) {
		invite.Expire()
		if err := s.repo.UpdateStatus(ctx, invite); err == nil {
			s.invalidate(invite.Code.String())
		}
		return nil, invitedomain.ErrInviteExpired
	}

	if err := invite.Redeem(now); err != nil {
		return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInvite, err)
	}
	if err := s.repo.UpdateStatus(ctx, invite); err != nil {
		return nil, fmt.Errorf("redeem invite: %w", err)
	}
	s.invalidate(invite.Code.String())

	return invite, nil
}

// GetByCode retrieves an invite using a read-through cache pattern:
//  1. Check Redis cache first (only pending invites are cached).
//  2. On cache miss (or cache error), query Postgres.
//  3. Warming happens via the invite.created subscriber in the worker.
//
// An invite past its deadline is reported as expired even while storage
// still says pending.
func (s *InviteService) GetByCode(ctx context.Context, rawCode string) (*models.Invite, error) {
	code, err := models.NewInviteCode(rawCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invitedomain.ErrInvalidInviteCode, err)
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, code.String()); err == nil {
			invite := cachedToInvite(cached)
			if invite.IsExpired(time.Now().UTC()) {
				invite.Expire()
			}
			return invite, nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache error — fall through to Postgres.
			_ = err
		}
	}

	invite, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}
	if invite.Status == models.StatusPending && invite.IsExpired(time.Now().UTC()) {
		invite.Expire()
	}
	return invite, nil
}

// List returns a paginated slice of invites for the org plus total count.
func (s *InviteService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Invite, int, error) {
	invites, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list invites: %w", err)
	}
	return invites, total, nil
}

// Revoke cancels a pending invite by ID scoped to the given org.
func (s *InviteService) Revoke(ctx context.Context, orgID, id uuid.UUID) error {
	invite, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("get invite: %w", err)
	}
	if invite.Status == models.StatusRedeemed {
		return invitedomain.ErrInviteAlreadyRedeemed
	}
	if err := invite.Revoke(); err != nil {
		return fmt.Errorf("%w: %w", invitedomain.ErrInvalidInvite, err)
	}
	if err := s.repo.UpdateStatus(ctx, invite); err != nil {
		return fmt.Errorf("revoke invite: %w", err)
	}
	s.invalidate(invite.Code.String())
	return nil
}

func (s *InviteService) invalidate(code string) {
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), code)
	}
}

func cachedToInvite(c *pkgcache.CachedInvite) *models.Invite {
	return &models.Invite{
		ID:        c.ID,
		OrgID:     c.OrgID,
		Code:      models.InviteCode(c.Code),
		Email:     c.Email,
		Role:      models.Role(c.Role),
		Status:    models.Status(c.Status),
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}
