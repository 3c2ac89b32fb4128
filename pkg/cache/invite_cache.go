package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// InviteCacheTTL is the time-to-live for cached invites.
	InviteCacheTTL = 24 * time.Hour

	inviteCacheKeyPrefix = "invite:code"
)

// CachedInvite is the denormalized read model stored in Redis. Keyed by code
// (not org) because redemption looks invites up before the caller belongs to
// any org.
type CachedInvite struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InviteCache provides structured read/write operations for invite cache
// entries. Key format: "invite:code:{CODE}". Entries are invalidated on any
// lifecycle transition, so a cached invite is always pending.
type InviteCache struct {
	client *RedisClient
}

// NewInviteCache creates a new InviteCache backed by the given RedisClient.
func NewInviteCache(r *RedisClient) *InviteCache {
	return &InviteCache{client: r}
}

// Get retrieves a cached invite by code.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *InviteCache) Get(ctx context.Context, code string) (*CachedInvite, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	orgID, err := uuid.Parse(vals["org_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse org_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse expires_at: %w", err)
	}

	return &CachedInvite{
		ID:        id,
		OrgID:     orgID,
		Code:      vals["code"],
		Email:     vals["email"],
		Role:      vals["role"],
		Status:    vals["status"],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Set writes a cached invite as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *InviteCache) Set(ctx context.Context, invite *CachedInvite) error {
	key := c.key(invite.Code)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", invite.ID.String(),
		"org_id", invite.OrgID.String(),
		"code", invite.Code,
		"email", invite.Email,
		"role", invite.Role,
		"status", invite.Status,
		"created_at", invite.CreatedAt.UTC().Format(time.RFC3339Nano),
		"expires_at", invite.ExpiresAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, InviteCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached invite.
func (c *InviteCache) Delete(ctx context.Context, code string) error {
	if err := c.client.Client().Del(ctx, c.key(code)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *InviteCache) key(code string) string {
	return fmt.Sprintf("%s:%s", inviteCacheKeyPrefix, code)
}
