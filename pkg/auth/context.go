package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const orgIDKey contextKey = "org_id"

// ErrOrgIDNotFound means the request never passed RequireAuth. Handlers map
// it to 401.
var ErrOrgIDNotFound = errors.New("org_id not found in context")

// OrgIDFromCtx returns the organization the request is authenticated for.
func OrgIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	orgID, ok := ctx.Value(orgIDKey).(uuid.UUID)
	if !ok || orgID == uuid.Nil {
		return uuid.Nil, ErrOrgIDNotFound
	}
	return orgID, nil
}

// WithOrgID stamps the context with the validated organization ID.
func WithOrgID(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, orgIDKey, orgID)
}
