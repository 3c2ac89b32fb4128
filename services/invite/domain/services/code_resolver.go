package services

import (
	"context"
	"fmt"

	invitedomain "github.com/ghuser/propstack/services/invite/domain"
	"github.com/ghuser/propstack/services/invite/domain/models"
)

// DefaultMaxAttempts bounds the uniqueness search when the caller passes
// maxAttempts <= 0.
const DefaultMaxAttempts = 10

// ExistsFunc is the existence oracle: it reports whether a candidate code is
// already allocated. It must be a pure lookup — not a reservation — and is
// expected to hit the persistent store, so it takes a context.
type ExistsFunc func(ctx context.Context, code models.InviteCode) (bool, error)

// ResolveUniqueCode searches for a code the oracle does not know. Attempts
// run strictly one after another: generate a candidate, ask the oracle, and
// return the first candidate reported free. Oracle errors abort the search
// immediately and propagate unwrapped via %w.
//
// A free answer only means "not allocated at check time". Two concurrent
// resolutions can both pass the check with the same candidate; the unique
// index on the invites table is what actually arbitrates, and callers
// should re-resolve when the subsequent write reports a duplicate.
//
// When every candidate in the budget is taken, the search fails with
// *invitedomain.ExhaustedAttemptsError carrying the attempt count.
func ResolveUniqueCode(ctx context.Context, exists ExistsFunc, maxAttempts int) (models.InviteCode, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("resolve invite code: %w", err)
		}

		candidate := GenerateCode()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check invite code: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", &invitedomain.ExhaustedAttemptsError{Attempts: maxAttempts}
}
