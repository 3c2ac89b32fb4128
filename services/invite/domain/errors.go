package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the invite domain. Use errors.Is() to check these.
var (
	// ErrInviteNotFound indicates no invite matches the given code or ID.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrInviteAlreadyExists indicates a unique constraint was hit on save,
	// i.e. another invite claimed the same code between check and write.
	ErrInviteAlreadyExists = errors.New("invite already exists")

	// ErrInvalidInviteCode indicates a candidate code fails the format contract.
	ErrInvalidInviteCode = errors.New("invalid invite code")

	// ErrInvalidInvite indicates the invite violates domain constraints.
	ErrInvalidInvite = errors.New("invalid invite")

	// ErrInviteExpired indicates the invite's deadline has passed.
	ErrInviteExpired = errors.New("invite expired")

	// ErrInviteRevoked indicates the invite was revoked before redemption.
	ErrInviteRevoked = errors.New("invite revoked")

	// ErrInviteAlreadyRedeemed indicates the invite was consumed already.
	ErrInviteAlreadyRedeemed = errors.New("invite already redeemed")

	// ErrCodeSpaceExhausted is matched by ExhaustedAttemptsError via errors.Is.
	ErrCodeSpaceExhausted = errors.New("no free invite code found")
)

// ExhaustedAttemptsError is returned when the uniqueness search gives up:
// every candidate in the attempt budget was reported as already taken.
// It carries the number of attempts consumed so callers can decide whether
// to raise the budget or fail the request.
type ExhaustedAttemptsError struct {
	Attempts int
}

func (e *ExhaustedAttemptsError) Error() string {
	return fmt.Sprintf("no free invite code found after %d attempts", e.Attempts)
}

// Is makes errors.Is(err, ErrCodeSpaceExhausted) match.
func (e *ExhaustedAttemptsError) Is(target error) bool {
	return target == ErrCodeSpaceExhausted
}
