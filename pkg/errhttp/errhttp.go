// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/propstack/pkg/httpx"
	invitedomain "github.com/ghuser/propstack/services/invite/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, invitedomain.ErrInviteNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, invitedomain.ErrInviteAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, invitedomain.ErrInviteAlreadyRedeemed),
		errors.Is(err, invitedomain.ErrInviteRevoked):
		return http.StatusConflict // 409
	case errors.Is(err, invitedomain.ErrInviteExpired):
		return http.StatusGone // 410
	case errors.Is(err, invitedomain.ErrInvalidInviteCode),
		errors.Is(err, invitedomain.ErrInvalidInvite):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, invitedomain.ErrCodeSpaceExhausted):
		// The code space should never fill up in practice; treat a failed
		// uniqueness search as a transient service problem.
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
