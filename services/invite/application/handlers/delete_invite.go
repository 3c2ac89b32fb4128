package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/propstack/pkg/auth"
	"github.com/ghuser/propstack/pkg/errhttp"
	"github.com/ghuser/propstack/pkg/httpx"
	appsvcs "github.com/ghuser/propstack/services/invite/application/services"
)

// DeleteInviteHandler handles DELETE /invites/{id} requests (revocation).
type DeleteInviteHandler struct {
	svc *appsvcs.Services
}

// NewDeleteInviteHandler returns a DeleteInviteHandler backed by the given services.
func NewDeleteInviteHandler(svc *appsvcs.Services) *DeleteInviteHandler {
	return &DeleteInviteHandler{svc: svc}
}

// Execute revokes a pending invite.
//
//	@Summary		Revoke invite
//	@Description	Revokes a pending invite so its code can no longer be redeemed
//	@Tags			invites
//	@Produce		json
//	@Param			id	path	string	true	"Invite ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/invites/{id} [delete]
func (h *DeleteInviteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid invite id")
		return
	}

	if err := h.svc.Invite.Revoke(r.Context(), orgID, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
