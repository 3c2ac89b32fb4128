package handlers

import (
	"net/http"

	"github.com/ghuser/propstack/pkg/errhttp"
	"github.com/ghuser/propstack/pkg/httpx"
	pkgvalidator "github.com/ghuser/propstack/pkg/validator"
	appsvcs "github.com/ghuser/propstack/services/invite/application/services"
	"github.com/ghuser/propstack/services/invite/domain/models"
)

// RedeemInviteRequest is the request body for POST /invites/redeem.
// The code is normalized server-side, so "  kx7q2m9a " is accepted.
type RedeemInviteRequest struct {
	Code string `json:"code" validate:"required,invitecode" example:"KX7Q2M9A"`
} // @name RedeemInviteRequest

// PostRedeemHandler handles POST /invites/redeem requests. This endpoint is
// unauthenticated: the invitee has no account yet.
type PostRedeemHandler struct {
	svc *appsvcs.Services
}

// NewPostRedeemHandler returns a PostRedeemHandler backed by the given services.
func NewPostRedeemHandler(svc *appsvcs.Services) *PostRedeemHandler {
	return &PostRedeemHandler{svc: svc}
}

// Execute redeems a pending invite by code.
//
//	@Summary		Redeem invite
//	@Description	Consumes a pending invite code and returns the invite it authorized
//	@Tags			invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RedeemInviteRequest	true	"Redemption request"
//	@Success		200		{object}	InviteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		410		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/invites/redeem [post]
func (h *PostRedeemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RedeemInviteRequest](w, r)
	if !ok {
		return
	}

	invite, err := h.svc.Invite.Redeem(r.Context(), req.Code)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toInviteResponse(invite))
}

// toInviteResponse maps a domain Invite to its API representation.
func toInviteResponse(invite *models.Invite) InviteResponse {
	return InviteResponse{
		ID:         invite.ID,
		OrgID:      invite.OrgID,
		Code:       invite.Code.String(),
		Email:      invite.Email,
		Role:       string(invite.Role),
		Status:     string(invite.Status),
		CreatedAt:  invite.CreatedAt,
		ExpiresAt:  invite.ExpiresAt,
		RedeemedAt: invite.RedeemedAt,
	}
}
