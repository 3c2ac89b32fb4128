package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/propstack/pkg/auth"
	"github.com/ghuser/propstack/pkg/errhttp"
	"github.com/ghuser/propstack/pkg/httpx"
	pkgvalidator "github.com/ghuser/propstack/pkg/validator"
	appsvcs "github.com/ghuser/propstack/services/invite/application/services"
)

// CreateInviteRequest is the request body for POST /invites.
type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email" example:"tenant@example.com"`
	Role  string `json:"role"  validate:"required,oneof=tenant landlord contractor" example:"tenant"`
	// TTLHours overrides the default invite validity window when > 0.
	TTLHours int `json:"ttl_hours" validate:"omitempty,gte=1,lte=2160" example:"168"`
} // @name CreateInviteRequest

// InviteResponse is the invite representation returned by all endpoints.
type InviteResponse struct {
	ID         uuid.UUID  `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	OrgID      uuid.UUID  `json:"org_id"      example:"550e8400-e29b-41d4-a716-446655440000"`
	Code       string     `json:"code"        example:"KX7Q2M9A"`
	Email      string     `json:"email"       example:"tenant@example.com"`
	Role       string     `json:"role"        example:"tenant"`
	Status     string     `json:"status"      example:"pending"`
	CreatedAt  time.Time  `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	ExpiresAt  time.Time  `json:"expires_at"  example:"2024-01-22T10:30:00Z"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
} // @name InviteResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"invite not found"`
} // @name ErrorResponse

// PostInviteHandler handles POST /invites requests.
type PostInviteHandler struct {
	svc *appsvcs.Services
}

// NewPostInviteHandler returns a PostInviteHandler backed by the given services.
func NewPostInviteHandler(svc *appsvcs.Services) *PostInviteHandler {
	return &PostInviteHandler{svc: svc}
}

// Execute creates a new invite with a unique code.
//
//	@Summary		Create invite
//	@Description	Creates a pending invite with a unique 8-character code scoped to the caller's organization
//	@Tags			invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateInviteRequest	true	"Invite creation request"
//	@Success		201		{object}	InviteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/invites [post]
func (h *PostInviteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateInviteRequest](w, r)
	if !ok {
		return
	}

	invite, err := h.svc.Invite.Create(r.Context(), orgID, req.Email, req.Role, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toInviteResponse(invite))
}
