package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/propstack/pkg/auth"
	"github.com/ghuser/propstack/pkg/errhttp"
	"github.com/ghuser/propstack/pkg/httpx"
	appsvcs "github.com/ghuser/propstack/services/invite/application/services"
	"github.com/ghuser/propstack/services/invite/domain/repositories"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListInvitesResponse is the paginated list envelope for GET /invites.
type ListInvitesResponse struct {
	Invites []InviteResponse `json:"invites"`
	Total   int              `json:"total"  example:"42"`
	Limit   int              `json:"limit"  example:"20"`
	Offset  int              `json:"offset" example:"0"`
} // @name ListInvitesResponse

// GetInvitesHandler handles GET /invites requests.
type GetInvitesHandler struct {
	svc *appsvcs.Services
}

// NewGetInvitesHandler returns a GetInvitesHandler backed by the given services.
func NewGetInvitesHandler(svc *appsvcs.Services) *GetInvitesHandler {
	return &GetInvitesHandler{svc: svc}
}

// Execute lists invites for the caller's organization.
//
//	@Summary		List invites
//	@Description	Returns a paginated list of the organization's invites, newest first
//	@Tags			invites
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 100)"
//	@Param			offset	query		int	false	"Offset"
//	@Success		200		{object}	ListInvitesResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/invites [get]
func (h *GetInvitesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	opts := repositories.QueryOpts{
		Limit:  queryInt(r, "limit", defaultPageLimit),
		Offset: queryInt(r, "offset", 0),
	}
	if opts.Limit < 1 || opts.Limit > maxPageLimit {
		opts.Limit = defaultPageLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	invites, total, err := h.svc.Invite.List(r.Context(), orgID, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListInvitesResponse{
		Invites: make([]InviteResponse, len(invites)),
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
	}
	for i, invite := range invites {
		resp.Invites[i] = toInviteResponse(invite)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

// GetInviteHandler handles GET /invites/{code} requests.
type GetInviteHandler struct {
	svc *appsvcs.Services
}

// NewGetInviteHandler returns a GetInviteHandler backed by the given services.
func NewGetInviteHandler(svc *appsvcs.Services) *GetInviteHandler {
	return &GetInviteHandler{svc: svc}
}

// Execute looks up an invite by code. Unauthenticated, so an invitee can
// preview an invite before redeeming it.
//
//	@Summary		Get invite by code
//	@Description	Returns the invite holding the given code
//	@Tags			invites
//	@Produce		json
//	@Param			code	path		string	true	"Invite code"
//	@Success		200		{object}	InviteResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/invites/{code} [get]
func (h *GetInviteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	invite, err := h.svc.Invite.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toInviteResponse(invite))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
