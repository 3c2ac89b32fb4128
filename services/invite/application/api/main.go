package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/propstack/pkg/app"
	"github.com/ghuser/propstack/pkg/auth"
	"github.com/ghuser/propstack/services/invite/application/handlers"
	appsvcs "github.com/ghuser/propstack/services/invite/application/services"
)

// InviteRoutes registers invite endpoints on the provided chi router.
// Redemption and code lookup are public (the invitee has no session yet);
// management endpoints require an authenticated org session.
func InviteRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/invites", func(r chi.Router) {
		r.Post("/redeem", handlers.NewPostRedeemHandler(svcs).Execute)
		r.Get("/{code}", handlers.NewGetInviteHandler(svcs).Execute)

		r.Group(func(r chi.Router) {
			if a.SessionStore != nil {
				r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
			}
			r.Post("/", handlers.NewPostInviteHandler(svcs).Execute)
			r.Get("/", handlers.NewGetInvitesHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteInviteHandler(svcs).Execute)
		})
	})
}
