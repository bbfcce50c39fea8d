package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestlist/internal/delivery/http/controllers"
	"guestlist/internal/delivery/http/middleware"
	"guestlist/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Routes under /public/ and /auth/register, /auth/login are unauthenticated;
// everything else behind requireAuth.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	guestController *controllers.GuestController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /auth/me", requireAuth(authController.Me))

	// Events (owner-scoped)
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Guests (owner-scoped)
	mux.HandleFunc("GET /events/{eventID}/guests", requireAuth(guestController.ListGuests))
	mux.HandleFunc("DELETE /events/{eventID}/guests/{guestID}", requireAuth(guestController.DeleteGuest))

	// Public link-token surface
	mux.HandleFunc("GET /public/events/{linkToken}", eventController.GetPublicEvent)
	mux.HandleFunc("POST /public/events/{linkToken}/guests", guestController.AddGuest)

	// Liveness
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
