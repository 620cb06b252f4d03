package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// NewHandler wires the API routes. authHandler may be nil, in which case the
// /auth routes are not mounted.
func NewHandler(
	pollHandler *PollHandler,
	participantHandler *ParticipantHandler,
	calendarHandler *CalendarHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	sessions *SessionMiddleware,
	allowedOrigins []string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// An empty origin list means same-origin only. Cookies are never
	// shared with a wildcard origin.
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: !slices.Contains(allowedOrigins, "*"),
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	if authHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google/callback", authHandler.GoogleCallback)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/calendar", func(r chi.Router) {
			r.Post("/month", calendarHandler.Month)
			r.Post("/toggle-day", calendarHandler.ToggleDay)
			r.Post("/timed", calendarHandler.SetTimed)
			r.Post("/slot-start", calendarHandler.SetSlotStart)
			r.Post("/slot-end", calendarHandler.SetSlotEnd)
			r.Post("/add-slot", calendarHandler.AddSlot)
			r.Post("/remove-slot", calendarHandler.RemoveSlot)
			r.Post("/apply-to-all", calendarHandler.ApplyToAllDays)
			r.Post("/remove-day", calendarHandler.RemoveDay)
		})

		r.Group(func(r chi.Router) {
			r.Use(sessions.Handle)

			r.Get("/me", userHandler.GetMe)

			r.Route("/polls", func(r chi.Router) {
				r.Post("/", pollHandler.CreatePoll)
				r.Get("/", pollHandler.ListPolls)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", pollHandler.GetPoll)
					r.Put("/options", pollHandler.UpdateOptions)
					r.Get("/view", pollHandler.View)
					r.Get("/grid", pollHandler.Grid)
					r.Get("/results", pollHandler.Results)

					r.Post("/participants", participantHandler.AddParticipant)
					r.Put("/participants/{participantID}", participantHandler.UpdateParticipant)
					r.Delete("/participants/{participantID}", participantHandler.DeleteParticipant)
				})
			})
		})
	})

	return r
}
