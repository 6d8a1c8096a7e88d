/*
server.go - HTTP router and middleware configuration

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for the simulator front end

ROUTES:

	POST /api/simulations      Run and record a simulation
	GET  /api/usage            Filtered, paginated usage log
	GET  /api/usage/export     Usage log as CSV
	GET  /api/pension-groups   Current pension distribution
	GET  /api/facts/random     One pension fact
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are the local front-end dev servers.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/simulations", h.CreateSimulation)

		r.Route("/usage", func(r chi.Router) {
			r.Get("/", h.ListUsage)
			r.Get("/export", h.ExportUsage)
		})

		r.Get("/pension-groups", h.ListPensionGroups)
		r.Get("/facts/random", h.RandomFact)
	})

	return r
}
