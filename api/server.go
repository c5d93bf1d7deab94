/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/salary/*      Gross/net conversion, employer cost, payslip
  /api/bonuses/*     Statutory bonuses
  /api/severance     Severance award
  /api/leave/*       Leave entitlement and balance
  /api/yearly        Annual summary
  /api/tax/*         Tax table
  /api/amounts/*     Amount expression parsing
  /api/profiles/*    Employment profiles
  /api/history/*     Calculation history
  /api/scenarios/*   Demo profiles

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Calculation-ID", "X-Cache"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/salary", func(r chi.Router) {
			r.Post("/gross-to-net", h.GrossToNet)
			r.Post("/net-to-gross", h.NetToGross)
			r.Post("/employer-cost", h.EmployerCost)
			r.Post("/payslip", h.Payslip)
		})

		r.Post("/bonuses/{kind}", h.Bonus)
		r.Post("/severance", h.Severance)

		r.Route("/leave", func(r chi.Router) {
			r.Post("/entitlement", h.LeaveEntitlement)
			r.Post("/balance", h.LeaveBalance)
		})

		r.Post("/yearly", h.Yearly)

		r.Get("/tax/table", h.GetTaxTable)
		r.Post("/amounts/parse", h.ParseAmount)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.ListProfiles)
			r.Post("/", h.SaveProfile)
			r.Get("/{id}", h.GetProfile)
			r.Put("/{id}", h.SaveProfile)
			r.Delete("/{id}", h.DeleteProfile)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.ListHistory)
			r.Get("/{id}", h.GetHistory)
			r.Delete("/{id}", h.DeleteHistory)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tax_year": h.Table().Year})
	})

	return r
}
