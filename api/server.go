/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and the /api/v1 route tree.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:    Request logging
  2. Recoverer: Panic recovery (500 instead of crash)
  3. RequestID: Unique ID per request for tracing
  4. CORS:      Cross-origin requests for the frontend dev server

ROUTE GROUPS:
  /api/v1/persons/*     Person profiles, their accounts and marriages
  /api/v1/marriages/*   Marriage detail operations
  /api/v1/employers/*   Employer management
  /api/v1/employment/*  Employment history
  /api/v1/income/*      Employment income records
  /api/v1/limits/*      Published IRS contribution limits (read-only)

SECURITY NOTE:
  No authentication middleware. All endpoints are public.
*/
package api

import (
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
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/persons", func(r chi.Router) {
			r.Get("/", h.ListPersons)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}", h.GetPerson)
			r.Put("/{id}", h.UpdatePerson)
			r.Get("/{id}/accounts", h.ListAccounts)
			r.Post("/{id}/accounts", h.CreateAccount)
			r.Get("/{id}/marriages", h.ListMarriages)
			r.Post("/{id}/marriages", h.CreateMarriage)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{id}", h.GetAccount)
			r.Put("/{id}", h.UpdateAccount)
			r.Delete("/{id}", h.DeleteAccount)
		})

		r.Route("/marriages", func(r chi.Router) {
			r.Get("/{id}", h.GetMarriage)
			r.Put("/{id}", h.UpdateMarriage)
			r.Delete("/{id}", h.DeleteMarriage)
		})

		r.Route("/employers", func(r chi.Router) {
			r.Get("/", h.ListEmployers)
			r.Post("/", h.CreateEmployer)
			r.Get("/{id}", h.GetEmployer)
			r.Put("/{id}", h.UpdateEmployer)
			r.Delete("/{id}", h.DeleteEmployer)
		})

		r.Route("/employment", func(r chi.Router) {
			r.Get("/", h.ListEmployment)
			r.Post("/", h.CreateEmployment)
			r.Get("/{id}", h.GetEmployment)
			r.Put("/{id}", h.UpdateEmployment)
			r.Delete("/{id}", h.DeleteEmployment)
		})

		r.Route("/income", func(r chi.Router) {
			r.Get("/", h.ListIncome)
			r.Post("/", h.CreateIncome)
			r.Get("/{id}", h.GetIncome)
			r.Put("/{id}", h.UpdateIncome)
			r.Delete("/{id}", h.DeleteIncome)
		})

		r.Route("/limits", func(r chi.Router) {
			r.Get("/years", h.ListLimitYears)
			r.Post("/defaults", h.SeedDefaultLimits)
			r.Get("/{year}", h.GetLimitsByYear)
			r.Get("/{year}/{accountType}", h.GetLimitsForAccountType)
		})
	})

	return r
}
