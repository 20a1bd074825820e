package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quotehub/quotehub/internal/api/handler"
	mw "github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/config"
	"github.com/quotehub/quotehub/internal/core"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: core.NewServices(pool, cfg.JWTSecret),
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
	// Authenticate never rejects: it attaches claims when the token is
	// valid and leaves the request anonymous otherwise. The guards on
	// individual routes decide who gets in.
	s.router.Use(mw.Authenticate(s.services.Token))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Public auth endpoints
	auth := handler.NewAuth(s.services.Auth)
	s.router.Post("/auth/register", auth.Register)
	s.router.Post("/auth/login", auth.Login)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireLoggedIn)

			r.Get("/me", handler.Me)

			// Dashboard
			dashboard := handler.NewDashboard(s.services.Dashboard)
			r.Get("/dashboard", dashboard.Get)

			// Company
			company := handler.NewCompany(s.services.Company)
			r.Get("/company", company.Get)

			// Customers
			customer := handler.NewCustomer(s.services.Customer)
			r.Get("/customers", customer.List)
			r.Post("/customers", customer.Create)
			r.Get("/customers/{id}", customer.Get)
			r.Patch("/customers/{id}", customer.Update)
			r.Delete("/customers/{id}", customer.Delete)

			// Catalog items
			item := handler.NewItem(s.services.Item)
			r.Get("/items", item.List)
			r.Post("/items", item.Create)
			r.Get("/items/{id}", item.Get)
			r.Patch("/items/{id}", item.Update)
			r.Delete("/items/{id}", item.Delete)

			// RFQs
			rfq := handler.NewRFQ(s.services.RFQ)
			r.Get("/rfqs", rfq.List)
			r.Post("/rfqs", rfq.Create)
			r.Get("/rfqs/{id}", rfq.Get)
			r.Patch("/rfqs/{id}", rfq.Update)
			r.Delete("/rfqs/{id}", rfq.Delete)

			// Quotes
			quote := handler.NewQuote(s.services.Quote)
			r.Post("/rfqs/{id}/quotes", quote.CreateFromRFQ)
			r.Get("/quotes", quote.List)
			r.Get("/quotes/{id}", quote.Get)
			r.Patch("/quotes/{id}", quote.Update)
			r.Delete("/quotes/{id}", quote.Delete)
		})

		// Admin-only: company settings and user management
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)

			company := handler.NewCompany(s.services.Company)
			r.Patch("/company", company.Update)
			r.Delete("/company", company.Delete)

			user := handler.NewUser(s.services.User)
			r.Get("/users", user.List)
			r.Post("/users", user.Create)
		})

		// A user may read and edit their own record; admins may touch anyone's.
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireSelfOrAdmin("id"))

			user := handler.NewUser(s.services.User)
			r.Get("/users/{id}", user.Get)
			r.Patch("/users/{id}", user.Update)
			r.Delete("/users/{id}", user.Delete)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
