package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unifly-app/unifly"
	apimiddleware "github.com/unifly-app/unifly/infrastructure/api/middleware"
	v1 "github.com/unifly-app/unifly/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by a unifly Client.
type APIServer struct {
	client       *unifly.Client
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given unifly Client.
func NewAPIServer(client *unifly.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all v1 API routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

// mountRoutes wires up all v1 API routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	if origins := c.Config().CORSOrigins(); len(origins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	router.Use(apimiddleware.Logging(a.logger))

	router.Get("/", a.handleRoot)
	router.Get("/health", a.handleHealth)

	searchRouter := v1.NewSearchRouter(c.Catalog(), a.logger)
	accountsRouter := v1.NewAccountsRouter(c.Accounts(), a.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))

		r.Mount("/search", searchRouter.Routes())
		r.Mount("/accounts", accountsRouter.Routes())

		for _, entity := range c.Catalog().Entities() {
			entityRouter := v1.NewEntityRouter(c.Catalog(), entity.Name(), a.logger)
			r.Mount("/"+entity.Name(), entityRouter.Routes())
		}
	})
}

func (a *APIServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "unifly",
		"status":  "running",
	})
}

func (a *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server

	if a.routerCalled && a.router != nil {
		server.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(server.Router())
	}

	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
