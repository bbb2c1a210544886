package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"quickanswer/internal/handlers/api"
	"quickanswer/internal/metrics"
	"quickanswer/internal/middleware"
)

// Dependencies are the collaborators the routes are wired to.
type Dependencies struct {
	Resolver api.Resolver
	// Database is pinged by /healthz. Nil when no database is configured.
	Database api.Pinger
	// Auth guards /ask. Nil leaves it open.
	Auth *middleware.AuthMiddleware
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Dependencies) {
	askHandler := api.NewAskHandler(deps.Resolver, s.logger)
	healthHandler := api.NewHealthHandler(deps.Database, s.logger)

	if deps.Auth != nil {
		s.App.Post("/ask", deps.Auth.RequireAuth, askHandler.Ask)
	} else {
		s.logger.Info("bearer authentication disabled for /ask; set OIDC_ISSUER to enable")
		s.App.Post("/ask", askHandler.Ask)
	}
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}
