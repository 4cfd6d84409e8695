package web

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-calendar/internal/store"
	"github.com/kozaktomas/photo-calendar/internal/web/handlers"
)

func (s *Server) setupRoutes(st *store.Store) {
	saveDelay := time.Duration(s.config.Storage.AutosaveDelayMs) * time.Millisecond

	projectsHandler := handlers.NewProjectsHandler(st, saveDelay)
	photosHandler := handlers.NewPhotosHandler(st)
	exportHandler := handlers.NewExportHandler(s.config, st)
	s.projects = projectsHandler

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Projects
		r.Get("/projects", projectsHandler.List)
		r.Post("/projects", projectsHandler.Create)
		r.Get("/projects/{id}", projectsHandler.Get)
		r.Put("/projects/{id}", projectsHandler.Update)
		r.Post("/projects/{id}/flush", projectsHandler.FlushOne)

		// Photos
		r.Post("/projects/{id}/photos", photosHandler.Upload)
		r.Get("/projects/{id}/photos/{photoId}", photosHandler.Download)
		r.Delete("/projects/{id}/photos/{photoId}", photosHandler.Delete)

		// Exports
		r.Post("/projects/{id}/export/pdf", exportHandler.PDF)
		r.Post("/projects/{id}/export/png/{month}", exportHandler.MonthPNG)
	})
}
