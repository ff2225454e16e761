package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/studydeck-api/internal/api"
	apimiddleware "github.com/phrazzld/studydeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.flashcardSvc, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.practiceService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.activityLogger, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Flashcard endpoints
			r.Post("/flashcards", flashcardHandler.Create)
			r.Get("/flashcards", flashcardHandler.List)
			r.Get("/flashcards/{id}", flashcardHandler.Get)
			r.Delete("/flashcards/{id}", flashcardHandler.Delete)
			r.Post("/flashcards/{id}/restore", flashcardHandler.Restore)
			r.Delete("/flashcards/{id}/purge", flashcardHandler.Purge)

			// Study session endpoints
			r.Post("/sessions", sessionHandler.Start)
			r.Get("/sessions/active", sessionHandler.Active)
			r.Post("/sessions/{id}/end", sessionHandler.End)
			r.Post("/sessions/{id}/practice", sessionHandler.RecordPractice)
			r.Get("/practice", sessionHandler.ListPractice)

			// Statistics and activity endpoints
			r.Get("/stats", statsHandler.Summary)
			r.Post("/stats/reset", statsHandler.Reset)
			r.Get("/activity", statsHandler.Activity)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
