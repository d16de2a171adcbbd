package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/monkesay/monke-api/internal/api"
	apiMiddleware "github.com/monkesay/monke-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.Server.AllowedOrigins))
	r.Use(apiMiddleware.TraceMiddleware)

	// Handlers
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userStore, app.progressService, app.logger)
	wordHandler := api.NewWordHandler(app.wordService, app.logger)
	grammarHandler := api.NewGrammarHandler(app.grammarService, app.logger)
	storyHandler := api.NewStoryHandler(app.storyService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	exerciseHandler := api.NewExerciseHandler(app.exerciseService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile and progress
			r.Get("/user/profile", userHandler.GetProfile)
			r.Get("/user/stats", userHandler.GetStats)
			r.Get("/user/progress", userHandler.GetProgress)

			// Learning sessions
			r.Post("/sessions", userHandler.StartSession)
			r.Post("/sessions/{id}/end", userHandler.EndSession)

			// Vocabulary
			r.Get("/words", wordHandler.ListWords)
			r.Post("/words", wordHandler.CreateWord)
			r.Get("/words/search", wordHandler.SearchWords)
			r.Get("/words/{id}", wordHandler.GetWord)
			r.Post("/words/{id}/known", wordHandler.MarkWordKnown)

			// Grammar curriculum
			r.Get("/grammar", grammarHandler.ListConcepts)
			r.Post("/grammar", grammarHandler.CreateConcept)
			r.Get("/grammar/{id}", grammarHandler.GetConcept)
			r.Post("/grammar/{id}/unlock", grammarHandler.UnlockConcept)

			// Stories
			r.Get("/stories", storyHandler.ListStories)
			r.Get("/stories/ready", storyHandler.CheckReadiness)
			r.Post("/stories/generate", storyHandler.GenerateStory)
			r.Get("/stories/{id}", storyHandler.GetStory)
			r.Get("/stories/{id}/exercises", storyHandler.ListStoryExercises)
			r.Post("/stories/{id}/complete", storyHandler.CompleteStory)

			// Exercises
			r.Get("/exercises/{id}", exerciseHandler.GetExercise)
			r.Post("/exercises/{id}/submit", exerciseHandler.SubmitAnswer)
			r.Post("/exercises/{id}/evaluate", exerciseHandler.EvaluateAnswer)
			r.Get("/exercises/{id}/attempts", exerciseHandler.ListAttempts)

			// Spaced repetition reviews
			r.Get("/reviews/due", reviewHandler.ListDue)
			r.Get("/reviews/summary", reviewHandler.GetSummary)
			r.Post("/reviews/{id}/submit", reviewHandler.SubmitReview)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
