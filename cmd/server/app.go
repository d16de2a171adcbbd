package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/monkesay/monke-api/internal/config"
	"github.com/monkesay/monke-api/internal/domain/srs"
	"github.com/monkesay/monke-api/internal/generation"
	"github.com/monkesay/monke-api/internal/platform/gemini"
	"github.com/monkesay/monke-api/internal/platform/postgres"
	"github.com/monkesay/monke-api/internal/service/auth"
	"github.com/monkesay/monke-api/internal/service/evaluator"
	"github.com/monkesay/monke-api/internal/service/exercise"
	"github.com/monkesay/monke-api/internal/service/grammar"
	"github.com/monkesay/monke-api/internal/service/progress"
	"github.com/monkesay/monke-api/internal/service/review"
	"github.com/monkesay/monke-api/internal/service/story"
	"github.com/monkesay/monke-api/internal/service/words"
	"github.com/monkesay/monke-api/internal/store"
)

// application holds all shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore            store.UserStore
	wordStore            store.WordStore
	wordProgressStore    store.WordProgressStore
	grammarStore         store.GrammarStore
	grammarProgressStore store.GrammarProgressStore
	storyStore           store.StoryStore
	exerciseStore        store.ExerciseStore
	attemptStore         store.ExerciseAttemptStore
	sessionStore         store.SessionStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	generator        generation.Generator
	srsService       srs.Service
	reviewService    review.ReviewService
	progressService  progress.ProgressService
	storyService     story.StoryService
	wordService      words.WordService
	grammarService   grammar.GrammarService
	exerciseService  exercise.ExerciseService
	evaluatorService evaluator.EvaluatorService
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies (config, logger, database) must already
// be established.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.wordProgressStore = postgres.NewPostgresWordProgressStore(db, logger)
	app.grammarStore = postgres.NewPostgresGrammarStore(db, logger)
	app.grammarProgressStore = postgres.NewPostgresGrammarProgressStore(db, logger)
	app.storyStore = postgres.NewPostgresStoryStore(db, logger)
	app.exerciseStore = postgres.NewPostgresExerciseStore(db, logger)
	app.attemptStore = postgres.NewPostgresAttemptStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)

	// LLM generator
	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	// Domain and application services
	app.srsService = srs.NewDefaultService()

	app.reviewService = review.NewReviewService(
		db,
		app.wordProgressStore,
		app.storyStore,
		app.srsService,
		logger,
	)

	app.progressService = progress.NewProgressService(
		app.wordProgressStore,
		app.grammarProgressStore,
		app.storyStore,
		app.attemptStore,
		app.sessionStore,
		logger,
	)

	app.storyService = story.NewStoryService(
		db,
		app.wordStore,
		app.wordProgressStore,
		app.grammarStore,
		app.grammarProgressStore,
		app.storyStore,
		app.exerciseStore,
		app.generator,
		logger,
	)

	app.wordService = words.NewWordService(app.wordStore, app.wordProgressStore, logger)

	app.grammarService = grammar.NewGrammarService(app.grammarStore, app.grammarProgressStore, logger)

	app.evaluatorService = evaluator.NewEvaluatorService(app.generator, logger)

	app.exerciseService = exercise.NewExerciseService(
		app.exerciseStore,
		app.attemptStore,
		app.storyStore,
		app.evaluatorService,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
