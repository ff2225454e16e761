package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/studydeck-api/internal/config"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/platform/logger"
	"github.com/phrazzld/studydeck-api/internal/platform/postgres"
	"github.com/phrazzld/studydeck-api/internal/service"
	"github.com/phrazzld/studydeck-api/internal/service/auth"
)

// application holds the server's wired dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	userService     service.UserService
	flashcardSvc    service.FlashcardService
	sessionService  service.StudySessionService
	practiceService service.PracticeService
	statsService    service.StatsService
	activityLogger  *service.ActivityLogger
}

// newApplication loads configuration and wires every layer of the
// application: logging, database, stores, the event emitter with its
// registered handlers, services, and handlers.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, cfg.Database.MigrationsDir, appLogger); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	// Stores.
	userStore := postgres.NewPostgresUserStore(db, appLogger)
	flashcardStore := postgres.NewPostgresFlashcardStore(db, appLogger)
	sessionStore := postgres.NewPostgresStudySessionStore(db, appLogger)
	practiceStore := postgres.NewPostgresPracticeResultStore(db, appLogger)
	statStore := postgres.NewPostgresStatisticStore(db, appLogger)
	activityStore := postgres.NewPostgresActivityLogStore(db, appLogger)

	// Event emitter with the aggregation and activity handlers. Handlers
	// run after the emitting operation commits; their failures are logged
	// and never propagate back to the operation.
	emitter := events.NewInMemoryEmitter(appLogger)
	statsService := service.NewStatsService(statStore, sessionStore, appLogger)
	activityLogger := service.NewActivityLogger(activityStore, appLogger)
	emitter.RegisterHandler(statsService)
	emitter.RegisterHandler(activityLogger)

	return &application{
		config:     cfg,
		logger:     appLogger,
		db:         db,
		jwtService: jwtService,

		userService:  service.NewUserService(userStore, auth.NewBcryptHasher(), appLogger),
		flashcardSvc: service.NewFlashcardService(flashcardStore, emitter, appLogger),
		sessionService: service.NewStudySessionService(
			db, sessionStore, emitter, appLogger),
		practiceService: service.NewPracticeService(
			db, flashcardStore, sessionStore, practiceStore, emitter,
			cfg.Practice.AllowEndedSession, appLogger),
		statsService:   statsService,
		activityLogger: activityLogger,
	}, nil
}

// openDatabase opens and verifies the PostgreSQL connection pool.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
