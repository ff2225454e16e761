package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/platform/logger"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// StudySessionService manages the study session lifecycle per user. The
// central invariant is that a user has exactly zero or one active session at
// any instant; Start performs an atomic check-and-set against the session
// store so two concurrent starts cannot both succeed.
type StudySessionService interface {
	// Start opens a new study session for the user at the given time.
	// Returns ErrSessionAlreadyActive if the user currently has an active
	// session; the pre-existing session is left unchanged.
	Start(ctx context.Context, userID uuid.UUID, at time.Time) (*domain.StudySession, error)

	// End closes the session identified by sessionID at the given time, only
	// if it is the user's currently active session. Returns
	// ErrNoActiveSession if no matching active session exists (covering
	// "already ended" and "wrong session id" uniformly).
	End(ctx context.Context, userID, sessionID uuid.UUID, at time.Time) (*domain.StudySession, error)

	// ActiveSessionFor retrieves the user's active session.
	// Returns ErrNoActiveSession if the user has no active session.
	ActiveSessionFor(ctx context.Context, userID uuid.UUID) (*domain.StudySession, error)
}

// Verify interface compliance at compile time
var _ StudySessionService = (*studySessionServiceImpl)(nil)

// studySessionServiceImpl implements the StudySessionService interface.
type studySessionServiceImpl struct {
	db           *sql.DB
	sessionStore store.StudySessionStore
	emitter      events.Emitter
	logger       *slog.Logger
}

// NewStudySessionService creates a new StudySessionService.
func NewStudySessionService(
	db *sql.DB,
	sessionStore store.StudySessionStore,
	emitter events.Emitter,
	log *slog.Logger,
) StudySessionService {
	if db == nil {
		panic("db cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &studySessionServiceImpl{
		db:           db,
		sessionStore: sessionStore,
		emitter:      emitter,
		logger:       log.With(slog.String("component", "study_session_service")),
	}
}

// Start implements StudySessionService.Start.
func (s *studySessionServiceImpl) Start(
	ctx context.Context,
	userID uuid.UUID,
	at time.Time,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("starting study session",
		slog.String("user_id", userID.String()),
		slog.Time("at", at))

	session, err := domain.NewStudySession(userID, at)
	if err != nil {
		return nil, err
	}

	// Create performs the atomic check-and-set: the store rejects the insert
	// if the user already has a session with no end timestamp.
	if err := s.sessionStore.Create(ctx, session); err != nil {
		if errors.Is(err, store.ErrActiveSessionExists) {
			log.Debug("session already active",
				slog.String("user_id", userID.String()))
			return nil, ErrSessionAlreadyActive
		}
		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("start_session", "failed to create session", err)
	}

	s.emit(ctx, events.KindSessionStarted, userID, events.SessionStartedPayload{
		SessionID: session.ID,
	})

	log.Debug("study session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))
	return session, nil
}

// End implements StudySessionService.End.
func (s *studySessionServiceImpl) End(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	at time.Time,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("ending study session",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()))

	var ended *domain.StudySession
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessionStore.WithTx(tx)

		active, err := sessions.FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				return ErrNoActiveSession
			}
			return fmt.Errorf("failed to look up active session: %w", err)
		}

		// "Wrong session id" and "already ended" fail identically.
		if active.ID != sessionID {
			return ErrNoActiveSession
		}

		if err := active.End(at); err != nil {
			if errors.Is(err, domain.ErrSessionAlreadyEnded) {
				return ErrNoActiveSession
			}
			return err
		}

		if err := sessions.Update(ctx, active); err != nil {
			return fmt.Errorf("failed to persist session end: %w", err)
		}

		ended = active
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) ||
			errors.Is(err, domain.ErrSessionEndBeforeStart) {
			return nil, err
		}
		log.Error("failed to end study session",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("session_id", sessionID.String()))
		return nil, NewServiceError("end_session", "failed to end session", err)
	}

	duration, _ := ended.Duration()
	s.emit(ctx, events.KindSessionEnded, userID, events.SessionEndedPayload{
		SessionID:       ended.ID,
		DurationSeconds: int64(duration.Seconds()),
	})

	log.Debug("study session ended",
		slog.String("user_id", userID.String()),
		slog.String("session_id", ended.ID.String()),
		slog.Int64("duration_seconds", int64(duration.Seconds())))
	return ended, nil
}

// ActiveSessionFor implements StudySessionService.ActiveSessionFor.
func (s *studySessionServiceImpl) ActiveSessionFor(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudySession, error) {
	session, err := s.sessionStore.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, NewServiceError("active_session", "failed to look up active session", err)
	}
	return session, nil
}

// emit publishes a domain event. Event consumers (statistics, activity log)
// handle their own failures; a failed emit is logged but never fails the
// operation that produced it.
func (s *studySessionServiceImpl) emit(
	ctx context.Context,
	kind events.Kind,
	userID uuid.UUID,
	payload interface{},
) {
	event, err := events.New(kind, userID, payload)
	if err != nil {
		s.logger.Error("failed to build event",
			slog.String("error", err.Error()),
			slog.String("event_kind", string(kind)))
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit event",
			slog.String("error", err.Error()),
			slog.String("event_kind", string(kind)))
	}
}
