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

// PracticeService records practice outcomes. Recording atomically pairs the
// immutable fact (a PracticeResult row) with the live status update on the
// flashcard, then publishes an outcome event for the statistics aggregator.
type PracticeService interface {
	// Record stores the outcome of one practice attempt. The flashcard and
	// session must exist and belong to userID; otherwise
	// ErrFlashcardNotFound or ErrSessionNotFound is returned. Recording
	// against an ended session is permitted unless the service is configured
	// to reject it, in which case ErrSessionEnded is returned.
	Record(
		ctx context.Context,
		userID, flashcardID, sessionID uuid.UUID,
		isCorrect bool,
		at time.Time,
	) (*domain.PracticeResult, error)

	// ListByUser retrieves the user's practice results, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeResult, error)
}

// Verify interface compliance at compile time
var _ PracticeService = (*practiceServiceImpl)(nil)

// practiceServiceImpl implements the PracticeService interface.
type practiceServiceImpl struct {
	db                *sql.DB
	flashcardStore    store.FlashcardStore
	sessionStore      store.StudySessionStore
	practiceStore     store.PracticeResultStore
	emitter           events.Emitter
	allowEndedSession bool
	logger            *slog.Logger
}

// NewPracticeService creates a new PracticeService. allowEndedSession
// controls whether outcomes may be recorded against sessions that have
// already ended (late-arriving or batch-imported data).
func NewPracticeService(
	db *sql.DB,
	flashcardStore store.FlashcardStore,
	sessionStore store.StudySessionStore,
	practiceStore store.PracticeResultStore,
	emitter events.Emitter,
	allowEndedSession bool,
	log *slog.Logger,
) PracticeService {
	if db == nil {
		panic("db cannot be nil")
	}
	if flashcardStore == nil {
		panic("flashcardStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if practiceStore == nil {
		panic("practiceStore cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &practiceServiceImpl{
		db:                db,
		flashcardStore:    flashcardStore,
		sessionStore:      sessionStore,
		practiceStore:     practiceStore,
		emitter:           emitter,
		allowEndedSession: allowEndedSession,
		logger:            log.With(slog.String("component", "practice_service")),
	}
}

// Record implements PracticeService.Record.
func (s *practiceServiceImpl) Record(
	ctx context.Context,
	userID, flashcardID, sessionID uuid.UUID,
	isCorrect bool,
	at time.Time,
) (*domain.PracticeResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording practice outcome",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.String("session_id", sessionID.String()),
		slog.Bool("is_correct", isCorrect))

	var result *domain.PracticeResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.flashcardStore.WithTx(tx)
		sessions := s.sessionStore.WithTx(tx)
		results := s.practiceStore.WithTx(tx)

		card, err := cards.GetByID(ctx, flashcardID)
		if err != nil {
			if errors.Is(err, store.ErrFlashcardNotFound) {
				return ErrFlashcardNotFound
			}
			return fmt.Errorf("failed to get flashcard: %w", err)
		}

		// Ownership failures and soft-deleted cards read as absence.
		if card.UserID != userID || card.IsDeleted() {
			return ErrFlashcardNotFound
		}

		session, err := sessions.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		if session.UserID != userID {
			return ErrSessionNotFound
		}

		if !session.IsActive() && !s.allowEndedSession {
			return ErrSessionEnded
		}

		if err := card.Review(isCorrect, at); err != nil {
			return err
		}

		if err := cards.Update(ctx, card); err != nil {
			return fmt.Errorf("failed to update flashcard status: %w", err)
		}

		result, err = domain.NewPracticeResult(userID, flashcardID, sessionID, isCorrect, at)
		if err != nil {
			return err
		}

		if err := results.Append(ctx, result); err != nil {
			return fmt.Errorf("failed to append practice result: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrFlashcardNotFound) ||
			errors.Is(err, ErrSessionNotFound) ||
			errors.Is(err, ErrSessionEnded) ||
			errors.Is(err, domain.ErrReviewOutOfOrder) {
			return nil, err
		}
		log.Error("failed to record practice outcome",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("flashcard_id", flashcardID.String()))
		return nil, NewServiceError("record_outcome", "failed to record practice outcome", err)
	}

	s.emit(ctx, userID, events.PracticeOutcomePayload{
		FlashcardID: flashcardID,
		SessionID:   sessionID,
		IsCorrect:   isCorrect,
	})

	log.Debug("practice outcome recorded",
		slog.String("user_id", userID.String()),
		slog.String("result_id", result.ID.String()),
		slog.Bool("is_correct", isCorrect))
	return result, nil
}

// ListByUser implements PracticeService.ListByUser.
func (s *practiceServiceImpl) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PracticeResult, error) {
	results, err := s.practiceStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_results", "failed to list practice results", err)
	}
	return results, nil
}

func (s *practiceServiceImpl) emit(
	ctx context.Context,
	userID uuid.UUID,
	payload events.PracticeOutcomePayload,
) {
	event, err := events.New(events.KindPracticeOutcome, userID, payload)
	if err != nil {
		s.logger.Error("failed to build practice outcome event",
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit practice outcome event",
			slog.String("error", err.Error()))
	}
}
