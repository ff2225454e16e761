package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/platform/logger"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// StatsSummary is the read model for a user's study statistics: the four
// raw counters plus the metrics derived from them on demand. Derived values
// are never persisted.
type StatsSummary struct {
	UserID                uuid.UUID `json:"user_id"`
	TotalFlashcards       int64     `json:"total_flashcards"`
	TotalStudySessions    int64     `json:"total_study_sessions"`
	TotalCorrectAnswers   int64     `json:"total_correct_answers"`
	TotalIncorrectAnswers int64     `json:"total_incorrect_answers"`
	CorrectPercentage     float64   `json:"correct_percentage"`
	CompletionPercentage  float64   `json:"completion_percentage"`

	// Duration metrics are derived from ended sessions' timestamp pairs,
	// not from the counters. Active sessions contribute nothing.
	EndedSessions          int     `json:"ended_sessions"`
	TotalStudySeconds      int64   `json:"total_study_seconds"`
	AverageSessionSeconds  float64 `json:"average_session_seconds"`
}

// StatsService is the statistics aggregator: it maintains the per-user
// counter row in response to domain events and serves derived metrics.
// It implements events.Handler and is registered on the application's event
// emitter at startup.
type StatsService interface {
	events.Handler

	// Summary returns the user's counters and derived metrics.
	Summary(ctx context.Context, userID uuid.UUID) (*StatsSummary, error)

	// Reset zeroes all four counters for the user. Used only by an explicit
	// user-initiated reset, never implicitly.
	Reset(ctx context.Context, userID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ StatsService = (*statsServiceImpl)(nil)
var _ events.Handler = (*statsServiceImpl)(nil)

// statsServiceImpl implements the StatsService interface.
type statsServiceImpl struct {
	statStore    store.StatisticStore
	sessionStore store.StudySessionStore
	logger       *slog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(
	statStore store.StatisticStore,
	sessionStore store.StudySessionStore,
	log *slog.Logger,
) StatsService {
	if statStore == nil {
		panic("statStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &statsServiceImpl{
		statStore:    statStore,
		sessionStore: sessionStore,
		logger:       log.With(slog.String("component", "stats_service")),
	}
}

// HandleEvent implements events.Handler. Each event kind maps to one atomic
// counter delta; unknown kinds are ignored so new event types do not break
// aggregation.
func (s *statsServiceImpl) HandleEvent(ctx context.Context, event *events.Event) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch event.Kind {
	case events.KindFlashcardCreated, events.KindFlashcardRestored:
		return s.applyDelta(ctx, event.UserID, store.StatFieldFlashcards, 1)

	case events.KindFlashcardDeleted:
		// Floored at zero by the store; the counter never goes negative even
		// if a delete event arrives without a matching create.
		return s.applyDelta(ctx, event.UserID, store.StatFieldFlashcards, -1)

	case events.KindSessionStarted:
		// Counted at start, not end, so an abandoned session still counts.
		return s.applyDelta(ctx, event.UserID, store.StatFieldStudySessions, 1)

	case events.KindPracticeOutcome:
		var payload events.PracticeOutcomePayload
		if err := event.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to decode practice outcome payload: %w", err)
		}
		field := store.StatFieldIncorrectAnswers
		if payload.IsCorrect {
			field = store.StatFieldCorrectAnswers
		}
		return s.applyDelta(ctx, event.UserID, field, 1)

	case events.KindSessionEnded:
		// Durations are derived from session timestamps at read time; the
		// end event does not touch any counter.
		return nil

	default:
		log.Debug("ignoring event with no counter mapping",
			slog.String("event_kind", string(event.Kind)))
		return nil
	}
}

// Summary implements StatsService.Summary.
func (s *statsServiceImpl) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*StatsSummary, error) {
	stats, err := s.statStore.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, NewServiceError("stats_summary", "failed to load statistic row", err)
	}

	ended, err := s.sessionStore.ListEndedByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("stats_summary", "failed to list ended sessions", err)
	}

	var total time.Duration
	for _, session := range ended {
		if d, ok := session.Duration(); ok {
			total += d
		}
	}

	summary := &StatsSummary{
		UserID:                userID,
		TotalFlashcards:       stats.TotalFlashcards,
		TotalStudySessions:    stats.TotalStudySessions,
		TotalCorrectAnswers:   stats.TotalCorrectAnswers,
		TotalIncorrectAnswers: stats.TotalIncorrectAnswers,
		CorrectPercentage:     stats.CorrectPercentage(),
		CompletionPercentage:  stats.CompletionPercentage(),
		EndedSessions:         len(ended),
		TotalStudySeconds:     int64(total.Seconds()),
	}
	if len(ended) > 0 {
		summary.AverageSessionSeconds = total.Seconds() / float64(len(ended))
	}

	return summary, nil
}

// Reset implements StatsService.Reset.
func (s *statsServiceImpl) Reset(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.statStore.Reset(ctx, userID); err != nil {
		log.Error("failed to reset statistics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewServiceError("stats_reset", "failed to reset statistics", err)
	}

	log.Info("statistics reset", slog.String("user_id", userID.String()))
	return nil
}

func (s *statsServiceImpl) applyDelta(
	ctx context.Context,
	userID uuid.UUID,
	field store.StatField,
	delta int64,
) error {
	if err := s.statStore.ApplyDelta(ctx, userID, field, delta); err != nil {
		return fmt.Errorf("failed to apply %s delta: %w", field, err)
	}
	return nil
}
