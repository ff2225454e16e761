package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/store"
)

func mustEvent(t *testing.T, kind events.Kind, userID uuid.UUID, payload interface{}) *events.Event {
	t.Helper()
	event, err := events.New(kind, userID, payload)
	require.NoError(t, err)
	return event
}

func TestStatsHandleEventCounterMapping(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		event *events.Event
		field store.StatField
		delta int64
	}{
		{
			name:  "flashcard created increments flashcards",
			field: store.StatFieldFlashcards,
			delta: 1,
		},
		{
			name:  "flashcard deleted decrements flashcards",
			field: store.StatFieldFlashcards,
			delta: -1,
		},
		{
			name:  "flashcard restored increments flashcards",
			field: store.StatFieldFlashcards,
			delta: 1,
		},
		{
			name:  "session started increments sessions",
			field: store.StatFieldStudySessions,
			delta: 1,
		},
		{
			name:  "correct outcome increments correct answers",
			field: store.StatFieldCorrectAnswers,
			delta: 1,
		},
		{
			name:  "incorrect outcome increments incorrect answers",
			field: store.StatFieldIncorrectAnswers,
			delta: 1,
		},
	}

	eventsByName := map[string]*events.Event{
		"flashcard created increments flashcards": mustEvent(t,
			events.KindFlashcardCreated, userID, events.FlashcardPayload{FlashcardID: uuid.New()}),
		"flashcard deleted decrements flashcards": mustEvent(t,
			events.KindFlashcardDeleted, userID, events.FlashcardPayload{FlashcardID: uuid.New()}),
		"flashcard restored increments flashcards": mustEvent(t,
			events.KindFlashcardRestored, userID, events.FlashcardPayload{FlashcardID: uuid.New()}),
		"session started increments sessions": mustEvent(t,
			events.KindSessionStarted, userID, events.SessionStartedPayload{SessionID: uuid.New()}),
		"correct outcome increments correct answers": mustEvent(t,
			events.KindPracticeOutcome, userID, events.PracticeOutcomePayload{IsCorrect: true}),
		"incorrect outcome increments incorrect answers": mustEvent(t,
			events.KindPracticeOutcome, userID, events.PracticeOutcomePayload{IsCorrect: false}),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statStore := &MockStatisticStore{}
			sessions := &MockStudySessionStore{}
			svc := NewStatsService(statStore, sessions, nil)

			statStore.On("ApplyDelta", mock.Anything, userID, tt.field, tt.delta).Return(nil)

			err := svc.HandleEvent(context.Background(), eventsByName[tt.name])
			require.NoError(t, err)
			statStore.AssertExpectations(t)
		})
	}
}

func TestStatsHandleEventSessionEndedTouchesNoCounter(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	event := mustEvent(t, events.KindSessionEnded, uuid.New(), events.SessionEndedPayload{
		SessionID:       uuid.New(),
		DurationSeconds: 600,
	})

	require.NoError(t, svc.HandleEvent(context.Background(), event))
	statStore.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsHandleEventUnknownKindIgnored(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	event := mustEvent(t, events.Kind("something_else"), uuid.New(), struct{}{})
	require.NoError(t, svc.HandleEvent(context.Background(), event))
	statStore.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsSummary(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	userID := uuid.New()
	stats, err := domain.NewStatistic(userID)
	require.NoError(t, err)
	stats.TotalFlashcards = 3
	stats.TotalStudySessions = 1
	stats.TotalCorrectAnswers = 2
	stats.TotalIncorrectAnswers = 1

	startedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	first, err := domain.NewStudySession(userID, startedAt)
	require.NoError(t, err)
	require.NoError(t, first.End(startedAt.Add(10*time.Minute)))
	second, err := domain.NewStudySession(userID, startedAt.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, second.End(startedAt.Add(time.Hour+20*time.Minute)))

	statStore.On("GetOrCreate", mock.Anything, userID).Return(stats, nil)
	sessions.On("ListEndedByUser", mock.Anything, userID).
		Return([]*domain.StudySession{first, second}, nil)

	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.TotalFlashcards)
	assert.Equal(t, int64(1), summary.TotalStudySessions)
	assert.InDelta(t, 66.666, summary.CorrectPercentage, 0.01)
	assert.InDelta(t, 100.0, summary.CompletionPercentage, 0.001)
	assert.Equal(t, 2, summary.EndedSessions)
	assert.Equal(t, int64(1800), summary.TotalStudySeconds)
	assert.InDelta(t, 900.0, summary.AverageSessionSeconds, 0.001)
}

func TestStatsSummaryZeroState(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	userID := uuid.New()
	stats, err := domain.NewStatistic(userID)
	require.NoError(t, err)

	statStore.On("GetOrCreate", mock.Anything, userID).Return(stats, nil)
	sessions.On("ListEndedByUser", mock.Anything, userID).
		Return([]*domain.StudySession{}, nil)

	// A brand-new user gets a fully zeroed summary, with every percentage
	// and average defined as 0.0 rather than NaN.
	summary, err := svc.Summary(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalFlashcards)
	assert.Zero(t, summary.TotalStudySessions)
	assert.Zero(t, summary.CorrectPercentage)
	assert.Zero(t, summary.CompletionPercentage)
	assert.Zero(t, summary.EndedSessions)
	assert.Zero(t, summary.TotalStudySeconds)
	assert.Zero(t, summary.AverageSessionSeconds)
}

func TestStatsReset(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	userID := uuid.New()
	statStore.On("Reset", mock.Anything, userID).Return(nil)

	require.NoError(t, svc.Reset(context.Background(), userID))
	statStore.AssertExpectations(t)
}

// End-to-end through the emitter: a short study flow produces exactly the
// counter deltas the summary math expects.
func TestStatsAggregationThroughEmitter(t *testing.T) {
	statStore := &MockStatisticStore{}
	sessions := &MockStudySessionStore{}
	svc := NewStatsService(statStore, sessions, nil)

	emitter := events.NewInMemoryEmitter(nil)
	emitter.RegisterHandler(svc)

	userID := uuid.New()
	statStore.On("ApplyDelta", mock.Anything, userID, store.StatFieldFlashcards, int64(1)).
		Return(nil).Times(3)
	statStore.On("ApplyDelta", mock.Anything, userID, store.StatFieldStudySessions, int64(1)).
		Return(nil).Once()
	statStore.On("ApplyDelta", mock.Anything, userID, store.StatFieldCorrectAnswers, int64(1)).
		Return(nil).Times(2)
	statStore.On("ApplyDelta", mock.Anything, userID, store.StatFieldIncorrectAnswers, int64(1)).
		Return(nil).Once()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, emitter.Emit(ctx, mustEvent(t,
			events.KindFlashcardCreated, userID, events.FlashcardPayload{FlashcardID: uuid.New()})))
	}
	require.NoError(t, emitter.Emit(ctx, mustEvent(t,
		events.KindSessionStarted, userID, events.SessionStartedPayload{SessionID: uuid.New()})))
	require.NoError(t, emitter.Emit(ctx, mustEvent(t,
		events.KindPracticeOutcome, userID, events.PracticeOutcomePayload{IsCorrect: true})))
	require.NoError(t, emitter.Emit(ctx, mustEvent(t,
		events.KindPracticeOutcome, userID, events.PracticeOutcomePayload{IsCorrect: true})))
	require.NoError(t, emitter.Emit(ctx, mustEvent(t,
		events.KindPracticeOutcome, userID, events.PracticeOutcomePayload{IsCorrect: false})))

	statStore.AssertExpectations(t)
}
