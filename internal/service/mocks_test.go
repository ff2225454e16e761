package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// MockFlashcardStore mocks the store.FlashcardStore interface
type MockFlashcardStore struct {
	mock.Mock
}

func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) GetAllByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardStore) Purge(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return m
}

// MockStudySessionStore mocks the store.StudySessionStore interface
type MockStudySessionStore struct {
	mock.Mock
}

func (m *MockStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockStudySessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockStudySessionStore) FindActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockStudySessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockStudySessionStore) ListEndedByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StudySession), args.Error(1)
}

func (m *MockStudySessionStore) WithTx(tx *sql.Tx) store.StudySessionStore {
	return m
}

// MockPracticeResultStore mocks the store.PracticeResultStore interface
type MockPracticeResultStore struct {
	mock.Mock
}

func (m *MockPracticeResultStore) Append(ctx context.Context, result *domain.PracticeResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockPracticeResultStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PracticeResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PracticeResult), args.Error(1)
}

func (m *MockPracticeResultStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*domain.PracticeResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PracticeResult), args.Error(1)
}

func (m *MockPracticeResultStore) WithTx(tx *sql.Tx) store.PracticeResultStore {
	return m
}

// MockStatisticStore mocks the store.StatisticStore interface
type MockStatisticStore struct {
	mock.Mock
}

func (m *MockStatisticStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Statistic, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistic), args.Error(1)
}

func (m *MockStatisticStore) ApplyDelta(
	ctx context.Context,
	userID uuid.UUID,
	field store.StatField,
	delta int64,
) error {
	args := m.Called(ctx, userID, field, delta)
	return args.Error(0)
}

func (m *MockStatisticStore) Reset(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStatisticStore) WithTx(tx *sql.Tx) store.StatisticStore {
	return m
}

// MockActivityLogStore mocks the store.ActivityLogStore interface
type MockActivityLogStore struct {
	mock.Mock
}

func (m *MockActivityLogStore) Append(
	ctx context.Context,
	userID uuid.UUID,
	eventKind string,
	details json.RawMessage,
	at time.Time,
) error {
	args := m.Called(ctx, userID, eventKind, details, at)
	return args.Error(0)
}

func (m *MockActivityLogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*store.ActivityEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.ActivityEntry), args.Error(1)
}

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockPasswordHasher mocks the auth.PasswordHasher interface
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// capturingEmitter records every emitted event for assertions.
type capturingEmitter struct {
	emitted []*events.Event
}

func (e *capturingEmitter) Emit(_ context.Context, event *events.Event) error {
	e.emitted = append(e.emitted, event)
	return nil
}

func (e *capturingEmitter) lastKind() events.Kind {
	if len(e.emitted) == 0 {
		return ""
	}
	return e.emitted[len(e.emitted)-1].Kind
}
