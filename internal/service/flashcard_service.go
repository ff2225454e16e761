package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/events"
	"github.com/phrazzld/studydeck-api/internal/platform/logger"
	"github.com/phrazzld/studydeck-api/internal/store"
)

// FlashcardService provides flashcard management: creation, listing,
// soft-delete with restore, and irreversible purge. Mutations publish the
// events that keep the per-user flashcard counter current.
type FlashcardService interface {
	// Create validates and stores a new flashcard for the user.
	Create(ctx context.Context, userID uuid.UUID, question, answer string) (*domain.Flashcard, error)

	// Get retrieves a flashcard owned by the user.
	// Returns ErrFlashcardNotFound if it does not exist, is soft-deleted,
	// or belongs to another user.
	Get(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)

	// List retrieves the user's non-deleted flashcards, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)

	// Delete soft-deletes a flashcard; it remains recoverable via Restore.
	Delete(ctx context.Context, userID, cardID uuid.UUID) error

	// Restore clears a previous soft delete.
	// Returns ErrFlashcardNotFound if the card does not exist or is not
	// soft-deleted.
	Restore(ctx context.Context, userID, cardID uuid.UUID) (*domain.Flashcard, error)

	// Purge permanently removes a flashcard. Irreversible.
	Purge(ctx context.Context, userID, cardID uuid.UUID) error
}

// Verify interface compliance at compile time
var _ FlashcardService = (*flashcardServiceImpl)(nil)

// flashcardServiceImpl implements the FlashcardService interface.
type flashcardServiceImpl struct {
	flashcardStore store.FlashcardStore
	emitter        events.Emitter
	logger         *slog.Logger
}

// NewFlashcardService creates a new FlashcardService.
func NewFlashcardService(
	flashcardStore store.FlashcardStore,
	emitter events.Emitter,
	log *slog.Logger,
) FlashcardService {
	if flashcardStore == nil {
		panic("flashcardStore cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &flashcardServiceImpl{
		flashcardStore: flashcardStore,
		emitter:        emitter,
		logger:         log.With(slog.String("component", "flashcard_service")),
	}
}

// Create implements FlashcardService.Create.
func (s *flashcardServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	question, answer string,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewFlashcard(userID, question, answer)
	if err != nil {
		return nil, err
	}

	if err := s.flashcardStore.Create(ctx, card); err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("create_flashcard", "failed to create flashcard", err)
	}

	s.emit(ctx, events.KindFlashcardCreated, userID, card.ID)

	log.Debug("flashcard created",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", card.ID.String()))
	return card, nil
}

// Get implements FlashcardService.Get.
func (s *flashcardServiceImpl) Get(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if card.IsDeleted() {
		return nil, ErrFlashcardNotFound
	}
	return card, nil
}

// List implements FlashcardService.List.
func (s *flashcardServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Flashcard, error) {
	cards, err := s.flashcardStore.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_flashcards", "failed to list flashcards", err)
	}
	return cards, nil
}

// Delete implements FlashcardService.Delete.
func (s *flashcardServiceImpl) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if card.IsDeleted() {
		return ErrFlashcardNotFound
	}

	card.SoftDelete(time.Now().UTC())
	if err := s.flashcardStore.Update(ctx, card); err != nil {
		log.Error("failed to soft-delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return NewServiceError("delete_flashcard", "failed to delete flashcard", err)
	}

	s.emit(ctx, events.KindFlashcardDeleted, userID, cardID)

	log.Debug("flashcard soft-deleted",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", cardID.String()))
	return nil
}

// Restore implements FlashcardService.Restore.
func (s *flashcardServiceImpl) Restore(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if !card.IsDeleted() {
		return nil, ErrFlashcardNotFound
	}

	card.Restore()
	if err := s.flashcardStore.Update(ctx, card); err != nil {
		log.Error("failed to restore flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return nil, NewServiceError("restore_flashcard", "failed to restore flashcard", err)
	}

	// Restoring undoes the delete's decrement on the flashcard counter.
	s.emit(ctx, events.KindFlashcardRestored, userID, cardID)

	log.Debug("flashcard restored",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", cardID.String()))
	return card, nil
}

// Purge implements FlashcardService.Purge.
func (s *flashcardServiceImpl) Purge(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.ownedCard(ctx, userID, cardID)
	if err != nil {
		return err
	}

	wasLive := !card.IsDeleted()

	if err := s.flashcardStore.Purge(ctx, cardID); err != nil {
		if errors.Is(err, store.ErrFlashcardNotFound) {
			return ErrFlashcardNotFound
		}
		log.Error("failed to purge flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", cardID.String()))
		return NewServiceError("purge_flashcard", "failed to purge flashcard", err)
	}

	// A soft-deleted card already decremented the counter when it was
	// deleted; purging a live card decrements it now.
	if wasLive {
		s.emit(ctx, events.KindFlashcardDeleted, userID, cardID)
	}

	log.Info("flashcard purged",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", cardID.String()))
	return nil
}

// ownedCard loads a card and folds ownership failure into absence.
func (s *flashcardServiceImpl) ownedCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := s.flashcardStore.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrFlashcardNotFound) {
			return nil, ErrFlashcardNotFound
		}
		return nil, NewServiceError("get_flashcard", "failed to get flashcard", err)
	}
	if card.UserID != userID {
		return nil, ErrFlashcardNotFound
	}
	return card, nil
}

func (s *flashcardServiceImpl) emit(
	ctx context.Context,
	kind events.Kind,
	userID, cardID uuid.UUID,
) {
	event, err := events.New(kind, userID, events.FlashcardPayload{FlashcardID: cardID})
	if err != nil {
		s.logger.Error("failed to build flashcard event",
			slog.String("error", err.Error()),
			slog.String("event_kind", string(kind)))
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit flashcard event",
			slog.String("error", err.Error()),
			slog.String("event_kind", string(kind)))
	}
}
