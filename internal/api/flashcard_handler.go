package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/studydeck-api/internal/api/shared"
	"github.com/phrazzld/studydeck-api/internal/domain"
	"github.com/phrazzld/studydeck-api/internal/service"
)

// CreateFlashcardRequest represents the request body for creating a flashcard.
type CreateFlashcardRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer"   validate:"required,max=500"`
}

// FlashcardResponse represents a flashcard in API responses.
type FlashcardResponse struct {
	ID             string     `json:"id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Status         string     `json:"status"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FlashcardListResponse represents a list of flashcards in API responses.
type FlashcardListResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Count      int                 `json:"count"`
}

func toFlashcardResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:             card.ID.String(),
		Question:       card.Question,
		Answer:         card.Answer,
		Status:         string(card.Status),
		LastReviewedAt: card.LastReviewedAt,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

// FlashcardHandler handles flashcard-related HTTP requests.
type FlashcardHandler struct {
	flashcardService service.FlashcardService
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(flashcardService service.FlashcardService, log *slog.Logger) *FlashcardHandler {
	if log == nil {
		panic("logger cannot be nil for FlashcardHandler")
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           log.With(slog.String("component", "flashcard_handler")),
	}
}

// Create handles POST /flashcards requests.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	card, err := h.flashcardService.Create(r.Context(), userID, req.Question, req.Answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toFlashcardResponse(card))
}

// Get handles GET /flashcards/{id} requests.
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "flashcard ID")
	if !ok {
		return
	}

	card, err := h.flashcardService.Get(r.Context(), userID, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toFlashcardResponse(card))
}

// List handles GET /flashcards requests.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	cards, err := h.flashcardService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := FlashcardListResponse{
		Flashcards: make([]FlashcardResponse, 0, len(cards)),
		Count:      len(cards),
	}
	for _, card := range cards {
		resp.Flashcards = append(resp.Flashcards, toFlashcardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Delete handles DELETE /flashcards/{id} requests. The card is soft-deleted
// and can be recovered with Restore.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "flashcard ID")
	if !ok {
		return
	}

	if err := h.flashcardService.Delete(r.Context(), userID, cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /flashcards/{id}/restore requests.
func (h *FlashcardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "flashcard ID")
	if !ok {
		return
	}

	card, err := h.flashcardService.Restore(r.Context(), userID, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toFlashcardResponse(card))
}

// Purge handles DELETE /flashcards/{id}/purge requests. Removal is permanent.
func (h *FlashcardHandler) Purge(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	cardID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "flashcard ID")
	if !ok {
		return
	}

	if err := h.flashcardService.Purge(r.Context(), userID, cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
