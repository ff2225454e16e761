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

// SessionResponse represents a study session in API responses.
type SessionResponse struct {
	ID              string     `json:"id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
}

func toSessionResponse(session *domain.StudySession) SessionResponse {
	resp := SessionResponse{
		ID:        session.ID.String(),
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
	}
	if d, ok := session.Duration(); ok {
		seconds := int64(d.Seconds())
		resp.DurationSeconds = &seconds
	}
	return resp
}

// RecordPracticeRequest represents the request body for recording a practice
// attempt within a session.
type RecordPracticeRequest struct {
	FlashcardID string `json:"flashcard_id" validate:"required,uuid"`
	IsCorrect   *bool  `json:"is_correct"   validate:"required"`
}

// PracticeResultResponse represents a recorded practice attempt in API
// responses.
type PracticeResultResponse struct {
	ID          string    `json:"id"`
	FlashcardID string    `json:"flashcard_id"`
	SessionID   string    `json:"session_id"`
	IsCorrect   bool      `json:"is_correct"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPracticeResultResponse(result *domain.PracticeResult) PracticeResultResponse {
	return PracticeResultResponse{
		ID:          result.ID.String(),
		FlashcardID: result.FlashcardID.String(),
		SessionID:   result.SessionID.String(),
		IsCorrect:   result.IsCorrect,
		CreatedAt:   result.CreatedAt,
	}
}

// SessionHandler handles study session and practice recording HTTP requests.
type SessionHandler struct {
	sessionService  service.StudySessionService
	practiceService service.PracticeService
	logger          *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	sessionService service.StudySessionService,
	practiceService service.PracticeService,
	log *slog.Logger,
) *SessionHandler {
	if log == nil {
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessionService:  sessionService,
		practiceService: practiceService,
		logger:          log.With(slog.String("component", "session_handler")),
	}
}

// Start handles POST /sessions requests. At most one session per user may be
// active; a second start is rejected with 409.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.Start(r.Context(), userID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toSessionResponse(session))
}

// End handles POST /sessions/{id}/end requests.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	sessionID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "session ID")
	if !ok {
		return
	}

	session, err := h.sessionService.End(r.Context(), userID, sessionID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(session))
}

// Active handles GET /sessions/active requests.
func (h *SessionHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.ActiveSessionFor(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toSessionResponse(session))
}

// RecordPractice handles POST /sessions/{id}/practice requests.
func (h *SessionHandler) RecordPractice(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	sessionID, ok := PathUUID(w, r, chi.URLParam(r, "id"), "session ID")
	if !ok {
		return
	}

	var req RecordPracticeRequest
	if !DecodeAndValidate(w, r, &req) {
		return
	}

	flashcardID, ok := PathUUID(w, r, req.FlashcardID, "flashcard ID")
	if !ok {
		return
	}

	result, err := h.practiceService.Record(
		r.Context(), userID, flashcardID, sessionID, *req.IsCorrect, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toPracticeResultResponse(result))
}

// ListPractice handles GET /practice requests, returning the user's practice
// history newest first.
func (h *SessionHandler) ListPractice(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	results, err := h.practiceService.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := make([]PracticeResultResponse, 0, len(results))
	for _, result := range results {
		resp = append(resp, toPracticeResultResponse(result))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
