package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/studydeck-api/internal/api/shared"
	"github.com/phrazzld/studydeck-api/internal/service"
)

// StatsHandler handles statistics and activity log HTTP requests.
type StatsHandler struct {
	statsService   service.StatsService
	activityLogger *service.ActivityLogger
	logger         *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(
	statsService service.StatsService,
	activityLogger *service.ActivityLogger,
	log *slog.Logger,
) *StatsHandler {
	if log == nil {
		panic("logger cannot be nil for StatsHandler")
	}

	return &StatsHandler{
		statsService:   statsService,
		activityLogger: activityLogger,
		logger:         log.With(slog.String("component", "stats_handler")),
	}
}

// Summary handles GET /stats requests.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.statsService.Summary(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Reset handles POST /stats/reset requests. All four counters are zeroed.
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	if err := h.statsService.Reset(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Activity handles GET /activity requests. The optional "limit" query
// parameter caps the number of entries returned.
func (h *StatsHandler) Activity(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	entries, err := h.activityLogger.History(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
