package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/studydeck-api/internal/api/shared"
)

// validate is the shared validator instance for request bodies.
var validate = validator.New()

// DecodeAndValidate decodes the request body into v and runs struct
// validation. On failure it writes a 400 response and returns false; the
// handler should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// RequireUserID extracts the authenticated user's ID from the request
// context. On failure it writes a 401 response and returns false.
func RequireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// PathUUID parses the named chi URL parameter as a UUID. On failure it
// writes a 400 response and returns false.
func PathUUID(w http.ResponseWriter, r *http.Request, raw, name string) (uuid.UUID, bool) {
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
