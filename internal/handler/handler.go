package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationIDFrom(r.Context())
	logger.Error().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeServiceError translates a service error into an error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if derr, ok := err.(*model.DomainError); ok {
		writeError(w, r, statusForCode(derr.Code), derr.Code, derr.Message, logger)
		return
	}
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// requireUser returns the authenticated user or an unauthorised error.
func requireUser(r *http.Request) (*model.User, *model.DomainError) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		return nil, model.ErrUnauthorised
	}
	return user, nil
}

// requireAdmin returns the authenticated admin user. A missing identity and
// an insufficient role produce distinct signals.
func requireAdmin(r *http.Request) (*model.User, *model.DomainError) {
	user, derr := requireUser(r)
	if derr != nil {
		return nil, derr
	}
	if !user.IsAdmin() {
		return nil, model.ErrForbidden
	}
	return user, nil
}

// queryID parses an integer id query parameter.
func queryID(r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
