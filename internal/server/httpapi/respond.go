package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/server/validation"
)

type errorBody struct {
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error onto a status code and JSON body. Every handler
// funnels its failures through here so the mapping stays in one place.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Validation failed", Errors: fieldErrs})

	case errors.Is(err, common.ErrTagNotOwned):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Message: "Validation failed",
			Errors:  validation.FieldErrors{{Field: "tagIds", Message: "contains unknown tag ids"}},
		})

	case errors.Is(err, common.ErrEmailExists):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "User with this email already exists"})

	case errors.Is(err, common.ErrTagNameExists):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Tag with this name already exists"})

	case errors.Is(err, common.ErrStateExpired):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Invalid or expired state"})

	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Invalid credentials"})

	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Message: "Not found"})

	case errors.Is(err, common.ErrFederationFailed):
		s.logger.Error(r.Context(), "federation failure", "error", err.Error())
		writeJSON(w, http.StatusBadGateway, errorBody{Message: "Authentication with provider failed"})

	default:
		s.logger.Error(r.Context(), "unhandled error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Internal server error"})
	}
}

// decodeJSON reads the request body into dst, rejecting malformed payloads.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validation.FieldErrors{{Field: "body", Message: "must be valid JSON"}}
	}
	return nil
}
