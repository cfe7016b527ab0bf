package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/zatekoja/venue-explorer/pkg/errors"

	"github.com/zatekoja/venue-explorer/internal/infrastructure/observability"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithFieldError(w http.ResponseWriter, statusCode int, field, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
		"field": field,
	})
}

// handleError maps an application error to its HTTP status. Internal
// details are logged, not exposed.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			if appErr.Field != "" {
				respondWithFieldError(w, http.StatusBadRequest, appErr.Field, appErr.Message)
			} else {
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			}
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeDependency:
			observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("dependency failure")
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("internal error")
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("unhandled error")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
