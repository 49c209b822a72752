package utils

import (
	"errors"
	"net/http"

	"storekit-backend/pkg/apperror"
	"storekit-backend/pkg/logger"

	"github.com/goccy/go-json"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteAppError renders an *apperror.AppError with its own status. Anything
// else is logged and hidden behind a generic 500.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.InternalError(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).Str("error_code", appErr.Code).Msg("request failed")
	}
	WriteJSON(w, appErr.HTTPStatus, appErr)
}
