package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"rankd/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeServiceError maps the core rejection taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, models.ErrPaused):
		http.Error(w, "Submissions Paused", http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrNotAuthorized):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, models.ErrMigrationFailed):
		http.Error(w, "Migration Failed", http.StatusInternalServerError)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
