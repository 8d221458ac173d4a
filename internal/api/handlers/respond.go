// Package handlers translates external HTTP requests into ledger and
// registry operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kavidoi/re-solve/internal/service"
	"github.com/kavidoi/re-solve/internal/storage"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps an operation error to the client-visible response.
// Unresolved identifiers surface as 404, friendship validation failures as
// 400, everything else as an undifferentiated 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, service.ErrSelfFriendship),
		errors.Is(err, service.ErrFriendshipExists),
		errors.Is(err, service.ErrAlreadyResponded):
		respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		respondJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
	}
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorBody(message))
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
