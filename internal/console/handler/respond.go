package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xela07ax/opencode-console/internal/domain"
)

// errorBody — единый формат ошибок на HTTP-границе.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError транслирует доменные ошибки в HTTP-статусы:
// ErrNotFound -> 404, всё остальное -> 500 с описанием причины.
// Ничего не уходит клиенту «как есть», минуя эту точку.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
