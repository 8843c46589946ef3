package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xela07ax/opencode-console/internal/domain"
)

// RepositoryConnector Описываем, что нам нужно от сервиса
type RepositoryConnector interface {
	Connect(ctx context.Context, req domain.ConnectRequest) (*domain.ConnectAck, error)
	ListConnections(ctx context.Context) ([]*domain.RepositorySummary, error)
}

type RepositoryHandler struct {
	service RepositoryConnector
}

func NewRepositoryHandler(s RepositoryConnector) *RepositoryHandler {
	return &RepositoryHandler{service: s}
}

// Connect инициирует подключение репозитория.
// Единственная обязательная проверка — наличие repository_url;
// ветка по умолчанию "main", как в клиентской модели.
func (h *RepositoryHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req domain.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if req.RepositoryURL == "" {
		respondBadRequest(w, "repository_url is required")
		return
	}
	if req.Branch == "" {
		req.Branch = "main"
	}

	ack, err := h.service.Connect(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ack)
}

func (h *RepositoryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListConnections(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
