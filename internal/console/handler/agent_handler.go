package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/opencode-console/internal/domain"
)

// AgentFileService Описываем, что нам нужно от сервиса
type AgentFileService interface {
	ListAgentFiles(ctx context.Context) ([]*domain.AgentFile, error)
	GetAgentFile(ctx context.Context, id string) (*domain.AgentFile, error)
	UpdateConfiguration(ctx context.Context, id string, configuration map[string]interface{}) (*domain.AgentFile, error)
}

type AgentHandler struct {
	service AgentFileService
}

func NewAgentHandler(s AgentFileService) *AgentHandler {
	return &AgentHandler{service: s}
}

// Routes Маршруты для Chi
func (h *AgentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})
	return r
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListAgentFiles(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	file, err := h.service.GetAgentFile(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Update принимает частичный metadata-объект и возвращает запись
// после неглубокого слияния.
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var configuration map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&configuration); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	file, err := h.service.UpdateConfiguration(r.Context(), id, configuration)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}
