package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/opencode-console/internal/console/service"
	"github.com/xela07ax/opencode-console/internal/domain"
	"github.com/xela07ax/opencode-console/internal/registry"
	"go.uber.org/zap"
)

// Хендлеры проверяем поверх живого реестра, без моков хранилища:
// вся цепочка handler -> service -> registry дешевая и детерминированная.
func newAgentRouter(t *testing.T) chi.Router {
	t.Helper()

	store := registry.New(zap.NewNop())
	svc := service.NewAgentService(store, zap.NewNop())
	h := NewAgentHandler(svc)

	r := chi.NewRouter()
	r.Mount("/agents", h.Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListAgents(t *testing.T) {
	router := newAgentRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/agents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var files []domain.AgentFile
	if err := json.NewDecoder(rec.Body).Decode(&files); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 agent files, got %d", len(files))
	}
	if files[0].ID != "docs-agent" {
		t.Errorf("expected first id docs-agent, got %q", files[0].ID)
	}
}

func TestGetAgent(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantType   domain.FileType
	}{
		{name: "known agent", id: "docs-agent", wantStatus: http.StatusOK, wantType: domain.TypeAgent},
		{name: "known command", id: "commit-command", wantStatus: http.StatusOK, wantType: domain.TypeCommand},
		{name: "unknown id", id: "missing-id", wantStatus: http.StatusNotFound},
	}

	router := newAgentRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/agents/"+tt.id, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantStatus == http.StatusNotFound {
				var body errorBody
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}
				if !strings.Contains(body.Error, "not found") {
					t.Errorf("expected human readable not-found message, got %q", body.Error)
				}
				return
			}

			var file domain.AgentFile
			if err := json.NewDecoder(rec.Body).Decode(&file); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if file.ID != tt.id {
				t.Errorf("expected id %q, got %q", tt.id, file.ID)
			}
			if file.Type != tt.wantType {
				t.Errorf("expected type %q, got %q", tt.wantType, file.Type)
			}
		})
	}
}

func TestUpdateAgentConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		check      func(t *testing.T, file domain.AgentFile)
	}{
		{
			name:       "override provider keeps the rest",
			id:         "git-committer",
			body:       `{"provider": "azure"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, file domain.AgentFile) {
				if file.Metadata["provider"] != "azure" {
					t.Errorf("expected provider azure, got %v", file.Metadata["provider"])
				}
				if file.Metadata["model"] != "gpt-4" {
					t.Errorf("model must stay untouched, got %v", file.Metadata["model"])
				}
				if _, ok := file.Metadata["permissions"]; !ok {
					t.Error("permissions must be preserved")
				}
			},
		},
		{
			name:       "empty object is a no-op",
			id:         "docs-agent",
			body:       `{}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, file domain.AgentFile) {
				if file.Metadata["provider"] != "anthropic" {
					t.Errorf("expected provider anthropic, got %v", file.Metadata["provider"])
				}
			},
		},
		{
			name:       "unknown id",
			id:         "missing-id",
			body:       `{"provider": "azure"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			id:         "docs-agent",
			body:       `{"provider":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAgentRouter(t)

			rec := doRequest(t, router, http.MethodPut, "/agents/"+tt.id, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (body: %s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.check == nil {
				return
			}

			var file domain.AgentFile
			if err := json.NewDecoder(rec.Body).Decode(&file); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			tt.check(t, file)
		})
	}
}
