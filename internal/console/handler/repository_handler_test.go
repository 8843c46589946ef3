package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/opencode-console/internal/console/service"
	"github.com/xela07ax/opencode-console/internal/domain"
	"github.com/xela07ax/opencode-console/internal/infra"
	"github.com/xela07ax/opencode-console/internal/registry"
	"go.uber.org/zap"
)

// recordingScheduler фиксирует постановки задач вместо реального сканера.
type recordingScheduler struct {
	urls     []string
	branches []string
}

func (s *recordingScheduler) Enqueue(repositoryURL, branch string) string {
	s.urls = append(s.urls, repositoryURL)
	s.branches = append(s.branches, branch)
	return "job-0001"
}

func newRepositoryRouter(t *testing.T) (chi.Router, *recordingScheduler) {
	t.Helper()

	store := registry.New(zap.NewNop())
	sched := &recordingScheduler{}
	svc := service.NewRepositoryService(store, sched, infra.NewMetrics(nil), zap.NewNop())
	h := NewRepositoryHandler(svc)

	r := chi.NewRouter()
	r.Route("/repositories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/connect", h.Connect)
	})
	return r, sched
}

func TestConnect(t *testing.T) {
	router, sched := newRepositoryRouter(t)

	body := `{"repository_url": "https://example.com/repo.git", "branch": "develop", "access_token": "secret-token"}`
	rec := doRequest(t, router, http.MethodPost, "/repositories/connect", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var ack domain.ConnectAck
	raw := rec.Body.String()
	if err := json.Unmarshal([]byte(raw), &ack); err != nil {
		t.Fatalf("failed to decode ack: %v", err)
	}

	if !ack.Success {
		t.Error("expected success=true")
	}
	if ack.Status != "connecting" {
		t.Errorf("expected status connecting, got %q", ack.Status)
	}
	if ack.Branch != "develop" {
		t.Errorf("expected branch develop, got %q", ack.Branch)
	}
	if ack.RepositoryURL != "https://example.com/repo.git" {
		t.Errorf("unexpected repository_url %q", ack.RepositoryURL)
	}

	// Токен принят, но не должен вернуться в каком бы то ни было виде
	if strings.Contains(raw, "secret-token") {
		t.Error("access token leaked into response body")
	}

	if len(sched.urls) != 1 || sched.urls[0] != "https://example.com/repo.git" {
		t.Errorf("expected one scheduled scan for the repo, got %v", sched.urls)
	}
	if sched.branches[0] != "develop" {
		t.Errorf("expected scheduled branch develop, got %q", sched.branches[0])
	}
}

func TestConnectDefaultsBranchToMain(t *testing.T) {
	router, sched := newRepositoryRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/repositories/connect",
		`{"repository_url": "https://example.com/repo.git"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var ack domain.ConnectAck
	if err := json.NewDecoder(rec.Body).Decode(&ack); err != nil {
		t.Fatalf("failed to decode ack: %v", err)
	}
	if ack.Branch != "main" {
		t.Errorf("expected default branch main, got %q", ack.Branch)
	}
	if sched.branches[0] != "main" {
		t.Errorf("expected scheduled branch main, got %q", sched.branches[0])
	}
}

func TestConnectValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing repository_url", body: `{"branch": "main"}`},
		{name: "malformed body", body: `{"repository_url":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, sched := newRepositoryRouter(t)

			rec := doRequest(t, router, http.MethodPost, "/repositories/connect", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if len(sched.urls) != 0 {
				t.Errorf("no scan must be scheduled on invalid input, got %v", sched.urls)
			}
		})
	}
}

func TestListConnections(t *testing.T) {
	router, _ := newRepositoryRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/repositories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var list []domain.RepositorySummary
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one connection, got %d", len(list))
	}

	conn := list[0]
	if conn.ID != "opencode-main" {
		t.Errorf("expected id opencode-main, got %q", conn.ID)
	}
	if conn.Status != "connected" {
		t.Errorf("expected status connected, got %q", conn.Status)
	}
	// agent_count живой: равен текущему размеру реестра
	if conn.AgentCount != 3 {
		t.Errorf("expected agent_count 3, got %d", conn.AgentCount)
	}
	if conn.LastSync != "2025-09-16T18:00:00Z" {
		t.Errorf("unexpected last_sync %q", conn.LastSync)
	}
}
