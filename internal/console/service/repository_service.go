package service

import (
	"context"

	"github.com/xela07ax/opencode-console/internal/domain"
	"github.com/xela07ax/opencode-console/internal/infra"
	"go.uber.org/zap"
)

// ScanScheduler — очередь отложенных задач сканирования.
// Постановка не блокирует и не возвращает ошибку: результат задачи
// по контракту никогда не доходит до инициатора.
type ScanScheduler interface {
	Enqueue(repositoryURL, branch string) string
}

// Статическое описание единственного концептуального подключения.
// Реальное состояние подключений пока не отслеживается, поэтому
// last_sync — фиксированная метка, а не time.Now().
const (
	connectedRepoID  = "opencode-main"
	connectedRepoURL = "https://github.com/sst/opencode"
	lastSyncStamp    = "2025-09-16T18:00:00Z"
)

type RepositoryService struct {
	scheduler ScanScheduler
	repo      AgentDirectory
	metrics   *infra.Metrics
	logger    *zap.Logger
}

func NewRepositoryService(repo AgentDirectory, scheduler ScanScheduler, metrics *infra.Metrics, logger *zap.Logger) *RepositoryService {
	return &RepositoryService{
		scheduler: scheduler,
		repo:      repo,
		metrics:   metrics,
		logger:    logger.Named("repository-service"),
	}
}

// Connect планирует фоновое сканирование и сразу возвращает подтверждение,
// не дожидаясь результата. Токен доступа сюда сознательно не передается:
// симулятору он не нужен, а в ответ и логи попадать не должен.
func (s *RepositoryService) Connect(ctx context.Context, req domain.ConnectRequest) (*domain.ConnectAck, error) {
	jobID := s.scheduler.Enqueue(req.RepositoryURL, req.Branch)
	s.metrics.ScanJobsTotal.Inc()

	s.logger.Info("repository connection initiated",
		zap.String("job_id", jobID),
		zap.String("repository_url", req.RepositoryURL),
		zap.String("branch", req.Branch),
		zap.String("trace_id", infra.TraceIDFromContext(ctx)))

	return &domain.ConnectAck{
		Success:       true,
		Message:       "Repository connection initiated",
		RepositoryURL: req.RepositoryURL,
		Branch:        req.Branch,
		Status:        "connecting",
	}, nil
}

// ListConnections отдает описание одного подключенного репозитория.
// Живое здесь только agent_count — он считается по текущему реестру.
func (s *RepositoryService) ListConnections(ctx context.Context) ([]*domain.RepositorySummary, error) {
	return []*domain.RepositorySummary{
		{
			ID:         connectedRepoID,
			URL:        connectedRepoURL,
			Branch:     "main",
			LastSync:   lastSyncStamp,
			AgentCount: s.repo.Count(ctx),
			Status:     "connected",
		},
	}, nil
}
