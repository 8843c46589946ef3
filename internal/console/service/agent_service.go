package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xela07ax/opencode-console/internal/domain"
	"go.uber.org/zap"
)

// AgentDirectory описывает требования сервиса к хранилищу agent-файлов.
type AgentDirectory interface {
	List(ctx context.Context) []*domain.AgentFile
	Get(ctx context.Context, id string) (*domain.AgentFile, error)
	UpdateMetadata(ctx context.Context, id string, partial map[string]interface{}) (*domain.AgentFile, error)
	Count(ctx context.Context) int
}

type AgentService struct {
	repo   AgentDirectory
	logger *zap.Logger
}

func NewAgentService(repo AgentDirectory, logger *zap.Logger) *AgentService {
	return &AgentService{
		repo:   repo,
		logger: logger.Named("agent-service"),
	}
}

// ListAgentFiles возвращает все agent-файлы в порядке вставки.
// Используется для отображения основной таблицы консоли.
func (s *AgentService) ListAgentFiles(ctx context.Context) ([]*domain.AgentFile, error) {
	files := s.repo.List(ctx)

	// Гарантируем, что фронтенд получит пустой массив [], а не null
	if files == nil {
		return []*domain.AgentFile{}, nil
	}

	s.logger.Debug("agent files listed", zap.Int("count", len(files)))
	return files, nil
}

func (s *AgentService) GetAgentFile(ctx context.Context, id string) (*domain.AgentFile, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Warn("failed to fetch agent file", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return file, nil
}

// UpdateConfiguration применяет частичное обновление metadata к записи.
// Семантика слияния (shallow merge) живет в реестре; сервис отвечает
// за логирование и доменную обертку ошибок.
func (s *AgentService) UpdateConfiguration(ctx context.Context, id string, configuration map[string]interface{}) (*domain.AgentFile, error) {
	file, err := s.repo.UpdateMetadata(ctx, id, configuration)
	if err != nil {
		s.logger.Error("failed to update agent configuration",
			zap.String("id", id),
			zap.Error(err))
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err // NotFound пробрасываем как есть до границы
		}
		return nil, fmt.Errorf("service: could not update agent file %s: %w", id, err)
	}

	s.logger.Info("agent configuration updated",
		zap.String("id", id),
		zap.Int("updated_keys", len(configuration)))
	return file, nil
}
