package registry

import (
	"context"
	"sync"

	"github.com/xela07ax/opencode-console/internal/domain"
	"go.uber.org/zap"
)

// Registry — реестр agent-файлов в памяти процесса.
//
// Источник данных фиксированный (seed при старте), записи живут до остановки
// сервиса: операции только читают и обновляют metadata, создание и удаление
// через реестр не проходят. RWMutex обязателен: chi обслуживает запросы
// параллельно, а UpdateMetadata делает read-modify-write поверх общего
// состояния (без блокировки возможны lost updates).
type Registry struct {
	mu     sync.RWMutex
	files  []*domain.AgentFile // Порядок вставки = порядок выдачи List
	index  map[string]int      // id -> позиция в files, O(1) lookup
	logger *zap.Logger
}

// New создает реестр и наполняет его встроенным набором agent-файлов.
func New(logger *zap.Logger) *Registry {
	r := &Registry{
		index:  make(map[string]int),
		logger: logger.Named("registry"),
	}
	for _, f := range seedFiles() {
		r.index[f.ID] = len(r.files)
		r.files = append(r.files, f)
	}
	r.logger.Info("registry seeded", zap.Int("agent_files", len(r.files)))
	return r
}

// List возвращает все записи в порядке вставки. Всегда успешен.
func (r *Registry) List(ctx context.Context) []*domain.AgentFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.AgentFile, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, f.Clone())
	}
	return out
}

// Get находит запись по id или возвращает domain.ErrNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*domain.AgentFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, domain.NotFoundf("registry: agent file %q", id)
	}
	return r.files[pos].Clone(), nil
}

// UpdateMetadata заменяет metadata записи на неглубокое слияние текущих
// значений и partial: ключи из partial перекрывают одноименные, остальные
// сохраняются. Слияние одноуровневое — вложенная структура в partial
// замещает значение ключа целиком, без рекурсии. Пустой partial — no-op,
// запись возвращается без изменений.
func (r *Registry) UpdateMetadata(ctx context.Context, id string, partial map[string]interface{}) (*domain.AgentFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return nil, domain.NotFoundf("registry: agent file %q", id)
	}

	current := r.files[pos]
	merged := make(map[string]interface{}, len(current.Metadata)+len(partial))
	for k, v := range current.Metadata {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}
	current.Metadata = merged

	r.logger.Info("agent file metadata updated",
		zap.String("id", id),
		zap.Int("updated_keys", len(partial)))

	return current.Clone(), nil
}

// Count отдает размер реестра (для сводки по подключениям и метрик).
func (r *Registry) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}
