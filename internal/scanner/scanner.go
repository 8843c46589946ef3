package scanner

/*
Файл scanner.go реализует симулятор сканирования OpenCode-репозиториев —
единственную отложенную работу сервиса, исполняемую после того, как
инициировавший ее запрос уже получил ответ.

Контракт Fire-and-Forget:
- Постановка задачи никогда не блокирует вызывающего: при переполнении
  очереди работает Load Shedding — задача сбрасывается с записью в лог.
- Результат задачи никем не ожидается; любой сбой (включая panic) гасится
  внутри воркера и попадает только в лог, никогда к вызывающему.
- Задача чисто наблюдательная: читает снимок реестра, парсит frontmatter,
  пишет итог в лог. Реестр и любое внешнее состояние не мутируются.
- Остановка по Drain Pattern: Stop() запирает вход, закрывает канал и ждет,
  пока воркер дочитает очередь до конца. Вызывать Enqueue параллельно
  с Stop безопасно: опоздавшие задачи сбрасываются, а не паникуют.
*/

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xela07ax/opencode-console/internal/domain"
	"github.com/xela07ax/opencode-console/internal/opencode"
	"go.uber.org/zap"
)

// Snapshot отдает текущее содержимое реестра для наблюдения.
type Snapshot interface {
	List(ctx context.Context) []*domain.AgentFile
}

// Job — одна отложенная задача сканирования.
type Job struct {
	ID            string
	RepositoryURL string
	Branch        string
}

type Scanner struct {
	ch       chan Job
	registry Snapshot
	delay    time.Duration // Имитация времени клонирования и обхода .opencode каталогов
	logger   *zap.Logger
	wg       sync.WaitGroup

	// mu охраняет closed и само право на отправку в ch: Enqueue держит
	// read-lock на время send, Stop под write-lock ставит флаг и только
	// потом закрывает канал. Так исключена гонка «проверил флаг —
	// отправил в уже закрытый канал».
	mu     sync.RWMutex
	closed bool
}

func New(registry Snapshot, delay time.Duration, queueSize int, logger *zap.Logger) *Scanner {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Scanner{
		ch:       make(chan Job, queueSize),
		registry: registry,
		delay:    delay,
		logger:   logger.Named("scanner"),
	}
}

func (s *Scanner) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Stop «запирает» вход в канал и ждет, пока воркер дочитает очередь.
// Повторный вызов безопасен и ничего не делает.
func (s *Scanner) Stop() {
	// 1. Запираем вход. Write-lock дается только когда все текущие
	// Enqueue отпустили read-lock, то есть ни один отправитель не
	// держит канал в момент закрытия.
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	// 2. Drain Pattern: закрытие входного канала — единственный сигнал завершения воркера.
	s.logger.Info("stopping scanner: closing queue and draining...")
	close(s.ch)
	s.wg.Wait()
	s.logger.Info("scanner stopped gracefully")
}

// Enqueue ставит сканирование в очередь и немедленно возвращает id задачи.
// Никогда не блокирует и никогда не возвращает ошибку — сбой постановки
// инициатору не виден по контракту.
func (s *Scanner) Enqueue(repositoryURL, branch string) string {
	job := Job{
		ID:            uuid.New().String(),
		RepositoryURL: repositoryURL,
		Branch:        branch,
	}

	// Read-lock допускает параллельные постановки, но не дает Stop
	// закрыть канал, пока хоть один send в полете
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("scan job dropped: scanner is stopping",
			zap.String("job_id", job.ID),
			zap.String("repository_url", job.RepositoryURL))
		return job.ID
	}

	select {
	case s.ch <- job:
		s.logger.Debug("scan scheduled",
			zap.String("job_id", job.ID),
			zap.String("repository_url", job.RepositoryURL),
			zap.String("branch", job.Branch))
	default:
		// Очередь переполнена (Backpressure) — сбрасываем нагрузку
		s.logger.Error("scan_queue_overflow",
			zap.String("job_id", job.ID),
			zap.String("repository_url", job.RepositoryURL))
	}
	return job.ID
}

// QueueLen отдает текущую заполненность очереди (для Prometheus-гейджа).
func (s *Scanner) QueueLen() int {
	return len(s.ch)
}

func (s *Scanner) worker() {
	defer s.wg.Done()

	for job := range s.ch {
		s.run(job)
	}
	s.logger.Info("scan worker finished")
}

// run исполняет одну задачу. Паника внутри не должна уронить воркер:
// запрос-инициатор давно получил ответ, возвращать сбой некому.
func (s *Scanner) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("repository scan failed",
				zap.String("job_id", job.ID),
				zap.String("repository_url", job.RepositoryURL),
				zap.Any("panic", r))
		}
	}()

	// Имитация времени клонирования и парсинга
	time.Sleep(s.delay)

	files := s.registry.List(context.Background())

	parsed := 0
	for _, f := range files {
		if _, _, err := opencode.Parse(f.Content); err != nil {
			s.logger.Warn("agent file with invalid frontmatter",
				zap.String("id", f.ID),
				zap.Error(err))
			continue
		}
		parsed++
	}

	s.logger.Info("repository scan complete",
		zap.String("job_id", job.ID),
		zap.String("repository_url", job.RepositoryURL),
		zap.String("branch", job.Branch),
		zap.Int("agent_files", len(files)),
		zap.Int("parsed", parsed))
}
