package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xela07ax/opencode-console/internal/console/handler"
	"github.com/xela07ax/opencode-console/internal/infra"
	"go.uber.org/zap"
)

type ConsoleServer struct {
	router  *chi.Mux
	logger  *zap.Logger
	cfg     *infra.Config
	metrics *infra.Metrics

	// Обработчики бизнес-доменов
	agentHandler      *handler.AgentHandler      // /api/opencode/agents
	repositoryHandler *handler.RepositoryHandler // /api/opencode/repositories
}

// NewConsoleServer инициализирует сервер консоли со всеми зависимостями
func NewConsoleServer(
	cfg *infra.Config,
	logger *zap.Logger,
	metrics *infra.Metrics,
	agentH *handler.AgentHandler,
	repoH *handler.RepositoryHandler,
) *ConsoleServer {
	s := &ConsoleServer{
		router:            chi.NewRouter(),
		logger:            logger.Named("console-api"),
		cfg:               cfg,
		metrics:           metrics,
		agentHandler:      agentH,
		repositoryHandler: repoH,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(infra.TraceMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.observeRequests)

	// Healthcheck для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// --- 2. Публичная поверхность OpenCode-интеграции ---
	// Аутентификация на этой границе не определена: ее добавляет
	// внешний gateway, а не этот сервис.
	r.Route("/api/opencode", func(r chi.Router) {
		// Agent-файлы: список, карточка, обновление metadata
		r.Mount("/agents", s.agentHandler.Routes())

		// Подключения репозиториев
		r.Route("/repositories", func(r chi.Router) {
			r.Get("/", s.repositoryHandler.List)
			r.Post("/connect", s.repositoryHandler.Connect)
		})
	})
}

// observeRequests снимает RED-метрики по каждому запросу.
// Паттерн маршрута берем у chi после обработки, чтобы не плодить
// кардинальность по конкретным id.
func (s *ConsoleServer) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		s.metrics.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
		s.metrics.TotalRequests.WithLabelValues(r.Method, route).Inc()
	})
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
