package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xela07ax/opencode-console/internal/console/handler"
	"github.com/xela07ax/opencode-console/internal/console/server"
	"github.com/xela07ax/opencode-console/internal/console/service"
	"github.com/xela07ax/opencode-console/internal/infra"
	"github.com/xela07ax/opencode-console/internal/registry"
	"github.com/xela07ax/opencode-console/internal/scanner"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Метрики
	promReg := prometheus.NewRegistry()
	metrics := infra.NewMetrics(promReg)

	// 3. Реестр agent-файлов (seed в памяти) и симулятор сканирования
	store := registry.New(logger)
	scan := scanner.New(store, cfg.Scanner.Delay, cfg.Scanner.QueueSize, logger)
	scan.Start()
	infra.RegisterScanQueueGauge(promReg, func() float64 {
		return float64(scan.QueueLen())
	})

	// 4. Инициализация слоев (Dependency Injection)
	agentService := service.NewAgentService(store, logger)
	repositoryService := service.NewRepositoryService(store, scan, metrics, logger)
	agentHandler := handler.NewAgentHandler(agentService)
	repositoryHandler := handler.NewRepositoryHandler(repositoryService)

	consoleSrv := server.NewConsoleServer(cfg, logger, metrics, agentHandler, repositoryHandler)

	// 5. Экспорт метрик для Prometheus на отдельном порту
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
			logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      consoleSrv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("console API started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop // Ждем сигнал
	logger.Info("console API stopping...")

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// Ошибка Shutdown не фатальна: очередь сканирований все равно
	// нужно дожать до выхода (Drain Pattern)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	scan.Stop()
	logger.Info("console API exited properly")
}
