package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: сколько времени заняла обработка запроса
	RequestDuration *prometheus.HistogramVec

	// Traffic: общее кол-во запросов
	TotalRequests *prometheus.CounterVec

	// Кол-во запланированных фоновых сканирований
	ScanJobsTotal prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "opencode_request_duration_seconds",
			Help:    "Histogram of request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),

		TotalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "opencode_requests_total",
			Help: "Total number of processed requests.",
		}, []string{"method", "route"}),

		ScanJobsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "opencode_scan_jobs_total",
			Help: "Total number of scheduled repository scans.",
		}),
	}
}

// RegisterScanQueueGauge подключает наблюдение за заполненностью очереди
// сканера (backpressure) без прямой зависимости сканера от Prometheus.
func RegisterScanQueueGauge(reg prometheus.Registerer, fill func() float64) {
	if reg == nil {
		return
	}
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "opencode_scan_queue_fill",
		Help: "Current number of pending scan jobs in the queue.",
	}, fill)
}
