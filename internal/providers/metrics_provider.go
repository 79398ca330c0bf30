package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rankd/internal/services"
	"rankd/internal/structures"
)

// Submission outcome labels.
const (
	OutcomeAccepted        = "accepted"
	OutcomeNoImprovement   = "no_improvement"
	OutcomeRejectedInvalid = "rejected_invalid"
	OutcomeRejectedPaused  = "rejected_paused"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncSubmissions(outcome string)
	SetBoardSize(scope string, size int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	submissionsTotal    *prometheus.CounterVec
	boardSize           *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSubmissions(outcome string) {
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetBoardSize(scope string, size int) {
	m.boardSize.WithLabelValues(scope).Set(float64(size))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.RankingServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rankd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rankd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		submissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rankd_submissions_total",
			Help: "Total number of result submissions by outcome",
		}, []string{"outcome"}),

		boardSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rankd_board_size",
			Help: "Number of entries per leaderboard scope",
		}, []string{"scope"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "rankd_players_total",
		Help: "Number of players with a ledger in the current epoch",
	}, func() float64 {
		return float64(service.GetPlayersTotal())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "rankd_epoch",
		Help: "Current epoch",
	}, func() float64 {
		return float64(service.GetEpoch())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)        {}
func (n *noopMetrics) IncSubmissions(_ string)                           {}
func (n *noopMetrics) SetBoardSize(_ string, _ int)                      {}
