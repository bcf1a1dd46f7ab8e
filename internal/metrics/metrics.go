// Package metrics holds the Prometheus collectors for the ranking service.
// Collectors are created at package init so code paths can record without
// checking for initialisation; Init registers them once at startup.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ytassist_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ytassist_requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytassist_searches_total",
			Help: "Total searches, by outcome.",
		},
		[]string{"outcome"},
	)

	RankDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ytassist_rank_duration_seconds",
		Help:    "Duration of a full ranking call including similarity.",
		Buckets: prometheus.DefBuckets,
	})

	CandidatesFiltered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_candidates_filtered_total",
		Help: "Candidates dropped by the filter (kids, live, too short).",
	})

	CandidatesRanked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_candidates_ranked_total",
		Help: "Candidates that survived filtering and were scored.",
	})

	EmbeddingCalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_embedding_calls_total",
		Help: "Texts embedded by the model (cache misses).",
	})

	EmbeddingCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_embedding_cache_hits_total",
		Help: "Embedding cache hits.",
	})

	EmbeddingCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_embedding_cache_misses_total",
		Help: "Embedding cache misses.",
	})

	QuotaUnits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_youtube_quota_units_total",
		Help: "YouTube Data API quota units consumed.",
	})

	EventsFlushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ytassist_query_history_flushed_total",
		Help: "Query history entries written by the event worker.",
	})
)

// Init registers all collectors. Call once at startup. pool may be nil.
func Init(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "ytassist_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 {
					return float64(pool.Stat().AcquiredConns())
				},
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "ytassist_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 {
					return float64(pool.Stat().IdleConns())
				},
			),
		)
	}

	prometheus.MustRegister(
		RequestDuration,
		RequestsInFlight,
		SearchesTotal,
		RankDuration,
		CandidatesFiltered,
		CandidatesRanked,
		EmbeddingCalls,
		EmbeddingCacheHits,
		EmbeddingCacheMisses,
		QuotaUnits,
		EventsFlushed,
	)
}
