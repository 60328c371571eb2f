package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragpipe",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragpipe",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragpipe",
			Name:      "search_requests_total",
			Help:      "Total number of vector search requests",
		},
		[]string{"collection", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragpipe",
			Name:      "search_request_duration_seconds",
			Help:      "Vector search request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"collection"},
	)

	RetrievalContextChars = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragpipe",
			Name:      "retrieval_context_chars",
			Help:      "Size in characters of assembled retrieval contexts",
			Buckets:   []float64{0, 100, 250, 500, 750, 1000, 1250, 1500, 2000},
		},
	)

	ChatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragpipe",
			Name:      "chat_turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"outcome"}, // "answered" / "fallback" / "error"
	)

	AnswerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragpipe",
			Name:      "answer_requests_total",
			Help:      "Total LLM answer requests",
		},
		[]string{"model", "status"},
	)
)

// RegisterPipelineMetrics registers retrieval metrics explicitly (no init()).
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		SearchRequestsTotal,
		SearchRequestDuration,
		RetrievalContextChars,
		ChatTurnsTotal,
		AnswerRequestsTotal,
	)
}
