package health

import "context"

// DBPinger checks session store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// VectorStorePinger checks vector store availability.
type VectorStorePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
