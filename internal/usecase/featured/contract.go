package featured

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// Retriever runs the retrieval pipeline for the configured featured query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) retrieval.Result
}
