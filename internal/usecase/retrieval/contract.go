package retrieval

import "context"

// Embedder converts a query into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs a nearest-neighbor query against the vector store and
// returns raw provider hits, payload attached.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]map[string]any, error)
}
