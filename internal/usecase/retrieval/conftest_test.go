package retrieval

import "context"

// mockEmbedder implements Embedder with a pluggable func and a call counter.
type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
	calls     int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

// mockSearcher implements Searcher, recording the topK of every call.
type mockSearcher struct {
	searchFunc func(ctx context.Context, vector []float32, topK int) ([]map[string]any, error)
	calls      int
	topKs      []int
}

func (m *mockSearcher) Search(ctx context.Context, vector []float32, topK int) ([]map[string]any, error) {
	m.calls++
	m.topKs = append(m.topKs, topK)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, vector, topK)
	}
	return nil, nil
}

func rawHit(id string, score float64, payload map[string]any) map[string]any {
	return map[string]any{"id": id, "score": score, "payload": payload}
}
