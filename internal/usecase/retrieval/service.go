package retrieval

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain/hit"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
)

// Config holds the retrieval tuning knobs, read-only after construction.
type Config struct {
	// TopK is the default number of nearest neighbors requested.
	TopK int
	// ConsiderLimit bounds how many hits enter deduplication.
	ConsiderLimit int
	// MaxContextHits bounds how many hits are formatted into the context.
	MaxContextHits int
	// MaxContextChars is the context character budget.
	MaxContextChars int
	// TitleBoostAlpha weighs the lexical title-match boost.
	TitleBoostAlpha float64
	// WidenMaxTopK caps the widened retry topK.
	WidenMaxTopK int
}

// Result is the sole artifact retrieval returns. Hits carry the full
// deduped and score-sorted set, not just the ones formatted into Context.
// A non-empty Err means "no usable context"; callers degrade gracefully.
type Result struct {
	Context  string
	Hits     []hit.Hit
	TopKUsed int
	Err      string
}

// Service orchestrates the retrieval pipeline:
// embed -> search -> normalize -> rescore -> dedupe -> sort -> assemble.
type Service struct {
	embed  Embedder
	search Searcher
	cfg    Config
	logger *zap.Logger
}

// New creates a retrieval service.
func New(embed Embedder, search Searcher, cfg Config, logger *zap.Logger) *Service {
	return &Service{embed: embed, search: search, cfg: cfg, logger: logger}
}

// Retrieve runs the pipeline for one query. topK <= 0 selects the configured
// default. Provider failures never propagate as errors: they come back as an
// empty result with a descriptive Err.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) Result {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Hits: []hit.Hit{}, TopKUsed: topK}
	}

	vector, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("embedding failed", zap.Error(err))
		return Result{Hits: []hit.Hit{}, TopKUsed: topK, Err: "Cohere embed failed: " + err.Error()}
	}

	raw, err := s.search.Search(ctx, vector, topK)
	if err != nil {
		s.logger.Warn("vector search failed", zap.Error(err))
		return Result{Hits: []hit.Hit{}, TopKUsed: topK, Err: "Qdrant search failed: " + err.Error()}
	}

	hits := normalize(raw)
	hits = rescore(hits, query, s.cfg.TitleBoostAlpha)
	hits = dedupe(hits, s.cfg.ConsiderLimit)
	sortByScore(hits)

	contextText, pieces := assemble(hits, s.cfg.MaxContextHits, s.cfg.MaxContextChars)

	metrics.RetrievalContextChars.Observe(float64(len(contextText)))
	s.logger.Debug("retrieval complete",
		zap.Int("top_k", topK),
		zap.Int("hits", len(hits)),
		zap.Int("context_pieces", len(pieces)),
		zap.Int("context_chars", len(contextText)),
	)

	return Result{Context: contextText, Hits: hits, TopKUsed: topK}
}
