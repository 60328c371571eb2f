package retrieval

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// widenFactor multiplies topK on the widened retry.
const widenFactor = 4

// minCoverTokenLen is the shortest query token that counts as evidence the
// context is about the query.
const minCoverTokenLen = 4

// RetrieveWidened runs Retrieve and, when the context shows no lexical
// overlap with the query, retries the whole pipeline once with a larger
// topK (capped). A heuristic relevance guard against a cold or sparse index
// returning weak matches at small topK.
func (s *Service) RetrieveWidened(ctx context.Context, query string, topK int) Result {
	res := s.Retrieve(ctx, query, topK)

	if contextCoversQuery(res.Context, query) || res.TopKUsed >= s.cfg.WidenMaxTopK {
		return res
	}

	widened := res.TopKUsed * widenFactor
	if widened > s.cfg.WidenMaxTopK {
		widened = s.cfg.WidenMaxTopK
	}

	s.logger.Info("widening retrieval",
		zap.Int("top_k", res.TopKUsed),
		zap.Int("widened_top_k", widened),
	)
	return s.Retrieve(ctx, query, widened)
}

// contextCoversQuery reports whether any query token of meaningful length
// appears in the context, case-insensitively.
func contextCoversQuery(contextText, query string) bool {
	lowered := strings.ToLower(contextText)
	for _, tok := range tokenize(query) {
		if len(tok) >= minCoverTokenLen && strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}
