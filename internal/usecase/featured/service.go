package featured

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// excerptBudget keeps card excerpts within 200 characters after the
// truncation marker is appended.
const excerptBudget = 196

// Card is a display card built from one retrieved hit.
type Card struct {
	Title   string
	Excerpt string
	Source  string
	Score   float64
}

// Service reshapes retrieval hits for a fixed showcase query into display
// cards.
type Service struct {
	retriever Retriever
	query     string
	logger    *zap.Logger
}

// New creates a featured-cards service around the given showcase query.
func New(retriever Retriever, query string, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, query: query, logger: logger}
}

// Cards returns up to k display cards. Retrieval failures degrade to an
// empty list rather than an error reaching the caller.
func (s *Service) Cards(ctx context.Context, k int) []Card {
	res := s.retriever.Retrieve(ctx, s.query, k)
	if res.Err != "" {
		s.logger.Warn("featured retrieval degraded", zap.String("retrieval_error", res.Err))
		return []Card{}
	}

	cards := make([]Card, 0, len(res.Hits))
	for i := range res.Hits {
		h := &res.Hits[i]
		text := h.Text()
		if text == "" {
			continue
		}
		cards = append(cards, Card{
			Title:   h.Title(),
			Excerpt: retrieval.SafeTruncate(text, excerptBudget),
			Source:  h.ResolvedSource(),
			Score:   h.Score(),
		})
	}
	return cards
}
