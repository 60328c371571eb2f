package chi

import (
	"time"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/usecase/featured"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

type errorResponse struct {
	Error string `json:"error"`
}

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Query     string `json:"query"`
}

type chatResponse struct {
	SessionID string   `json:"session_id"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
}

type historyEntry struct {
	Query          string    `json:"query"`
	Answer         string    `json:"answer"`
	ContextSummary string    `json:"context_summary"`
	CreatedAt      time.Time `json:"created_at"`
}

type historyResponse struct {
	SessionID string         `json:"session_id"`
	Entries   []historyEntry `json:"entries"`
}

type contextRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type hitDTO struct {
	ID         string         `json:"id,omitempty"`
	Score      float64        `json:"score"`
	TitleMatch float64        `json:"title_match"`
	Source     string         `json:"source,omitempty"`
	Payload    map[string]any `json:"payload"`
}

type contextResponse struct {
	Context  string   `json:"context"`
	Hits     []hitDTO `json:"hits"`
	TopKUsed int      `json:"top_k_used"`
	Error    string   `json:"error,omitempty"`
}

type cardDTO struct {
	Title   string  `json:"title,omitempty"`
	Excerpt string  `json:"excerpt"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score"`
}

type featuredResponse struct {
	Cards []cardDTO `json:"cards"`
}

func contextToDTO(res retrieval.Result) contextResponse {
	hits := make([]hitDTO, len(res.Hits))
	for i := range res.Hits {
		h := &res.Hits[i]
		hits[i] = hitDTO{
			ID:         h.ID(),
			Score:      h.Score(),
			TitleMatch: h.TitleMatch(),
			Source:     h.ResolvedSource(),
			Payload:    h.Payload(),
		}
	}
	return contextResponse{
		Context:  res.Context,
		Hits:     hits,
		TopKUsed: res.TopKUsed,
		Error:    res.Err,
	}
}

func historyToDTO(sessionID string, entries []domain.TranscriptEntry) historyResponse {
	out := make([]historyEntry, len(entries))
	for i, e := range entries {
		out[i] = historyEntry{
			Query:          e.Query,
			Answer:         e.Answer,
			ContextSummary: e.ContextSummary,
			CreatedAt:      e.CreatedAt,
		}
	}
	return historyResponse{SessionID: sessionID, Entries: out}
}

func cardsToDTO(cards []featured.Card) featuredResponse {
	out := make([]cardDTO, len(cards))
	for i, c := range cards {
		out[i] = cardDTO{Title: c.Title, Excerpt: c.Excerpt, Source: c.Source, Score: c.Score}
	}
	return featuredResponse{Cards: out}
}
