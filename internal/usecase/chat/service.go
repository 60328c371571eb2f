package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// contextSummaryChars bounds the context excerpt persisted with each turn.
const contextSummaryChars = 500

// fallbackAnswer is returned when retrieval produced no usable context.
// End users never see raw provider errors.
const fallbackAnswer = "I don't have enough information to answer that yet. " +
	"Try rephrasing the question or asking about something else."

// Service handles one chat turn: widened retrieval, answer synthesis, and
// transcript persistence.
type Service struct {
	retriever  Retriever
	answerer   Answerer
	transcript Transcript
	logger     *zap.Logger
}

// TurnResult is the caller-facing outcome of one chat turn.
type TurnResult struct {
	SessionID string
	Answer    string
	Sources   []string
}

// New creates a chat service.
func New(retriever Retriever, answerer Answerer, transcript Transcript, logger *zap.Logger) *Service {
	return &Service{retriever: retriever, answerer: answerer, transcript: transcript, logger: logger}
}

// Turn answers one user query within a session. A blank sessionID mints a
// new session. Retrieval failures degrade to a fallback answer; only LLM and
// storage failures surface as errors.
func (s *Service) Turn(ctx context.Context, sessionID, query string) (TurnResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return TurnResult{}, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res := s.retriever.RetrieveWidened(ctx, query, 0)

	var answer string
	switch {
	case res.Err != "":
		s.logger.Warn("retrieval degraded, answering with fallback",
			zap.String("session_id", sessionID),
			zap.String("retrieval_error", res.Err),
		)
		metrics.ChatTurnsTotal.WithLabelValues("fallback").Inc()
		answer = fallbackAnswer
	case res.Context == "":
		metrics.ChatTurnsTotal.WithLabelValues("fallback").Inc()
		answer = fallbackAnswer
	default:
		var err error
		answer, err = s.answerer.Answer(ctx, query, res.Context)
		if err != nil {
			metrics.ChatTurnsTotal.WithLabelValues("error").Inc()
			return TurnResult{}, fmt.Errorf("synthesize answer: %w", err)
		}
		metrics.ChatTurnsTotal.WithLabelValues("answered").Inc()
	}

	entry := domain.TranscriptEntry{
		Query:          query,
		Answer:         answer,
		ContextSummary: summarizeContext(res.Context),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.transcript.Append(ctx, sessionID, entry); err != nil {
		// The user already has an answer; losing one transcript entry is
		// not worth failing the turn over.
		s.logger.Error("transcript append failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	return TurnResult{
		SessionID: sessionID,
		Answer:    answer,
		Sources:   collectSources(res),
	}, nil
}

// History returns the transcript for a session, oldest turn first.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("empty session id: %w", domain.ErrInvalidInput)
	}
	entries, err := s.transcript.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return entries, nil
}

func summarizeContext(contextText string) string {
	if len(contextText) <= contextSummaryChars {
		return contextText
	}
	return contextText[:contextSummaryChars]
}

// collectSources returns the distinct resolved sources of the retrieved
// hits, in score order.
func collectSources(res retrieval.Result) []string {
	seen := make(map[string]struct{}, len(res.Hits))
	sources := make([]string, 0, len(res.Hits))
	for i := range res.Hits {
		src := res.Hits[i].ResolvedSource()
		if src == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	return sources
}
