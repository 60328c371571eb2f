package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/logger"
	chatuc "github.com/kailas-cloud/ragpipe/internal/usecase/chat"
	featureduc "github.com/kailas-cloud/ragpipe/internal/usecase/featured"
	healthuc "github.com/kailas-cloud/ragpipe/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// statusFor maps domain sentinels to HTTP statuses.
var statusFor = []struct {
	sentinel error
	status   int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrSessionNotFound, http.StatusNotFound},
	{domain.ErrEmbeddingFailed, http.StatusBadGateway},
	{domain.ErrSearchFailed, http.StatusBadGateway},
	{domain.ErrAnswerFailed, http.StatusBadGateway},
}

// Server exposes the chat, retrieval, and featured endpoints.
type Server struct {
	chat      *chatuc.Service
	featured  *featureduc.Service
	retrieval *retrievaluc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	chat *chatuc.Service,
	featured *featureduc.Service,
	retrieval *retrievaluc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		chat:      chat,
		featured:  featured,
		retrieval: retrieval,
		health:    health,
		logger:    logger,
	}
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/chat", s.handleChat)
	r.Get("/v1/sessions/{session}/history", s.handleHistory)
	r.Post("/v1/context", s.handleContext)
	r.Get("/v1/featured", s.handleFeatured)
	r.Get("/health", s.handleHealth)
}

// handleChat handles POST /v1/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.chat.Turn(r.Context(), req.SessionID, req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: res.SessionID,
		Answer:    res.Answer,
		Sources:   res.Sources,
	})
}

// handleHistory handles GET /v1/sessions/{session}/history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	entries, err := s.chat.History(r.Context(), sessionID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyToDTO(sessionID, entries))
}

// handleContext handles POST /v1/context, exposing the raw retrieval result
// for tooling and debugging.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res := s.retrieval.Retrieve(r.Context(), req.Query, req.TopK)
	writeJSON(w, http.StatusOK, contextToDTO(res))
}

// handleFeatured handles GET /v1/featured.
func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "k must be a non-negative integer")
			return
		}
		k = parsed
	}

	cards := s.featured.Cards(r.Context(), k)
	writeJSON(w, http.StatusOK, cardsToDTO(cards))
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
		s.logger.Warn("health check degraded", zap.Any("checks", report.Checks))
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range statusFor {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, err.Error())
			return
		}
	}
	logger.FromContext(r.Context()).Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
