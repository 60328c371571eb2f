package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/config"
	dbRedis "github.com/kailas-cloud/ragpipe/internal/db/redis"
	logpkg "github.com/kailas-cloud/ragpipe/internal/logger"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
	historyrepo "github.com/kailas-cloud/ragpipe/internal/repository/history"
	chiTransport "github.com/kailas-cloud/ragpipe/internal/transport/chi"
	"github.com/kailas-cloud/ragpipe/internal/transport/cohere"
	openaiLLM "github.com/kailas-cloud/ragpipe/internal/transport/openai"
	"github.com/kailas-cloud/ragpipe/internal/transport/qdrant"
	chatuc "github.com/kailas-cloud/ragpipe/internal/usecase/chat"
	featureduc "github.com/kailas-cloud/ragpipe/internal/usecase/featured"
	healthuc "github.com/kailas-cloud/ragpipe/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
	"github.com/kailas-cloud/ragpipe/internal/version"
)

func main() {
	// Best-effort .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting ragpipe API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("collection", cfg.VectorStore.Collection),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create session store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Session store not ready", zap.Error(err))
	}
	logger.Info("Connected to session store")

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Build provider clients — composition root
	embedder := cohere.NewEmbedder(&cohere.Config{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Timeout: time.Duration(cfg.Embedding.TimeoutMs) * time.Millisecond,
		Logger:  logger,
	})
	searcher := qdrant.NewClient(&qdrant.Config{
		URL:        cfg.VectorStore.URL,
		APIKey:     cfg.VectorStore.APIKey,
		Collection: cfg.VectorStore.Collection,
		Timeout:    time.Duration(cfg.VectorStore.TimeoutMs) * time.Millisecond,
		Logger:     logger,
	})
	answerer := openaiLLM.NewAnswerer(&openaiLLM.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Logger:  logger,
	})
	logger.Info("Provider clients created",
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Repositories and use case services
	transcripts := historyrepo.New(store, cfg.Sessions.KeyPrefix,
		time.Duration(cfg.Sessions.TTLDays)*24*time.Hour)

	retrievalSvc := retrievaluc.New(embedder, searcher, retrievaluc.Config{
		TopK:            cfg.Retrieval.TopK,
		ConsiderLimit:   cfg.Retrieval.ConsiderLimit,
		MaxContextHits:  cfg.Retrieval.MaxContextHits,
		MaxContextChars: cfg.Retrieval.MaxContextChars,
		TitleBoostAlpha: cfg.Retrieval.TitleBoostAlpha,
		WidenMaxTopK:    cfg.Retrieval.WidenMaxTopK,
	}, logger)
	chatSvc := chatuc.New(retrievalSvc, answerer, transcripts, logger)
	featuredSvc := featureduc.New(retrievalSvc, cfg.Sessions.FeaturedQuery, logger)
	healthSvc := healthuc.New(store, searcher, embedder)

	server := chiTransport.NewServer(chatSvc, featuredSvc, retrievalSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiTransport.RequestLoggerMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
