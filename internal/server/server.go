// Package server provides the HTTP REST API for the resume analysis service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-doctor/internal/analysis"
	"github.com/jonathan/resume-doctor/internal/config"
	"github.com/jonathan/resume-doctor/internal/extract"
	"github.com/jonathan/resume-doctor/internal/llm"
	"github.com/jonathan/resume-doctor/internal/observability"
	"github.com/jonathan/resume-doctor/internal/server/identity"
	"github.com/jonathan/resume-doctor/internal/server/ratelimit"
	"github.com/jonathan/resume-doctor/internal/types"
)

// analysisService is the analysis surface the handlers need. Tests install
// stubs; production wires *analysis.Service.
type analysisService interface {
	VitalsCheck(ctx context.Context, pdf []byte) (types.Report, error)
	DeepScan(ctx context.Context, pdf []byte, jobDescription string) (types.FinalReport, error)
}

// importService is the resume import surface the handlers need.
type importService interface {
	FromPDF(ctx context.Context, pdf []byte) types.ImportResult
	FromText(ctx context.Context, text, importType string) types.ImportResult
}

// Server represents the HTTP server and its wired dependencies.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *observability.Metrics
	registry   *prometheus.Registry

	resolver *identity.Resolver
	policy   *ratelimit.Policy
	tracker  *ratelimit.Tracker
	analysis analysisService
	importer importService

	llmClient   llm.Client
	redisClient *redis.Client
	memStore    *ratelimit.MemoryStore
}

// New creates a server with all dependencies wired from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	llmClient, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		llmClient: llmClient,
		policy:    ratelimit.DefaultPolicy(),
		registry:  prometheus.NewRegistry(),
	}
	s.metrics = observability.NewMetrics(s.registry)

	store, err := s.buildQuotaStore(cfg)
	if err != nil {
		return nil, err
	}
	s.tracker = ratelimit.NewTracker(s.policy, store)
	s.resolver = identity.NewResolver(cfg.APISecretKey, s.policy)
	s.analysis = analysis.NewService(llmClient, extract.Text, logger)
	s.importer = extract.NewImporter(llmClient, logger)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withRequestLog(s.routes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // deep scan waits on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// buildQuotaStore selects the counter backend. A configured Redis URL gives
// counters shared across instances; otherwise counters are per-process.
func (s *Server) buildQuotaStore(cfg *config.Config) (ratelimit.Store, error) {
	if cfg.RedisURL == "" {
		s.memStore = ratelimit.NewMemoryStore(ratelimit.SystemClock(), 10*time.Minute)
		s.logger.Info("using in-memory quota store")
		return s.memStore, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s.redisClient = client
	s.logger.Info("using redis quota store", zap.String("addr", opts.Addr))
	return ratelimit.NewRedisStore(client), nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/analyze/vitals", s.handleVitals)
	mux.HandleFunc("POST /api/v1/analyze/deep-scan", s.handleDeepScan)
	mux.HandleFunc("GET /api/v1/analyze/health", s.handleAnalyzeHealth)

	mux.HandleFunc("POST /api/v1/extract/pdf", s.handleImportPDF)
	mux.HandleFunc("POST /api/v1/extract/text", s.handleImportText)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.memStore != nil {
		s.memStore.Stop()
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if err := s.llmClient.Close(); err != nil {
		s.logger.Warn("failed to close LLM client", zap.Error(err))
	}
	_ = s.logger.Sync()

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyzeHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "Resume Doctor - Analysis",
		"endpoints": map[string]string{
			"vitals":    "POST /api/v1/analyze/vitals",
			"deep_scan": "POST /api/v1/analyze/deep-scan",
		},
		"config": map[string]any{
			"max_file_size_mb": s.cfg.MaxFileSizeMB,
		},
	})
}
