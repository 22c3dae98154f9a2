package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kloudstax/giftrec/internal/config"
	"github.com/kloudstax/giftrec/internal/domain"
	logpkg "github.com/kloudstax/giftrec/internal/logger"
	"github.com/kloudstax/giftrec/internal/metrics"
	vocabrepo "github.com/kloudstax/giftrec/internal/repository/vocab"
	chiTransport "github.com/kloudstax/giftrec/internal/transport/chi"
	"github.com/kloudstax/giftrec/internal/transport/gemini"
	openaiGen "github.com/kloudstax/giftrec/internal/transport/openai"
	"github.com/kloudstax/giftrec/internal/transport/toandfrom"
	"github.com/kloudstax/giftrec/internal/usecase/health"
	"github.com/kloudstax/giftrec/internal/usecase/recommend"
	"github.com/kloudstax/giftrec/internal/version"
	vocabsrc "github.com/kloudstax/giftrec/internal/vocab"
)

func main() {
	// .env is optional, real env vars win
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

	logger.Info("Starting giftrec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("model_provider", cfg.Model.Provider),
		zap.String("model", cfg.Model.Model),
		zap.String("vocabulary_source", cfg.Vocabulary.Source),
	)

	ctx := context.Background()

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Vocabulary dataset — loaded once at startup
	source, closeSource, err := buildVocabularySource(cfg.Vocabulary)
	if err != nil {
		logger.Fatal("Failed to create vocabulary source", zap.Error(err))
	}
	defer closeSource()

	dataset, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load vocabulary", zap.Error(err))
	}
	store := vocabrepo.NewStore(dataset)
	logger.Info("Vocabulary loaded",
		zap.Int("attributes", store.Len(domain.CategoryAttribute)),
		zap.Int("occasions", store.Len(domain.CategoryOccasion)),
		zap.Int("relationships", store.Len(domain.CategoryRelationship)),
	)

	// Model provider
	generator, err := buildGenerator(ctx, cfg.Model, logger)
	if err != nil {
		logger.Fatal("Failed to create model client", zap.Error(err))
	}

	// Recommendation API client
	products := toandfrom.New(toandfrom.Config{
		BaseURL:  cfg.Recommendation.BaseURL,
		Revision: cfg.Recommendation.Revision,
		Timeout:  time.Duration(cfg.Recommendation.TimeoutSec) * time.Second,
		Logger:   logger,
	})

	// Use case services
	recommendSvc := recommend.New(store, generator, products)
	healthSvc := health.New(store, newModelHealthChecker(generator))

	// Chi server
	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

// buildVocabularySource picks a vocabulary source based on config.
// The returned func releases the source's resources.
func buildVocabularySource(cfg config.VocabularyConfig) (vocabsrc.Source, func(), error) {
	switch cfg.Source {
	case "redis":
		src, err := vocabsrc.NewRedisSource(vocabsrc.RedisConfig{
			Addrs:     cfg.Redis.Addrs,
			Password:  cfg.Redis.Password,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := src.Ping(pingCtx); err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("redis not ready: %w", err)
		}
		return src, src.Close, nil
	case "file":
		src, err := vocabsrc.NewFileSource(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown vocabulary source %q", cfg.Source)
	}
}

// buildGenerator picks a model provider based on config.
func buildGenerator(ctx context.Context, cfg config.ModelConfig, logger *zap.Logger) (recommend.Generator, error) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	switch cfg.Provider {
	case "openai":
		return openaiGen.New(openaiGen.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
			Logger:  logger,
		}), nil
	case "gemini":
		return gemini.New(ctx, gemini.Config{
			APIKey:   cfg.APIKey,
			Project:  cfg.Project,
			Location: cfg.Location,
			Model:    cfg.Model,
			Timeout:  timeout,
			Logger:   logger,
		})
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

// modelHealthChecker adapts a Generator to health.ModelChecker when the
// provider supports liveness probes.
type modelHealthChecker struct {
	checker interface {
		HealthCheck(ctx context.Context) error
	}
}

func newModelHealthChecker(gen recommend.Generator) health.ModelChecker {
	hc, ok := gen.(interface {
		HealthCheck(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	return &modelHealthChecker{checker: hc}
}

func (h *modelHealthChecker) HealthCheck(ctx context.Context) error {
	if err := h.checker.HealthCheck(ctx); err != nil {
		return fmt.Errorf("model health check: %w", err)
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
