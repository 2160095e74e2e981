package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnloop/learnloop/internal/ai"
	"github.com/learnloop/learnloop/internal/curriculum"
	"github.com/learnloop/learnloop/internal/httpapi"
	"github.com/learnloop/learnloop/internal/lesson"
	"github.com/learnloop/learnloop/internal/plan"
	"github.com/learnloop/learnloop/internal/platform/cache"
	"github.com/learnloop/learnloop/internal/platform/config"
	"github.com/learnloop/learnloop/internal/platform/database"
	"github.com/learnloop/learnloop/internal/student"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LEARNLOOP_LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // generation can take several AI round-trips
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// buildServer wires storage, AI, and the generators into the HTTP server.
// Empty database/cache URLs mean in-memory stores and no plan cache.
func buildServer(ctx context.Context, cfg *config.Config) (*httpapi.Server, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		students student.Store = student.NewMemoryStore()
		plans    plan.Store    = plan.NewMemoryStore()
		ready    []httpapi.ReadyChecker
	)

	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting database: %w", err)
		}
		cleanups = append(cleanups, db.Close)
		ready = append(ready, db)

		students, err = student.NewPostgresStore(db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		plans, err = plan.NewPostgresStore(db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		slog.Info("using postgres stores")
	} else {
		slog.Warn("no database configured, using in-memory stores")
	}

	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting cache: %w", err)
		}
		cleanups = append(cleanups, func() { _ = c.Close() })
		ready = append(ready, c)

		plans = plan.NewCachedStore(plans, c, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		slog.Info("plan cache enabled", "ttlMinutes", cfg.Cache.TTLMinutes)
	}

	library, err := curriculum.NewLibrary(cfg.PresetsPath)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading presets: %w", err)
	}

	aiClient := buildAIClient(cfg)

	genOpts := []plan.GeneratorOption{plan.WithBudget(ai.NewInMemoryBudget())}
	if aiClient != nil {
		genOpts = append(genOpts, plan.WithAIClient(aiClient))
	}

	srv := httpapi.New(httpapi.Deps{
		Students:  students,
		Plans:     plans,
		Generator: plan.NewGenerator(library, genOpts...),
		Lessons:   lesson.NewGenerator(aiClient),
		Library:   library,
		Ready:     ready,
	})
	return srv, cleanup, nil
}

// buildAIClient assembles the provider fallback chain from configured
// keys. Returns nil when no provider is configured; generation then runs
// fully deterministic.
func buildAIClient(cfg *config.Config) *ai.Client {
	if !cfg.HasAIProvider() {
		slog.Warn("no AI provider configured, running deterministic generation only")
		return nil
	}

	router := ai.NewRouter()
	if key := cfg.AI.OpenRouter.APIKey; key != "" {
		router.Register("openrouter", ai.NewOpenRouterProvider(key))
		slog.Info("AI provider registered", "provider", "openrouter")
	}
	if key := cfg.AI.OpenAI.APIKey; key != "" {
		router.Register("openai", ai.NewOpenAIProvider(key))
		slog.Info("AI provider registered", "provider", "openai")
	}
	if key := cfg.AI.DeepSeek.APIKey; key != "" {
		router.Register("deepseek", ai.NewDeepSeekProvider(key))
		slog.Info("AI provider registered", "provider", "deepseek")
	}

	return ai.NewClient(router,
		ai.WithTimeout(time.Duration(cfg.Generation.TimeoutSeconds)*time.Second),
		ai.WithRetries(cfg.Generation.Retries),
		ai.WithBackoff(time.Duration(cfg.Generation.BackoffSeconds)*time.Second),
	)
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
