package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/goals-api/external/gemini"
	"github.com/riskibarqy/goals-api/external/highlightly"
	"github.com/riskibarqy/goals-api/external/mockdata"
	"github.com/riskibarqy/goals-api/external/understat"
	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/goals-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/goals-api/internal/platform/cache"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/platform/resilience"
	"github.com/riskibarqy/goals-api/internal/usecase"
)

// App is the assembled HTTP service plus the resources it owns.
type App struct {
	Server  *http.Server
	closers []func(context.Context) error
}

// Close releases the worker pool and external clients in reverse order of
// construction.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	fail := func(err error) (*App, error) {
		_ = a.Close(context.Background())
		return nil, err
	}

	store, err := newCache(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	}

	results, err := newResultsSource(cfg, logger)
	if err != nil {
		return fail(err)
	}

	highlights := newHighlightsSource(cfg, logger)

	completer, err := newTextCompleter(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	if client, ok := completer.(*gemini.Client); ok {
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	}

	pool, err := ants.NewPool(cfg.WorkerPoolSize, ants.WithPanicHandler(func(p any) {
		logger.Error("worker pool task panicked", "panic", p)
	}))
	if err != nil {
		return fail(fmt.Errorf("create worker pool: %w", err))
	}
	a.closers = append(a.closers, func(context.Context) error {
		pool.Release()
		return nil
	})

	leagueSvc := usecase.NewLeagueService(memory.NewLeagueRepository(memory.SeedLeagues()))
	fetcher := usecase.NewLeagueGoalsFetcher(results, cfg.MatchFetchDelay, logger.Named("fetcher"))
	enricher := usecase.NewHighlightEnricher(highlights, cfg.HighlightFetchDelay, logger.Named("enricher"))
	goalSvc := usecase.NewGoalService(
		leagueSvc,
		fetcher,
		enricher,
		store,
		pool,
		usecase.GoalServiceConfig{
			DefaultSeason:        cfg.DefaultSeason,
			OrchestrationTimeout: cfg.OrchestrationTimeout,
		},
		logger.Named("goals"),
	)
	highlightSvc := usecase.NewHighlightService(leagueSvc, highlights, store, logger.Named("highlights"))
	cacheSvc := usecase.NewCacheService(store)
	assistantSvc := usecase.NewAssistantService(completer)

	handler := httpapi.NewHandler(
		leagueSvc,
		goalSvc,
		highlightSvc,
		cacheSvc,
		assistantSvc,
		httpapi.ServiceInfo{Name: cfg.ServiceName, Version: cfg.ServiceVersion},
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func newCache(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheTTL, logger.Named("cache"))
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		logger.Info("response cache ready", "backend", config.CacheBackendRedis, "ttl", cfg.CacheTTL.String())
		return store, nil
	default:
		logger.Info("response cache ready", "backend", config.CacheBackendMemory, "ttl", cfg.CacheTTL.String())
		return cache.NewStore(cfg.CacheTTL), nil
	}
}

func newResultsSource(cfg config.Config, logger *logging.Logger) (usecase.ResultsSource, error) {
	switch cfg.ResultsSource {
	case config.ResultsSourceMock:
		source, err := mockdata.Load(cfg.MockDataPath)
		if err != nil {
			return nil, fmt.Errorf("load mock results: %w", err)
		}
		logger.Info("results source ready", "source", config.ResultsSourceMock, "path", cfg.MockDataPath)
		return source, nil
	default:
		logger.Info("results source ready", "source", config.ResultsSourceUnderstat, "base_url", cfg.UnderstatBaseURL)
		return understat.NewClient(understat.ClientConfig{
			BaseURL:       cfg.UnderstatBaseURL,
			Timeout:       cfg.UnderstatTimeout,
			MaxConcurrent: cfg.UnderstatMaxConcurrent,
			Logger:        logger.Named("understat"),
		}), nil
	}
}

// newHighlightsSource returns a nil interface when highlights are disabled
// so the usecases can report the dependency as unconfigured.
func newHighlightsSource(cfg config.Config, logger *logging.Logger) usecase.HighlightsSource {
	if !cfg.HighlightlyEnabled {
		logger.Info("highlights source disabled", "reason", "HIGHLIGHTLY_ENABLED=false")
		return nil
	}

	return highlightly.NewClient(highlightly.ClientConfig{
		BaseURL: cfg.HighlightlyBaseURL,
		Token:   cfg.HighlightlyToken,
		Timeout: cfg.HighlightlyTimeout,
		Logger:  logger.Named("highlightly"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.HighlightlyCircuitEnabled,
			FailureThreshold: cfg.HighlightlyCircuitFailureCount,
			OpenTimeout:      cfg.HighlightlyCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.HighlightlyCircuitHalfOpenMaxReq,
		},
	})
}

func newTextCompleter(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.TextCompleter, error) {
	if !cfg.GeminiEnabled {
		logger.Info("assistant disabled", "reason", "GEMINI_ENABLED=false")
		return nil, nil
	}

	client, err := gemini.NewClient(ctx, gemini.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}
