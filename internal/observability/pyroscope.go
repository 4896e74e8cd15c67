package observability

import (
	"context"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

// LeagueProfileLabel is the pprof label that splits profiles per league task.
const LeagueProfileLabel = "league"

// InitPyroscope starts continuous profiling when enabled.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscopeConfig(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"results_source", cfg.ResultsSource,
		"cache_backend", cfg.CacheBackend,
	)

	return profiler.Stop, nil
}

// pyroscopeConfig tags profiles with the data source and cache backend so a
// scrape-bound understat deployment can be told apart from a mock one.
// Heap profiles stay on for the cached league payloads; mutex and block
// profiles cover the worker pool and the single-flight cache.
func pyroscopeConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":            cfg.AppEnv,
			"service":        cfg.ServiceName,
			"version":        cfg.ServiceVersion,
			"results_source": cfg.ResultsSource,
			"cache_backend":  cfg.CacheBackend,
			"default_season": cfg.DefaultSeason,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	}
}

// ProfileLeague runs fn with the league key attached as a profiling label.
func ProfileLeague(ctx context.Context, leagueKey string, fn func(ctx context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels(LeagueProfileLabel, leagueKey), fn)
}
