package observability

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestPyroscopeConfig_TagsDeployment(t *testing.T) {
	t.Parallel()

	cfg := pyroscopeConfig(config.Config{
		AppEnv:           config.EnvProd,
		ServiceName:      "goals-api",
		ServiceVersion:   "1.2.3",
		ResultsSource:    config.ResultsSourceUnderstat,
		CacheBackend:     config.CacheBackendRedis,
		DefaultSeason:    "2024",
		PyroscopeAppName: "goals-api",
	})

	require.Equal(t, "goals-api", cfg.ApplicationName)
	require.Equal(t, map[string]string{
		"env":            config.EnvProd,
		"service":        "goals-api",
		"version":        "1.2.3",
		"results_source": config.ResultsSourceUnderstat,
		"cache_backend":  config.CacheBackendRedis,
		"default_season": "2024",
	}, cfg.Tags)
	require.Contains(t, cfg.ProfileTypes, pyroscope.ProfileMutexDuration)
	require.Contains(t, cfg.ProfileTypes, pyroscope.ProfileInuseSpace)
}

func TestProfileLeague_LabelsContext(t *testing.T) {
	t.Parallel()

	var got string
	var ok bool
	ProfileLeague(context.Background(), "epl", func(ctx context.Context) {
		got, ok = pprof.Label(ctx, LeagueProfileLabel)
	})
	if !ok || got != "epl" {
		t.Fatalf("expected league label epl, got %q (present=%v)", got, ok)
	}
}
