package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	ResultsSourceUnderstat = "understat"
	ResultsSourceMock      = "mock"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool

	DefaultSeason        string
	WorkerPoolSize       int
	OrchestrationTimeout time.Duration

	CacheBackend string
	CacheTTL     time.Duration
	RedisURL     string

	ResultsSource          string
	MockDataPath           string
	UnderstatBaseURL       string
	UnderstatTimeout       time.Duration
	UnderstatMaxConcurrent int
	MatchFetchDelay        time.Duration

	HighlightlyEnabled               bool
	HighlightlyBaseURL               string
	HighlightlyToken                 string
	HighlightlyTimeout               time.Duration
	HighlightlyCircuitEnabled        bool
	HighlightlyCircuitFailureCount   int
	HighlightlyCircuitOpenTimeout    time.Duration
	HighlightlyCircuitHalfOpenMaxReq int
	HighlightFetchDelay              time.Duration

	GeminiEnabled bool
	GeminiAPIKey  string
	GeminiModel   string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	PprofEnabled bool
	PprofAddr    string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:              appEnv,
		ServiceName:         strings.TrimSpace(getEnv("APP_SERVICE_NAME", "goals-api")),
		ServiceVersion:      strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:            strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:            logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DefaultSeason:       strings.TrimSpace(getEnv("DEFAULT_SEASON", "2024")),
		CacheBackend:        strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory))),
		RedisURL:            strings.TrimSpace(getEnv("REDIS_URL", "")),
		ResultsSource:       strings.ToLower(strings.TrimSpace(getEnv("RESULTS_SOURCE", ResultsSourceUnderstat))),
		MockDataPath:        strings.TrimSpace(getEnv("MOCK_DATA_PATH", "")),
		UnderstatBaseURL:    strings.TrimSpace(getEnv("UNDERSTAT_BASE_URL", "https://understat.com")),
		HighlightlyBaseURL:  strings.TrimSpace(getEnv("HIGHLIGHTLY_BASE_URL", "https://soccer.highlightly.net")),
		HighlightlyToken:    strings.TrimSpace(getEnv("HIGHLIGHTLY_TOKEN", "")),
		GeminiAPIKey:        strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:         strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.5-flash")),
		UptraceDSN:          strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		BetterStackEndpoint: strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", "")),
		BetterStackToken:    strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackMinLevel: logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),

		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"SWAGGER_ENABLED", swaggerDefault, &cfg.SwaggerEnabled},
		{"HIGHLIGHTLY_ENABLED", "false", &cfg.HighlightlyEnabled},
		{"HIGHLIGHTLY_CIRCUIT_ENABLED", "true", &cfg.HighlightlyCircuitEnabled},
		{"GEMINI_ENABLED", "false", &cfg.GeminiEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", "true", &cfg.UptraceLogsEnabled},
		{"BETTERSTACK_ENABLED", "false", &cfg.BetterStackEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
	}
	for _, b := range bools {
		v, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.dst = v
	}

	durations := []struct {
		key       string
		fallback  string
		dst       *time.Duration
		allowZero bool
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout, false},
		// Long enough for an uncached multi-league fetch.
		{"APP_WRITE_TIMEOUT", "16m", &cfg.WriteTimeout, false},
		{"APP_SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout, false},
		{"ORCHESTRATION_TIMEOUT", "15m", &cfg.OrchestrationTimeout, false},
		{"CACHE_TTL", "1h", &cfg.CacheTTL, false},
		{"UNDERSTAT_TIMEOUT", "20s", &cfg.UnderstatTimeout, false},
		{"MATCH_FETCH_DELAY", "300ms", &cfg.MatchFetchDelay, true},
		{"HIGHLIGHTLY_TIMEOUT", "15s", &cfg.HighlightlyTimeout, false},
		{"HIGHLIGHTLY_CIRCUIT_OPEN_TIMEOUT", "30s", &cfg.HighlightlyCircuitOpenTimeout, false},
		{"HIGHLIGHT_FETCH_DELAY", "100ms", &cfg.HighlightFetchDelay, true},
		{"BETTERSTACK_TIMEOUT", "3s", &cfg.BetterStackTimeout, false},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate, false},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if v < 0 || (v == 0 && !d.allowZero) {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = v
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"WORKER_POOL_SIZE", 8, &cfg.WorkerPoolSize},
		{"UNDERSTAT_MAX_CONCURRENT", 4, &cfg.UnderstatMaxConcurrent},
		{"HIGHLIGHTLY_CIRCUIT_FAILURE_COUNT", 5, &cfg.HighlightlyCircuitFailureCount},
		{"HIGHLIGHTLY_CIRCUIT_HALF_OPEN_MAX_REQ", 2, &cfg.HighlightlyCircuitHalfOpenMaxReq},
	}
	for _, i := range ints {
		v, err := getEnvAsInt(i.key, i.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", i.key, err)
		}
		if v < 1 {
			return Config{}, fmt.Errorf("%s must be >= 1", i.key)
		}
		*i.dst = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("APP_SERVICE_NAME cannot be empty")
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if len(c.DefaultSeason) != 4 {
		return fmt.Errorf("invalid DEFAULT_SEASON %q: expected a four digit year", c.DefaultSeason)
	}
	if _, err := strconv.Atoi(c.DefaultSeason); err != nil {
		return fmt.Errorf("invalid DEFAULT_SEASON %q: expected a four digit year", c.DefaultSeason)
	}

	switch c.CacheBackend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", c.CacheBackend, CacheBackendMemory, CacheBackendRedis)
	}

	switch c.ResultsSource {
	case ResultsSourceUnderstat:
		if c.UnderstatBaseURL == "" {
			return fmt.Errorf("UNDERSTAT_BASE_URL cannot be empty")
		}
	case ResultsSourceMock:
		if c.MockDataPath == "" {
			return fmt.Errorf("MOCK_DATA_PATH is required when RESULTS_SOURCE=mock")
		}
	default:
		return fmt.Errorf("invalid RESULTS_SOURCE %q: valid values are %s, %s", c.ResultsSource, ResultsSourceUnderstat, ResultsSourceMock)
	}

	if c.HighlightlyEnabled && c.HighlightlyToken == "" {
		return fmt.Errorf("HIGHLIGHTLY_TOKEN is required when HIGHLIGHTLY_ENABLED=true")
	}
	if c.GeminiEnabled && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when GEMINI_ENABLED=true")
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.BetterStackEnabled && c.BetterStackEndpoint == "" {
		return fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	if c.PyroscopeEnabled {
		if c.PyroscopeServerAddress == "" {
			return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
		}
		if c.PyroscopeAppName == "" {
			return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
		}
	}
	if c.PprofEnabled && c.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
