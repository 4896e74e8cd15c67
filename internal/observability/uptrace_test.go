package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "goals-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EmptyDSN(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: true,
		UptraceDSN:     "  ",
		ServiceName:    "goals-api",
	}

	shutdown, err := InitUptrace(cfg, nil)
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestOTelLogsEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{name: "all set", cfg: config.Config{UptraceEnabled: true, UptraceLogsEnabled: true, UptraceDSN: "https://token@api.uptrace.dev?grpc=4317"}, want: true},
		{name: "logs off", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}, want: false},
		{name: "no dsn", cfg: config.Config{UptraceEnabled: true, UptraceLogsEnabled: true}, want: false},
		{name: "disabled", cfg: config.Config{UptraceLogsEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}, want: false},
	}
	for _, tc := range cases {
		if got := otelLogsEnabled(tc.cfg); got != tc.want {
			t.Fatalf("%s: otelLogsEnabled()=%v, want %v", tc.name, got, tc.want)
		}
	}
}
