package observability

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/riskibarqy/goals-api/internal/config"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// BuildLogger writes JSON logs to w and fans out to Better Stack and the
// OpenTelemetry log pipeline when those are enabled. Call InitUptrace first
// so the global log provider is in place.
func BuildLogger(cfg config.Config, w io.Writer) (*logging.Logger, func(context.Context) error, error) {
	if w == nil {
		w = os.Stdout
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(logging.EncoderConfig()), zapcore.Lock(zapcore.AddSync(w)), cfg.LogLevel),
	}
	closers := []func(context.Context) error{}

	if cfg.BetterStackEnabled {
		core, closeFn, err := newBetterStackCore(cfg)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, core)
		closers = append(closers, closeFn)
	}
	if otelLogsEnabled(cfg) {
		cores = append(cores, newOTelLogCore(cfg.ServiceVersion, cfg.LogLevel))
	}

	logger := logging.FromZap(zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	))

	return logger, func(ctx context.Context) error {
		var errs []error
		for _, closeFn := range closers {
			errs = append(errs, closeFn(ctx))
		}
		if err := logger.Sync(); err != nil && !isIgnorableLoggerSyncError(err) {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}, nil
}
