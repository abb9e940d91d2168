package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/prkeeper/internal/cfg"
	"github.com/simplesurance/prkeeper/internal/logfields"
)

func newLogFmtLogger(config *cfg.Config, logLevel zapcore.Level, out io.Writer) *zap.Logger {
	return zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(zapEncoderConfig(config)),
		zapcore.AddSync(out),
		logLevel),
	)
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func newZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	return cfg.Build()
}

func newLogger(config *cfg.Config, verbose bool) (*zap.Logger, error) {
	var logLevel zapcore.Level
	if verbose {
		logLevel = zapcore.DebugLevel
	} else if err := (&logLevel).Set(config.LogLevel); err != nil {
		return nil, fmt.Errorf("can not set log level to %q: %w", config.LogLevel, err)
	}

	switch config.LogFormat {
	case "logfmt":
		return newLogFmtLogger(config, logLevel, os.Stdout), nil
	case "console", "json":
		return newZapFormatLogger(config, logLevel)
	default:
		return nil, fmt.Errorf("unsupported log-format: %q", config.LogFormat)
	}
}

func (a *App) mustInitLogger() {
	logger, err := newLogger(a.Config, *a.args.Verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	logger = logger.With(logfields.Job(a.Name), logfields.RunID(a.RunID))
	zap.ReplaceGlobals(logger)

	a.Logger = logger.Named("main")

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}
