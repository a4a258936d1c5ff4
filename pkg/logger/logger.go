package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string
	Environment string
	ServiceName string
}

// InitLogger builds the service logger and installs it as the zap global
func InitLogger(config *LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if config.Environment == "production" {
		// Production logger configuration
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		// Development logger configuration with colors and human-friendly output
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stdout"}

	log, err := cfg.Build(zap.Fields(
		zap.String("service", config.ServiceName),
		zap.String("environment", config.Environment),
	))
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}

// GetLogger returns the global logger instance, a no-op logger until InitLogger ran
func GetLogger() *zap.Logger {
	return zap.L()
}

type ctxKey struct{}

// echoKey is the echo context key holding the request logger
const echoKey = "logger"

// FromContext returns the request logger stored by Attach, or the global one
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}

// WithContext returns ctx carrying log
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Attach makes log the request logger for both the echo handlers and the
// services called with the request context
func Attach(c echo.Context, log *zap.Logger) {
	c.Set(echoKey, log)
	c.SetRequest(c.Request().WithContext(WithContext(c.Request().Context(), log)))
}

// FromEcho returns the request logger of c
func FromEcho(c echo.Context) *zap.Logger {
	if log, ok := c.Get(echoKey).(*zap.Logger); ok {
		return log
	}
	return FromContext(c.Request().Context())
}
