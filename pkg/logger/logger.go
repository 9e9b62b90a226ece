package logger

import (
	"context"
	"os"

	"github.com/PZavyalov/bank-account-service/internal/config"
	sqldblogger "github.com/simukti/sqldb-logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application logging interface. It also satisfies
// sqldblogger.Logger so the database driver can log every query
// through the same sink.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	// With returns a logger based off the root logger and decorated
	// with the given context and arguments.
	With(ctx context.Context, args ...interface{}) Logger

	// Log implements sqldblogger.Logger.
	Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{})

	Sync() error
}

type appLogger struct {
	*zap.SugaredLogger
}

// New creates a logger from the application configuration. Logs go to
// stderr; when a path is configured they go to a size-rotated file
// instead.
func New(cfg *config.Config) Logger {
	level := zap.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		level = parsed
	}

	var sink zapcore.WriteSyncer
	if cfg.Logger.Path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Path,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level)

	return &appLogger{zap.New(core, zap.AddCaller()).Sugar()}
}

// NewWithZap creates a logger backed by the given zap logger.
func NewWithZap(l *zap.Logger) Logger {
	return &appLogger{l.Sugar()}
}

func (l *appLogger) With(_ context.Context, args ...interface{}) Logger {
	if len(args) > 0 {
		return &appLogger{l.SugaredLogger.With(args...)}
	}
	return l
}

// Log implements sqldblogger.Logger, mapping driver levels onto zap.
func (l *appLogger) Log(_ context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	args := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}

	switch level {
	case sqldblogger.LevelError:
		l.Errorw(msg, args...)
	case sqldblogger.LevelInfo:
		l.Infow(msg, args...)
	default:
		l.Debugw(msg, args...)
	}
}
