package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging facade used across the engine.
type Logger interface {
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Debug(msg string, values ...any)
	Fatal(msg string, values ...any)
	Printf(format string, args ...interface{})
}

type zapLogger struct {
	log *zap.SugaredLogger
}

var global Logger = newNop()

// Init builds the global logger. Format is "json" or "console", level one of
// debug/info/warn/error.
func Init(level, format string) (Logger, error) {
	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	log, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	global = &zapLogger{log: log.Sugar()}
	return global, nil
}

func newNop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

// Get returns the global logger (a no-op logger until Init runs).
func Get() Logger {
	return global
}

func (l *zapLogger) Info(msg string, values ...any)  { l.log.Infow(msg, values...) }
func (l *zapLogger) Warn(msg string, values ...any)  { l.log.Warnw(msg, values...) }
func (l *zapLogger) Error(msg string, values ...any) { l.log.Errorw(msg, values...) }
func (l *zapLogger) Debug(msg string, values ...any) { l.log.Debugw(msg, values...) }

func (l *zapLogger) Fatal(msg string, values ...any) { l.log.Fatalw(msg, values...) }

func (l *zapLogger) Printf(format string, args ...interface{}) { l.log.Infof(format, args...) }

func Info(msg string, values ...any)  { global.Info(msg, values...) }
func Warn(msg string, values ...any)  { global.Warn(msg, values...) }
func Error(msg string, values ...any) { global.Error(msg, values...) }
func Debug(msg string, values ...any) { global.Debug(msg, values...) }
func Fatal(msg string, values ...any) { global.Fatal(msg, values...) }
