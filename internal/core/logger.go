// AngelaMos | 2026
// logger.go

package core

import (
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/carterperez-dev/site-atlas/internal/config"
)

// NewLogger builds the process logger: slog in front, a zap core behind
// it. Output goes to stdout and, when cfg.File is set, to a rotated file.
// The returned func flushes buffered entries.
func NewLogger(cfg config.LogConfig) (*slog.Logger, func() error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var stdoutEnc zapcore.Encoder
	if cfg.Format == "json" {
		stdoutEnc = zapcore.NewJSONEncoder(encCfg)
	} else {
		stdoutEnc = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEnc, zapcore.Lock(os.Stdout), level),
	}

	if cfg.File != "" {
		sink := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(sink),
			level,
		))
	}

	core := zapcore.NewTee(cores...)
	z := zap.New(core)
	zap.ReplaceGlobals(z)

	handler := zapslog.NewHandler(core, zapslog.WithCaller(true))

	return slog.New(handler), z.Sync
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
