package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"token-swap/config"
)

// New builds the application logger: human-readable lines on stderr at the configured
// level, plus JSON lines in a rotating file when cfg.File is set.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	return newLogger(cfg, verbose, os.Stderr)
}

func newLogger(cfg config.LogConfig, verbose bool, console io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.TimeKey = ""
	consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), zapcore.AddSync(console), level),
	}

	if cfg.File != "" {
		fileLogger := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,  // Megabytes
			MaxBackups: cfg.MaxBackups, // Number of backups
			MaxAge:     cfg.MaxAgeDays, // Days
			Compress:   true,
		}

		// The file always keeps debug detail regardless of the console level
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(fileLogger),
			zapcore.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
