// Package observability builds the structured logger shared by the binaries.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/stdquest/internal/config"
)

// NewLogger assembles a zap logger from cfg. Entries go to cfg.File when set,
// which keeps an interactive transcript free of log lines, and to stderr
// otherwise.
//
// Precondition: cfg.Level is one of "debug", "info", "warn", "error" and
// cfg.Format is "json" or "console".
// Postcondition: Returns a logger named "stdquest" or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	enc, err := encoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	sink := zapcore.Lock(os.Stderr)
	if cfg.File != "" {
		out, _, err := zap.Open(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("opening log file %q: %w", cfg.File, err)
		}
		sink = out
	}

	core := zapcore.NewCore(enc, sink, level)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(sink)).Named("stdquest"), nil
}

func encoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), nil
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ForPlayer tags logger with the player and save slot.
func ForPlayer(logger *zap.Logger, playerID, slot string) *zap.Logger {
	return logger.With(zap.String("player_id", playerID), zap.String("slot", slot))
}
