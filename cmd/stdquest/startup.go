package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/game/content"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
)

// checkContent logs every finding in report and refuses to start on errors
// unless allowErrors is set.
func checkContent(report content.Report, allowErrors bool, logger *zap.Logger) error {
	for _, w := range report.Warnings {
		logger.Warn("content warning", zap.String("detail", w))
	}
	for _, e := range report.Errors {
		logger.Error("content error", zap.String("detail", e))
	}
	if report.OK() || allowErrors {
		return nil
	}
	return fmt.Errorf("%d content errors; fix them or pass -allow-content-errors", len(report.Errors))
}

// loadProgress opens the saved record. A store that cannot be read leaves the
// player on a fresh record for this session; later saves report their own
// failures in game.
func loadProgress(ctx context.Context, store progress.Store, d progress.Defaults, logger *zap.Logger) *progress.Progress {
	p, err := progress.Open(ctx, store, d, logger)
	if err != nil {
		logger.Warn("saved progress unreadable, continuing with a fresh record", zap.Error(err))
	}
	return p
}
