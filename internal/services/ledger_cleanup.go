package services

import (
	"time"

	"go.uber.org/zap"
)

// LedgerCleaner drops settled reminder records.
type LedgerCleaner interface {
	Cleanup(olderThan time.Time) (int, error)
}

// LedgerCleanupJob returns a job removing records settled longer than retention ago.
func LedgerCleanupJob(cleaner LedgerCleaner, retention time.Duration, logger *zap.Logger) func() {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func() {
		removed, err := cleaner.Cleanup(time.Now().Add(-retention))
		if err != nil {
			logger.Error("ledger cleanup failed", zap.Error(err))
			return
		}
		logger.Info("ledger cleanup finished", zap.Int("removed", removed))
	}
}
