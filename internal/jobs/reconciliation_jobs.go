package jobs

import (
	"context"
	"time"

	"traffic-fines-backend/internal/logger"
)

const reconcileTimeout = 10 * time.Minute

// ReconcileStores compares the fine store with the ledger and logs every
// discrepancy. Nothing is repaired.
func (jr *JobRunner) ReconcileStores() {
	jr.runWithRecovery("ReconcileStores", func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		report, err := jr.services.Reconciliation.Reconcile(ctx)
		if err != nil {
			logger.Error("Failed to reconcile fine and ledger stores", "error", err)
			return
		}

		if report.Clean() {
			logger.Info("Fine and ledger stores agree", "fines", report.FinesChecked, "ledger", report.LedgerChecked)
			return
		}
		logger.Warn("Fine and ledger stores disagree",
			"fines", report.FinesChecked,
			"ledger", report.LedgerChecked,
			"discrepancies", len(report.Discrepancies),
		)
	})
}
