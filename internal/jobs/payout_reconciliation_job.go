package jobs

import (
	"context"
	"log/slog"

	"neuroload/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationSchedule runs the sweep every minute. Payout retries hit
// the real escrow provider, so the cadence is deliberately coarser than a
// per-second tick.
const reconciliationSchedule = "0 * * * * *"

// PayoutReconciliationJob periodically retries escrow releases for
// delivered orders whose payout previously failed.
type PayoutReconciliationJob struct {
	handler commands.ReconcilePayoutsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPayoutReconciliationJob creates the payout reconciliation job.
func NewPayoutReconciliationJob(
	handler commands.ReconcilePayoutsCommandHandler,
	logger *slog.Logger,
) *PayoutReconciliationJob {
	return &PayoutReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payout_reconciliation_job"),
	}
}

// Start begins the reconciliation sweep on its schedule.
func (j *PayoutReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcilePayoutsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Payout reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payout reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *PayoutReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payout reconciliation job stopped")
}
