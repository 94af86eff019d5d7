package commands

import (
	"context"
	"log/slog"

	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/core/domain/model/order"
	"neuroload/internal/core/ports"
	"neuroload/internal/pkg/keylock"
)

// ReconcilePayoutsCommandHandler retries escrow releases for delivered
// orders whose payout previously failed.
//
// Each order is settled in its own transaction under its own lock, so one
// stuck payout never blocks the rest of the sweep and the job never races a
// concurrent delivery completion. Individual failures are logged and left
// for the next sweep.
type ReconcilePayoutsCommandHandler struct {
	uowFactory     PayoutUoWFactory
	escrowProvider ports.EscrowProvider
	orderLocks     *keylock.KeyedMutex
	logger         *slog.Logger
}

// NewReconcilePayoutsCommandHandler creates a handler for payout reconciliation.
func NewReconcilePayoutsCommandHandler(
	uowFactory PayoutUoWFactory,
	escrowProvider ports.EscrowProvider,
	orderLocks *keylock.KeyedMutex,
	logger *slog.Logger,
) ReconcilePayoutsCommandHandler {
	return ReconcilePayoutsCommandHandler{
		uowFactory:     uowFactory,
		escrowProvider: escrowProvider,
		orderLocks:     orderLocks,
		logger:         logger,
	}
}

// Handle processes the reconcile payouts command.
func (h *ReconcilePayoutsCommandHandler) Handle(ctx context.Context, cmd ReconcilePayoutsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderIDs, err := h.listAwaitingPayout(ctx)
	if err != nil {
		return err
	}

	for _, orderID := range orderIDs {
		if err := h.settleOrder(ctx, orderID); err != nil {
			h.logger.WarnContext(ctx, "payout retry failed, keeping for next sweep",
				"order_id", orderID.String(),
				"error", err,
			)
		}
	}

	return nil
}

func (h *ReconcilePayoutsCommandHandler) listAwaitingPayout(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllAwaitingPayout(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

func (h *ReconcilePayoutsCommandHandler) settleOrder(ctx context.Context, orderID kernel.UUID) error {
	h.orderLocks.Lock(orderID.String())
	defer h.orderLocks.Unlock(orderID.String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	theOrder, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	// A concurrent delivery completion may have settled the payout between
	// the sweep listing and this lock.
	if theOrder.Status() != order.Delivered || theOrder.PaymentStatus() == order.PaymentReleased {
		return nil
	}

	hold, err := uow.EscrowRepository().GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	if err = h.escrowProvider.Release(ctx, hold.TransferID()); err != nil {
		return err
	}

	if err = hold.Release(); err != nil {
		return err
	}
	if err = theOrder.MarkPaymentReleased(); err != nil {
		return err
	}

	if err = uow.EscrowRepository().Update(ctx, hold); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "payout reconciled",
		"order_id", orderID.String(),
		"transfer_id", hold.TransferID(),
	)
	return nil
}
