package commands

import (
	"context"
	"fmt"

	"neuroload/internal/pkg/keylock"
)

// ErrNoPlanForOrder is returned when dispatching an order that has no stored
// optimization plan.
var ErrNoPlanForOrder = fmt.Errorf("%w: no optimization plan stored for order", ErrPreconditionFailed)

// DispatchOrderCommandHandler moves an accepted order to IN_TRANSIT.
// A truck does not roll without a plan: the transition requires a stored
// optimization plan for the order.
type DispatchOrderCommandHandler struct {
	uowFactory PlanUoWFactory
	orderLocks *keylock.KeyedMutex
}

// NewDispatchOrderCommandHandler creates a handler for dispatch operations.
func NewDispatchOrderCommandHandler(
	uowFactory PlanUoWFactory,
	orderLocks *keylock.KeyedMutex,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
	}
}

// Handle processes the dispatch order command.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	theOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	hasPlan, err := uow.PlanRepository().ExistsForOrder(ctx, theOrder.ID())
	if err != nil {
		return err
	}
	if !hasPlan {
		return ErrNoPlanForOrder
	}

	if err = theOrder.Dispatch(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
