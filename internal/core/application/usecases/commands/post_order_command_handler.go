package commands

import (
	"context"

	"neuroload/internal/core/domain/model/order"
)

// PostOrderCommandHandler handles the business logic for posting an order to
// the marketplace. The order starts in PENDING status with no payment; the
// escrow hold is created later, at acceptance.
type PostOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPostOrderCommandHandler creates a handler for order posting operations.
func NewPostOrderCommandHandler(uowFactory OrderUoWFactory) PostOrderCommandHandler {
	return PostOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the post order command inside a transaction.
func (h *PostOrderCommandHandler) Handle(ctx context.Context, cmd PostOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ShipperID(),
		cmd.Price(),
		cmd.FuelCostEstimate(),
		cmd.TollsEstimate(),
		cmd.Manifest(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
