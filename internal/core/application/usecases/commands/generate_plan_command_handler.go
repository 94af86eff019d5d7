package commands

import (
	"context"
	"log/slog"

	"neuroload/internal/core/domain/model/plan"
	"neuroload/internal/core/ports"
)

// GeneratePlanCommandHandler runs the optimization gateway workflow: one
// planner call per command, strict decoding of the response, cross-checking
// against the order's manifest and persisting the accepted plan.
//
// There is no internal retry. A rejected response surfaces as
// plan.ErrPlanGenerationFailed and nothing is stored; the previously stored
// plan, if any, stays in place. Route stops naming cities that are not on
// the manifest are logged and kept, since they do not affect dispatch.
type GeneratePlanCommandHandler struct {
	uowFactory    PlanUoWFactory
	plannerClient ports.PlannerClient
	logger        *slog.Logger
}

// NewGeneratePlanCommandHandler creates a handler for plan generation.
func NewGeneratePlanCommandHandler(
	uowFactory PlanUoWFactory,
	plannerClient ports.PlannerClient,
	logger *slog.Logger,
) GeneratePlanCommandHandler {
	return GeneratePlanCommandHandler{
		uowFactory:    uowFactory,
		plannerClient: plannerClient,
		logger:        logger,
	}
}

// Handle processes the generate plan command.
func (h *GeneratePlanCommandHandler) Handle(ctx context.Context, cmd GeneratePlanCommand) error {
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

	theOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	manifest := theOrder.Manifest()
	if err = manifest.Validate(); err != nil {
		return err
	}

	raw, err := h.plannerClient.GeneratePlan(ctx, manifest)
	if err != nil {
		return plan.NewGenerationError("planner call failed", err)
	}

	p, err := plan.Parse(raw)
	if err != nil {
		return err
	}
	if err = p.ValidateAgainst(manifest); err != nil {
		return err
	}

	if unknown := p.UnknownCities(manifest); len(unknown) > 0 {
		h.logger.WarnContext(ctx, "route plan names cities outside the manifest",
			"order_id", theOrder.ID().String(),
			"cities", unknown,
		)
	}

	if err = uow.PlanRepository().Save(ctx, theOrder.ID(), p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
