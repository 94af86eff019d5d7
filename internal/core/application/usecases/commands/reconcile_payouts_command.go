package commands

import (
	"errors"

	"neuroload/internal/pkg/guard"
)

var ErrReconcilePayoutsCommandIsNotConstructed = errors.New(
	"ReconcilePayoutsCommand must be created via NewReconcilePayoutsCommand constructor",
)

// ReconcilePayoutsCommand represents a sweep over delivered orders whose
// escrow release previously failed. Carries no parameters; the handler finds
// its own work.
type ReconcilePayoutsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcilePayoutsCommand creates a command to reconcile failed payouts.
func NewReconcilePayoutsCommand() ReconcilePayoutsCommand {
	return ReconcilePayoutsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePayoutsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePayoutsCommandIsNotConstructed)
}
