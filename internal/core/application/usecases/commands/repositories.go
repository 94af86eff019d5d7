// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"neuroload/internal/core/ports"
)

// ErrPreconditionFailed is the unwrap target for rejected operations whose
// transition would be legal but whose business precondition does not hold.
// Distinct from an invalid transition: the order state is right, the world
// around it is not.
var ErrPreconditionFailed = errors.New("precondition failed")

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// EscrowRepoFactory provides access to the escrow ledger within a transaction.
	EscrowRepoFactory interface {
		EscrowRepository() ports.EscrowRepository
	}

	// PlanRepoFactory provides access to the plan repository within a transaction.
	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// VehicleUoW manages transactions for vehicle-only operations.
	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
	}

	// VehicleUoWFactory creates new vehicle unit of work instances.
	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// AcceptOrderUoW manages the acceptance transaction, which spans the
	// order, the accepting vehicle and the escrow ledger.
	AcceptOrderUoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		EscrowRepoFactory
	}

	// AcceptOrderUoWFactory creates new acceptance unit of work instances.
	AcceptOrderUoWFactory interface {
		Create() AcceptOrderUoW
	}

	// PlanUoW manages transactions touching an order and its stored plan.
	PlanUoW interface {
		TxManager
		OrderRepoFactory
		PlanRepoFactory
	}

	// PlanUoWFactory creates new plan unit of work instances.
	PlanUoWFactory interface {
		Create() PlanUoW
	}

	// PayoutUoW manages transactions touching an order, its escrow hold and
	// the vehicle freed on delivery.
	PayoutUoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		EscrowRepoFactory
	}

	// PayoutUoWFactory creates new payout unit of work instances.
	PayoutUoWFactory interface {
		Create() PayoutUoW
	}
)
