// Package order contains the Order aggregate, the canonical shipment
// lifecycle of the marketplace.
//
// An order is posted by a shipper with a frozen cargo manifest and a price,
// accepted by a carrier together with an escrow hold, dispatched onto its
// route and finally delivered. Status models the strictly forward-moving
// lifecycle and PaymentStatus mirrors the escrow outcome of each step.
//
// All state changes go through validated methods on the aggregate, so an
// Order loaded from anywhere in the system always satisfies its invariants.
package order
