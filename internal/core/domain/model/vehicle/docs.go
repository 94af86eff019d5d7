// Package vehicle contains the Vehicle aggregate, the carrier-side capacity
// of the marketplace.
//
// A carrier registers a vehicle with its plate, capacity limits and owner.
// Before the vehicle can accept orders it must pass verification, which links
// the payout account used by the escrow provider. Availability is tracked
// with a small status machine (idle, busy, maintenance) so a vehicle never
// carries two orders at once.
package vehicle
