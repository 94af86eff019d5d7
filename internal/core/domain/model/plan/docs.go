// Package plan contains the optimization plan produced by the external
// planner for one order.
//
// A plan is immutable output: it is decoded strictly from the planner's JSON
// response, validated against the order's cargo manifest, stored, and then
// only read (for display, for the dispatch precondition, and for load
// placement classification). Because the producer is a generative model, the
// decoder trusts nothing: unknown fields, missing required fields and empty
// loading plans are all rejected as generation failures.
package plan
