// Package cargo contains the value objects describing what an order moves and
// under which conditions: packages, destination cities, truck constraints, and
// the what-if simulation scenario. Together they form the Manifest, the
// immutable optimization input frozen into an order at acceptance time.
package cargo
