// Package services provides domain services that implement business logic
// spanning multiple domain entities of the marketplace. It hosts workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - LoadPlacementClassifier: partitions a loading plan into coarse
//     physical truck zones for presentation
package services
