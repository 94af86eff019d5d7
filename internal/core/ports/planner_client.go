package ports

import (
	"context"

	"neuroload/internal/core/domain/model/cargo"
)

// PlannerClient is the outbound contract for the external optimization
// planner. It returns the raw response bytes; strict decoding and validation
// happen in the application core so that every client implementation is held
// to the same schema.
type PlannerClient interface {
	// GeneratePlan sends the manifest to the planner and returns the raw
	// JSON response. One call per invocation, no internal retry.
	GeneratePlan(ctx context.Context, manifest cargo.Manifest) ([]byte, error)
}
