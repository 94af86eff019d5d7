package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no snapshot exists under a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotKey names one of the fixed session snapshot slots.
type SnapshotKey string

const (
	// SnapshotKeyUser holds the current user snapshot.
	SnapshotKeyUser SnapshotKey = "user"
	// SnapshotKeyVehicle holds the active vehicle snapshot.
	SnapshotKeyVehicle SnapshotKey = "vehicle"
	// SnapshotKeyOrder holds the active order snapshot.
	SnapshotKeyOrder SnapshotKey = "order"
)

// StateStore persists small keyed JSON snapshots of session state so the
// current user, vehicle and order survive a restart. It is a cache-grade
// store, not a system of record.
type StateStore interface {
	// SaveSnapshot stores the payload under the key, replacing any previous
	// snapshot.
	SaveSnapshot(ctx context.Context, key SnapshotKey, payload []byte) error

	// LoadSnapshot retrieves the payload stored under the key.
	// Returns ErrSnapshotNotFound if the slot is empty.
	LoadSnapshot(ctx context.Context, key SnapshotKey) ([]byte, error)

	// ClearSnapshot removes the snapshot under the key. Clearing an empty
	// slot is not an error.
	ClearSnapshot(ctx context.Context, key SnapshotKey) error
}
