// Package redisstate implements the session snapshot store on Redis.
// Snapshots are small JSON documents written on every session change; losing
// them costs convenience, not data, so no durability guarantees are layered
// on top of Redis itself.
package redisstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neuroload/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Store persists session snapshots in Redis under a fixed key prefix.
type Store struct {
	client *redis.Client
}

// NewStore creates a snapshot store and verifies the connection.
func NewStore(addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

// NewStoreWithClient wraps an existing client, used in tests.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func snapshotKey(key ports.SnapshotKey) string {
	return fmt.Sprintf("neuroload:snapshot:%s", key)
}

// SaveSnapshot stores the payload under the key, replacing any previous snapshot.
func (s *Store) SaveSnapshot(ctx context.Context, key ports.SnapshotKey, payload []byte) error {
	return s.client.Set(ctx, snapshotKey(key), payload, 0).Err()
}

// LoadSnapshot retrieves the payload stored under the key.
func (s *Store) LoadSnapshot(ctx context.Context, key ports.SnapshotKey) ([]byte, error) {
	data, err := s.client.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

// ClearSnapshot removes the snapshot under the key. Clearing an empty slot
// is not an error.
func (s *Store) ClearSnapshot(ctx context.Context, key ports.SnapshotKey) error {
	return s.client.Del(ctx, snapshotKey(key)).Err()
}
