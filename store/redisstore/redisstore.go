// Package redisstore provides a Redis-backed room.Store. Snapshots are
// marshalled to JSON under "room:<id>" keys with a configurable TTL so
// abandoned rooms age out on their own.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lox/holdem-engine/room"
)

const keyPrefix = "room:"

// DefaultTTL is applied when no TTL is configured
const DefaultTTL = 2 * time.Hour

// Store persists room snapshots in Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a store on top of an existing Redis client. A zero ttl uses
// DefaultTTL; a negative ttl disables expiry.
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store{client: client, ttl: ttl}
}

// Get loads the snapshot for id, or room.ErrNotFound
func (s *Store) Get(ctx context.Context, id string) (*room.Snapshot, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, room.ErrNotFound
		}
		return nil, err
	}

	var snap room.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", id, err)
	}

	return &snap, nil
}

// Set stores the snapshot under id, refreshing the TTL
func (s *Store) Set(ctx context.Context, id string, snapshot *room.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", id, err)
	}

	return s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err()
}

// Delete removes the snapshot for id; deleting a missing id is a no-op
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
