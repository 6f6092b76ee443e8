// Package memstore provides an in-memory room.Store, suitable for tests and
// single-process embeddings that don't need durability.
package memstore

import (
	"context"
	"sync"

	"github.com/lox/holdem-engine/room"
)

// Store keeps snapshots in a map guarded by a RWMutex. Snapshots are deep
// copied on the way in and out so callers never alias stored state.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*room.Snapshot
}

// New creates an empty store
func New() *Store {
	return &Store{rooms: make(map[string]*room.Snapshot)}
}

// Get returns the snapshot for id, or room.ErrNotFound
func (s *Store) Get(_ context.Context, id string) (*room.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return snap.Clone(), nil
}

// Set stores a copy of the snapshot under id
func (s *Store) Set(_ context.Context, id string, snapshot *room.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[id] = snapshot.Clone()
	return nil
}

// Delete removes the snapshot for id; deleting a missing id is a no-op
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
	return nil
}

// Len reports how many rooms are stored
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
