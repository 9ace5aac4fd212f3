package session

import (
	"context"
	"sync"
)

// Locker is an optional distributed lock, keyed by aggregate identifier, for
// multi-replica console deployments. The in-process map below is always
// consulted first; the Locker extends exclusivity across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Registry enforces the one-session-per-aggregate rule and owns session
// lifecycle. All handler access goes through it.
type Registry[T any] struct {
	mu       sync.Mutex
	locker   Locker
	sessions map[string]*Session[T]
}

// NewRegistry builds a registry. locker may be nil for single-replica runs.
func NewRegistry[T any](locker Locker) *Registry[T] {
	return &Registry[T]{
		locker:   locker,
		sessions: make(map[string]*Session[T]),
	}
}

// Begin opens a session for an aggregate, snapshotting the server copy.
// A second Begin for the same aggregate fails with ErrHeld until End is
// called.
//
// The map slot is reserved before the distributed lock is acquired so the
// registry mutex is never held across a network round-trip; unrelated
// aggregates stay unaffected by a slow lock service.
func (r *Registry[T]) Begin(ctx context.Context, aggregateID string, server T) (*Session[T], error) {
	s := Begin(aggregateID, server)

	r.mu.Lock()
	if _, exists := r.sessions[aggregateID]; exists {
		r.mu.Unlock()
		return nil, ErrHeld
	}
	r.sessions[aggregateID] = s
	r.mu.Unlock()

	if r.locker == nil {
		return s, nil
	}

	ok, err := r.locker.Acquire(ctx, aggregateID)
	if err == nil && !ok {
		err = ErrHeld
	}
	if err != nil {
		r.mu.Lock()
		delete(r.sessions, aggregateID)
		r.mu.Unlock()
		s.Close()
		return nil, err
	}
	return s, nil
}

// Get returns the open session for an aggregate, if any.
func (r *Registry[T]) Get(aggregateID string) (*Session[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[aggregateID]
	return s, ok
}

// End closes and removes a session and releases the distributed lock. A late
// save response resolving afterwards is discarded by the closed session.
func (r *Registry[T]) End(ctx context.Context, aggregateID string) error {
	r.mu.Lock()
	s, ok := r.sessions[aggregateID]
	if ok {
		delete(r.sessions, aggregateID)
	}
	r.mu.Unlock()

	if !ok {
		return nil
	}
	s.Close()
	if r.locker != nil {
		return r.locker.Release(ctx, aggregateID)
	}
	return nil
}
