// Package session implements edit sessions over server-owned aggregates: a
// retained snapshot of the last-known server copy plus a working copy local
// mutations apply to. The backend stays the source of truth; a session only
// tracks what has diverged locally and gates duplicate submissions.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNotDirty rejects a save when the working copy equals the snapshot.
	// No-op saves are refused here, before any network traffic.
	ErrNotDirty = errors.New("session: not dirty")

	// ErrSaveInFlight rejects a second save while one is outstanding.
	// Last-write-wins would silently drop the in-flight result.
	ErrSaveInFlight = errors.New("session: save already in flight")

	// ErrClosed rejects mutations on an ended session.
	ErrClosed = errors.New("session: closed")

	// ErrHeld rejects a second concurrent session for the same aggregate.
	ErrHeld = errors.New("session: aggregate already has an open session")
)

// Session tracks one edit session for one aggregate instance.
//
// Dirty is structural: the working copy is compared by value against the
// snapshot, not by reference. T must therefore be a plain data type
// (DeepEqual-comparable), which every aggregate document here is.
type Session[T any] struct {
	mu sync.Mutex

	aggregateID string

	snapshot T
	working  T

	saving bool
	closed bool
}

// Begin snapshots the last-known server copy and opens the session.
//
// Both copies are deep clones: aggregate documents carry pointer sections and
// slices, and the snapshot must stay untouched no matter what mutations hit
// the working copy. Cloning both sides through the same JSON round trip also
// normalizes them identically, so a fresh session is never spuriously dirty.
func Begin[T any](aggregateID string, server T) *Session[T] {
	return &Session[T]{
		aggregateID: aggregateID,
		snapshot:    clone(server),
		working:     clone(server),
	}
}

// clone deep-copies a document via JSON. T is a wire document by contract;
// a marshal failure here is a programming error.
func clone[T any](v T) T {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("session: document not cloneable: %v", err))
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("session: document not cloneable: %v", err))
	}
	return out
}

func (s *Session[T]) AggregateID() string { return s.aggregateID }

// Snapshot returns a copy of the retained server document. It only changes
// when a save resolves successfully.
func (s *Session[T]) Snapshot() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.snapshot)
}

// Working returns a copy of the current working document. Callers edit the
// copy and hand it back through Replace or Stage.
func (s *Session[T]) Working() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.working)
}

// Stage applies a local mutation to the working copy. The snapshot is never
// touched.
func (s *Session[T]) Stage(mutate func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.saving {
		return ErrSaveInFlight
	}
	mutate(&s.working)
	return nil
}

// Replace swaps the whole working copy, the document-level equivalent of
// Stage for callers that edit a full copy elsewhere.
func (s *Session[T]) Replace(working T) error {
	return s.Stage(func(w *T) { *w = working })
}

// Dirty reports whether the working copy has diverged from the snapshot.
func (s *Session[T]) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !reflect.DeepEqual(s.snapshot, s.working)
}

// Saving reports whether a save is outstanding.
func (s *Session[T]) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Cancel discards the working copy and restores the snapshot. The session
// stays open; ending it is the registry's job.
func (s *Session[T]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.saving {
		return ErrSaveInFlight
	}
	s.working = clone(s.snapshot)
	return nil
}

// BeginSave marks a save in flight and returns the working copy to submit.
// It fails fast when there is nothing to save or a save is already pending.
func (s *Session[T]) BeginSave() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if s.closed {
		return zero, ErrClosed
	}
	if s.saving {
		return zero, ErrSaveInFlight
	}
	if reflect.DeepEqual(s.snapshot, s.working) {
		return zero, ErrNotDirty
	}
	s.saving = true
	return clone(s.working), nil
}

// Resolve finishes the save started by BeginSave.
//
// On success the server's returned copy becomes both snapshot and working
// copy, so the session is clean. On failure the working copy is retained,
// edits are not lost, and the session stays dirty. Resolve after Close is a
// safe no-op: a response arriving for an abandoned session is discarded, not
// an error.
func (s *Session[T]) Resolve(saved T, saveErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.saving = false
	if saveErr != nil {
		return
	}
	s.snapshot = clone(saved)
	s.working = clone(saved)
}

// Close ends the session. Further mutations fail with ErrClosed; a late
// Resolve is discarded.
func (s *Session[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
