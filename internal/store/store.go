// Package store is the application-state store shared by all handlers: the
// signed-in admin sessions, signed-out tokens and the per-kind trash counters
// shown as badges.
//
// State only changes through Dispatch with one of the typed actions below.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/fekuna/omnipos-backoffice/internal/auth"
)

type State struct {
	Sessions    map[string]auth.Session
	LastSeen    map[string]time.Time
	TrashCounts map[string]int
	// Revoked maps token digests to the time the token expires anyway.
	Revoked map[string]time.Time
}

func (s State) clone() State {
	return State{
		Sessions:    cloneMap(s.Sessions),
		LastSeen:    cloneMap(s.LastSeen),
		TrashCounts: cloneMap(s.TrashCounts),
		Revoked:     cloneMap(s.Revoked),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Action is a state transition.
type Action interface {
	apply(*State)
}

// SetSession records a session. A non-zero SeenAt also marks it active.
type SetSession struct {
	Session auth.Session
	SeenAt  time.Time
}

func (a SetSession) apply(s *State) {
	s.Sessions[a.Session.ID] = a.Session
	if !a.SeenAt.IsZero() {
		s.LastSeen[a.Session.ID] = a.SeenAt
	}
}

type EndSession struct{ ID string }

func (a EndSession) apply(s *State) {
	delete(s.Sessions, a.ID)
	delete(s.LastSeen, a.ID)
}

// RevokeToken refuses the token with the given digest until Until. A zero
// Until keeps it refused for the life of the process.
type RevokeToken struct {
	Digest string
	Until  time.Time
}

func (a RevokeToken) apply(s *State) { s.Revoked[a.Digest] = a.Until }

// PruneRevoked forgets revocations of tokens that have expired by Now.
type PruneRevoked struct{ Now time.Time }

func (a PruneRevoked) apply(s *State) {
	for digest, until := range s.Revoked {
		if !until.IsZero() && until.Before(a.Now) {
			delete(s.Revoked, digest)
		}
	}
}

// IncrementTrash adds one record to kind's trash counter.
type IncrementTrash struct{ Kind string }

func (a IncrementTrash) apply(s *State) { s.TrashCounts[a.Kind]++ }

// DecrementTrash removes one record from kind's trash counter, never below zero.
type DecrementTrash struct{ Kind string }

func (a DecrementTrash) apply(s *State) {
	if s.TrashCounts[a.Kind] > 0 {
		s.TrashCounts[a.Kind]--
	}
}

// SetTrashCount replaces a counter with a value fetched from the backend.
type SetTrashCount struct {
	Kind  string
	Count int
}

func (a SetTrashCount) apply(s *State) {
	if a.Count < 0 {
		a.Count = 0
	}
	s.TrashCounts[a.Kind] = a.Count
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func New() *Store {
	return &Store{state: State{
		Sessions:    map[string]auth.Session{},
		LastSeen:    map[string]time.Time{},
		TrashCounts: map[string]int{},
		Revoked:     map[string]time.Time{},
	}}
}

// Dispatch applies actions atomically, in order.
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		a.apply(&s.state)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) TrashCount(kind string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TrashCounts[kind]
}

func (s *Store) Session(id string) (auth.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.state.Sessions[id]
	return sess, ok
}

func (s *Store) Revoked(digest string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.state.Revoked[digest]
	return ok
}

// IdleSessions lists sessions last seen before the given time. Sessions that
// were never marked active are not listed.
func (s *Store) IdleSessions(before time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id, seen := range s.state.LastSeen {
		if seen.Before(before) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
