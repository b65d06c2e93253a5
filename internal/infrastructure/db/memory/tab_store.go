// Package memory keeps browser namespaces in process memory. It is meant for
// development and tests; entries are lost on restart and are not shared
// between portal instances.
package memory

import (
	"context"
	"sync"
	"time"
)

type namespace struct {
	entries map[string]string
	locks   map[string]time.Time
	touched time.Time
}

// TabStore is an in-memory ports.TabStore and ports.Locker.
type TabStore struct {
	mu        sync.Mutex
	spaces    map[string]*namespace
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewTabStore returns an empty store. Namespaces untouched for idleTTL are
// dropped, either when next looked up or by the sweep that runs at most once
// per idleTTL when a namespace is created. Zero keeps them until restart.
func NewTabStore(idleTTL time.Duration) *TabStore {
	return &TabStore{
		spaces:  make(map[string]*namespace),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (s *TabStore) GetAll(_ context.Context, ns string, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(keys))
	space := s.lookup(ns)
	if space == nil {
		return out, nil
	}
	for _, k := range keys {
		if v, ok := space.entries[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *TabStore) SetAll(_ context.Context, ns string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.ensure(ns)
	for k, v := range entries {
		space.entries[k] = v
	}
	return nil
}

func (s *TabStore) Remove(_ context.Context, ns string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.lookup(ns)
	if space == nil {
		return nil
	}
	for _, k := range keys {
		delete(space.entries, k)
	}
	return nil
}

func (s *TabStore) Ping(context.Context) error { return nil }

func (s *TabStore) Acquire(_ context.Context, ns, name string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.ensure(ns)
	now := s.now()
	if until, held := space.locks[name]; held && now.Before(until) {
		return false, nil
	}
	space.locks[name] = now.Add(ttl)
	return true, nil
}

func (s *TabStore) Release(_ context.Context, ns, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if space := s.lookup(ns); space != nil {
		delete(space.locks, name)
	}
	return nil
}

// lookup returns the live namespace, dropping it first when idle too long.
// Callers hold s.mu.
func (s *TabStore) lookup(ns string) *namespace {
	space, ok := s.spaces[ns]
	if !ok {
		return nil
	}
	now := s.now()
	if s.idleTTL > 0 && now.Sub(space.touched) > s.idleTTL {
		delete(s.spaces, ns)
		return nil
	}
	space.touched = now
	return space
}

func (s *TabStore) ensure(ns string) *namespace {
	if space := s.lookup(ns); space != nil {
		return space
	}
	s.sweep()
	space := &namespace{
		entries: make(map[string]string),
		locks:   make(map[string]time.Time),
		touched: s.now(),
	}
	s.spaces[ns] = space
	return space
}

// sweep drops every idle namespace. Callers hold s.mu.
func (s *TabStore) sweep() {
	if s.idleTTL <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < s.idleTTL {
		return
	}
	s.lastSweep = now
	for ns, space := range s.spaces {
		if now.Sub(space.touched) > s.idleTTL {
			delete(s.spaces, ns)
		}
	}
}
