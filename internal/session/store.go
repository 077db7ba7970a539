// Package session owns the filter state of each visitor for the lifetime of
// the process.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poku-e/championdex/internal/filter"
)

// State is one visitor's filter state for both page variants.
type State struct {
	Single filter.Single
	Multi  filter.Multi
}

func NewState() State {
	return State{Single: filter.NewSingle(), Multi: filter.NewMulti()}
}

// ErrStale reports an update older than one already applied.
var ErrStale = errors.New("stale update")

// Stamp orders the updates sent by one loaded page. Page identifies the page
// load; Seq grows with every request it sends. The zero Stamp is never stale.
type Stamp struct {
	Page string
	Seq  int64
}

type entry struct {
	state   State
	touched time.Time
	last    Stamp
}

type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{items: map[string]entry{}, now: time.Now}
}

// Get returns the state for id, or a fresh state when id is unknown.
// The second result reports whether id was known. Reading a known state
// counts as activity for Sweep.
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return NewState(), false
	}
	e.touched = s.now()
	s.items[id] = e
	return e.state, true
}

// Create registers a fresh state and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry{state: NewState(), touched: s.now()}
	return id
}

// Update replaces the state of id with fn's result. When fn fails the
// stored state is left as it was. Unknown ids start from a fresh state.
func (s *Store) Update(id string, fn func(State) (State, error)) (State, error) {
	return s.Apply(id, Stamp{}, fn)
}

// Apply is Update guarded by st: when st comes from the same page as the
// last applied stamp but is not newer, fn is not called and ErrStale is
// returned with the current state. A stamp from another page load is
// always accepted.
func (s *Store) Apply(id string, st Stamp, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[id]
	if !ok {
		cur.state = NewState()
	}
	if st.Page != "" && st.Page == cur.last.Page && st.Seq <= cur.last.Seq {
		return cur.state, ErrStale
	}
	next, err := fn(cur.state)
	if err != nil {
		return cur.state, err
	}
	last := cur.last
	if st.Page != "" {
		last = st
	}
	s.items[id] = entry{state: next, touched: s.now(), last: last}
	return next, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep drops states idle for longer than ttl and returns how many went.
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.items {
		if e.touched.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Janitor sweeps every interval until ctx is done.
func (s *Store) Janitor(ctx context.Context, ttl, interval time.Duration, onSweep func(int)) {
	if ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = ttl / 2
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(ttl); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
