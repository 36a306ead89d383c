package status

import (
	"sort"
	"sync"

	"github.com/fxjung/pushover-watchdog/internal/domain"
)

// Store holds the latest observed status per target. Latest-only on purpose:
// the watchdog keeps no history.
type Store struct {
	mu sync.RWMutex
	m  map[string]domain.TargetStatus
}

func New() *Store {
	return &Store{m: make(map[string]domain.TargetStatus)}
}

// Set replaces the record for st.Name.
func (s *Store) Set(st domain.TargetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[st.Name] = st
}

// Get returns the record for name, if any.
func (s *Store) Get(name string) (domain.TargetStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[name]
	return st, ok
}

// List returns all records sorted by target name.
func (s *Store) List() []domain.TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TargetStatus, 0, len(s.m))
	for _, st := range s.m {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
