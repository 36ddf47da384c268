package server

import "sync"

// seenSet remembers the last cap event IDs, evicting oldest first.
type seenSet struct {
	mu    sync.Mutex
	cap   int
	ids   map[string]struct{}
	order []string
}

func newSeenSet(cap int) *seenSet {
	return &seenSet{cap: cap, ids: make(map[string]struct{}, cap)}
}

// Add records the ID and reports whether it was new.
func (s *seenSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	if len(s.order) > s.cap {
		delete(s.ids, s.order[0])
		s.order = s.order[1:]
	}
	return true
}
