package out

import (
	"sync"

	notifyout "studyplan/internal/modules/notify/port/out"
)

// MemoryNotifiedStore is the volatile dedup set: it is scoped to the process
// on purpose, so a restart may re-announce sessions still inside the lead
// window.
type MemoryNotifiedStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryNotifiedStore() notifyout.NotifiedStore {
	return &MemoryNotifiedStore{seen: map[string]struct{}{}}
}

func (s *MemoryNotifiedStore) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

func (s *MemoryNotifiedStore) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = struct{}{}
}
