package blob

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is the in-process blob store used by the in-memory runtime and
// tests. Deletes are counted so tests can assert that cascades release every
// stored file exactly once.
type MemoryStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	sequence uint64
	deletes  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Store(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	ref := fmt.Sprintf("blob-%d", s.sequence)
	s.blobs[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *MemoryStore) Fetch(_ context.Context, ref string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[ref]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[ref]; ok {
		delete(s.blobs, ref)
		s.deletes++
	}
	return nil
}

// Len reports how many blobs are currently stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Deletes reports how many stored blobs have been released.
func (s *MemoryStore) Deletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}
