package routecache

import (
	"sync"

	"github.com/kollektivlab/access/model"
)

// In memory implementation of Store below

type memoryKey struct {
	origin model.StopID
	opts   string
}

type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[memoryKey][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[memoryKey][]byte{}}
}

func (s *MemoryStore) Get(origin model.StopID, optionsKey string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[memoryKey{origin, optionsKey}]
	return blob, ok, nil
}

func (s *MemoryStore) Put(origin model.StopID, optionsKey string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[memoryKey{origin, optionsKey}] = blob
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
