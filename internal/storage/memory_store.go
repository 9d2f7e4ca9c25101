package storage

import "sync"

// MemoryStore keeps documents in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
	// SaveErr, when set, is returned by every Save. Tests use it to simulate
	// a failing backend.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.docs[key] = append([]byte(nil), data...)
	return nil
}

// Put seeds a raw document, bypassing SaveErr.
func (s *MemoryStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append([]byte(nil), data...)
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }
