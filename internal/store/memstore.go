package store

import (
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Storer for testing.
type MemStore struct {
	mu          sync.RWMutex
	extractions map[string]*Extraction
	cases       map[string]*Case
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		extractions: make(map[string]*Extraction),
		cases:       make(map[string]*Case),
	}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

// =============================================================================
// Extraction CRUD
// =============================================================================

func (s *MemStore) UpsertExtraction(e *Extraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid mutation issues
	copy := *e
	s.extractions[e.ID] = &copy
	return nil
}

func (s *MemStore) GetExtraction(id string) (*Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.extractions[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, nil
}

func (s *MemStore) DeleteExtraction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.extractions, id)
	return nil
}

func (s *MemStore) ListExtractions(url string) ([]*Extraction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Extraction
	for _, e := range s.extractions {
		if url == "" || e.URL == url {
			copy := *e
			result = append(result, &copy)
		}
	}

	// Same order as SQLiteStore
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *MemStore) CountExtractions() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.extractions), nil
}

// =============================================================================
// Case CRUD
// =============================================================================

func (s *MemStore) UpsertCase(c *Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *c
	s.cases[c.ID] = &copy
	return nil
}

func (s *MemStore) GetCase(id string) (*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.cases[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, nil
}

func (s *MemStore) ListCases(positive bool) ([]*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Case
	for _, c := range s.cases {
		if c.Positive == positive {
			copy := *c
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt < result[j].CreatedAt
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (s *MemStore) CountCases() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases), nil
}
