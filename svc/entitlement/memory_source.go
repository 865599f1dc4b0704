package entitlement

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemorySource is an in-memory BillingSource for local development and
// tests. Records are copied on read and write so callers cannot mutate
// internal state.
type MemorySource struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{records: make(map[uuid.UUID]Record)}
}

// Lookup returns the stored record for userID, or (nil, nil) when absent.
func (s *MemorySource) Lookup(_ context.Context, userID uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

// Put stores or replaces the record for userID.
func (s *MemorySource) Put(userID uuid.UUID, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = rec
}

// Delete removes the record for userID.
func (s *MemorySource) Delete(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
}
