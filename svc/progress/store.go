package progress

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists progress records keyed by (user, article).
type Store interface {
	// Upsert inserts or replaces the record. CompletedAt is preserved when
	// the record was already done, set when it transitions into done, and
	// cleared otherwise.
	Upsert(ctx context.Context, userID uuid.UUID, articleID string, status Status) (Record, error)

	// CountDone returns how many of the given articles the user completed.
	CountDone(ctx context.Context, userID uuid.UUID, articleIDs []string) (int, error)

	// List returns all records for the user.
	List(ctx context.Context, userID uuid.UUID) ([]Record, error)
}

type recordKey struct {
	userID    uuid.UUID
	articleID string
}

// MemoryStore is an in-memory Store for local development and tests. It
// honors the same (user, article) uniqueness the SQL schema enforces.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]Record
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Upsert(_ context.Context, userID uuid.UUID, articleID string, status Status) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{userID: userID, articleID: articleID}
	now := s.now().UTC()

	rec := Record{
		UserID:    userID,
		ArticleID: articleID,
		Status:    status,
		UpdatedAt: now,
	}

	prev, existed := s.records[key]
	switch {
	case status == StatusDone && existed && prev.Status == StatusDone:
		rec.CompletedAt = prev.CompletedAt
	case status == StatusDone:
		rec.CompletedAt = &now
	}

	s.records[key] = rec
	return rec, nil
}

func (s *MemoryStore) CountDone(_ context.Context, userID uuid.UUID, articleIDs []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, id := range articleIDs {
		if rec, ok := s.records[recordKey{userID: userID, articleID: id}]; ok && rec.Status == StatusDone {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) List(_ context.Context, userID uuid.UUID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for key, rec := range s.records {
		if key.userID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}
