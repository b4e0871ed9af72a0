package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/ports"
)

// MemoryRepository keeps records in process memory. Used when no
// database path is configured and across the test suite.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []domain.StoredRecord
}

var _ ports.RecordStore = (*MemoryRepository)(nil)

// NewMemoryRepository returns an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save appends the record and returns its assigned id.
func (r *MemoryRepository) Save(_ context.Context, originalText string, record domain.KnowledgeRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.records = append(r.records, domain.StoredRecord{
		ID:           id,
		OriginalText: originalText,
		Record:       record,
	})
	return id, nil
}

// All returns stored records newest first; a non-positive limit means
// no limit.
func (r *MemoryRepository) All(_ context.Context, limit int) ([]domain.StoredRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StoredRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// CountsBySentiment tallies the full record set.
func (r *MemoryRepository) CountsBySentiment(_ context.Context) (map[domain.Sentiment]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[domain.Sentiment]int{}
	for _, rec := range r.records {
		counts[rec.Record.Sentiment]++
	}
	return counts, nil
}
