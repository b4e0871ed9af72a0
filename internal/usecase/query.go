package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/ports"
)

// DefaultSearchLimit applies when the caller omits or misuses limit.
const DefaultSearchLimit = 10

// QueryEngine answers filtered lookups and aggregate statistics over
// the full record set of a store.
type QueryEngine struct {
	store ports.RecordStore
}

// NewQueryEngine wires the record store the engine reads from.
func NewQueryEngine(store ports.RecordStore) *QueryEngine {
	return &QueryEngine{store: store}
}

// Search filters the stored records by the criteria and returns them
// most recent first, truncated to the limit.
func (q *QueryEngine) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.KnowledgeRecord, error) {
	if q.store == nil {
		return nil, fmt.Errorf("record store is not configured")
	}

	all, err := q.store.All(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	return Filter(all, criteria), nil
}

// Stats recomputes the total count and per-sentiment histogram from
// the store on every call.
func (q *QueryEngine) Stats(ctx context.Context) (domain.StatsSnapshot, error) {
	if q.store == nil {
		return domain.StatsSnapshot{}, fmt.Errorf("record store is not configured")
	}

	counts, err := q.store.CountsBySentiment(ctx)
	if err != nil {
		return domain.StatsSnapshot{}, fmt.Errorf("count records: %w", err)
	}

	snapshot := domain.StatsSnapshot{SentimentHistogram: map[domain.Sentiment]int{}}
	for sentiment, n := range counts {
		snapshot.SentimentHistogram[sentiment] = n
		snapshot.TotalCount += n
	}
	return snapshot, nil
}

// Filter applies the criteria to an in-memory record set: keyword is a
// case-insensitive substring match over original text, summary, topics,
// and keywords; sentiment is an exact match; both AND-combined.
func Filter(records []domain.StoredRecord, criteria domain.SearchCriteria) []domain.KnowledgeRecord {
	limit := criteria.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	keyword := strings.ToLower(strings.TrimSpace(criteria.Keyword))

	matched := make([]domain.StoredRecord, 0, len(records))
	for _, rec := range records {
		if keyword != "" && !matchesKeyword(rec, keyword) {
			continue
		}
		if criteria.Sentiment != "" && rec.Record.Sentiment != criteria.Sentiment {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Record.CreatedAt.After(matched[j].Record.CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	results := make([]domain.KnowledgeRecord, 0, len(matched))
	for _, rec := range matched {
		results = append(results, rec.Record)
	}
	return results
}

func matchesKeyword(rec domain.StoredRecord, keyword string) bool {
	if strings.Contains(strings.ToLower(rec.OriginalText), keyword) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Record.Summary), keyword) {
		return true
	}
	for _, topic := range rec.Record.Topics {
		if strings.Contains(strings.ToLower(topic), keyword) {
			return true
		}
	}
	for _, kw := range rec.Record.Keywords {
		if strings.Contains(strings.ToLower(kw), keyword) {
			return true
		}
	}
	return false
}
