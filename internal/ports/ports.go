package ports

import (
	"context"

	"KnowledgeExtractor/internal/domain"
)

// Generator obtains the model's raw textual reply for a piece of input.
// The reply is untrusted; normalization happens downstream.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// TaggedToken pairs a token with its part-of-speech tag (Penn treebank
// style: NN, NNS, NNP, NNPS, VB, ...).
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger assigns part-of-speech tags to an already filtered token
// sequence. Implementations load their model once at construction.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// RecordStore persists knowledge records and answers bulk reads. The
// store owns id assignment and insertion-time consistency. All returns
// records newest first; a non-positive limit means no limit.
type RecordStore interface {
	Save(ctx context.Context, originalText string, record domain.KnowledgeRecord) (string, error)
	All(ctx context.Context, limit int) ([]domain.StoredRecord, error)
	CountsBySentiment(ctx context.Context) (map[domain.Sentiment]int, error)
}
