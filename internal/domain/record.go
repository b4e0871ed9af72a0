package domain

import "time"

// Sentiment enumerates the tones the generation step may assign.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether the sentiment is one of the known values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// TopicCount is the fixed arity of a record's topic list.
const TopicCount = 3

// TopicTriple holds exactly three topics; the shape is fixed at the
// normalization boundary so downstream code never re-checks it.
type TopicTriple [TopicCount]string

// Slice returns the triple as a plain slice for serialization.
func (t TopicTriple) Slice() []string {
	return []string{t[0], t[1], t[2]}
}

// GenerationOutput is the repaired shape of a model reply. Transient:
// it only exists between normalization and record assembly.
type GenerationOutput struct {
	Summary   string
	Title     *string
	Topics    TopicTriple
	Sentiment Sentiment
}

// KnowledgeRecord is the persisted unit produced by one analysis.
// Immutable once assembled; corrections create a new record.
type KnowledgeRecord struct {
	Summary   string    `json:"summary"`
	Title     *string   `json:"title"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredRecord pairs a persisted record with the text that produced it,
// which the keyword search also matches against.
type StoredRecord struct {
	ID           string
	OriginalText string
	Record       KnowledgeRecord
}

// SearchCriteria filters stored records; zero-valued fields mean "any".
type SearchCriteria struct {
	Keyword   string
	Sentiment Sentiment
	Limit     int
}

// StatsSnapshot is recomputed from the full record set on every call.
type StatsSnapshot struct {
	TotalCount         int               `json:"total_count"`
	SentimentHistogram map[Sentiment]int `json:"sentiment_histogram"`
}
