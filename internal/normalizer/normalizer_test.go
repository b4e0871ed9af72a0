package normalizer

import (
	"reflect"
	"testing"

	"KnowledgeExtractor/internal/domain"
)

func TestNormalizeCleanReply(t *testing.T) {
	t.Parallel()

	raw := `{"summary":"A short recap.","title":"Recap","topics":["go","testing","tools"],"sentiment":"positive"}`
	result := Normalize(raw)

	if result.Outcome != OutcomeParsed {
		t.Fatalf("expected parsed outcome, got %s (%v)", result.Outcome, result.Issues)
	}
	if result.Output.Summary != "A short recap." {
		t.Fatalf("unexpected summary: %s", result.Output.Summary)
	}
	if result.Output.Title == nil || *result.Output.Title != "Recap" {
		t.Fatalf("unexpected title: %v", result.Output.Title)
	}
	if result.Output.Topics != (domain.TopicTriple{"go", "testing", "tools"}) {
		t.Fatalf("unexpected topics: %v", result.Output.Topics)
	}
	if result.Output.Sentiment != domain.SentimentPositive {
		t.Fatalf("unexpected sentiment: %s", result.Output.Sentiment)
	}
}

func TestNormalizeProseWrappedReply(t *testing.T) {
	t.Parallel()

	raw := `Here you go: {"summary":"s","topics":["a","b"],"sentiment":"positive"} thanks`
	result := Normalize(raw)

	if result.Outcome != OutcomeRepaired {
		t.Fatalf("expected repaired outcome, got %s", result.Outcome)
	}
	if result.Output.Topics != (domain.TopicTriple{"a", "b", "general"}) {
		t.Fatalf("expected padded topics, got %v", result.Output.Topics)
	}
	if result.Output.Title != nil {
		t.Fatalf("expected absent title, got %v", *result.Output.Title)
	}
	if result.Output.Sentiment != domain.SentimentPositive {
		t.Fatalf("unexpected sentiment: %s", result.Output.Sentiment)
	}
}

func TestNormalizeGarbageYieldsFallback(t *testing.T) {
	t.Parallel()

	result := Normalize("I cannot help with that.")

	if result.Outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", result.Outcome)
	}
	if result.Output.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral sentiment, got %s", result.Output.Sentiment)
	}
	if result.Output.Topics != (domain.TopicTriple{"analysis", "error", "processing"}) {
		t.Fatalf("unexpected fallback topics: %v", result.Output.Topics)
	}
	if result.Output.Title != nil {
		t.Fatalf("expected absent title")
	}
}

func TestNormalizeTruncatesTopicsAndCoercesSentiment(t *testing.T) {
	t.Parallel()

	raw := `{"summary":"ok","topics":["x","y","z","w"],"sentiment":"angry"}`
	result := Normalize(raw)

	if result.Outcome != OutcomeRepaired {
		t.Fatalf("expected repaired outcome, got %s", result.Outcome)
	}
	if result.Output.Topics != (domain.TopicTriple{"x", "y", "z"}) {
		t.Fatalf("expected truncated topics, got %v", result.Output.Topics)
	}
	if result.Output.Sentiment != domain.SentimentNeutral {
		t.Fatalf("expected coerced neutral sentiment, got %s", result.Output.Sentiment)
	}
}

func TestNormalizeSubstitutesMissingFields(t *testing.T) {
	t.Parallel()

	result := Normalize(`{}`)

	if result.Outcome != OutcomeRepaired {
		t.Fatalf("expected repaired outcome, got %s", result.Outcome)
	}
	if result.Output.Summary != "Summary not available" {
		t.Fatalf("unexpected summary placeholder: %s", result.Output.Summary)
	}
	if result.Output.Topics != (domain.TopicTriple{"general", "content", "analysis"}) {
		t.Fatalf("unexpected sentinel topics: %v", result.Output.Topics)
	}
	if result.Output.Sentiment != domain.SentimentNeutral {
		t.Fatalf("unexpected sentiment: %s", result.Output.Sentiment)
	}
	if len(result.Issues) == 0 {
		t.Fatalf("expected recorded issues")
	}
}

func TestNormalizeStripsCodeFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"summary\":\"fenced\",\"topics\":[\"a\",\"b\",\"c\"],\"sentiment\":\"negative\"}\n```"
	result := Normalize(raw)

	if result.Outcome != OutcomeParsed {
		t.Fatalf("expected parsed outcome, got %s (%v)", result.Outcome, result.Issues)
	}
	if result.Output.Summary != "fenced" {
		t.Fatalf("unexpected summary: %s", result.Output.Summary)
	}
	if result.Output.Sentiment != domain.SentimentNegative {
		t.Fatalf("unexpected sentiment: %s", result.Output.Sentiment)
	}
}

func TestNormalizeNonArrayTopics(t *testing.T) {
	t.Parallel()

	result := Normalize(`{"summary":"s","topics":"golang","sentiment":"neutral"}`)

	if result.Output.Topics != (domain.TopicTriple{"general", "content", "analysis"}) {
		t.Fatalf("expected sentinel topics, got %v", result.Output.Topics)
	}
}

func TestFallbackIssuesAreRecorded(t *testing.T) {
	t.Parallel()

	result := Fallback("model call: timeout")
	if !reflect.DeepEqual(result.Issues, []string{"model call: timeout"}) {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
	if result.Outcome != OutcomeFallback {
		t.Fatalf("expected fallback outcome, got %s", result.Outcome)
	}
}
