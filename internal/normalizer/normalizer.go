package normalizer

import (
	"encoding/json"
	"strings"

	"KnowledgeExtractor/internal/domain"
)

// Outcome records which path produced a normalized result. The public
// contract always yields a valid GenerationOutput; the outcome exists
// for logging and metrics only.
type Outcome string

const (
	OutcomeParsed   Outcome = "parsed"
	OutcomeRepaired Outcome = "repaired"
	OutcomeFallback Outcome = "fallback"
)

// Result is a normalized generation plus how it was obtained.
type Result struct {
	Output  domain.GenerationOutput
	Outcome Outcome
	Issues  []string
}

const summaryPlaceholder = "Summary not available"

// fallbackSummary is used when the model reply cannot be parsed at all,
// or when the model call itself failed upstream.
const fallbackSummary = "Unable to generate summary due to processing error."

var (
	repairedTopics = domain.TopicTriple{"general", "content", "analysis"}
	fallbackTopics = domain.TopicTriple{"analysis", "error", "processing"}
)

// rawGeneration mirrors the JSON shape the model is asked for. All
// fields are loosely typed so a malformed reply still decodes as far
// as possible before repair.
type rawGeneration struct {
	Summary   *string         `json:"summary"`
	Title     *string         `json:"title"`
	Topics    json.RawMessage `json:"topics"`
	Sentiment *string         `json:"sentiment"`
}

// Normalize turns a raw model reply into a structurally valid
// generation output. Total: every input, including garbage, maps to a
// well-formed result.
func Normalize(rawModelText string) Result {
	candidate := extractJSONCandidate(rawModelText)

	var raw rawGeneration
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return Fallback("parse: " + err.Error())
	}

	out := domain.GenerationOutput{Sentiment: domain.SentimentNeutral}
	var issues []string

	if raw.Summary != nil {
		out.Summary = *raw.Summary
	} else {
		out.Summary = summaryPlaceholder
		issues = append(issues, "summary missing")
	}

	// Title may legitimately be absent; absence is never an issue.
	out.Title = raw.Title

	topics, topicIssue := repairTopics(raw.Topics)
	out.Topics = topics
	if topicIssue != "" {
		issues = append(issues, topicIssue)
	}

	if raw.Sentiment != nil && domain.Sentiment(*raw.Sentiment).Valid() {
		out.Sentiment = domain.Sentiment(*raw.Sentiment)
	} else {
		issues = append(issues, "sentiment missing or invalid")
	}

	outcome := OutcomeParsed
	if len(issues) > 0 {
		outcome = OutcomeRepaired
	}
	return Result{Output: out, Outcome: outcome, Issues: issues}
}

// Fallback is the fixed record substituted when parsing fails or the
// model call itself errored.
func Fallback(issue string) Result {
	return Result{
		Output: domain.GenerationOutput{
			Summary:   fallbackSummary,
			Title:     nil,
			Topics:    fallbackTopics,
			Sentiment: domain.SentimentNeutral,
		},
		Outcome: OutcomeFallback,
		Issues:  []string{issue},
	}
}

// extractJSONCandidate strips markdown fences and slices between the
// first '{' and the last '}', tolerating prose around the object. When
// no bounded region exists the whole string is returned and left for
// the parser to reject.
func extractJSONCandidate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}

// repairTopics coerces whatever the model sent into exactly three
// topics: non-arrays become the sentinel triple, short arrays pad with
// "general", long arrays truncate.
func repairTopics(raw json.RawMessage) (domain.TopicTriple, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return repairedTopics, "topics missing"
	}

	var topics []string
	if err := json.Unmarshal(raw, &topics); err != nil {
		return repairedTopics, "topics not a string array"
	}

	if len(topics) == domain.TopicCount {
		return domain.TopicTriple{topics[0], topics[1], topics[2]}, ""
	}

	issue := "topics padded"
	if len(topics) > domain.TopicCount {
		issue = "topics truncated"
	}
	var triple domain.TopicTriple
	for i := 0; i < domain.TopicCount; i++ {
		if i < len(topics) {
			triple[i] = topics[i]
		} else {
			triple[i] = "general"
		}
	}
	return triple, issue
}
