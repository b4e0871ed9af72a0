package keywords

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"KnowledgeExtractor/internal/ports"
)

// DefaultCount is how many keywords an analysis asks for.
const DefaultCount = 3

var (
	urlExpr        = regexp.MustCompile(`https?://\S+`)
	emailExpr      = regexp.MustCompile(`\S+@\S+`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
	wordExpr       = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// nounTags are the part-of-speech tags retained as keyword candidates.
var nounTags = map[string]struct{}{
	"NN": {}, "NNS": {}, "NNP": {}, "NNPS": {},
}

// sentinelKeywords is returned when every strategy comes up empty.
var sentinelKeywords = []string{"text", "content", "analysis"}

// Extractor ranks the most frequent nouns in a text. It never fails:
// when tagging is unavailable it degrades to plain frequency counting,
// and as a last resort returns a fixed sentinel sequence.
type Extractor struct {
	tagger    ports.Tagger
	stopWords map[string]struct{}
	logger    *slog.Logger
}

// NewExtractor wires the tagger and stop-word set. A nil tagger sends
// every extraction down the frequency fallback; nil stop words select
// the default English set.
func NewExtractor(tagger ports.Tagger, stopWords map[string]struct{}, logger *slog.Logger) *Extractor {
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return &Extractor{tagger: tagger, stopWords: stopWords, logger: logger}
}

// Extract returns up to count keywords for the text, best effort.
func (e *Extractor) Extract(text string, count int) []string {
	if count <= 0 {
		count = DefaultCount
	}

	tokens := e.filteredTokens(text)
	if len(tokens) == 0 {
		return e.fallback(text, count)
	}

	if e.tagger == nil {
		return e.fallback(text, count)
	}

	tagged, err := e.tagger.Tag(tokens)
	if err != nil {
		e.debug("tagger failed, using frequency fallback", "error", err)
		return e.fallback(text, count)
	}

	var nouns []string
	for _, tok := range tagged {
		if _, ok := nounTags[tok.Tag]; ok {
			nouns = append(nouns, tok.Text)
		}
	}

	selected := topByFrequency(nouns, count)

	// Widen to all filtered tokens when nouns alone cannot fill count.
	if len(selected) < count {
		chosen := make(map[string]struct{}, len(selected))
		for _, w := range selected {
			chosen[w] = struct{}{}
		}
		for _, w := range topByFrequency(tokens, count*2) {
			if len(selected) == count {
				break
			}
			if _, ok := chosen[w]; ok {
				continue
			}
			chosen[w] = struct{}{}
			selected = append(selected, w)
		}
	}

	if len(selected) == 0 {
		return e.fallback(text, count)
	}
	return selected
}

// filteredTokens cleans and tokenizes the text, dropping stop words and
// tokens shorter than three letters.
func (e *Extractor) filteredTokens(text string) []string {
	cleaned := urlExpr.ReplaceAllString(text, "")
	cleaned = emailExpr.ReplaceAllString(cleaned, "")
	cleaned = whitespaceExpr.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(strings.ToLower(cleaned))

	var tokens []string
	for _, tok := range wordExpr.FindAllString(cleaned, -1) {
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// fallback counts plain word frequency over the raw text, skipping a
// small generic stop list; a fixed sentinel covers the empty case.
func (e *Extractor) fallback(text string, count int) []string {
	var words []string
	for _, w := range wordExpr.FindAllString(strings.ToLower(text), -1) {
		if _, stop := fallbackStopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	ranked := topByFrequency(words, count)
	if len(ranked) == 0 {
		return append([]string(nil), sentinelKeywords...)
	}
	return ranked
}

// topByFrequency ranks words by descending count; ties keep
// first-occurrence order so results are deterministic.
func topByFrequency(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}

	counts := make(map[string]int, len(words))
	firstSeen := make(map[string]int, len(words))
	var distinct []string
	for i, w := range words {
		if _, ok := counts[w]; !ok {
			firstSeen[w] = i
			distinct = append(distinct, w)
		}
		counts[w]++
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return firstSeen[distinct[i]] < firstSeen[distinct[j]]
	})

	if len(distinct) > count {
		distinct = distinct[:count]
	}
	return distinct
}

func (e *Extractor) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
