package keywords

// englishStopWords is the standard English stop-word list plus a small
// set of modal/reporting verbs that make poor keywords.
var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can't",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "her", "here", "here's", "hers",
	"herself", "him", "himself", "his", "how", "how's", "i", "i'd", "i'll",
	"i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its",
	"itself", "let's", "me", "more", "most", "mustn't", "my", "myself",
	"no", "nor", "not", "of", "off", "on", "once", "only", "or", "other",
	"ought", "our", "ours", "ourselves", "out", "over", "own", "same",
	"shan't", "she", "she'd", "she'll", "she's", "shouldn't", "so", "some",
	"such", "than", "that", "that's", "the", "their", "theirs", "them",
	"themselves", "then", "there", "there's", "these", "they", "they'd",
	"they'll", "they're", "they've", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "wasn't", "we", "we'd",
	"we'll", "we're", "we've", "were", "weren't", "what", "what's", "when",
	"when's", "where", "where's", "which", "while", "who", "who's", "whom",
	"why", "why's", "with", "won't", "wouldn't", "you", "you'd", "you'll",
	"you're", "you've", "your", "yours", "yourself", "yourselves",
}

// reportingVerbs are appended to the stop set; frequent in news-like
// prose but never useful as extracted keywords.
var reportingVerbs = []string{
	"said", "says", "would", "could", "should", "will", "can", "may", "might",
}

// DefaultStopWords builds the stop-word set used when the caller does
// not supply one.
func DefaultStopWords() map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopWords)+len(reportingVerbs))
	for _, w := range englishStopWords {
		set[w] = struct{}{}
	}
	for _, w := range reportingVerbs {
		set[w] = struct{}{}
	}
	return set
}

// fallbackStopWords is the smaller generic list used by the
// frequency-only fallback path.
var fallbackStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "its": {}, "may": {}, "new": {},
	"now": {}, "old": {}, "see": {}, "two": {}, "way": {}, "who": {},
	"boy": {}, "did": {}, "man": {}, "men": {}, "put": {}, "say": {},
	"she": {}, "too": {}, "use": {},
}
