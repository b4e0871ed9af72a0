package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"KnowledgeExtractor/internal/ports"
)

// ProseTagger assigns Penn-treebank part-of-speech tags via the prose
// library. The tagger model loads on first use inside prose and is
// shared by all calls.
type ProseTagger struct{}

var _ ports.Tagger = (*ProseTagger)(nil)

// NewProseTagger returns a ready tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag tags the token sequence. Entity extraction and sentence
// segmentation are disabled; only tagging runs.
func (t *ProseTagger) Tag(tokens []string) ([]ports.TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag tokens: %w", err)
	}

	tagged := make([]ports.TaggedToken, 0, len(tokens))
	for _, tok := range doc.Tokens() {
		tagged = append(tagged, ports.TaggedToken{Text: tok.Text, Tag: tok.Tag})
	}
	return tagged, nil
}
