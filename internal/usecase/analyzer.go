package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"KnowledgeExtractor/internal/domain"
	"KnowledgeExtractor/internal/keywords"
	"KnowledgeExtractor/internal/normalizer"
	"KnowledgeExtractor/internal/ports"
)

// ErrEmptyText rejects blank input before the pipeline runs.
var ErrEmptyText = fmt.Errorf("text cannot be empty")

// AnalyzerDeps wires the driven adapters into the analysis pipeline.
type AnalyzerDeps struct {
	Generator ports.Generator
	Extractor *keywords.Extractor
	Store     ports.RecordStore
	Logger    *slog.Logger
	Now       func() time.Time
}

// Analyzer implements the text-analysis workflow: generate, normalize,
// extract keywords, assemble, persist.
type Analyzer struct {
	generator ports.Generator
	extractor *keywords.Extractor
	store     ports.RecordStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalyzer constructs the orchestration component.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		generator: deps.Generator,
		extractor: deps.Extractor,
		store:     deps.Store,
		logger:    deps.Logger,
		now:       now,
	}
}

// Analyze runs the full pipeline for one text and returns the stored
// record. Only empty input and store failures surface as errors; model
// and tagger failures degrade inside their components.
func (a *Analyzer) Analyze(ctx context.Context, text string) (domain.KnowledgeRecord, error) {
	if strings.TrimSpace(text) == "" {
		return domain.KnowledgeRecord{}, ErrEmptyText
	}

	result := a.generate(ctx, text)
	if result.Outcome != normalizer.OutcomeParsed {
		a.debug("generation normalized with repairs",
			"outcome", string(result.Outcome), "issues", strings.Join(result.Issues, "; "))
	}

	var kws []string
	if a.extractor != nil {
		kws = a.extractor.Extract(text, keywords.DefaultCount)
	}

	record := Assemble(result.Output, kws, a.now())

	if a.store != nil {
		id, err := a.store.Save(ctx, text, record)
		if err != nil {
			return domain.KnowledgeRecord{}, fmt.Errorf("save record: %w", err)
		}
		a.debug("record saved", "id", id, "sentiment", string(record.Sentiment))
	}

	return record, nil
}

// generate calls the model and normalizes its reply. A transport
// failure collapses into the same fallback as an unparseable reply.
func (a *Analyzer) generate(ctx context.Context, text string) normalizer.Result {
	if a.generator == nil {
		return normalizer.Fallback("no generator configured")
	}

	raw, err := a.generator.Generate(ctx, text)
	if err != nil {
		a.debug("model call failed", "error", err)
		return normalizer.Fallback("model call: " + err.Error())
	}

	return normalizer.Normalize(raw)
}

// Assemble merges a normalized generation with extracted keywords into
// an immutable knowledge record stamped at the given instant. Pure:
// both inputs are trusted to be already normalized.
func Assemble(gen domain.GenerationOutput, kws []string, at time.Time) domain.KnowledgeRecord {
	return domain.KnowledgeRecord{
		Summary:   gen.Summary,
		Title:     gen.Title,
		Topics:    gen.Topics.Slice(),
		Sentiment: gen.Sentiment,
		Keywords:  append([]string(nil), kws...),
		CreatedAt: at,
	}
}

func (a *Analyzer) debug(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
