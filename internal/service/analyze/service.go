// Package analyze implements text analysis: it sends German text to the LLM,
// parses the reply defensively, merges cached dictionary entries over the
// model's output, and anchors every noun and article to a unique position in
// the source text.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/derdiedas/backend/internal/domain"
	"github.com/derdiedas/backend/internal/provider/llm"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type dictionary interface {
	LookupBatch(ctx context.Context, lemmas []string) (map[string]domain.Word, error)
	Upsert(ctx context.Context, w domain.Word) error
	RecordUsage(ctx context.Context, lemma string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Event is one message in an analysis stream. Partial events carry a text
// fragment as it arrives from the model; the final event carries either
// Result or Err, never both, and no events follow it.
type Event struct {
	Partial string
	Result  *domain.Analysis
	Err     error
}

// Service implements the analysis pipeline.
type Service struct {
	log           *slog.Logger
	llm           llm.Provider
	dict          dictionary
	maxTextLength int
	maxTokens     int
}

// NewService creates a new Analyze service. maxTextLength of 0 disables the
// input length limit; maxTokens of 0 uses the provider default.
func NewService(logger *slog.Logger, provider llm.Provider, dict dictionary, maxTextLength, maxTokens int) *Service {
	return &Service{
		log:           logger.With("service", "analyze"),
		llm:           provider,
		dict:          dict,
		maxTextLength: maxTextLength,
		maxTokens:     maxTokens,
	}
}

func (s *Service) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.NewValidationError("text", "must not be empty")
	}
	if s.maxTextLength > 0 && len(text) > s.maxTextLength {
		return domain.NewValidationError("text", fmt.Sprintf("must not exceed %d bytes", s.maxTextLength))
	}
	return nil
}

// AnalyzeStream starts a streaming analysis of text. The returned channel
// emits a Partial event per model fragment, then exactly one terminal event
// (Result or Err) and is closed. Cancelling ctx abandons the stream; the
// partial buffer is discarded.
func (s *Service) AnalyzeStream(ctx context.Context, text string) (<-chan Event, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	chunks, err := s.llm.StreamCompletion(ctx, completionRequest(text, s.maxTokens))
	if err != nil {
		return nil, fmt.Errorf("start completion: %w", err)
	}

	events := make(chan Event)
	go s.consume(ctx, text, chunks, events)
	return events, nil
}

// Analyze is the non-streaming variant: one blocking model call, same
// pipeline, same result.
func (s *Service) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	resp, err := s.llm.Complete(ctx, completionRequest(text, s.maxTokens))
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	return s.assemble(ctx, text, resp.Content), nil
}

func (s *Service) consume(ctx context.Context, text string, chunks <-chan llm.Chunk, events chan<- Event) {
	defer close(events)

	emit := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var buf strings.Builder
	for chunk := range chunks {
		if chunk.FinishReason == llm.FinishReasonError {
			emit(Event{Err: errors.New(chunk.Text)})
			return
		}
		if chunk.Text == "" {
			continue
		}
		buf.WriteString(chunk.Text)
		if !emit(Event{Partial: chunk.Text}) {
			return
		}
	}
	if ctx.Err() != nil {
		return
	}

	emit(Event{Result: s.assemble(ctx, text, buf.String())})
}

// assemble turns the model's full reply into the final position-ordered
// result: parse, merge cached dictionary entries, align nouns then articles
// over one shared span set, warm the cache with what survived alignment.
func (s *Service) assemble(ctx context.Context, text, reply string) *domain.Analysis {
	nouns, articles := parseResponse(reply)
	nouns = s.mergeDictionary(ctx, nouns)

	var used spanSet
	alignedNouns, droppedNouns := alignNouns(nouns, text, &used)
	alignedArticles, droppedArticles := alignArticles(articles, text, &used)

	dropped := droppedNouns + droppedArticles
	if dropped > 0 {
		s.log.Debug("alignment dropped records",
			slog.Int("nouns", droppedNouns),
			slog.Int("articles", droppedArticles),
		)
	}

	s.warmCache(ctx, alignedNouns)

	return &domain.Analysis{
		Nouns:    alignedNouns,
		Articles: alignedArticles,
		Dropped:  dropped,
	}
}

// mergeDictionary overrides model-reported fields with cached entries. The
// cache is authoritative for gender once populated; translations override
// only when the cached value is non-empty. A failing lookup degrades to
// model-only output, it never aborts the analysis.
func (s *Service) mergeDictionary(ctx context.Context, nouns []domain.Noun) []domain.Noun {
	if len(nouns) == 0 {
		return nouns
	}

	lemmas := make([]string, 0, len(nouns))
	for _, n := range nouns {
		if n.Lemma != "" {
			lemmas = append(lemmas, n.Lemma)
		}
	}
	cached, err := s.dict.LookupBatch(ctx, lemmas)
	if err != nil {
		s.log.Warn("dictionary lookup failed, using model output only", slog.Any("error", err))
		return nouns
	}

	for i := range nouns {
		entry, ok := cached[domain.NormalizeLemma(nouns[i].Lemma)]
		if !ok {
			continue
		}
		nouns[i].Gender = entry.Gender
		if entry.TranslationZh != "" {
			nouns[i].TranslationZh = entry.TranslationZh
		}
		if entry.TranslationEn != "" {
			nouns[i].TranslationEn = entry.TranslationEn
		}
		if err := s.dict.RecordUsage(ctx, nouns[i].Lemma); err != nil {
			s.log.Warn("recording word usage failed",
				slog.String("lemma", nouns[i].Lemma),
				slog.Any("error", err),
			)
		}
	}
	return nouns
}

// warmCache upserts every aligned noun that carries a lemma and a valid
// gender, regardless of whether it was a cache hit. Write failures are
// logged and ignored.
func (s *Service) warmCache(ctx context.Context, nouns []domain.Noun) {
	for _, n := range nouns {
		if n.Lemma == "" || !n.Gender.IsValid() {
			continue
		}
		w := domain.Word{
			Lemma:         n.Lemma,
			Gender:        n.Gender,
			TranslationZh: n.TranslationZh,
			TranslationEn: n.TranslationEn,
		}
		if err := s.dict.Upsert(ctx, w); err != nil {
			s.log.Warn("cache warm-up failed",
				slog.String("lemma", n.Lemma),
				slog.Any("error", err),
			)
		}
	}
}
