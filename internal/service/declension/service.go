// Package declension generates declension tables for German nouns via the
// LLM, with one owned correction: feminine genitive forms never carry a
// trailing "s", a systematic model error.
package declension

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/derdiedas/backend/internal/domain"
	"github.com/derdiedas/backend/internal/provider/llm"
)

const (
	systemPrompt = "German declension generator. Return only valid JSON."

	temperature = 0.2
)

var genderNames = map[domain.Gender]string{
	domain.GenderMasculine: "Maskulin (der)",
	domain.GenderFeminine:  "Feminin (die)",
	domain.GenderNeuter:    "Neutrum (das)",
	domain.GenderPlural:    "Plural (die)",
}

var fenceRE = regexp.MustCompile("```(?:json)?\n?")

// Input identifies the noun to decline. Original and Plural are accepted for
// wire compatibility but do not influence generation.
type Input struct {
	Lemma    string        `json:"lemma"`
	Gender   domain.Gender `json:"gender"`
	Original string        `json:"original"`
	Plural   bool          `json:"plural"`
}

// Service implements declension table generation.
type Service struct {
	log       *slog.Logger
	llm       llm.Provider
	maxTokens int
}

// NewService creates a new Declension service.
func NewService(logger *slog.Logger, provider llm.Provider, maxTokens int) *Service {
	return &Service{
		log:       logger.With("service", "declension"),
		llm:       provider,
		maxTokens: maxTokens,
	}
}

// Decline generates the four-case declension table for a noun.
func (s *Service) Decline(ctx context.Context, in Input) (*domain.DeclensionTable, error) {
	in.Lemma = strings.TrimSpace(in.Lemma)
	if in.Lemma == "" {
		return nil, domain.NewValidationError("lemma", "must not be empty")
	}
	if !in.Gender.IsValid() {
		return nil, domain.NewValidationError("gender", "must be one of m, f, n, pl")
	}

	prompt := fmt.Sprintf(`German noun declension for: %s (%s)
Return JSON: {"cases":[{"case":"nominativ/genitiv/dativ/akkusativ","article":"...","nounForm":"..."}]}`,
		in.Lemma, genderNames[in.Gender])

	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     []llm.Message{{Role: "user", Content: prompt}},
		Temperature:  temperature,
		MaxTokens:    s.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	table, err := parseTable(resp.Content)
	if err != nil {
		return nil, err
	}

	if in.Gender == domain.GenderFeminine {
		fixFeminineGenitive(table)
	}
	return table, nil
}

func parseTable(raw string) (*domain.DeclensionTable, error) {
	cleaned := strings.TrimSpace(fenceRE.ReplaceAllString(raw, ""))

	var table domain.DeclensionTable
	if err := json.Unmarshal([]byte(cleaned), &table); err != nil {
		start := strings.IndexByte(cleaned, '{')
		end := strings.LastIndexByte(cleaned, '}')
		if start < 0 || end <= start {
			return nil, fmt.Errorf("parse declension reply: %w", err)
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &table); err != nil {
			return nil, fmt.Errorf("parse declension reply: %w", err)
		}
	}
	if len(table.Cases) == 0 {
		return nil, fmt.Errorf("%w: model returned no declension cases", domain.ErrUnavailable)
	}
	return &table, nil
}

// fixFeminineGenitive strips a trailing "s" from the genitive noun form.
// Feminine nouns never take a genitive -s suffix in German.
func fixFeminineGenitive(table *domain.DeclensionTable) {
	gen := table.Genitiv()
	if gen == nil {
		return
	}
	gen.NounForm = strings.TrimSuffix(gen.NounForm, "s")
}
