package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/derdiedas/backend/internal/domain"
)

// importRecord is the loosely-typed shape of one entry in any supported
// dictionary dataset. The per-format field aliases are folded here:
//
//	array format:        {lemma, gender, translation_zh, translation_en}
//	object format:       {"Hund": {gender, translation_zh, translation_en}}
//	skywind format:      {"Hund": {translation, gender}}       (translation is Chinese)
//	hathibelagal format: {"Hund": {en, gender}}
type importRecord struct {
	Lemma         string `json:"lemma"`
	Gender        string `json:"gender"`
	TranslationZh string `json:"translation_zh"`
	TranslationEn string `json:"translation_en"`
	Translation   string `json:"translation"`
	En            string `json:"en"`
}

func (r importRecord) toWord(lemma string) (domain.Word, bool) {
	gender := domain.Gender(strings.ToLower(strings.TrimSpace(r.Gender)))
	if !gender.IsValid() {
		return domain.Word{}, false
	}
	zh := r.TranslationZh
	if zh == "" {
		zh = r.Translation
	}
	en := r.TranslationEn
	if en == "" {
		en = r.En
	}
	w := domain.Word{
		Lemma:         domain.NormalizeLemma(lemma),
		Gender:        gender,
		TranslationZh: zh,
		TranslationEn: en,
	}
	if w.Lemma == "" {
		return domain.Word{}, false
	}
	return w, true
}

// ImportJSON loads a dictionary dataset in any of the supported JSON formats,
// upserting all valid entries in one transaction. Entries missing a lemma or a
// valid gender are skipped, not errors. Returns the number of words imported.
func (s *Service) ImportJSON(ctx context.Context, data []byte) (int, error) {
	words, err := decodeDataset(data)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, nil
	}

	n, err := s.words.UpsertBatch(ctx, words)
	if err != nil {
		return 0, fmt.Errorf("import words: %w", err)
	}

	s.log.Info("dictionary import complete", slog.Int("imported", n))
	return n, nil
}

func decodeDataset(data []byte) ([]domain.Word, error) {
	// Array format carries the lemma inside each record.
	var records []importRecord
	if err := json.Unmarshal(data, &records); err == nil {
		words := make([]domain.Word, 0, len(records))
		for _, r := range records {
			if w, ok := r.toWord(r.Lemma); ok {
				words = append(words, w)
			}
		}
		return words, nil
	}

	// All object formats key records by lemma.
	var byLemma map[string]importRecord
	if err := json.Unmarshal(data, &byLemma); err != nil {
		return nil, fmt.Errorf("unsupported dictionary format: %w", err)
	}
	words := make([]domain.Word, 0, len(byLemma))
	for lemma, r := range byLemma {
		if w, ok := r.toWord(lemma); ok {
			words = append(words, w)
		}
	}
	return words, nil
}
