package domain

import "time"

// Word is a cached dictionary entry keyed by normalized lemma.
// The cache is authoritative once populated: a hit overrides whatever the
// model reported for gender and translations.
type Word struct {
	Lemma         string    `json:"lemma"`
	Gender        Gender    `json:"gender"`
	TranslationZh string    `json:"translation_zh"`
	TranslationEn string    `json:"translation_en"`
	Frequency     int       `json:"frequency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks the fields required for storage.
func (w Word) Validate() error {
	var errs []FieldError
	if NormalizeLemma(w.Lemma) == "" {
		errs = append(errs, FieldError{Field: "lemma", Message: "must not be empty"})
	}
	if !w.Gender.IsValid() {
		errs = append(errs, FieldError{Field: "gender", Message: "must be one of m, f, n, pl"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// WordStats holds aggregate dictionary counts, used for diagnostics only.
type WordStats struct {
	TotalWords int            `json:"total_words"`
	ByGender   map[Gender]int `json:"by_gender"`
}
