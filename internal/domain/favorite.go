package domain

import "time"

// Favorite is a word the user saved to their vocabulary list.
// Original preserves the surface form from the text it was saved from.
type Favorite struct {
	Lemma     string    `json:"lemma"`
	Gender    Gender    `json:"gender"`
	Original  string    `json:"original"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields required for storage.
func (f Favorite) Validate() error {
	var errs []FieldError
	if NormalizeLemma(f.Lemma) == "" {
		errs = append(errs, FieldError{Field: "lemma", Message: "must not be empty"})
	}
	if !f.Gender.IsValid() {
		errs = append(errs, FieldError{Field: "gender", Message: "must be one of m, f, n, pl"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
