package domain

// Noun is one noun extracted from a source text, anchored to a unique byte
// offset within it. Position is assigned by the aligner; records the aligner
// could not place never leave the analysis pipeline.
type Noun struct {
	Original      string `json:"original"`
	Lemma         string `json:"lemma"`
	Gender        Gender `json:"gender"`
	Plural        bool   `json:"plural"`
	TranslationZh string `json:"translation_zh"`
	TranslationEn string `json:"translation_en"`
	Position      int    `json:"position"`
}

// Article is a definite/indefinite article occurrence ("der", "dem", "des", ...)
// with the gender of the noun it modifies.
type Article struct {
	Original string `json:"original"`
	Gender   Gender `json:"gender"`
	Position int    `json:"position"`
}

// Analysis is the final, position-ordered result of analyzing one text.
type Analysis struct {
	Nouns    []Noun    `json:"nouns"`
	Articles []Article `json:"articles"`

	// Dropped counts records the aligner discarded because no free span
	// matched them. Diagnostic only, not part of the wire contract.
	Dropped int `json:"-"`
}
