package domain

// Gender is the German grammatical noun class. "pl" is used when the noun
// surface form is plural and number obscures the underlying gender.
type Gender string

const (
	GenderMasculine Gender = "m"
	GenderFeminine  Gender = "f"
	GenderNeuter    Gender = "n"
	GenderPlural    Gender = "pl"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMasculine, GenderFeminine, GenderNeuter, GenderPlural:
		return true
	}
	return false
}

// DefiniteArticle returns the nominative definite article for the gender.
func (g Gender) DefiniteArticle() string {
	switch g {
	case GenderMasculine:
		return "der"
	case GenderNeuter:
		return "das"
	default:
		return "die"
	}
}

// GrammaticalCase is one of the four German cases as named on the wire.
type GrammaticalCase string

const (
	CaseNominativ GrammaticalCase = "nominativ"
	CaseGenitiv   GrammaticalCase = "genitiv"
	CaseDativ     GrammaticalCase = "dativ"
	CaseAkkusativ GrammaticalCase = "akkusativ"
)

func (c GrammaticalCase) String() string { return string(c) }

func (c GrammaticalCase) IsValid() bool {
	switch c {
	case CaseNominativ, CaseGenitiv, CaseDativ, CaseAkkusativ:
		return true
	}
	return false
}
