package domain

// DeclensionCase is one row of a declension table: the definite article and
// noun form for a single grammatical case.
type DeclensionCase struct {
	Case     GrammaticalCase `json:"case"`
	Article  string          `json:"article"`
	NounForm string          `json:"nounForm"`
}

// DeclensionTable covers the four German cases for one noun.
type DeclensionTable struct {
	Cases []DeclensionCase `json:"cases"`
}

// Genitiv returns a pointer to the genitive row, or nil if absent.
func (t *DeclensionTable) Genitiv() *DeclensionCase {
	for i := range t.Cases {
		if t.Cases[i].Case == CaseGenitiv {
			return &t.Cases[i]
		}
	}
	return nil
}
