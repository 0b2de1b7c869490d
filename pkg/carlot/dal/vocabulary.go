package dal

import "strings"

// AllMakes is the label the make selector shows for "no restriction".
const AllMakes = "All Makes"

// MakeModels lists the models offered for one make.
type MakeModels struct {
	Make   string   `yaml:"make" json:"make"`
	Models []string `yaml:"models" json:"models"`
}

// Vocabulary is the make -> model lookup table. It is product data and is
// read-only after construction.
type Vocabulary struct {
	entries []MakeModels
	index   map[string]int
}

// NewVocabulary builds a vocabulary preserving the given make order.
func NewVocabulary(entries []MakeModels) *Vocabulary {
	v := &Vocabulary{
		entries: make([]MakeModels, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(e.Make)
		if _, ok := v.index[key]; ok {
			continue
		}
		models := make([]string, len(e.Models))
		copy(models, e.Models)
		v.index[key] = len(v.entries)
		v.entries = append(v.entries, MakeModels{Make: e.Make, Models: models})
	}
	return v
}

// Makes returns every make in vocabulary order.
func (v *Vocabulary) Makes() []string {
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Make
	}
	return out
}

// Entries returns a copy of the full table.
func (v *Vocabulary) Entries() []MakeModels {
	out := make([]MakeModels, len(v.entries))
	for i, e := range v.entries {
		out[i] = MakeModels{Make: e.Make, Models: append([]string(nil), e.Models...)}
	}
	return out
}

// CanonicalMake returns the make spelled as in the vocabulary.
func (v *Vocabulary) CanonicalMake(makeName string) (string, bool) {
	i, ok := v.index[strings.ToLower(makeName)]
	if !ok {
		return "", false
	}
	return v.entries[i].Make, true
}

// Models returns the models of a make, or nil for an unknown make.
func (v *Vocabulary) Models(makeName string) []string {
	i, ok := v.index[strings.ToLower(makeName)]
	if !ok {
		return nil
	}
	return append([]string(nil), v.entries[i].Models...)
}

// Has reports whether model belongs to makeName.
func (v *Vocabulary) Has(makeName, model string) bool {
	i, ok := v.index[strings.ToLower(makeName)]
	if !ok {
		return false
	}
	for _, m := range v.entries[i].Models {
		if strings.EqualFold(m, model) {
			return true
		}
	}
	return false
}
