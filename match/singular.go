package match

import "strings"

// irregulars holds known plural forms the suffix rules would butcher.
var irregulars = map[string]string{
	"species": "species",
	// Not really irregular
	"phases":    "phase",
	"exercises": "exercise",
}

// pluralSuffixes maps plural suffixes to their singular replacements,
// longest first. The bare "s" rule is a catch-all.
var pluralSuffixes = []struct {
	plural   string
	singular string
}{
	{"ies", "y"},    // cit[ies] -> cit[y]
	{"ives", "ife"}, // l[ives] -> l[ife]
	{"ves", "f"},    // hal[ves] -> hal[f]
	{"oes", "o"},    // tomat[oes] -> tomat[o]
	{"hes", "h"},    // has[hes] -> has[h]
	{"ses", "s"},    // iri[ses] -> iri[s]
	{"xes", "x"},    // bo[xes] -> bo[x]
	{"s", ""},
}

// NounTransformer converts nouns to singular form using suffix heuristics.
// It targets nouns commonly used as database table names and will break on
// nouns that are already singular ("bus" -> "bu") or not trivially
// convertible. Custom mappings take precedence over the suffix rules.
type NounTransformer struct {
	pre map[string]string
}

// NewNounTransformer creates a transformer. Custom plural -> singular
// mappings may be nil.
func NewNounTransformer(custom map[string]string) *NounTransformer {
	pre := make(map[string]string, len(irregulars)+len(custom))

	for plural, singular := range irregulars {
		pre[plural] = singular
	}

	for plural, singular := range custom {
		pre[plural] = singular
	}

	return &NounTransformer{pre: pre}
}

// Singular converts a noun to singular form.
func (t *NounTransformer) Singular(noun string) string {
	if singular, ok := t.pre[noun]; ok {
		return singular
	}

	for _, rule := range pluralSuffixes {
		if strings.HasSuffix(noun, rule.plural) {
			return noun[:len(noun)-len(rule.plural)] + rule.singular
		}
	}

	return noun
}
