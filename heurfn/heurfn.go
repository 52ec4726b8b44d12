// Package heurfn provides built-in alias and short-circuit heuristics for
// use with mapper.HeuristicScore.
//
// Alias functions rewrite (value, candidates) before scoring. Short-circuit
// functions are filters: returning a non-empty subset forces a match.
package heurfn

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"name-mapper/mapper"
	"name-mapper/match"
)

// ForceLowerCase lower-cases the value and all candidates.
func ForceLowerCase[X comparable]() mapper.AliasFunc[string, string, X] {
	return func(value string, candidates []string, _ X) (string, []string, error) {
		lowered := make([]string, len(candidates))
		for i, c := range candidates {
			lowered[i] = strings.ToLower(c)
		}

		return strings.ToLower(value), lowered, nil
	}
}

// expand substitutes {value}, {candidate} and {context} placeholders.
func expand(format, value, candidate, context string) string {
	r := strings.NewReplacer("{value}", value, "{candidate}", candidate, "{context}", context)
	return r.Replace(format)
}

// ValueFormatAlias rewrites the value using a format string with {value} and
// {context} placeholders, e.g. "{context}_{value}" turns value "id" in
// context "dog" into "dog_id". Candidates pass through unchanged.
//
// The format must reference {value}; a rewrite that ignores the value is
// only allowed through ValueFormatAliasFor.
func ValueFormatAlias(format string) (mapper.AliasFunc[string, string, string], error) {
	if !strings.Contains(format, "{value}") {
		return nil, fmt.Errorf("heurfn: format %q does not contain {value}", format)
	}

	return func(value string, candidates []string, context string) (string, []string, error) {
		return expand(format, value, "", context), candidates, nil
	}, nil
}

// ValueFormatAliasFor is ValueFormatAlias restricted to a single value; other
// values pass through unchanged. The format may omit {value}.
func ValueFormatAliasFor(format, forValue string) (mapper.AliasFunc[string, string, string], error) {
	if forValue == "" {
		return nil, errors.New("heurfn: forValue must not be empty")
	}

	return func(value string, candidates []string, context string) (string, []string, error) {
		if value != forValue {
			return value, candidates, nil
		}

		return expand(format, value, "", context), candidates, nil
	}, nil
}

// CandidateFormatAlias rewrites every candidate using a format string with
// {candidate}, {value} and {context} placeholders. The value passes through
// unchanged.
func CandidateFormatAlias(format string) (mapper.AliasFunc[string, string, string], error) {
	if !strings.Contains(format, "{candidate}") {
		return nil, fmt.Errorf("heurfn: format %q does not contain {candidate}", format)
	}

	return func(value string, candidates []string, context string) (string, []string, error) {
		formatted := make([]string, len(candidates))
		for i, c := range candidates {
			formatted[i] = expand(format, value, c, context)
		}

		return value, formatted, nil
	}, nil
}

// LikeTable normalizes the value and candidates to appear as base-form
// nouns: lower-cased, id/ids/bitmask suffixes stripped, separators removed
// and plural forms converted to singular. Pass a nil transformer to skip the
// plural-to-singular step.
//
// For example, value "city_ids" against ["city", "cities"] becomes "city"
// against ["city", "city"].
func LikeTable[X comparable](transformer *match.NounTransformer) mapper.AliasFunc[string, string, X] {
	normalize := func(noun string) string {
		noun = strings.ToLower(noun)
		noun = stripIDSuffix(noun)
		noun = strings.ReplaceAll(noun, "_", "")
		noun = strings.ReplaceAll(noun, ".", "")

		if transformer != nil {
			noun = transformer.Singular(noun)
		}

		return noun
	}

	return func(value string, candidates []string, _ X) (string, []string, error) {
		normalized := make([]string, len(candidates))
		for i, c := range candidates {
			normalized[i] = normalize(c)
		}

		return normalize(value), normalized, nil
	}
}

// SmurfColumns short-circuits a value to its smurf column: the naming
// convention that prefixes column names with the table name, as in
// "city.city_id". The table name is taken from the context. The value "name"
// additionally matches a column equal to the bare table name.
//
// Pass a transformer to also match plural table names ("cities" owning
// "city_id"); nil disables the plural-to-singular step.
func SmurfColumns(transformer *match.NounTransformer) mapper.FilterFunc[string, string, string] {
	return func(value string, candidates []string, context string) ([]string, error) {
		table := strings.ToLower(context)
		if transformer != nil {
			table = transformer.Singular(table)
		}

		value = strings.ToLower(value)

		if value == "name" {
			for _, c := range candidates {
				if strings.ToLower(c) == table {
					return []string{c}, nil
				}
			}
		}

		smurf := table + "_" + value
		for _, c := range candidates {
			if strings.ToLower(c) == smurf {
				return []string{c}, nil
			}
		}

		return nil, nil
	}
}

// ShortCircuit forces a match to the target candidate when the value matches
// the pattern and the target is present among the candidates. The pattern is
// matched at the start of the value, case-insensitively.
func ShortCircuit[X comparable](valuePattern, target string) (mapper.FilterFunc[string, string, X], error) {
	re, err := regexp.Compile(`(?i)^(?:` + valuePattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("heurfn: bad pattern %q: %w", valuePattern, err)
	}

	return func(value string, candidates []string, _ X) ([]string, error) {
		found := false

		for _, c := range candidates {
			if c == target {
				found = true

				break
			}
		}

		if !found || !re.MatchString(value) {
			return nil, nil
		}

		return []string{target}, nil
	}, nil
}

// stripIDSuffix removes id, ids and bitmask suffixes plus a trailing
// underscore, e.g. "dog_id" -> "dog".
func stripIDSuffix(s string) string {
	for _, suffix := range []string{"id", "ids", "bitmask"} {
		if len(s) > len(suffix) && strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
		}
	}

	return strings.TrimSuffix(s, "_")
}
