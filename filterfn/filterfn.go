// Package filterfn provides built-in filter functions for the mapper.
//
// Filters return the subset of candidates to keep; returning an empty slice
// aborts matching of the current value. Patterns are matched at the start of
// the input, case-insensitively.
package filterfn

import (
	"fmt"
	"regexp"

	"name-mapper/mapper"
)

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("filterfn: bad pattern %q: %w", pattern, err)
	}

	return re, nil
}

// Names keeps all candidates when the value matches the pattern, and drops
// all of them otherwise. With remove set, the behavior is reversed: values
// matching the pattern are excluded from mapping.
func Names[C, X comparable](pattern string, remove bool) (mapper.FilterFunc[string, C, X], error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	return func(value string, candidates []C, _ X) ([]C, error) {
		if re.MatchString(value) == remove {
			return nil, nil
		}

		return candidates, nil
	}, nil
}

// Contexts keeps all candidates when the context matches the pattern, and
// drops all of them otherwise. With remove set, matching contexts are
// excluded from mapping.
func Contexts[V, C comparable](pattern string, remove bool) (mapper.FilterFunc[V, C, string], error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	return func(_ V, candidates []C, context string) ([]C, error) {
		if re.MatchString(context) == remove {
			return nil, nil
		}

		return candidates, nil
	}, nil
}

// Candidates keeps the candidates matching the pattern, or removes them when
// remove is set.
func Candidates[V, X comparable](pattern string, remove bool) (mapper.FilterFunc[V, string, X], error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	return func(_ V, candidates []string, _ X) ([]string, error) {
		var kept []string

		for _, c := range candidates {
			if re.MatchString(c) != remove {
				kept = append(kept, c)
			}
		}

		return kept, nil
	}, nil
}
