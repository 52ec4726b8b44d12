package config

import (
	"fmt"

	"name-mapper/mapper"
)

var scoreFunctions = map[string]struct{}{
	"equality":          {},
	"modified-hamming":  {},
	"levenshtein-ratio": {},
	"disabled":          {},
}

var filterFunctions = map[string]struct{}{
	"names":      {},
	"contexts":   {},
	"candidates": {},
}

var heuristicFunctions = map[string]struct{}{
	"force-lower-case":       {},
	"value-format-alias":     {},
	"candidate-format-alias": {},
	"like-table":             {},
	"smurf-columns":          {},
	"short-circuit":          {},
}

// Validate checks a job for structural problems before building a mapper
// from it. Regex and format errors surface later, in Build.
func Validate(job *Job) error {
	if job == nil {
		return fmt.Errorf("job is nil")
	}

	if _, ok := scoreFunctions[job.Score.Function]; !ok {
		return fmt.Errorf("unknown score function %q", job.Score.Function)
	}

	if _, err := mapper.ParseCardinality(job.Cardinality); err != nil {
		return err
	}

	if !mapper.OnUnmapped(job.OnUnmapped).Valid() {
		return fmt.Errorf("unknown on_unmapped policy %q", job.OnUnmapped)
	}

	for i, f := range job.Filters {
		if _, ok := filterFunctions[f.Function]; !ok {
			return fmt.Errorf("filter %d: unknown function %q", i, f.Function)
		}

		if f.Regex == "" {
			return fmt.Errorf("filter %d (%s): regex is required", i, f.Function)
		}
	}

	for i, h := range job.Heuristics {
		if _, ok := heuristicFunctions[h.Function]; !ok {
			return fmt.Errorf("heuristic %d: unknown function %q", i, h.Function)
		}

		switch h.Function {
		case "value-format-alias", "candidate-format-alias":
			if h.Format == "" {
				return fmt.Errorf("heuristic %d (%s): format is required", i, h.Function)
			}
		case "short-circuit":
			if h.Regex == "" || h.Target == "" {
				return fmt.Errorf("heuristic %d (short-circuit): regex and target are required", i)
			}

			if h.Mutate {
				return fmt.Errorf("heuristic %d (short-circuit): cannot mutate", i)
			}
		case "smurf-columns":
			if h.Mutate {
				return fmt.Errorf("heuristic %d (smurf-columns): cannot mutate", i)
			}
		}
	}

	if len(job.ContextOverrides) > 0 && job.Context == "" {
		return fmt.Errorf("context_overrides require a context")
	}

	return nil
}
