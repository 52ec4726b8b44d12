package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"name-mapper/filterfn"
	"name-mapper/heurfn"
	"name-mapper/mapper"
	"name-mapper/match"
	"name-mapper/scorefn"
)

// Build assembles a string-typed mapper from a validated job.
func Build(job *Job, logger zerolog.Logger) (*mapper.Mapper[string, string, string], error) {
	if err := Validate(job); err != nil {
		return nil, err
	}

	scoreFunc, err := buildScoreFunc(job.Score)
	if err != nil {
		return nil, err
	}

	if len(job.Heuristics) > 0 {
		heuristics, err := buildHeuristics(job.Heuristics)
		if err != nil {
			return nil, err
		}

		hs, err := mapper.NewHeuristicScore(scoreFunc, heuristics...)
		if err != nil {
			return nil, err
		}

		scoreFunc = hs.Score
	}

	filters, err := buildFilters(job.Filters)
	if err != nil {
		return nil, err
	}

	cardinality, err := mapper.ParseCardinality(job.Cardinality)
	if err != nil {
		return nil, err
	}

	var overrides *mapper.Overrides[string, string, string]
	if len(job.Overrides) > 0 || len(job.ContextOverrides) > 0 {
		overrides = mapper.NewContextOverrides[string, string, string](job.Overrides, job.ContextOverrides)
	}

	return mapper.New(mapper.Config[string, string, string]{
		ScoreFunc:   scoreFunc,
		Filters:     filters,
		MinScore:    job.MinScore,
		Overrides:   overrides,
		Cardinality: cardinality,
		OnUnmapped:  mapper.OnUnmapped(job.OnUnmapped),
		Logger:      logger,
	})
}

func buildScoreFunc(spec ScoreSpec) (mapper.ScoreFunc[string, string, string], error) {
	switch spec.Function {
	case "equality":
		return scorefn.Equality[string, string, string](), nil
	case "modified-hamming":
		penalty := scorefn.DefaultPositionalPenalty
		if spec.PositionalPenalty != nil {
			penalty = *spec.PositionalPenalty
		}

		return scorefn.ModifiedHamming[string](!spec.NoLengthRatio, penalty), nil
	case "levenshtein-ratio":
		return scorefn.LevenshteinRatio[string](), nil
	case "disabled":
		return mapper.Disabled[string, string, string](spec.Strict), nil
	}

	return nil, fmt.Errorf("unknown score function %q", spec.Function)
}

func buildFilters(specs []FilterSpec) ([]mapper.FilterFunc[string, string, string], error) {
	var filters []mapper.FilterFunc[string, string, string]

	for i, spec := range specs {
		var (
			fn  mapper.FilterFunc[string, string, string]
			err error
		)

		switch spec.Function {
		case "names":
			fn, err = filterfn.Names[string, string](spec.Regex, spec.Remove)
		case "contexts":
			fn, err = filterfn.Contexts[string, string](spec.Regex, spec.Remove)
		case "candidates":
			fn, err = filterfn.Candidates[string, string](spec.Regex, spec.Remove)
		default:
			err = fmt.Errorf("unknown filter function %q", spec.Function)
		}

		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}

		filters = append(filters, fn)
	}

	return filters, nil
}

func buildHeuristics(specs []HeuristicSpec) ([]mapper.Heuristic[string, string, string], error) {
	var heuristics []mapper.Heuristic[string, string, string]

	for i, spec := range specs {
		var transformer *match.NounTransformer
		if spec.Singular || len(spec.CustomSingulars) > 0 {
			transformer = match.NewNounTransformer(spec.CustomSingulars)
		}

		var (
			h   mapper.Heuristic[string, string, string]
			err error
		)

		switch spec.Function {
		case "force-lower-case":
			h.Alias = heurfn.ForceLowerCase[string]()
		case "value-format-alias":
			if spec.ForValue != "" {
				h.Alias, err = heurfn.ValueFormatAliasFor(spec.Format, spec.ForValue)
			} else {
				h.Alias, err = heurfn.ValueFormatAlias(spec.Format)
			}
		case "candidate-format-alias":
			h.Alias, err = heurfn.CandidateFormatAlias(spec.Format)
		case "like-table":
			h.Alias = heurfn.LikeTable[string](transformer)
		case "smurf-columns":
			h.ShortCircuit = heurfn.SmurfColumns(transformer)
		case "short-circuit":
			h.ShortCircuit, err = heurfn.ShortCircuit[string](spec.Regex, spec.Target)
		default:
			err = fmt.Errorf("unknown heuristic function %q", spec.Function)
		}

		if err != nil {
			return nil, fmt.Errorf("heuristic %d: %w", i, err)
		}

		h.Mutate = spec.Mutate
		heuristics = append(heuristics, h)
	}

	return heuristics, nil
}
