package mapper

import (
	"errors"
	"fmt"
	"math"
)

// aliasPenalty rewards alias heuristics that appear earlier in the chain:
// the Nth alias scores 0.005 * N below an identical earlier match.
const aliasPenalty = 0.005

// Heuristic is one step of a HeuristicScore chain. Exactly one of Alias and
// ShortCircuit must be set.
//
// An Alias rewrites the (value, candidates) inputs before scoring them again.
// With Mutate set, the rewrite is also fed to subsequent heuristics.
//
// A ShortCircuit is a filter: returning a non-empty subset forces a match
// (+Inf for the returned candidates, -Inf for the rest) and ends the chain.
type Heuristic[V, C, X comparable] struct {
	Alias        AliasFunc[V, C, X]
	ShortCircuit FilterFunc[V, C, X]
	Mutate       bool
}

// HeuristicScore wraps a base score function with an ordered heuristic chain.
// Augmented scores can never drop below the unmodified base score: each alias
// result is merged with a per-cell max.
//
// The Score method is a ScoreFunc and is safe for concurrent use.
type HeuristicScore[V, C, X comparable] struct {
	base       ScoreFunc[V, C, X]
	heuristics []Heuristic[V, C, X]
}

// NewHeuristicScore validates the chain and wraps the base score function.
func NewHeuristicScore[V, C, X comparable](
	base ScoreFunc[V, C, X],
	heuristics ...Heuristic[V, C, X],
) (*HeuristicScore[V, C, X], error) {
	if base == nil {
		return nil, errors.New("mapper: heuristic score requires a base score function")
	}

	for i, h := range heuristics {
		if (h.Alias == nil) == (h.ShortCircuit == nil) {
			return nil, fmt.Errorf("mapper: heuristic %d must set exactly one of Alias and ShortCircuit", i)
		}

		if h.ShortCircuit != nil && h.Mutate {
			return nil, fmt.Errorf("mapper: heuristic %d is a short-circuit and cannot mutate", i)
		}
	}

	return &HeuristicScore[V, C, X]{base: base, heuristics: heuristics}, nil
}

// Base returns the wrapped score function.
func (h *HeuristicScore[V, C, X]) Base() ScoreFunc[V, C, X] {
	return h.base
}

// Score computes augmented scores for the candidates.
//
// Procedure:
//  1. An exact value-candidate match short-circuits immediately.
//  2. The unmodified base score seeds the running best.
//  3. Heuristics run in order. Aliases are scored, penalized by position and
//     merged per cell with max. A short-circuit returning candidates ends the
//     call with ±Inf.
func (h *HeuristicScore[V, C, X]) Score(value V, candidates []C, context X) ([]float64, error) {
	for _, c := range candidates {
		if any(value) == any(c) {
			return forcedScores(value, candidates), nil
		}
	}

	base, err := h.base(value, candidates, context)
	if err != nil {
		return nil, err
	}

	if len(base) != len(candidates) {
		return nil, fmt.Errorf("mapper: score function returned %d scores for %d candidates", len(base), len(candidates))
	}

	best := make([]float64, len(base))
	copy(best, base)

	penalty := 0.0
	hValue := value
	hCandidates := candidates

	for _, heuristic := range h.heuristics {
		if heuristic.Alias != nil {
			aliasValue, aliasCandidates, err := heuristic.Alias(hValue, hCandidates, context)
			if err != nil {
				return nil, err
			}

			if len(aliasCandidates) != len(best) {
				return nil, fmt.Errorf("mapper: alias returned %d candidates, expected %d", len(aliasCandidates), len(best))
			}

			scores, err := h.base(aliasValue, aliasCandidates, context)
			if err != nil {
				return nil, err
			}

			if len(scores) != len(best) {
				return nil, fmt.Errorf("mapper: score function returned %d scores for %d candidates", len(scores), len(best))
			}

			for i, s := range scores {
				if !math.IsInf(s, 0) && !math.IsNaN(s) {
					s -= penalty
				}

				if s > best[i] {
					best[i] = s
				}
			}

			if heuristic.Mutate {
				hValue, hCandidates = aliasValue, aliasCandidates
			}

			penalty += aliasPenalty

			continue
		}

		subset, err := heuristic.ShortCircuit(hValue, hCandidates, context)
		if err != nil {
			return nil, err
		}

		if len(subset) > 0 {
			forced := make(map[C]struct{}, len(subset))
			for _, c := range subset {
				forced[c] = struct{}{}
			}

			out := make([]float64, len(hCandidates))
			for i, c := range hCandidates {
				if _, ok := forced[c]; ok {
					out[i] = math.Inf(1)
				} else {
					out[i] = math.Inf(-1)
				}
			}

			return out, nil
		}
	}

	return best, nil
}

// forcedScores marks candidates equal to the value with +Inf and the rest
// with -Inf.
func forcedScores[V, C comparable](value V, candidates []C) []float64 {
	out := make([]float64, len(candidates))

	for i, c := range candidates {
		if any(value) == any(c) {
			out[i] = math.Inf(1)
		} else {
			out[i] = math.Inf(-1)
		}
	}

	return out
}
