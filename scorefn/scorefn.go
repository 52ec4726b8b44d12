// Package scorefn provides built-in score functions for the mapper.
package scorefn

import (
	"name-mapper/mapper"
	"name-mapper/match"
)

// DefaultPositionalPenalty is the per-index penalty used by ModifiedHamming
// to prefer earlier candidates.
const DefaultPositionalPenalty = 0.001

// Equality scores 1.0 for candidates equal to the value and 0.0 otherwise.
func Equality[V, C, X comparable]() mapper.ScoreFunc[V, C, X] {
	return func(value V, candidates []C, _ X) ([]float64, error) {
		out := make([]float64, len(candidates))

		for i, c := range candidates {
			if any(value) == any(c) {
				out[i] = 1.0
			}
		}

		return out, nil
	}
}

// ModifiedHamming computes hamming similarity aligned from the back, in the
// range [0, 1]. With addLengthRatio the score is divided by
// 1 + |len(value) - len(candidate)|, and positionalPenalty lowers each
// candidate's score by its index times the penalty to prefer earlier ones.
//
// For example, "aa" against [aa a ab aa] scores [1.0 0.499 0.498 0.997] with
// the defaults (true, DefaultPositionalPenalty).
func ModifiedHamming[X comparable](addLengthRatio bool, positionalPenalty float64) mapper.ScoreFunc[string, string, X] {
	return func(value string, candidates []string, _ X) ([]float64, error) {
		rv := []rune(value)
		out := make([]float64, len(candidates))

		for i, candidate := range candidates {
			rc := []rune(candidate)

			sz := min(len(rc), len(rv))
			if sz == 0 {
				out[i] = -float64(i) * positionalPenalty

				continue
			}

			same := 0
			for k := 1; k <= sz; k++ {
				if rv[len(rv)-k] == rc[len(rc)-k] {
					same++
				}
			}

			ratio := 1.0
			if addLengthRatio {
				diff := len(rc) - len(rv)
				if diff < 0 {
					diff = -diff
				}

				ratio = 1.0 / float64(1+diff)
			}

			out[i] = ratio*float64(same)/float64(sz) - float64(i)*positionalPenalty
		}

		return out, nil
	}
}

// LevenshteinRatio scores candidates by normalized Levenshtein similarity
// over normalized identifiers.
func LevenshteinRatio[X comparable]() mapper.ScoreFunc[string, string, X] {
	return func(value string, candidates []string, _ X) ([]float64, error) {
		out := make([]float64, len(candidates))

		for i, c := range candidates {
			out[i] = match.NormalizedLevenshteinScore(value, c)
		}

		return out, nil
	}
}
