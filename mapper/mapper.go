package mapper

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// DefaultMinScore is the score threshold used when Config.MinScore is unset.
const DefaultMinScore = 0.90

// Config configures a Mapper. The zero value is usable: scoring is disabled
// (strict), MinScore defaults to DefaultMinScore, cardinality to ManyToOne
// and logging to a no-op logger.
type Config[V, C, X comparable] struct {
	// ScoreFunc computes likeness scores. Defaults to Disabled(true), which
	// makes the Mapper work in strict override-only mode.
	ScoreFunc ScoreFunc[V, C, X]

	// Filters run in order before scoring. Each receives the survivors of the
	// previous one.
	Filters []FilterFunc[V, C, X]

	// MinScore is the lowest score that still makes a match. Must be a finite
	// positive number; the boundary is inclusive.
	MinScore float64

	// Overrides force matches ahead of all scoring logic.
	Overrides *Overrides[V, C, X]

	// Cardinality constrains the final assignment.
	Cardinality Cardinality

	// OnUnmapped is consulted by Apply when values with finite score rows
	// remain unmatched.
	OnUnmapped OnUnmapped

	// OnUnknownOverride governs override functions returning candidates
	// outside the input set.
	OnUnknownOverride OnUnknownOverride

	// Logger receives match diagnostics. Defaults to zerolog.Nop.
	Logger zerolog.Logger
}

// Mapper matches values to candidates. Instances are immutable after New and
// safe for concurrent use; all mutable state is call-local.
type Mapper[V, C, X comparable] struct {
	cfg Config[V, C, X]
}

// New validates the configuration and creates a Mapper.
func New[V, C, X comparable](cfg Config[V, C, X]) (*Mapper[V, C, X], error) {
	if cfg.ScoreFunc == nil {
		cfg.ScoreFunc = Disabled[V, C, X](true)
	}

	if cfg.MinScore == 0 {
		cfg.MinScore = DefaultMinScore
	}

	if cfg.MinScore <= 0 || math.IsInf(cfg.MinScore, 0) || math.IsNaN(cfg.MinScore) {
		return nil, fmt.Errorf("mapper: min score %v must be a finite positive number", cfg.MinScore)
	}

	if cfg.OnUnmapped == "" {
		cfg.OnUnmapped = OnUnmappedIgnore
	}

	if !cfg.OnUnmapped.Valid() {
		return nil, fmt.Errorf("mapper: invalid OnUnmapped %q", cfg.OnUnmapped)
	}

	if cfg.OnUnknownOverride == "" {
		cfg.OnUnknownOverride = OnUnknownOverrideRaise
	}

	if !cfg.OnUnknownOverride.Valid() {
		return nil, fmt.Errorf("mapper: invalid OnUnknownOverride %q", cfg.OnUnknownOverride)
	}

	return &Mapper[V, C, X]{cfg: cfg}, nil
}

// Disabled returns a score function for override-only mapping. The strict
// variant fails with a ScoringDisabledError when invoked, signalling that a
// value slipped past every override, filter and short-circuit. The
// non-strict variant scores every candidate -Inf, silently refusing to match.
func Disabled[V, C, X comparable](strict bool) ScoreFunc[V, C, X] {
	return func(value V, candidates []C, context X) ([]float64, error) {
		if strict {
			cc := make([]C, len(candidates))
			copy(cc, candidates)

			return nil, &ScoringDisabledError[V, C, X]{Value: value, Candidates: cc, Context: context}
		}

		out := make([]float64, len(candidates))
		for i := range out {
			out[i] = math.Inf(-1)
		}

		return out, nil
	}
}

// Option adjusts a single call.
type Option[V, C, X comparable] func(*callOptions[V, C, X])

type callOptions[V, C, X comparable] struct {
	overrideFunc OverrideFunc[V, C, X]
	logger       *zerolog.Logger
}

// WithOverrideFunction installs a per-call override that takes precedence
// over static overrides.
func WithOverrideFunction[V, C, X comparable](fn OverrideFunc[V, C, X]) Option[V, C, X] {
	return func(o *callOptions[V, C, X]) {
		o.overrideFunc = fn
	}
}

// WithLogger replaces the configured logger for this call only.
func WithLogger[V, C, X comparable](logger zerolog.Logger) Option[V, C, X] {
	return func(o *callOptions[V, C, X]) {
		o.logger = &logger
	}
}

func (m *Mapper[V, C, X]) callOptions(opts []Option[V, C, X]) (callOptions[V, C, X], zerolog.Logger) {
	var co callOptions[V, C, X]
	for _, opt := range opts {
		opt(&co)
	}

	logger := m.cfg.Logger
	if co.logger != nil {
		logger = *co.logger
	}

	return co, logger
}

// Cardinality returns the configured cardinality.
func (m *Mapper[V, C, X]) Cardinality() Cardinality {
	return m.cfg.Cardinality
}

// MinScore returns the configured score threshold.
func (m *Mapper[V, C, X]) MinScore() float64 {
	return m.cfg.MinScore
}

// Apply runs the full pipeline: overrides, filters, scoring and selection.
// Values with finite score rows that end up unmatched trigger the OnUnmapped
// policy. Empty values or candidates yield an empty mapping without error.
func (m *Mapper[V, C, X]) Apply(
	values []V, candidates []C, context X, opts ...Option[V, C, X],
) (*DirectionalMapping[V, C], error) {
	_, logger := m.callOptions(opts)

	if len(values) == 0 || len(candidates) == 0 {
		logger.Debug().
			Interface("values", values).
			Interface("candidates", candidates).
			Msg("nothing to map")

		unmatched := NewScoreMatrix(values, candidates).Values()

		return newDirectionalMapping[V, C](m.cfg.Cardinality, map[V][]C{}, nil, unmatched), nil
	}

	scores, err := m.ComputeScores(values, candidates, context, opts...)
	if err != nil {
		return nil, err
	}

	dm, err := m.ToDirectionalMapping(scores, opts...)
	if err != nil {
		return nil, err
	}

	var unmapped []V

	matched := make(map[V]struct{}, len(dm.left))
	for _, v := range dm.left {
		matched[v] = struct{}{}
	}

	for _, v := range scores.FiniteValues() {
		if _, ok := matched[v]; !ok {
			unmapped = append(unmapped, v)
		}
	}

	if len(unmapped) > 0 {
		if err := m.reportUnmapped(logger, unmapped, scores); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Int("matched", len(dm.left)).
		Int("values", len(scores.Values())).
		Int("candidates", len(dm.Right())).
		Stringer("cardinality", m.cfg.Cardinality).
		Msg("mapping completed")

	return dm, nil
}

func (m *Mapper[V, C, X]) reportUnmapped(logger zerolog.Logger, unmapped []V, scores *ScoreMatrix[V, C]) error {
	switch m.cfg.OnUnmapped {
	case OnUnmappedRaise:
		candidates := make([]any, 0, len(scores.Candidates()))
		for _, c := range scores.Candidates() {
			candidates = append(candidates, c)
		}

		err := &UnmappedValuesError[V]{Unmapped: unmapped, Candidates: candidates}
		logger.Error().Err(err).Msg("unmapped values")

		return err
	case OnUnmappedWarn:
		logger.Warn().
			Interface("unmapped", unmapped).
			Interface("candidates", scores.Candidates()).
			Msg("could not map all values")
	default:
		logger.Debug().
			Interface("unmapped", unmapped).
			Msg("could not map all values")
	}

	return nil
}

// ComputeScores runs overrides, filters and scoring, without selection.
// Calling it twice with identical inputs yields identical matrices.
func (m *Mapper[V, C, X]) ComputeScores(
	values []V, candidates []C, context X, opts ...Option[V, C, X],
) (*ScoreMatrix[V, C], error) {
	co, logger := m.callOptions(opts)

	scores := NewScoreMatrix(values, candidates)
	if scores.Size() == 0 {
		return scores, nil
	}

	// Filters and scoring see the original candidate set only; columns added
	// by override logic below are not up for grabs.
	originalCandidates := scores.Candidates()

	remaining, err := m.applyOverrides(scores, context, co.overrideFunc, logger)
	if err != nil {
		return nil, err
	}

	for _, value := range remaining {
		survivors, err := m.applyFilters(value, originalCandidates, context)
		if err != nil {
			return nil, err
		}

		if len(survivors) == 0 {
			continue
		}

		var scoresForValue []float64

		if identityIndex(value, survivors) >= 0 {
			scoresForValue = forcedScores(value, survivors)
		} else {
			scoresForValue, err = m.cfg.ScoreFunc(value, survivors, context)
			if err != nil {
				return nil, err
			}

			if len(scoresForValue) != len(survivors) {
				return nil, fmt.Errorf("mapper: score function returned %d scores for %d candidates",
					len(scoresForValue), len(survivors))
			}
		}

		for i, c := range survivors {
			scores.Set(value, c, scoresForValue[i])
		}
	}

	if logger.GetLevel() <= zerolog.DebugLevel {
		logger.Debug().Msgf("computed %dx%d match scores:\n%s",
			len(scores.Values()), len(scores.Candidates()), scores)
	}

	return scores, nil
}

// ToDirectionalMapping commits a score matrix to a final assignment under the
// configured cardinality.
func (m *Mapper[V, C, X]) ToDirectionalMapping(
	scores *ScoreMatrix[V, C], opts ...Option[V, C, X],
) (*DirectionalMapping[V, C], error) {
	_, logger := m.callOptions(opts)

	s := &selector[V, C]{matrix: scores, minScore: m.cfg.MinScore, logger: logger}

	return s.toDirectionalMapping(m.cfg.Cardinality)
}

// applyOverrides forces matches from the override function and the static
// override table, in that order of precedence. It returns the values still
// in need of scoring.
func (m *Mapper[V, C, X]) applyOverrides(
	scores *ScoreMatrix[V, C], context X, overrideFunc OverrideFunc[V, C, X], logger zerolog.Logger,
) ([]V, error) {
	fixed := make(map[V]struct{})

	apply := func(v V, c C) {
		scores.SetRow(v, math.Inf(-1))
		scores.Set(v, c, math.Inf(1))
		fixed[v] = struct{}{}
	}

	if overrideFunc != nil {
		candidates := scores.Candidates()
		known := make(map[C]struct{}, len(candidates))

		for _, c := range candidates {
			known[c] = struct{}{}
		}

		for _, v := range scores.Values() {
			c, ok, err := overrideFunc(v, candidates, context)
			if err != nil {
				return nil, err
			}

			if !ok {
				continue
			}

			if _, inInput := known[c]; !inInput && m.cfg.OnUnknownOverride != OnUnknownOverrideKeep {
				if m.cfg.OnUnknownOverride == OnUnknownOverrideRaise {
					err := &UserOverrideError[V, C]{Value: v, Candidate: c}
					logger.Error().Err(err).Msg("override rejected")

					return nil, err
				}

				logger.Warn().
					Interface("value", v).
					Interface("candidate", c).
					Msg("override function returned unknown candidate; discarded")

				continue
			}

			logger.Debug().
				Interface("value", v).
				Interface("candidate", c).
				Msg("using override function match")

			apply(v, c)
		}
	}

	if m.cfg.Overrides != nil && m.cfg.Overrides.Len() > 0 {
		var zero X
		if m.cfg.Overrides.ContextSensitive() && context == zero {
			return nil, ErrContextRequired
		}

		for _, v := range scores.Values() {
			if _, done := fixed[v]; done {
				continue
			}

			if c, ok := m.cfg.Overrides.Get(context, v); ok {
				apply(v, c)
			}
		}
	}

	var remaining []V

	for _, v := range scores.Values() {
		if _, done := fixed[v]; !done {
			remaining = append(remaining, v)
		}
	}

	return remaining, nil
}

// applyFilters runs the filter chain for one value. Survivors are projected
// onto the original candidate order after every step so that scoring stays
// deterministic. A filter may re-admit original candidates dropped earlier,
// but inventing new ones is an error.
func (m *Mapper[V, C, X]) applyFilters(value V, candidates []C, context X) ([]C, error) {
	survivors := candidates

	known := make(map[C]struct{}, len(candidates))
	for _, c := range candidates {
		known[c] = struct{}{}
	}

	for _, filter := range m.cfg.Filters {
		kept, err := filter(value, survivors, context)
		if err != nil {
			return nil, err
		}

		var invented []C

		keep := make(map[C]struct{}, len(kept))

		for _, c := range kept {
			if _, ok := known[c]; !ok {
				invented = append(invented, c)

				continue
			}

			keep[c] = struct{}{}
		}

		if len(invented) > 0 {
			return nil, &BadFilterError[V, C]{Value: value, Invented: invented}
		}

		next := make([]C, 0, len(keep))

		for _, c := range candidates {
			if _, ok := keep[c]; ok {
				next = append(next, c)
			}
		}

		survivors = next
		if len(survivors) == 0 {
			break
		}
	}

	return survivors, nil
}

func identityIndex[V, C comparable](value V, candidates []C) int {
	for i, c := range candidates {
		if any(value) == any(c) {
			return i
		}
	}

	return -1
}
