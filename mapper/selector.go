package mapper

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Record is a single (value, candidate, score) cell under consideration.
type Record[V, C comparable] struct {
	Value     V
	Candidate C
	Score     float64
}

func (r Record[V, C]) String() string {
	return fmt.Sprintf("%v -> '%v'; score=%.3f", r.Value, r.Candidate, r.Score)
}

// reject describes why a record was not accepted. Superseding records are set
// when an earlier claim blocked this one.
type reject[V, C comparable] struct {
	record               Record[V, C]
	supersedingValue     *Record[V, C]
	supersedingCandidate *Record[V, C]
}

func (r reject[V, C]) explain(minScore float64) string {
	var why string

	switch {
	case math.IsInf(r.record.Score, -1):
		switch {
		case r.supersedingValue != nil && math.IsInf(r.supersedingValue.Score, 1):
			why = fmt.Sprintf(" (superseded by short-circuit or override: %s)", r.supersedingValue)
		case r.supersedingCandidate != nil && math.IsInf(r.supersedingCandidate.Score, 1):
			why = fmt.Sprintf(" (superseded by short-circuit or override: %s)", r.supersedingCandidate)
		default:
			why = " (filtered)"
		}
	case r.record.Score < minScore:
		why = fmt.Sprintf(" < %v (below threshold)", minScore)
	default:
		switch {
		case r.supersedingValue != nil && r.supersedingCandidate != nil:
			why = fmt.Sprintf(" (superseded on value=%v and candidate=%v)",
				r.supersedingValue.Value, r.supersedingCandidate.Candidate)
		case r.supersedingValue != nil:
			why = fmt.Sprintf(" (superseded on value=%v)", r.supersedingValue.Value)
		case r.supersedingCandidate != nil:
			why = fmt.Sprintf(" (superseded on candidate=%v)", r.supersedingCandidate.Candidate)
		}
	}

	return r.record.String() + why
}

// selector performs greedy cardinality-constrained selection over a score
// matrix. Records are consumed in score-descending order with ties kept in
// matrix order; the first claim wins and nothing is revisited. Replacing this
// with an optimal assignment would change committed results, so don't.
type selector[V, C comparable] struct {
	matrix   *ScoreMatrix[V, C]
	minScore float64
	logger   zerolog.Logger
}

func (s *selector[V, C]) toDirectionalMapping(cardinality Cardinality) (*DirectionalMapping[V, C], error) {
	matches, rejections, err := s.selectMatches(cardinality)
	if err != nil {
		return nil, err
	}

	leftToRight := make(map[V][]C)
	for _, rec := range matches {
		leftToRight[rec.Value] = append(leftToRight[rec.Value], rec.Candidate)
	}

	debug := s.logger.GetLevel() <= zerolog.DebugLevel && s.logger.GetLevel() != zerolog.Disabled

	var left, unmatched []V

	for _, v := range s.matrix.Values() {
		if _, ok := leftToRight[v]; ok {
			left = append(left, v)
		} else {
			unmatched = append(unmatched, v)
		}
	}

	if debug {
		s.explainOutcome(matches, rejections, unmatched)
	}

	return newDirectionalMapping[V, C](cardinality, leftToRight, left, unmatched), nil
}

func (s *selector[V, C]) explainOutcome(matches []Record[V, C], rejections []reject[V, C], unmatched []V) {
	for _, rec := range matches {
		reason := fmt.Sprintf(">= %v", s.minScore)
		if math.IsInf(rec.Score, 1) {
			reason = "(short-circuit or override)"
		}

		s.logger.Debug().Msgf("accepted: %s %s", rec, reason)
	}

	for _, v := range unmatched {
		for _, rr := range rejections {
			if rr.record.Value == v {
				s.logger.Debug().Msgf("could not map value=%v: %s", v, rr.explain(s.minScore))
			}
		}
	}
}

// selectMatches gathers candidate records and runs the per-cardinality greedy
// pass. Below-threshold records are only considered when debug logging is on,
// and then only to produce rejection explanations.
func (s *selector[V, C]) selectMatches(cardinality Cardinality) ([]Record[V, C], []reject[V, C], error) {
	debug := s.logger.GetLevel() <= zerolog.DebugLevel && s.logger.GetLevel() != zerolog.Disabled

	var records []Record[V, C]

	for _, rec := range s.matrix.Records() {
		if rec.Score >= s.minScore || debug {
			records = append(records, rec)
		}
	}

	// Stable sort keeps matrix (row-major) order for equal scores, which is
	// what makes first-claim-wins deterministic.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})

	var rejections []reject[V, C]
	if debug {
		rejections = make([]reject[V, C], 0)
	}

	var (
		matches []Record[V, C]
		err     error
	)

	switch cardinality {
	case OneToOne:
		matches, rejections, err = s.selectOneToOne(records, rejections)
	case OneToMany:
		matches, rejections, err = s.selectOneToMany(records, rejections)
	case ManyToOne:
		matches, rejections, err = s.selectManyToOne(records, rejections)
	default:
		matches, rejections = s.selectManyToMany(records, rejections)
	}

	if err != nil {
		return nil, nil, err
	}

	return matches, rejections, nil
}

// ambiguity fails when a record with a finite score ties the record that
// already claimed its slot. +Inf is exempt on both sides: forced matches are
// resolved first-claim-wins, and managing conflicting overrides is the
// caller's responsibility.
func (s *selector[V, C]) raiseIfAmbiguous(rec, old Record[V, C], ok bool, kind string, cardinality Cardinality) error {
	if !ok || math.IsInf(rec.Score, 1) || math.IsInf(old.Score, 1) {
		return nil
	}

	if rec.Score != old.Score {
		return nil
	}

	var key any = rec.Value
	if kind == "candidate" {
		key = rec.Candidate
	}

	return &AmbiguousScoreError[V, C]{
		Kind:        kind,
		Key:         key,
		Match0:      rec,
		Match1:      old,
		Cardinality: cardinality,
		Matrix:      s.matrix.String(),
	}
}

func (s *selector[V, C]) selectOneToOne(
	records []Record[V, C], rejections []reject[V, C],
) ([]Record[V, C], []reject[V, C], error) {
	mvs := make(map[V]Record[V, C])
	mcs := make(map[C]Record[V, C])

	var matches []Record[V, C]

	for _, rec := range records {
		oldC, okC := mcs[rec.Candidate]
		if err := s.raiseIfAmbiguous(rec, oldC, okC, "candidate", OneToOne); err != nil {
			return nil, nil, err
		}

		oldV, okV := mvs[rec.Value]
		if err := s.raiseIfAmbiguous(rec, oldV, okV, "value", OneToOne); err != nil {
			return nil, nil, err
		}

		if rec.Score < s.minScore || okV || okC {
			if rejections != nil {
				rejections = append(rejections, reject[V, C]{
					record:               rec,
					supersedingValue:     recordPtr(oldV, okV),
					supersedingCandidate: recordPtr(oldC, okC),
				})
			}

			continue
		}

		mvs[rec.Value] = rec
		mcs[rec.Candidate] = rec
		matches = append(matches, rec)
	}

	return matches, rejections, nil
}

func (s *selector[V, C]) selectOneToMany(
	records []Record[V, C], rejections []reject[V, C],
) ([]Record[V, C], []reject[V, C], error) {
	mcs := make(map[C]Record[V, C])

	var matches []Record[V, C]

	for _, rec := range records {
		old, ok := mcs[rec.Candidate]
		if err := s.raiseIfAmbiguous(rec, old, ok, "candidate", OneToMany); err != nil {
			return nil, nil, err
		}

		if rec.Score < s.minScore || ok {
			if rejections != nil {
				rejections = append(rejections, reject[V, C]{record: rec, supersedingCandidate: recordPtr(old, ok)})
			}

			continue
		}

		mcs[rec.Candidate] = rec
		matches = append(matches, rec)
	}

	return matches, rejections, nil
}

func (s *selector[V, C]) selectManyToOne(
	records []Record[V, C], rejections []reject[V, C],
) ([]Record[V, C], []reject[V, C], error) {
	mvs := make(map[V]Record[V, C])

	var matches []Record[V, C]

	for _, rec := range records {
		old, ok := mvs[rec.Value]
		if err := s.raiseIfAmbiguous(rec, old, ok, "value", ManyToOne); err != nil {
			return nil, nil, err
		}

		if rec.Score < s.minScore || ok {
			if rejections != nil {
				rejections = append(rejections, reject[V, C]{record: rec, supersedingValue: recordPtr(old, ok)})
			}

			continue
		}

		mvs[rec.Value] = rec
		matches = append(matches, rec)
	}

	return matches, rejections, nil
}

func (s *selector[V, C]) selectManyToMany(
	records []Record[V, C], rejections []reject[V, C],
) ([]Record[V, C], []reject[V, C]) {
	var matches []Record[V, C]

	for _, rec := range records {
		if rec.Score < s.minScore {
			if rejections != nil {
				rejections = append(rejections, reject[V, C]{record: rec})
			}

			continue
		}

		matches = append(matches, rec)
	}

	return matches, rejections
}

func recordPtr[V, C comparable](rec Record[V, C], ok bool) *Record[V, C] {
	if !ok {
		return nil
	}

	return &rec
}
