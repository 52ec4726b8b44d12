package mapper

import (
	"errors"
	"fmt"
)

// ErrContextRequired is returned when context-scoped overrides are configured
// but a call is made with the zero context.
var ErrContextRequired = errors.New("mapper: context-scoped overrides require a context")

// AmbiguousScoreError indicates that a unique pick was impossible: two
// matches with equal finite scores competed for the same exclusive slot.
type AmbiguousScoreError[V, C comparable] struct {
	// Kind is the contested side, "value" or "candidate".
	Kind string
	// Key is the contested value or candidate.
	Key any
	// Match0 is the match that lost to Match1 on input order alone.
	Match0 Record[V, C]
	// Match1 is the match that was accepted first.
	Match1 Record[V, C]
	// Cardinality under which the conflict arose.
	Cardinality Cardinality
	// Matrix is the rendered score matrix, for diagnostics.
	Matrix string
}

func (e *AmbiguousScoreError[V, C]) Error() string {
	return fmt.Sprintf(
		"ambiguous mapping of %s=%v: matches (%s) and (%s) are in conflict under cardinality %s\n%s",
		e.Kind, e.Key, e.Match0, e.Match1, e.Cardinality, e.Matrix,
	)
}

// UnmappedValuesError is returned by Apply when values with finite score rows
// remain unmatched and OnUnmapped is "raise".
type UnmappedValuesError[V comparable] struct {
	// Unmapped holds the unmatched values in input order.
	Unmapped []V
	// Candidates holds the candidate set, including any added by overrides.
	Candidates []any
}

func (e *UnmappedValuesError[V]) Error() string {
	return fmt.Sprintf("could not map %v to any of %v", e.Unmapped, e.Candidates)
}

// ScoringDisabledError is returned by the strict Disabled score function:
// a value survived overrides, filters and short-circuits even though the
// mapper runs in override-only mode.
type ScoringDisabledError[V, C, X comparable] struct {
	Value      V
	Candidates []C
	Context    X
}

func (e *ScoringDisabledError[V, C, X]) Error() string {
	return fmt.Sprintf(
		"scoring disabled: value %v (context %v) cannot be mapped to any of %v; add an override or filter, or configure a score function",
		e.Value, e.Context, e.Candidates,
	)
}

// UserOverrideError is returned when an OverrideFunc picks a candidate
// outside the input set and OnUnknownOverride is "raise".
type UserOverrideError[V, C comparable] struct {
	Value     V
	Candidate C
}

func (e *UserOverrideError[V, C]) Error() string {
	return fmt.Sprintf("override function returned unknown candidate %v for value %v", e.Candidate, e.Value)
}

// BadFilterError is returned when a filter returns candidates that are not a
// subset of its input.
type BadFilterError[V, C comparable] struct {
	Value    V
	Invented []C
}

func (e *BadFilterError[V, C]) Error() string {
	return fmt.Sprintf("filter created new candidates %v for value %v", e.Invented, e.Value)
}
