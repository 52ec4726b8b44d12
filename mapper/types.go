package mapper

// ScoreFunc computes a likeness score for each candidate. Higher is a better
// match. The returned slice must have exactly one score per candidate, in
// candidate order. Scores may be ±Inf to force or forbid a match.
type ScoreFunc[V, C, X comparable] func(value V, candidates []C, context X) ([]float64, error)

// FilterFunc returns the subset of candidates to keep for a value. Returning
// an empty slice aborts matching of the value. The result must be a subset of
// the given candidates.
type FilterFunc[V, C, X comparable] func(value V, candidates []C, context X) ([]C, error)

// AliasFunc rewrites (value, candidates) before scoring. The returned
// candidate slice must have the same length as the input since scores are
// assigned positionally.
type AliasFunc[V, C, X comparable] func(value V, candidates []C, context X) (V, []C, error)

// OverrideFunc is a per-call override. Returning ok=false lets the regular
// mapping logic decide. How unknown candidates (not in the input set) are
// handled is governed by Config.OnUnknownOverride.
type OverrideFunc[V, C, X comparable] func(value V, candidates []C, context X) (candidate C, ok bool, err error)

// OnUnmapped is the action to take when values remain unmatched after a full
// Apply pass.
type OnUnmapped string

const (
	// OnUnmappedIgnore silently returns a partial result. This is the default.
	OnUnmappedIgnore OnUnmapped = "ignore"
	// OnUnmappedWarn logs a warning and returns a partial result.
	OnUnmappedWarn OnUnmapped = "warn"
	// OnUnmappedRaise fails with an UnmappedValuesError.
	OnUnmappedRaise OnUnmapped = "raise"
)

// OnUnknownOverride is the action to take when an OverrideFunc returns a
// candidate that is not part of the input candidate set.
type OnUnknownOverride string

const (
	// OnUnknownOverrideRaise fails with a UserOverrideError. This is the default.
	OnUnknownOverrideRaise OnUnknownOverride = "raise"
	// OnUnknownOverrideWarn logs a warning and discards the override.
	OnUnknownOverrideWarn OnUnknownOverride = "warn"
	// OnUnknownOverrideKeep admits the foreign candidate as a new column.
	OnUnknownOverrideKeep OnUnknownOverride = "keep"
)

// Valid reports whether o is a known policy.
func (o OnUnmapped) Valid() bool {
	switch o {
	case OnUnmappedIgnore, OnUnmappedWarn, OnUnmappedRaise:
		return true
	}

	return false
}

// Valid reports whether o is a known policy.
func (o OnUnknownOverride) Valid() bool {
	switch o {
	case OnUnknownOverrideRaise, OnUnknownOverrideWarn, OnUnknownOverrideKeep:
		return true
	}

	return false
}
