package mapper

import "fmt"

// DirectionalMapping is the committed result of a matching pass: matched
// values with their candidates in claim order, plus the values that found no
// match.
type DirectionalMapping[V, C comparable] struct {
	cardinality Cardinality
	leftToRight map[V][]C
	left        []V
	unmatched   []V
}

func newDirectionalMapping[V, C comparable](
	cardinality Cardinality,
	leftToRight map[V][]C,
	left []V,
	unmatched []V,
) *DirectionalMapping[V, C] {
	return &DirectionalMapping[V, C]{
		cardinality: cardinality,
		leftToRight: leftToRight,
		left:        left,
		unmatched:   unmatched,
	}
}

// Cardinality returns the cardinality the mapping was built under.
func (dm *DirectionalMapping[V, C]) Cardinality() Cardinality {
	return dm.cardinality
}

// Matches returns the candidates matched to a value, in claim order.
func (dm *DirectionalMapping[V, C]) Matches(value V) ([]C, bool) {
	matches, ok := dm.leftToRight[value]
	if !ok {
		return nil, false
	}

	out := make([]C, len(matches))
	copy(out, matches)

	return out, true
}

// Left returns the matched values in input order.
func (dm *DirectionalMapping[V, C]) Left() []V {
	out := make([]V, len(dm.left))
	copy(out, dm.left)

	return out
}

// Right returns the distinct matched candidates, ordered by first claim.
func (dm *DirectionalMapping[V, C]) Right() []C {
	seen := make(map[C]struct{})

	var out []C

	for _, v := range dm.left {
		for _, c := range dm.leftToRight[v] {
			if _, ok := seen[c]; ok {
				continue
			}

			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	return out
}

// Unmatched returns the values that found no match, in input order.
func (dm *DirectionalMapping[V, C]) Unmatched() []V {
	out := make([]V, len(dm.unmatched))
	copy(out, dm.unmatched)

	return out
}

// Flatten converts the mapping to a plain map. It fails if any value matched
// more than one candidate; use a OneRight cardinality to guarantee success.
func (dm *DirectionalMapping[V, C]) Flatten() (map[V]C, error) {
	out := make(map[V]C, len(dm.left))

	for _, v := range dm.left {
		matches := dm.leftToRight[v]
		if len(matches) != 1 {
			return nil, fmt.Errorf("cannot flatten: value %v has %d matches under cardinality %s",
				v, len(matches), dm.cardinality)
		}

		out[v] = matches[0]
	}

	return out, nil
}
