package mapper

import "fmt"

// Cardinality is the upper bound on how many matches each side may receive.
// The value side is "left" and the candidate side is "right": OneToMany means
// one value may claim many candidates, but each candidate belongs to at most
// one value.
type Cardinality int

const (
	// ManyToOne gives each value at most one candidate; candidates are shared
	// freely. This is the default.
	ManyToOne Cardinality = iota
	// OneToOne consumes each value and each candidate at most once.
	OneToOne
	// OneToMany lets a value own many candidates, each claimed exclusively.
	OneToMany
	// ManyToMany keeps every match at or above the threshold.
	ManyToMany
)

// ParseCardinality parses the wire form of a Cardinality: "N:1", "1:1",
// "1:N" or "N:N".
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "N:1":
		return ManyToOne, nil
	case "1:1":
		return OneToOne, nil
	case "1:N":
		return OneToMany, nil
	case "N:N":
		return ManyToMany, nil
	}

	return ManyToOne, fmt.Errorf("unknown cardinality %q (expected one of 1:1, 1:N, N:1, N:N)", s)
}

// String returns the wire form.
func (c Cardinality) String() string {
	switch c {
	case ManyToOne:
		return "N:1"
	case OneToOne:
		return "1:1"
	case OneToMany:
		return "1:N"
	case ManyToMany:
		return "N:N"
	}

	return fmt.Sprintf("Cardinality(%d)", int(c))
}

// OneRight reports whether each value receives at most one candidate.
// Mappings with a OneRight cardinality can be flattened to a plain map.
func (c Cardinality) OneRight() bool {
	return c == OneToOne || c == ManyToOne
}
