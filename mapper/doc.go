// Package mapper matches values to candidates using pluggable scoring logic.
//
// The Mapper computes a likeness score for every (value, candidate) pair and
// commits to a final assignment under a cardinality constraint. Overrides and
// filters take precedence over scoring, and equal-score conflicts fail loudly
// instead of guessing.
//
// Scores are float64 extended with the infinities: +Inf marks a forced match
// (override, identity or short-circuit) and -Inf marks a forbidden one
// (filtered, or displaced by an override).
package mapper
