// Package match provides identifier normalization and string-distance
// primitives shared by the built-in score and heuristic functions.
package match
