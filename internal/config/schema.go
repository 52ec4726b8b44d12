// Package config loads declarative mapping jobs from YAML and builds
// configured string-typed mappers from them.
package config

// Job is the root of a YAML mapping-job file. It names the inputs and the
// matching configuration in a declarative form; Build turns it into a
// runnable mapper.
type Job struct {
	// Version of the job schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Values are the elements to find matches for.
	Values []string `yaml:"values"`

	// Candidates are the potential matches.
	Candidates []string `yaml:"candidates"`

	// Context the mapping is performed in. Required when context_overrides
	// are used.
	Context string `yaml:"context,omitempty"`

	// Score selects and configures the score function.
	Score ScoreSpec `yaml:"score,omitempty"`

	// MinScore is the lowest score that still makes a match.
	MinScore float64 `yaml:"min_score,omitempty"`

	// Cardinality in wire form: "1:1", "1:N", "N:1" or "N:N".
	Cardinality string `yaml:"cardinality,omitempty"`

	// OnUnmapped is one of ignore, warn, raise.
	OnUnmapped string `yaml:"on_unmapped,omitempty"`

	// Overrides are global forced value -> candidate matches.
	Overrides map[string]string `yaml:"overrides,omitempty"`

	// ContextOverrides are per-context forced matches layered on top of the
	// global overrides.
	ContextOverrides map[string]map[string]string `yaml:"context_overrides,omitempty"`

	// Filters run in order before scoring.
	Filters []FilterSpec `yaml:"filters,omitempty"`

	// Heuristics wrap the score function in a HeuristicScore chain.
	Heuristics []HeuristicSpec `yaml:"heuristics,omitempty"`
}

// ScoreSpec selects a score function by name.
type ScoreSpec struct {
	// Function is one of: equality, modified-hamming, levenshtein-ratio,
	// disabled.
	Function string `yaml:"function"`

	// Strict applies to the disabled function: fail instead of silently
	// refusing to match.
	Strict bool `yaml:"strict,omitempty"`

	// PositionalPenalty overrides the modified-hamming candidate-order
	// penalty.
	PositionalPenalty *float64 `yaml:"positional_penalty,omitempty"`

	// NoLengthRatio disables the modified-hamming length-ratio term.
	NoLengthRatio bool `yaml:"no_length_ratio,omitempty"`
}

// FilterSpec selects a filter function by name.
type FilterSpec struct {
	// Function is one of: names, contexts, candidates.
	Function string `yaml:"function"`

	// Regex is matched case-insensitively at the start of the input.
	Regex string `yaml:"regex"`

	// Remove inverts the filter: matching inputs are dropped instead of kept.
	Remove bool `yaml:"remove,omitempty"`
}

// HeuristicSpec selects an alias or short-circuit heuristic by name.
type HeuristicSpec struct {
	// Function is one of: force-lower-case, value-format-alias,
	// candidate-format-alias, like-table, smurf-columns, short-circuit.
	Function string `yaml:"function"`

	// Format for the format-alias functions, with {value}, {candidate} and
	// {context} placeholders.
	Format string `yaml:"format,omitempty"`

	// ForValue restricts value-format-alias to a single value.
	ForValue string `yaml:"for_value,omitempty"`

	// Regex for short-circuit, matched against the value.
	Regex string `yaml:"regex,omitempty"`

	// Target candidate for short-circuit.
	Target string `yaml:"target,omitempty"`

	// Singular enables plural-to-singular handling for like-table and
	// smurf-columns.
	Singular bool `yaml:"singular,omitempty"`

	// CustomSingulars adds irregular plural -> singular mappings.
	CustomSingulars map[string]string `yaml:"custom_singulars,omitempty"`

	// Mutate forwards this alias rewrite to subsequent heuristics.
	Mutate bool `yaml:"mutate,omitempty"`
}
