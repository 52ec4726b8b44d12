package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	job, err := Parse([]byte(`
values: [a, b]
candidates: [a, c]
`))
	require.NoError(t, err)

	assert.Equal(t, "1", job.Version)
	assert.Equal(t, "equality", job.Score.Function)
	assert.Equal(t, "N:1", job.Cardinality)
	assert.Equal(t, "ignore", job.OnUnmapped)
	assert.Equal(t, []string{"a", "b"}, job.Values)
	assert.Equal(t, []string{"a", "c"}, job.Candidates)
}

func TestParseFullJob(t *testing.T) {
	job, err := Parse([]byte(`
version: "1"
values: [dog_id]
candidates: [dog, cat]
context: animals
score:
  function: modified-hamming
  positional_penalty: 0.01
min_score: 0.8
cardinality: "1:1"
on_unmapped: raise
overrides:
  special: dog
context_overrides:
  animals:
    special: cat
filters:
  - function: candidates
    regex: "d"
heuristics:
  - function: like-table
    singular: true
    mutate: true
`))
	require.NoError(t, err)

	assert.Equal(t, "modified-hamming", job.Score.Function)
	require.NotNil(t, job.Score.PositionalPenalty)
	assert.Equal(t, 0.01, *job.Score.PositionalPenalty)
	assert.Equal(t, 0.8, job.MinScore)
	assert.Equal(t, "1:1", job.Cardinality)
	assert.Equal(t, "raise", job.OnUnmapped)
	assert.Equal(t, map[string]string{"special": "dog"}, job.Overrides)
	assert.Equal(t, "cat", job.ContextOverrides["animals"]["special"])
	require.Len(t, job.Filters, 1)
	require.Len(t, job.Heuristics, 1)
	assert.True(t, job.Heuristics[0].Mutate)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("values: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse job YAML")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("values: [a]\ncandidates: [a]\n"), 0o600))

	job, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, job.Values)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read job file")
}

func TestMarshalRoundTrip(t *testing.T) {
	job, err := Parse([]byte("values: [a]\ncandidates: [b]\nmin_score: 0.7\n"))
	require.NoError(t, err)

	data, err := Marshal(job)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, job, again)
}
