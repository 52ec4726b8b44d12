package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionMapper(t *testing.T, cardinality Cardinality, minScore float64) *Mapper[string, string, string] {
	t.Helper()

	m, err := New(Config[string, string, string]{
		MinScore:    minScore,
		Cardinality: cardinality,
	})
	require.NoError(t, err)

	return m
}

func TestSelectOneToOneAmbiguousTie(t *testing.T) {
	m := selectionMapper(t, OneToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 1.0)
	scores.Set("v1", "c0", 0.75)
	scores.Set("v1", "c1", 0.25)

	_, err := m.ToDirectionalMapping(scores)

	var ambiguous *AmbiguousScoreError[string, string]
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "value", ambiguous.Kind)
	assert.Equal(t, "v0", ambiguous.Key)
	assert.Equal(t, OneToOne, ambiguous.Cardinality)
	assert.NotEmpty(t, ambiguous.Matrix)
}

func TestSelectOneToOneCandidateSideTie(t *testing.T) {
	m := selectionMapper(t, OneToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.25)
	scores.Set("v1", "c0", 1.0)
	scores.Set("v1", "c1", 0.25)

	_, err := m.ToDirectionalMapping(scores)

	var ambiguous *AmbiguousScoreError[string, string]
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "candidate", ambiguous.Kind)
	assert.Equal(t, "c0", ambiguous.Key)
}

func TestSelectForcedMatchesAreNeverAmbiguous(t *testing.T) {
	// Conflicting +Inf records resolve first-claim-wins: managing them is the
	// caller's responsibility.
	m := selectionMapper(t, OneToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1", "v2"}, []string{"c0"})
	scores.Set("v0", "c0", math.Inf(1))
	scores.Set("v1", "c0", math.Inf(1))
	scores.Set("v2", "c0", math.Inf(1))

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	assert.Equal(t, []string{"v0"}, dm.Left())
	assert.Equal(t, []string{"v1", "v2"}, dm.Unmatched())
}

func TestSelectTieAgainstForcedMatchIsNotAmbiguous(t *testing.T) {
	// v1 scores 0.9 for both candidates, but c0 is held by an infinite
	// record, which is exempt from the ambiguity check. v1 falls through to
	// c1 without an error.
	m := selectionMapper(t, OneToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", math.Inf(1))
	scores.Set("v0", "c1", math.Inf(-1))
	scores.Set("v1", "c0", 0.9)
	scores.Set("v1", "c1", 0.9)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	flat, err := dm.Flatten()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v0": "c0", "v1": "c1"}, flat)
}

func TestSelectThresholdIsInclusive(t *testing.T) {
	m := selectionMapper(t, ManyToOne, 0.5)

	scores := NewScoreMatrix([]string{"at", "below"}, []string{"c"})
	scores.Set("at", "c", 0.5)
	scores.Set("below", "c", 0.4375)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	assert.Equal(t, []string{"at"}, dm.Left())
	assert.Equal(t, []string{"below"}, dm.Unmatched())
}

func TestSelectManyToOneSharesCandidates(t *testing.T) {
	m := selectionMapper(t, ManyToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.25)
	scores.Set("v1", "c0", 0.75)
	scores.Set("v1", "c1", 0.25)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	flat, err := dm.Flatten()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v0": "c0", "v1": "c0"}, flat)
}

func TestSelectOneToManyCandidateExclusive(t *testing.T) {
	m := selectionMapper(t, OneToMany, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.9)
	scores.Set("v1", "c0", 0.75)
	scores.Set("v1", "c1", 0.25)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	matches, ok := dm.Matches("v0")
	require.True(t, ok)
	assert.Equal(t, []string{"c0", "c1"}, matches)

	assert.Equal(t, []string{"v1"}, dm.Unmatched())
}

func TestSelectManyToManyKeepsEverythingAboveThreshold(t *testing.T) {
	m := selectionMapper(t, ManyToMany, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.75)
	scores.Set("v1", "c0", 0.75)
	scores.Set("v1", "c1", 0.25)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	v0, _ := dm.Matches("v0")
	v1, _ := dm.Matches("v1")
	assert.ElementsMatch(t, []string{"c0", "c1"}, v0)
	assert.Equal(t, []string{"c0"}, v1)
}

func TestSelectGreedyIsOrderDependent(t *testing.T) {
	// Greedy selection never backtracks: v0's claim of c0 leaves v1 without a
	// match even though swapping assignments would cover both values.
	m := selectionMapper(t, OneToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0", "v1"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.75)
	scores.Set("v1", "c0", 0.9)
	scores.Set("v1", "c1", math.Inf(-1))

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	flat, err := dm.Flatten()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v0": "c0"}, flat)
	assert.Equal(t, []string{"v1"}, dm.Unmatched())
}

func TestSelectEqualScoresKeepMatrixOrder(t *testing.T) {
	// Under N:1 the value side is exclusive but candidates are shared; equal
	// scores within one row tie-break on candidate position.
	m := selectionMapper(t, ManyToOne, 0.5)

	scores := NewScoreMatrix([]string{"v0"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", math.Inf(1))
	scores.Set("v0", "c1", math.Inf(1))

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	flat, err := dm.Flatten()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"v0": "c0"}, flat)
}

func TestFlattenFailsOnMultiMatch(t *testing.T) {
	m := selectionMapper(t, OneToMany, 0.5)

	scores := NewScoreMatrix([]string{"v0"}, []string{"c0", "c1"})
	scores.Set("v0", "c0", 1.0)
	scores.Set("v0", "c1", 0.9)

	dm, err := m.ToDirectionalMapping(scores)
	require.NoError(t, err)

	_, err = dm.Flatten()
	assert.ErrorContains(t, err, "cannot flatten")
}
