package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextRevision_IncrementsGeneration(t *testing.T) {
	first := nextRevision("")
	assert.Equal(t, 1, RevisionGeneration(first))

	second := nextRevision(first)
	assert.Equal(t, 2, RevisionGeneration(second))
	assert.NotEqual(t, first, second)
}

func TestNextRevision_DistinctSuffixes(t *testing.T) {
	a := nextRevision("5-aaaaaaaa")
	b := nextRevision("5-aaaaaaaa")

	assert.Equal(t, 6, RevisionGeneration(a))
	assert.Equal(t, 6, RevisionGeneration(b))
	assert.NotEqual(t, a, b)
}

func TestRevisionGeneration_Malformed(t *testing.T) {
	assert.Equal(t, 0, RevisionGeneration(""))
	assert.Equal(t, 0, RevisionGeneration("garbage"))
	assert.Equal(t, 0, RevisionGeneration("x-abc"))
	assert.Equal(t, 0, RevisionGeneration("-abc"))
	assert.Equal(t, 7, RevisionGeneration("7-abcdef12"))
}
