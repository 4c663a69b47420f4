package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplete_Monotonic(t *testing.T) {
	rec := NewRecord()

	best, improved := rec.Complete("alevel-algebra", 60)
	assert.Equal(t, 60, best)
	assert.True(t, improved)

	best, improved = rec.Complete("alevel-algebra", 40)
	assert.Equal(t, 60, best)
	assert.False(t, improved)

	best, improved = rec.Complete("alevel-algebra", 60)
	assert.Equal(t, 60, best)
	assert.False(t, improved)

	best, improved = rec.Complete("alevel-algebra", 90)
	assert.Equal(t, 90, best)
	assert.True(t, improved)

	assert.Equal(t, 90, rec.Score("alevel-algebra"))
}

func TestComplete_FirstZeroCreatesEntry(t *testing.T) {
	rec := NewRecord()
	_, ok := rec.Lookup("further-matrices")
	assert.False(t, ok)

	best, improved := rec.Complete("further-matrices", 0)
	assert.Equal(t, 0, best)
	assert.True(t, improved)

	_, ok = rec.Lookup("further-matrices")
	assert.True(t, ok)
	assert.Equal(t, 1, rec.Len())
}

func TestComplete_Clamps(t *testing.T) {
	rec := NewRecord()
	best, _ := rec.Complete("alevel-vectors", 150)
	assert.Equal(t, 100, best)

	best, _ = rec.Complete("alevel-proof", -5)
	assert.Equal(t, 0, best)
}

func TestScore_Missing(t *testing.T) {
	assert.Equal(t, 0, NewRecord().Score("alevel-algebra"))
}

func TestSnapshot_IsCopy(t *testing.T) {
	rec := NewRecord()
	rec.Complete("alevel-algebra", 50)
	snap := rec.Snapshot()
	snap["alevel-algebra"] = 100
	assert.Equal(t, 50, rec.Score("alevel-algebra"))
}

func TestIDs_Sorted(t *testing.T) {
	rec := NewRecord()
	rec.Complete("further-matrices", 10)
	rec.Complete("alevel-algebra", 20)
	assert.Equal(t, []string{"alevel-algebra", "further-matrices"}, toStrings(rec.IDs()))
}
