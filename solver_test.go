package nash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverCaches(t *testing.T) {
	s, err := NewSolver(Options{}, 2)
	require.NoError(t, err)

	pennies := [][]float64{{1, -1}, {-1, 1}}
	g := matrixGame(t, pennies, negate(pennies))
	hits := solverCacheHits.Value()

	first := s.FindEquilibria(g)
	assert.Equal(t, hits, solverCacheHits.Value())
	assert.Equal(t, 1, s.Len())

	// Mutating a result must not affect the cache.
	first[0].Strategies[0][0] = 42
	second := s.FindEquilibria(g)
	assert.Equal(t, hits+1, solverCacheHits.Value())
	assert.Equal(t, FindEquilibria(g, Options{}), second)

	// Relabeling does not change the game.
	named, err := g.WithNames([]string{"a", "b"})
	require.NoError(t, err)
	s.FindEquilibria(named)
	assert.Equal(t, 1, s.Len())

	coordination := matrixGame(t, pennies, pennies)
	assert.Len(t, s.FindEquilibria(coordination), 3)
	assert.Equal(t, 2, s.Len())
}

func TestNewSolverInvalidSize(t *testing.T) {
	_, err := NewSolver(Options{}, 0)
	assert.Error(t, err)
}
