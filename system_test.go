package nash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/nash/expr"
)

func TestSystemConstruction(t *testing.T) {
	g := matrixGame(t, rockPaperScissors, negate(rockPaperScissors))
	// Player 0 plays {paper, scissors}, player 1 plays everything.
	s := newSystem(g, []Support{6, 7})

	require.Equal(t, 3, s.nVars)
	assert.Equal(t, "(-1 * x0 + 1 * 1)", s.probs[0][1].String())
	assert.Equal(t, expr.Var(0), s.probs[0][2])
	assert.Equal(t, expr.Const(0), s.probs[0][0])
	assert.Equal(t, "(-1 * x1 + -1 * x2 + 1 * 1)", s.probs[1][0].String())
	assert.Equal(t, expr.Var(1), s.probs[1][1])
	assert.Equal(t, expr.Var(2), s.probs[1][2])

	// One equality per variable; one inequality per strategy.
	assert.Len(t, s.equalities, 3)
	assert.Len(t, s.inequalities, 6)

	// Against uniform play every strategy earns 0.
	third := 1.0 / 3
	x := []float64{0.5, third, third}
	assert.InDelta(t, 0, expr.Eval(s.equalities[0], x), 1e-15)
	// Rock is unsupported; against uniform play it is no better than paper.
	assert.InDelta(t, 0, expr.Eval(s.inequalities[0], x), 1e-15)
}

func TestSolveSingletonSupports(t *testing.T) {
	g := matrixGame(t, rockPaperScissors, negate(rockPaperScissors))
	s := newSystem(g, []Support{1, 1})
	assert.Equal(t, 0, s.nVars)
	assert.Empty(t, s.solve())
	assert.Equal(t, [][]float64{{1, 0, 0}, {1, 0, 0}}, s.mixedStrategies(nil))
}
