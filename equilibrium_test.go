package nash

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/nash/tensor"
)

func matrixGame(t *testing.T, payoffs ...[][]float64) *Game {
	tables := make([]*tensor.Tensor[float64], len(payoffs))
	for i, p := range payoffs {
		var err error
		tables[i], err = tensor.FromNested[float64](p, nil)
		require.NoError(t, err)
	}

	g, err := NewGame(tables)
	require.NoError(t, err)
	return g
}

func negate(m [][]float64) [][]float64 {
	result := make([][]float64, len(m))
	for i, row := range m {
		result[i] = make([]float64, len(row))
		for j, v := range row {
			result[i][j] = -v
		}
	}
	return result
}

func strategies(eqs []Equilibrium) [][][]float64 {
	result := make([][][]float64, len(eqs))
	for i, eq := range eqs {
		result[i] = eq.Strategies
	}
	return result
}

func assertEquilibria(t *testing.T, expected [][][]float64, eqs []Equilibrium, delta float64) {
	require.Len(t, eqs, len(expected), "equilibria: %v", strategies(eqs))
	for i, eq := range eqs {
		require.Len(t, eq.Strategies, len(expected[i]))
		for player, p := range eq.Strategies {
			assert.InDeltaSlice(t, expected[i][player], p, delta,
				"equilibrium %d, player %d: %v", i, player, eq.Strategies)
		}
	}
}

var bothPolicies = []Options{{StrictInterior: false}, {StrictInterior: true}}

func TestMatchingPennies(t *testing.T) {
	pennies := [][]float64{{1, -1}, {-1, 1}}
	g := matrixGame(t, pennies, negate(pennies))
	for _, opts := range bothPolicies {
		eqs := FindEquilibria(g, opts)
		require.Len(t, eqs, 1)
		assert.Equal(t, [][]float64{{0.5, 0.5}, {0.5, 0.5}}, eqs[0].Strategies)
		assert.False(t, eqs[0].Degenerate)
		assert.Equal(t, []Support{3, 3}, eqs[0].Supports)
	}
}

func TestWeightedEquilibrium(t *testing.T) {
	weighted := [][]float64{{1, 0}, {0, 3}}
	g := matrixGame(t, weighted, negate(weighted))
	for _, opts := range bothPolicies {
		eqs := FindEquilibria(g, opts)
		require.Len(t, eqs, 1)
		assert.Equal(t, [][]float64{{0.75, 0.25}, {0.75, 0.25}}, eqs[0].Strategies)
	}
}

func TestMultipleEquilibria(t *testing.T) {
	coordination := [][]float64{{1, -1}, {-1, 1}}
	g := matrixGame(t, coordination, coordination)
	expected := [][][]float64{
		{{1, 0}, {1, 0}},
		{{0, 1}, {0, 1}},
		{{0.5, 0.5}, {0.5, 0.5}},
	}

	for _, opts := range bothPolicies {
		eqs := FindEquilibria(g, opts)
		assert.Equal(t, expected, strategies(eqs))
	}
}

var rockPaperScissors = [][]float64{
	{0, -1, 1},
	{1, 0, -1},
	{-1, 1, 0},
}

func TestRockPaperScissors(t *testing.T) {
	g := matrixGame(t, rockPaperScissors, negate(rockPaperScissors))
	third := 1.0 / 3
	for _, opts := range bothPolicies {
		eqs := FindEquilibria(g, opts)
		assertEquilibria(t, [][][]float64{{{third, third, third}, {third, third, third}}}, eqs, 1e-9)
	}
}

func withDominatedStrategy(m [][]float64, ownPayoff float64) (p0, p1 [][]float64) {
	p0 = make([][]float64, 4)
	p1 = make([][]float64, 4)
	for i := range p0 {
		p0[i] = make([]float64, 4)
		p1[i] = make([]float64, 4)
		for j := range p0[i] {
			switch {
			case i < 3 && j < 3:
				p0[i][j] = m[i][j]
				p1[i][j] = -m[i][j]
			case i == 3 && j == 3:
				p0[i][j] = ownPayoff
				p1[i][j] = ownPayoff
			case i == 3:
				p0[i][j] = ownPayoff
			default:
				p1[i][j] = ownPayoff
			}
		}
	}
	return p0, p1
}

func containsUniformRPS(eqs []Equilibrium) bool {
	for _, eq := range eqs {
		ok := true
		for _, p := range eq.Strategies {
			for i, expected := range []float64{1.0 / 3, 1.0 / 3, 1.0 / 3, 0} {
				if math.Abs(p[i]-expected) > 1e-9 {
					ok = false
				}
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestRockPaperScissorsWithDominatedStrategy(t *testing.T) {
	// A fourth strategy worth less than any outcome of the other three.
	p0, p1 := withDominatedStrategy(rockPaperScissors, -2)
	g := matrixGame(t, p0, p1)
	for _, opts := range bothPolicies {
		eqs := FindEquilibria(g, opts)
		assert.True(t, containsUniformRPS(eqs), "equilibria: %v", strategies(eqs))
		for _, eq := range eqs {
			assertProbabilities(t, eq)
		}
	}
}

func TestRockPaperScissorsWithZeroStrategy(t *testing.T) {
	// An all-zero fourth strategy ties with the uniform mix. At the uniform
	// point its deviation inequality is exactly 0, so after the margin it
	// stays in the least-squares system and the equalities never reach the
	// acceptance tolerance. Only the pure tie on the zero strategy remains,
	// and it lies on the boundary.
	p0, p1 := withDominatedStrategy(rockPaperScissors, 0)
	g := matrixGame(t, p0, p1)

	eqs := FindEquilibria(g, Options{})
	require.Len(t, eqs, 1, "equilibria: %v", strategies(eqs))
	assert.False(t, containsUniformRPS(eqs))
	assert.Equal(t, []Support{8, 8}, eqs[0].Supports)
	assert.Equal(t, [][]float64{{0, 0, 0, 1}, {0, 0, 0, 1}}, eqs[0].Strategies)
	assert.True(t, eqs[0].Degenerate)

	assert.Empty(t, FindEquilibria(g, Options{StrictInterior: true}))
}

func assertProbabilities(t *testing.T, eq Equilibrium) {
	for player, p := range eq.Strategies {
		sum := 0.0
		for _, x := range p {
			sum += x
			assert.True(t, x > -1e-9, "player %d: negative probability in %v", player, p)
		}
		assert.InDelta(t, 1, sum, 1e-9, "player %d: %v", player, p)
	}
}

func TestStrictInterior(t *testing.T) {
	// Player 0's two strategies are identical, so every equilibrium has a
	// zero deviation incentive or a zero probability.
	g := matrixGame(t, [][]float64{{1}, {1}}, [][]float64{{0}, {0}})

	assert.Empty(t, FindEquilibria(g, Options{StrictInterior: true}))

	eqs := FindEquilibria(g, Options{StrictInterior: false})
	expected := [][][]float64{
		{{1, 0}, {1}},
		{{0, 1}, {1}},
		{{1, 0}, {1}},
	}
	require.Len(t, eqs, len(expected))
	for i, eq := range eqs {
		assert.Equal(t, expected[i], eq.Strategies)
		assert.True(t, eq.Degenerate)
	}
	assert.Equal(t, []Support{3, 1}, eqs[2].Supports)
}

func TestThreePlayers(t *testing.T) {
	// Each player is paid 1 for matching the next player, so any common
	// pure strategy is an equilibrium.
	labels := [][]string{{"a", "b"}, {"a", "b"}, {"a", "b"}}
	payoffs := make([]PayoffFunc, 3)
	for player := range payoffs {
		next := (player + 1) % 3
		player := player
		payoffs[player] = func(p Profile) float64 {
			if p.Labels[player] == p.Labels[next] {
				return 1
			}
			return 0
		}
	}

	g, err := NewGameFromFunc(labels, payoffs)
	require.NoError(t, err)

	eqs := FindEquilibria(g, Options{StrictInterior: true})
	require.True(t, len(eqs) >= 2)
	assert.Equal(t, [][]float64{{1, 0}, {1, 0}, {1, 0}}, eqs[0].Strategies)
	assert.Equal(t, []Support{1, 1, 1}, eqs[0].Supports)
	for _, eq := range eqs {
		assertProbabilities(t, eq)
	}
}

func TestSolveErrors(t *testing.T) {
	square := tensor.Zeros[float64](2, 2)
	testCases := []struct {
		name     string
		payoffs  []*tensor.Tensor[float64]
		expected error
	}{
		{"no players", nil, ErrEmptyPlayerSet},
		{"rank mismatch", []*tensor.Tensor[float64]{square}, tensor.ErrShapeMismatch},
		{"shape mismatch", []*tensor.Tensor[float64]{square, tensor.Zeros[float64](2, 3)}, tensor.ErrShapeMismatch},
		{"rank too high", []*tensor.Tensor[float64]{tensor.Zeros[float64](2, 2, 2), tensor.Zeros[float64](2, 2, 2)}, tensor.ErrShapeMismatch},
		{"empty axis", []*tensor.Tensor[float64]{tensor.Zeros[float64](0, 2), tensor.Zeros[float64](0, 2)}, tensor.ErrShapeMismatch},
	}

	for _, tc := range testCases {
		eqs, err := Solve(tc.payoffs, Options{})
		assert.Nil(t, eqs, tc.name)
		assert.Equal(t, tc.expected, errors.Cause(err), "%s: %v", tc.name, err)
	}
}

func TestNonFinitePayoff(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		bad := tensor.Zeros[float64](2, 2)
		bad.Set(v, 1, 0)
		_, err := Solve([]*tensor.Tensor[float64]{tensor.Zeros[float64](2, 2), bad}, Options{})
		assert.Equal(t, ErrNonFinitePayoff, errors.Cause(err), "payoff %v", v)
	}
}

func TestPayoffsNotMutated(t *testing.T) {
	pennies, err := tensor.FromNested[float64]([][]float64{{1, -1}, {-1, 1}}, nil)
	require.NoError(t, err)
	other := tensor.Map(pennies, func(v float64) float64 { return -v })
	before := []*tensor.Tensor[float64]{pennies.Clone(), other.Clone()}

	_, err = Solve([]*tensor.Tensor[float64]{pennies, other}, Options{})
	require.NoError(t, err)
	assert.True(t, tensor.Equal(before[0], pennies))
	assert.True(t, tensor.Equal(before[1], other))
}

func TestDeterministic(t *testing.T) {
	p0, p1 := withDominatedStrategy(rockPaperScissors, 0)
	g := matrixGame(t, p0, p1)
	assert.Equal(t, FindEquilibria(g, Options{}), FindEquilibria(g, Options{}))
}
