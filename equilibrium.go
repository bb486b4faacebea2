// Package nash finds the Nash equilibria of finite games in normal form
// by support enumeration.
//
// For every assignment of a non-empty support to each player, the
// indifference conditions within the support and the no-profitable-
// deviation conditions outside it are built as expressions over the
// unknown probabilities, and a feasible point is sought with a few
// Gauss-Newton iterations. Every support assignment whose point is
// feasible contributes one Equilibrium. Equilibria that coincide
// numerically but were found through different supports are not merged.
//
// The cost is exponential in the number of strategies per player.
package nash

import (
	"github.com/golang/glog"

	"github.com/timpalpant/nash/tensor"
)

// Options configures the equilibrium search.
type Options struct {
	// StrictInterior requires every inequality constraint to be strictly
	// positive at an accepted equilibrium. Otherwise zero is accepted,
	// which admits degenerate equilibria: a supported strategy with zero
	// probability, or an unsupported strategy that is exactly as good as
	// the supported ones.
	StrictInterior bool
}

// Equilibrium is a mixed strategy profile from which no player can gain
// by deviating unilaterally.
type Equilibrium struct {
	// Strategies[k][i] is the probability that player k plays strategy i.
	// Values are the raw solver output and are not rounded, so they may
	// include tiny negative noise.
	Strategies [][]float64
	// The Support assignment this Equilibrium was found with.
	Supports []Support
	// Degenerate is true if the Equilibrium lies on the boundary of the
	// feasible region and would be rejected with StrictInterior.
	Degenerate bool
}

// Clone returns a deep copy of e.
func (e Equilibrium) Clone() Equilibrium {
	strategies := make([][]float64, len(e.Strategies))
	for i, s := range e.Strategies {
		strategies[i] = append([]float64(nil), s...)
	}
	return Equilibrium{
		Strategies: strategies,
		Supports:   append([]Support(nil), e.Supports...),
		Degenerate: e.Degenerate,
	}
}

// FindEquilibria returns every equilibrium of g found by support
// enumeration, in enumeration order. It never fails: support assignments
// that do not yield a feasible point are skipped.
func FindEquilibria(g *Game, opts Options) []Equilibrium {
	var result []Equilibrium
	EnumerateSupports(g.dims, func(supports []Support) {
		s := newSystem(g, supports)
		x := s.solve()
		feasible, degenerate := s.check(x, opts.StrictInterior)
		if !feasible {
			return
		}

		eq := Equilibrium{
			Strategies: s.mixedStrategies(x),
			Supports:   s.supports,
			Degenerate: degenerate,
		}
		glog.V(1).Infof("Found equilibrium with supports %v: %v", eq.Supports, eq.Strategies)
		result = append(result, eq)
	})

	return result
}

// Solve builds a Game from payoff tensors and finds its equilibria.
// An error is returned only if the payoffs do not describe a valid game.
func Solve(payoffs []*tensor.Tensor[float64], opts Options) ([]Equilibrium, error) {
	g, err := NewGame(payoffs)
	if err != nil {
		return nil, err
	}

	return FindEquilibria(g, opts), nil
}
