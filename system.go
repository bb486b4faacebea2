package nash

import (
	"github.com/timpalpant/nash/expr"
	"github.com/timpalpant/nash/ndindex"
)

// system is the set of constraints a mixed strategy profile with a given
// Support assignment must satisfy to be an equilibrium.
//
// Each player's lowest supported strategy is its base strategy. Every
// other supported strategy gets a variable holding its probability; the
// base strategy's probability is one minus the sum of those.
type system struct {
	supports []Support
	nVars    int
	// probs[player][strategy] is the probability of strategy.
	probs [][]expr.Expr
	// Must be zero: no player gains by moving weight between two
	// supported strategies.
	equalities []expr.Expr
	// Must be non-negative: probabilities of supported strategies, and the
	// loss from moving weight to an unsupported strategy.
	inequalities []expr.Expr
}

func newSystem(g *Game, supports []Support) *system {
	s := &system{
		supports: append([]Support(nil), supports...),
		probs:    make([][]expr.Expr, len(supports)),
	}

	varOf := make([][]int, len(supports))
	for player, support := range supports {
		varOf[player] = make([]int, g.dims[player])
		base := support.Base()
		for strategy := range varOf[player] {
			if strategy != base && support.Contains(strategy) {
				varOf[player][strategy] = s.nVars
				s.nVars++
			} else {
				varOf[player][strategy] = -1
			}
		}
	}

	for player, support := range supports {
		base := support.Base()
		s.probs[player] = make([]expr.Expr, g.dims[player])
		for strategy := range s.probs[player] {
			if strategy == base {
				var others expr.Linear
				for _, v := range varOf[player] {
					if v >= 0 {
						others = append(others, expr.Term{Expr: expr.Var(v), Coef: -1})
					}
				}
				s.probs[player][strategy] = append(others, expr.Term{Expr: expr.Const(1), Coef: 1})
			} else if v := varOf[player][strategy]; v >= 0 {
				s.probs[player][strategy] = expr.Var(v)
			} else {
				s.probs[player][strategy] = expr.Const(0)
			}
		}
	}

	for player, support := range supports {
		base := support.Base()
		for strategy, v := range varOf[player] {
			if v >= 0 {
				s.equalities = append(s.equalities, s.gain(g, player, base, strategy))
			}
		}
	}

	for player, support := range supports {
		base := support.Base()
		for strategy := 0; strategy < g.dims[player]; strategy++ {
			if support.Contains(strategy) {
				s.inequalities = append(s.inequalities, s.probs[player][strategy])
			} else {
				s.inequalities = append(s.inequalities, s.gain(g, player, strategy, base))
			}
		}
	}

	return s
}

// gain returns the expected payoff to player of playing to rather than
// from, against the other players' mixed strategies.
func (s *system) gain(g *Game, player, from, to int) expr.Expr {
	payoffs := g.payoffs[player]
	opponents := ndindex.New(g.dims...).Pin(player)

	var terms expr.Linear
	for it := opponents.Iter(); it.Next(); {
		profile := it.Index()
		profile[player] = from
		fromPayoff := payoffs.At(profile...)
		profile[player] = to
		toPayoff := payoffs.At(profile...)

		weight := make(expr.Product, len(profile))
		for other, strategy := range profile {
			if other == player {
				weight[other] = expr.Const(1)
			} else {
				weight[other] = s.probs[other][strategy]
			}
		}
		terms = append(terms, expr.Term{Expr: weight, Coef: toPayoff - fromPayoff})
	}

	return terms
}

// mixedStrategies evaluates every player's mixed strategy at x.
func (s *system) mixedStrategies(x []float64) [][]float64 {
	result := make([][]float64, len(s.probs))
	for player, probs := range s.probs {
		result[player] = make([]float64, len(probs))
		for strategy, p := range probs {
			result[player][strategy] = expr.Eval(p, x)
		}
	}
	return result
}
