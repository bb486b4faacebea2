package nash

import (
	"math"

	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/timpalpant/nash/expr"
)

const (
	maxIterations = 5
	// Inequalities must clear this margin to be considered satisfied while
	// iterating, which pushes the solution into the interior.
	inequalityMargin = 1e-7
	residualTol      = 1e-5
	minDeterminant   = 1e-10
	equalityTol      = 1e-14
)

// solve searches for a point satisfying every constraint of s by
// Gauss-Newton iteration from the origin. Inequalities take part only
// while they are violated. The final point is returned whether or not it
// is feasible.
func (s *system) solve() []float64 {
	x := make([]float64, s.nVars)
	for iter := 0; iter < maxIterations && s.nVars > 0; iter++ {
		var b []float64
		var jacobian []float64
		for _, c := range s.equalities {
			v, grad := expr.EvalGrad(c, x)
			b = append(b, v)
			jacobian = append(jacobian, grad...)
		}
		for _, c := range s.inequalities {
			v, grad := expr.EvalGrad(c, x)
			if v -= inequalityMargin; v < 0 {
				b = append(b, v)
				jacobian = append(jacobian, grad...)
			}
		}

		// NaN compares false, so it also stops the iteration.
		if norm := floats.Norm(b, 2); !(norm >= residualTol) {
			glog.V(3).Infof("%v: converged after %d iterations, |b| = %g", s.supports, iter, norm)
			break
		}

		delta, ok := leastSquaresStep(jacobian, b, s.nVars)
		if !ok {
			glog.V(3).Infof("%v: normal equations not solvable", s.supports)
			break
		}

		for i := range x {
			x[i] -= delta[i]
		}
	}

	return x
}

// leastSquaresStep solves the normal equations AᵗA·Δ = Aᵗb for the
// row-major len(b)×nVars Jacobian A. ok is false if det(AᵗA) is below
// minDeterminant or the solve fails. A poorly conditioned but solvable
// system still yields its step.
func leastSquaresStep(jacobian, b []float64, nVars int) (delta []float64, ok bool) {
	a := mat.NewDense(len(b), nVars, jacobian)
	var ata mat.Dense
	ata.Mul(a.T(), a)
	if det := mat.Det(&ata); !(det >= minDeterminant) {
		glog.V(3).Infof("Singular normal equations, det = %g", det)
		return nil, false
	}

	var atb, d mat.VecDense
	atb.MulVec(a.T(), mat.NewVecDense(len(b), b))
	if err := d.SolveVec(&ata, &atb); err != nil {
		if _, warning := err.(mat.Condition); !warning {
			return nil, false
		}
		glog.V(3).Infof("Ill-conditioned normal equations: %v", err)
	}

	delta = make([]float64, nVars)
	for i := range delta {
		delta[i] = d.AtVec(i)
	}
	return delta, true
}

// check evaluates every constraint at x. feasible reports whether x
// passes under the given inequality predicate; degenerate reports whether
// some inequality is not strictly positive.
func (s *system) check(x []float64, strict bool) (feasible, degenerate bool) {
	for _, c := range s.equalities {
		if v := expr.Eval(c, x); !(math.Abs(v) < equalityTol) {
			glog.V(2).Infof("%v: equality violated by %g", s.supports, v)
			return false, false
		}
	}

	for _, c := range s.inequalities {
		v := expr.Eval(c, x)
		if !(v > 0) {
			degenerate = true
		}
		if (strict && !(v > 0)) || (!strict && !(v >= 0)) {
			glog.V(2).Infof("%v: inequality %v violated: %g", s.supports, c, v)
			return false, degenerate
		}
	}

	return true, degenerate
}
