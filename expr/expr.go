// Package expr implements a small closed set of real-valued expressions
// over a vector of variables, with evaluation and forward-mode gradients.
package expr

import (
	"strconv"
	"strings"
)

// Expr is one of Const, Var, Linear or Product.
type Expr interface {
	String() string
	isExpr()
}

// Const is a constant value.
type Const float64

// Var is the variable with the given index into the evaluation point.
type Var int

// Term is one weighted summand of a Linear expression.
type Term struct {
	Expr Expr
	Coef float64
}

// Linear is the weighted sum of its terms. An empty Linear is 0.
type Linear []Term

// Product is the product of its factors. An empty Product is 1.
type Product []Expr

func (Const) isExpr()   {}
func (Var) isExpr()     {}
func (Linear) isExpr()  {}
func (Product) isExpr() {}

// Eval returns the value of e at point.
func Eval(e Expr, point []float64) float64 {
	switch e := e.(type) {
	case Const:
		return float64(e)
	case Var:
		return point[e]
	case Linear:
		sum := 0.0
		for _, term := range e {
			sum += Eval(term.Expr, point) * term.Coef
		}
		return sum
	case Product:
		prod := 1.0
		for _, factor := range e {
			prod *= Eval(factor, point)
		}
		return prod
	default:
		panic("expr: unknown expression type")
	}
}

// EvalGrad returns the value of e at point along with its gradient with
// respect to every component of point.
func EvalGrad(e Expr, point []float64) (float64, []float64) {
	switch e := e.(type) {
	case Const:
		return float64(e), make([]float64, len(point))
	case Var:
		grad := make([]float64, len(point))
		grad[e] = 1
		return point[e], grad
	case Linear:
		sum := 0.0
		grad := make([]float64, len(point))
		for _, term := range e {
			v, g := EvalGrad(term.Expr, point)
			sum += v * term.Coef
			for i := range grad {
				grad[i] += g[i] * term.Coef
			}
		}
		return sum, grad
	case Product:
		// Left fold: the gradient of (p * f) is g_p * f + g_f * p.
		// The update order is significant for rounding.
		prod := 1.0
		grad := make([]float64, len(point))
		for _, factor := range e {
			v, g := EvalGrad(factor, point)
			for i := range grad {
				grad[i] = grad[i]*v + g[i]*prod
			}
			prod *= v
		}
		return prod, grad
	default:
		panic("expr: unknown expression type")
	}
}

func (c Const) String() string {
	return strconv.FormatFloat(float64(c), 'g', -1, 64)
}

func (v Var) String() string {
	return "x" + strconv.Itoa(int(v))
}

func (l Linear) String() string {
	if len(l) == 0 {
		return "0"
	}

	parts := make([]string, len(l))
	for i, term := range l {
		parts[i] = strconv.FormatFloat(term.Coef, 'g', -1, 64) + " * " + term.Expr.String()
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

func (p Product) String() string {
	if len(p) == 0 {
		return "1"
	}

	parts := make([]string, len(p))
	for i, factor := range p {
		parts[i] = factor.String()
	}
	return "(" + strings.Join(parts, " * ") + ")"
}
