// Package matrixgame approximates equilibria of two-player games.
package matrixgame

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/nash/tensor"
)

// ErrNotTwoPlayer is returned for payoff tables that are not matrices.
var ErrNotTwoPlayer = errors.New("not a two-player game")

// FictitiousPlay approximates an equilibrium of the two-player game with
// payoff matrices p0 and p1 (indexed [player 0 strategy][player 1 strategy]).
// In each of nIter rounds both players best respond to the other's
// empirical play so far, or with probability mixingLambda play uniformly
// at random. The empirical frequencies are returned.
func FictitiousPlay(rng *rand.Rand, p0, p1 *tensor.Tensor[float64], nIter int, mixingLambda float64) ([]float64, []float64, error) {
	if err := checkMatrices(p0, p1); err != nil {
		return nil, nil, err
	}

	shape := p0.Shape()
	p0PlayCounts := make([]int, shape[0])
	p1PlayCounts := make([]int, shape[1])
	for i := 1; i <= nIter; i++ {
		var p0Selected int
		if rng.Float64() < mixingLambda {
			p0Selected = rng.Intn(len(p0PlayCounts))
		} else {
			p0Selected = getP0BestResponse(rng, p0, p1PlayCounts)
		}

		var p1Selected int
		if rng.Float64() < mixingLambda {
			p1Selected = rng.Intn(len(p1PlayCounts))
		} else {
			p1Selected = getP1BestResponse(rng, p1, p0PlayCounts)
		}
		p0PlayCounts[p0Selected]++
		p1PlayCounts[p1Selected]++

		if nIter >= 10 && i%(nIter/10) == 0 {
			glog.V(1).Infof("After %d iterations, player 0 weights: %v", i, normalize(p0PlayCounts))
			glog.V(1).Infof("After %d iterations, player 1 weights: %v", i, normalize(p1PlayCounts))
		}
	}

	return normalize(p0PlayCounts), normalize(p1PlayCounts), nil
}

func checkMatrices(p0, p1 *tensor.Tensor[float64]) error {
	if p0.Rank() != 2 || p1.Rank() != 2 {
		return errors.Wrapf(ErrNotTwoPlayer, "payoffs have rank %d and %d", p0.Rank(), p1.Rank())
	}

	s0, s1 := p0.Shape(), p1.Shape()
	if s0[0] != s1[0] || s0[1] != s1[1] {
		return errors.Wrapf(tensor.ErrShapeMismatch, "payoff shapes %v and %v", s0, s1)
	}

	return nil
}

func getP0BestResponse(rng *rand.Rand, p0 *tensor.Tensor[float64], p1PlayCounts []int) int {
	utilities := make([]float64, p0.Shape()[0])
	for j, c := range p1PlayCounts {
		for i := range utilities {
			utilities[i] += float64(c) * p0.At(i, j)
		}
	}

	_, br := argMax(rng, utilities)
	return br
}

func getP1BestResponse(rng *rand.Rand, p1 *tensor.Tensor[float64], p0PlayCounts []int) int {
	utilities := make([]float64, p1.Shape()[1])
	for i, c := range p0PlayCounts {
		for j := range utilities {
			utilities[j] += float64(c) * p1.At(i, j)
		}
	}

	_, br := argMax(rng, utilities)
	return br
}

func normalize(counts []int) []float64 {
	total := 0
	for _, v := range counts {
		total += v
	}

	result := make([]float64, len(counts))
	for i, v := range counts {
		result[i] = float64(v) / float64(total)
	}
	return result
}

func argMax(rng *rand.Rand, vs []float64) (float64, int) {
	best := -math.MaxFloat64
	bestIdx := 0
	for i, v := range vs {
		if v > best {
			best = v
			bestIdx = i
		} else if v == best && rng.Intn(2) == 1 {
			bestIdx = i
		}
	}

	return best, bestIdx
}

// Regret returns, for each player, how much more that player would earn
// by switching from its mixed strategy to its best pure response while
// the other keeps playing theirs. Both are ~0 at an equilibrium.
func Regret(p0, p1 *tensor.Tensor[float64], x, y []float64) (float64, float64, error) {
	if err := checkMatrices(p0, p1); err != nil {
		return 0, 0, err
	}

	shape := p0.Shape()
	if len(x) != shape[0] || len(y) != shape[1] {
		return 0, 0, errors.Wrapf(tensor.ErrShapeMismatch,
			"strategies of length %d and %d for shape %v", len(x), len(y), shape)
	}

	r0 := make([]float64, shape[0])
	r1 := make([]float64, shape[1])
	var v0, v1 float64
	for i := range x {
		for j := range y {
			r0[i] += y[j] * p0.At(i, j)
			r1[j] += x[i] * p1.At(i, j)
			v0 += x[i] * y[j] * p0.At(i, j)
			v1 += x[i] * y[j] * p1.At(i, j)
		}
	}

	best0, best1 := -math.MaxFloat64, -math.MaxFloat64
	for _, v := range r0 {
		best0 = math.Max(best0, v)
	}
	for _, v := range r1 {
		best1 = math.Max(best1, v)
	}
	return best0 - v0, best1 - v1, nil
}
