package nash

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/timpalpant/nash/ndindex"
	"github.com/timpalpant/nash/tensor"
)

// Game is a finite game in normal form. Payoffs[k] holds player k's
// payoff for every joint pure-strategy profile.
//
// A Game owns its payoff tensors: constructors copy their inputs and
// accessors return copies, so a Game is immutable once built.
type Game struct {
	names   []string
	labels  [][]string
	payoffs []*tensor.Tensor[float64]
	dims    []int
}

// Profile is a joint pure-strategy profile, one strategy per player.
type Profile struct {
	Indices []int
	Labels  []string
}

// PayoffFunc returns one player's payoff at a joint profile.
type PayoffFunc func(p Profile) float64

// NewGame creates a Game from one payoff tensor per player. Every tensor
// must have one axis per player, and all must share the same shape.
// Strategy labels default to the strategy indices.
func NewGame(payoffs []*tensor.Tensor[float64]) (*Game, error) {
	if len(payoffs) == 0 {
		return nil, ErrEmptyPlayerSet
	}

	dims := payoffs[0].Shape()
	labels := make([][]string, len(dims))
	for player, n := range dims {
		labels[player] = make([]string, n)
		for i := range labels[player] {
			labels[player][i] = strconv.Itoa(i)
		}
	}

	return newGame(nil, labels, payoffs)
}

// NewGameFromFunc tabulates a Game from strategy labels and one payoff
// function per player. Each function is called once per joint profile,
// with a Profile it may retain.
func NewGameFromFunc(labels [][]string, payoffs []PayoffFunc) (*Game, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyPlayerSet
	}
	if len(labels) != len(payoffs) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"%d players but %d payoff functions", len(labels), len(payoffs))
	}

	dims := make([]int, len(labels))
	for player, strategies := range labels {
		dims[player] = len(strategies)
	}

	tables := make([]*tensor.Tensor[float64], len(payoffs))
	for player := range tables {
		tables[player] = tensor.Zeros[float64](dims...)
	}

	for it := ndindex.New(dims...).Iter(); it.Next(); {
		index := it.Index()
		profileLabels := make([]string, len(dims))
		for player, strategy := range index {
			profileLabels[player] = labels[player][strategy]
		}
		p := Profile{Indices: index, Labels: profileLabels}
		for player, f := range payoffs {
			tables[player].Set(f(p), index...)
		}
	}

	return newGame(nil, labels, tables)
}

// WithNames returns a copy of g with the given player names.
func (g *Game) WithNames(names []string) (*Game, error) {
	return newGame(names, g.labels, g.payoffs)
}

// WithLabels returns a copy of g with the given strategy labels.
func (g *Game) WithLabels(labels [][]string) (*Game, error) {
	return newGame(g.names, labels, g.payoffs)
}

func newGame(names []string, labels [][]string, payoffs []*tensor.Tensor[float64]) (*Game, error) {
	if len(payoffs) == 0 {
		return nil, ErrEmptyPlayerSet
	}

	dims := payoffs[0].Shape()
	if err := validate(dims, payoffs); err != nil {
		return nil, err
	}

	if len(labels) != len(dims) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"%d label lists for %d players", len(labels), len(dims))
	}
	for player, strategies := range labels {
		if len(strategies) != dims[player] {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch,
				"player %d has %d labels for %d strategies", player, len(strategies), dims[player])
		}
	}

	if names == nil {
		names = make([]string, len(dims))
		for player := range names {
			names[player] = "Player" + strconv.Itoa(player)
		}
	} else if len(names) != len(dims) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"%d names for %d players", len(names), len(dims))
	}

	g := &Game{
		names:   append([]string(nil), names...),
		labels:  make([][]string, len(labels)),
		payoffs: make([]*tensor.Tensor[float64], len(payoffs)),
		dims:    dims,
	}
	for player := range labels {
		g.labels[player] = append([]string(nil), labels[player]...)
		g.payoffs[player] = payoffs[player].Clone()
	}

	return g, nil
}

func validate(dims []int, payoffs []*tensor.Tensor[float64]) error {
	for player, n := range dims {
		if n <= 0 {
			return errors.Wrapf(tensor.ErrShapeMismatch,
				"player %d has no strategies", player)
		}
		if n > maxStrategies {
			return errors.Wrapf(ErrTooManyStrategies,
				"player %d has %d strategies, at most %d supported", player, n, maxStrategies)
		}
	}

	if len(payoffs) != len(dims) {
		return errors.Wrapf(tensor.ErrShapeMismatch,
			"%d payoff tensors for %d players", len(payoffs), len(dims))
	}

	for player, t := range payoffs {
		shape := t.Shape()
		if len(shape) != len(dims) {
			return errors.Wrapf(tensor.ErrShapeMismatch,
				"player %d payoffs have rank %d, expected %d", player, len(shape), len(dims))
		}
		for i := range shape {
			if shape[i] != dims[i] {
				return errors.Wrapf(tensor.ErrShapeMismatch,
					"player %d payoffs have shape %v, expected %v", player, shape, dims)
			}
		}

		var err error
		t.Each(func(index []int, v float64) {
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errors.Wrapf(ErrNonFinitePayoff,
					"player %d payoff at %v is %v", player, index, v)
			}
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// NumPlayers returns the number of players.
func (g *Game) NumPlayers() int {
	return len(g.dims)
}

// Dims returns the number of strategies of each player.
func (g *Game) Dims() []int {
	return append([]int(nil), g.dims...)
}

// Name returns the name of a player.
func (g *Game) Name(player int) string {
	return g.names[player]
}

// Labels returns the strategy labels of a player.
func (g *Game) Labels(player int) []string {
	return append([]string(nil), g.labels[player]...)
}

// Payoffs returns a copy of a player's payoff tensor.
func (g *Game) Payoffs(player int) *tensor.Tensor[float64] {
	return g.payoffs[player].Clone()
}

// Payoff returns a player's payoff at a joint profile.
func (g *Game) Payoff(player int, profile ...int) float64 {
	return g.payoffs[player].At(profile...)
}
