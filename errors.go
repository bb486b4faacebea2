package nash

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyPlayerSet is returned for a game with no players.
	ErrEmptyPlayerSet = errors.New("game has no players")
	// ErrNonFinitePayoff is returned when a payoff is NaN or infinite.
	ErrNonFinitePayoff = errors.New("payoff is not finite")
	// ErrTooManyStrategies is returned when a player has more strategies
	// than fit in a Support.
	ErrTooManyStrategies = errors.New("too many strategies")
)
