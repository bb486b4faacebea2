package nash

import (
	"math/bits"
	"strconv"
	"strings"
)

const maxStrategies = 63

// Support is the set of pure strategies a player plays with positive
// probability. Bit i is set if strategy i is in the Support.
type Support uint64

// Contains returns whether strategy is in the Support.
func (s Support) Contains(strategy int) bool {
	return s&(1<<uint(strategy)) != 0
}

// Len returns the number of strategies in the Support.
func (s Support) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Base returns the lowest strategy in the Support, or -1 if it is empty.
func (s Support) Base() int {
	if s == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(s))
}

// Strategies returns the strategies in the Support in ascending order.
func (s Support) Strategies() []int {
	var result []int
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		result = append(result, bits.TrailingZeros64(rest))
	}
	return result
}

// String implements Stringer.
func (s Support) String() string {
	strategies := s.Strategies()
	parts := make([]string, len(strategies))
	for i, strategy := range strategies {
		parts[i] = strconv.Itoa(strategy)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// EnumerateSupports calls cb with every assignment of a non-empty Support
// to each player. Player 0's Support varies slowest. The slice passed to
// cb is reused between calls.
func EnumerateSupports(dims []int, cb func(supports []Support)) {
	supports := make([]Support, len(dims))
	enumerateSupports(dims, supports, 0, cb)
}

func enumerateSupports(dims []int, supports []Support, player int, cb func([]Support)) {
	if player == len(dims) {
		cb(supports)
		return
	}

	// The empty Support is skipped: every player must play something.
	for s := Support(1); s < Support(1)<<uint(dims[player]); s++ {
		supports[player] = s
		enumerateSupports(dims, supports, player+1, cb)
	}
}

// NumSupports returns the number of Support assignments EnumerateSupports
// visits for dims.
func NumSupports(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= (1 << uint(d)) - 1
	}
	return n
}
