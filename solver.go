package nash

import (
	"encoding/binary"
	"expvar"
	"math"

	"github.com/hashicorp/golang-lru"
)

var (
	solverCacheHits    = expvar.NewInt("equilibria/cache_hits")
	solverCacheMisses  = expvar.NewInt("equilibria/cache_misses")
	solverCacheHitRate = expvar.NewFloat("equilibria/cache_hit_rate")
	solverCacheSize    = expvar.NewInt("equilibria/cache_size")
)

// Solver memoizes FindEquilibria for front ends that re-solve the same
// game repeatedly while it is being edited. It is safe for concurrent use.
type Solver struct {
	opts  Options
	cache *lru.Cache
}

// NewSolver returns a Solver that remembers the equilibria of the
// cacheSize most recently solved games.
func NewSolver(opts Options, cacheSize int) (*Solver, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &Solver{opts: opts, cache: cache}, nil
}

// FindEquilibria is like the package-level FindEquilibria, with caching.
// The returned Equilibria belong to the caller.
func (s *Solver) FindEquilibria(g *Game) []Equilibrium {
	key := fingerprint(g)
	if cached, ok := s.cache.Get(key); ok {
		solverCacheHits.Add(1)
		s.updateHitRate()
		return cloneAll(cached.([]Equilibrium))
	}

	solverCacheMisses.Add(1)
	s.updateHitRate()
	result := FindEquilibria(g, s.opts)
	s.cache.Add(key, cloneAll(result))
	solverCacheSize.Set(int64(s.cache.Len()))
	return result
}

// Len returns the number of cached games.
func (s *Solver) Len() int {
	return s.cache.Len()
}

func (s *Solver) updateHitRate() {
	hits, misses := solverCacheHits.Value(), solverCacheMisses.Value()
	solverCacheHitRate.Set(float64(hits) / float64(hits+misses))
}

// fingerprint encodes the dimensions and payoffs of g. Labels and names
// do not affect the equilibria and are not included.
func fingerprint(g *Game) string {
	buf := make([]byte, 0, 8*(len(g.dims)+len(g.payoffs)*g.payoffs[0].Len()))
	for _, d := range g.dims {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(d))
	}
	for _, p := range g.payoffs {
		p.Each(func(_ []int, v float64) {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		})
	}
	return string(buf)
}

func cloneAll(eqs []Equilibrium) []Equilibrium {
	if eqs == nil {
		return nil
	}

	result := make([]Equilibrium, len(eqs))
	for i, eq := range eqs {
		result[i] = eq.Clone()
	}
	return result
}
