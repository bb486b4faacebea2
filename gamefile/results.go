package gamefile

import (
	"encoding/json"
	"io"

	"github.com/timpalpant/nash"
)

// Strategy is one player's mixed strategy in an equilibrium.
type Strategy struct {
	Player        string             `json:"player"`
	Probabilities []float64          `json:"probabilities"`
	ByStrategy    map[string]float64 `json:"by_strategy,omitempty"`
	Support       []int              `json:"support"`
}

type Equilibrium struct {
	Strategies []Strategy `json:"strategies"`
	Degenerate bool       `json:"degenerate,omitempty"`
}

type Results struct {
	StrictInterior bool          `json:"strict_interior"`
	Equilibria     []Equilibrium `json:"equilibria"`
}

// NewResults labels equilibria of g with its player and strategy names.
// Probabilities are reported exactly as found.
func NewResults(g *nash.Game, opts nash.Options, eqs []nash.Equilibrium) *Results {
	r := &Results{
		StrictInterior: opts.StrictInterior,
		Equilibria:     make([]Equilibrium, len(eqs)),
	}

	for i, eq := range eqs {
		strategies := make([]Strategy, len(eq.Strategies))
		for player, p := range eq.Strategies {
			labels := g.Labels(player)
			byStrategy := make(map[string]float64, len(labels))
			for j, label := range labels {
				byStrategy[label] = p[j]
			}
			// Duplicate labels would lose probabilities in the map.
			if len(byStrategy) != len(labels) {
				byStrategy = nil
			}

			strategies[player] = Strategy{
				Player:        g.Name(player),
				Probabilities: p,
				ByStrategy:    byStrategy,
				Support:       eq.Supports[player].Strategies(),
			}
		}
		r.Equilibria[i] = Equilibrium{Strategies: strategies, Degenerate: eq.Degenerate}
	}

	return r
}

// EncodeResults writes r as indented JSON.
func EncodeResults(w io.Writer, r *Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
