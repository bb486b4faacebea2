// Find all Nash equilibria of a game defined in a JSON game file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/nash"
	"github.com/timpalpant/nash/gamefile"
	"github.com/timpalpant/nash/internal/npyio"
	"github.com/timpalpant/nash/matrixgame"
	"github.com/timpalpant/nash/tensor"
)

func main() {
	gameFile := flag.String("game", "", "Game definition (.json or .json.gz)")
	strict := flag.Bool("strict", false, "Reject degenerate equilibria on the feasibility boundary")
	jsonOutput := flag.String("json", "", "Write equilibria as JSON to this file (- for stdout)")
	npzOutput := flag.String("npz", "", "Write payoffs and equilibria as .npz to this file")
	flag.Parse()

	if *gameFile == "" {
		glog.Fatal("-game is required")
	}

	g, err := gamefile.Load(*gameFile)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Loaded game with %d players and strategies %v (%d support assignments)",
		g.NumPlayers(), g.Dims(), nash.NumSupports(g.Dims()))
	opts := nash.Options{StrictInterior: *strict}
	start := time.Now()
	equilibria := nash.FindEquilibria(g, opts)
	glog.Infof("Found %d equilibria in %v", len(equilibria), time.Since(start))

	for i, eq := range equilibria {
		printEquilibrium(g, i, eq)
	}

	if *jsonOutput != "" {
		if err := writeJSON(*jsonOutput, gamefile.NewResults(g, opts, equilibria)); err != nil {
			glog.Fatal(err)
		}
	}

	if *npzOutput != "" {
		glog.Infof("Saving payoffs and equilibria to %v", *npzOutput)
		if err := npyio.MakeNPZ(arrays(g, equilibria), *npzOutput); err != nil {
			glog.Fatal(err)
		}
	}
}

func printEquilibrium(g *nash.Game, i int, eq nash.Equilibrium) {
	var note string
	if eq.Degenerate {
		note = " (degenerate: rejected with -strict)"
	}
	fmt.Printf("Equilibrium %d%s:\n", i, note)
	for player, p := range eq.Strategies {
		labels := g.Labels(player)
		parts := make([]string, len(p))
		for j, x := range p {
			parts[j] = fmt.Sprintf("%s=%.6g", labels[j], x)
		}
		fmt.Printf("  %s: %s\n", g.Name(player), strings.Join(parts, " "))
	}

	if g.NumPlayers() == 2 {
		r0, r1, err := matrixgame.Regret(g.Payoffs(0), g.Payoffs(1), eq.Strategies[0], eq.Strategies[1])
		if err != nil {
			glog.Warningf("Could not compute regret: %v", err)
			return
		}
		glog.V(1).Infof("Equilibrium %d regret: %g, %g", i, r0, r1)
	}
}

func writeJSON(filename string, r *gamefile.Results) error {
	if filename == "-" {
		return gamefile.EncodeResults(os.Stdout, r)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := gamefile.EncodeResults(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func arrays(g *nash.Game, equilibria []nash.Equilibrium) map[string]*tensor.Tensor[float64] {
	result := make(map[string]*tensor.Tensor[float64])
	for player := 0; player < g.NumPlayers(); player++ {
		result[fmt.Sprintf("payoffs_%d", player)] = g.Payoffs(player)
	}

	for i, eq := range equilibria {
		for player, p := range eq.Strategies {
			t, err := tensor.FromFlat([]int{len(p)}, p)
			if err != nil {
				panic(err)
			}
			result[fmt.Sprintf("equilibrium_%d_player_%d", i, player)] = t
		}
	}

	return result
}
