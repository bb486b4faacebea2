// Approximate an equilibrium of a two-player game by fictitious play.
package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/golang/glog"

	"github.com/timpalpant/nash/gamefile"
	"github.com/timpalpant/nash/matrixgame"
)

func main() {
	gameFile := flag.String("game", "", "Two-player game definition (.json or .json.gz)")
	nIter := flag.Int("iters", 100000, "Number of rounds of play")
	mixingLambda := flag.Float64("lambda", 0, "Probability of playing uniformly at random each round")
	seed := flag.Int64("seed", 123, "Random seed")
	flag.Parse()

	g, err := gamefile.Load(*gameFile)
	if err != nil {
		glog.Fatal(err)
	}

	if g.NumPlayers() != 2 {
		glog.Fatalf("Game has %d players, fictitious play needs 2", g.NumPlayers())
	}

	rng := rand.New(rand.NewSource(*seed))
	p0, p1 := g.Payoffs(0), g.Payoffs(1)

	x, y, err := matrixgame.FictitiousPlay(rng, p0, p1, *nIter, *mixingLambda)
	if err != nil {
		glog.Fatal(err)
	}

	r0, r1, err := matrixgame.Regret(p0, p1, x, y)
	if err != nil {
		glog.Fatal(err)
	}

	fmt.Printf("%s: %v (regret %.4g)\n", g.Name(0), x, r0)
	fmt.Printf("%s: %v (regret %.4g)\n", g.Name(1), y, r1)
}
