// Package gamefile reads and writes game definitions and equilibria as JSON.
//
// A game file names each player and its strategies and holds one nested
// payoff array per player, indexed by the strategies of every player in
// order:
//
//	{
//	  "players": [
//	    {"name": "row", "strategies": ["heads", "tails"]},
//	    {"name": "column", "strategies": ["heads", "tails"]}
//	  ],
//	  "payoffs": [
//	    [[1, -1], [-1, 1]],
//	    [[-1, 1], [1, -1]]
//	  ]
//	}
//
// Files whose name ends in .gz are gzip-compressed.
package gamefile

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/nash"
	"github.com/timpalpant/nash/tensor"
)

type Player struct {
	Name       string   `json:"name,omitempty"`
	Strategies []string `json:"strategies"`
}

type File struct {
	Players []Player `json:"players"`
	Payoffs []any    `json:"payoffs"`
}

// Decode parses a game definition.
func Decode(r io.Reader) (*nash.Game, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "invalid game file")
	}

	return f.Game()
}

// Game validates f and builds the Game it describes.
func (f *File) Game() (*nash.Game, error) {
	if len(f.Players) == 0 {
		return nil, nash.ErrEmptyPlayerSet
	}
	if len(f.Payoffs) != len(f.Players) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch,
			"%d payoff arrays for %d players", len(f.Payoffs), len(f.Players))
	}

	dims := make([]int, len(f.Players))
	names := make([]string, len(f.Players))
	labels := make([][]string, len(f.Players))
	for i, p := range f.Players {
		dims[i] = len(p.Strategies)
		names[i] = p.Name
		if names[i] == "" {
			names[i] = "Player" + strconv.Itoa(i)
		}
		labels[i] = p.Strategies
	}

	payoffs := make([]*tensor.Tensor[float64], len(f.Payoffs))
	for i, nested := range f.Payoffs {
		t, err := tensor.FromNested[float64](nested, dims)
		if err != nil {
			return nil, errors.Wrapf(err, "payoffs of player %d", i)
		}
		payoffs[i] = t
	}

	g, err := nash.NewGame(payoffs)
	if err != nil {
		return nil, err
	}
	if g, err = g.WithLabels(labels); err != nil {
		return nil, err
	}
	return g.WithNames(names)
}

// FromGame returns the File describing g.
func FromGame(g *nash.Game) *File {
	f := &File{
		Players: make([]Player, g.NumPlayers()),
		Payoffs: make([]any, g.NumPlayers()),
	}
	for i := range f.Players {
		f.Players[i] = Player{Name: g.Name(i), Strategies: g.Labels(i)}
		f.Payoffs[i] = g.Payoffs(i).ToNested()
	}
	return f
}

// Encode writes the definition of g.
func Encode(w io.Writer, g *nash.Game) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromGame(g))
}

// Load reads a game definition from a file.
func Load(filename string) (*nash.Game, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %v", filename)
		}
		defer gz.Close()
		r = gz
	}

	g, err := Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %v", filename)
	}
	return g, nil
}

// Save writes a game definition to a file.
func Save(filename string, g *nash.Game) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	b := bufio.NewWriter(f)
	var w io.Writer = b
	var gz *gzip.Writer
	if strings.HasSuffix(filename, ".gz") {
		gz = gzip.NewWriter(b)
		w = gz
	}

	if err := Encode(w, g); err != nil {
		f.Close()
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
	}
	if err := b.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
