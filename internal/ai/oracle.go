// Package ai is the move-suggestion collaborator. It sits outside the rules
// engine: every proposal goes back through the engine's own legality check
// before anything on the board changes.
package ai

import (
	"errors"
	"math/rand"

	"github.com/powerchess/powerchess-backend/internal/model"
)

// Oracle proposes a move for the side to move. Suggestions are untrusted.
type Oracle interface {
	Suggest(state model.GameState) (model.SimpleMove, error)
}

var ErrNoPieces = errors.New("no pieces for side to move")

// RandomOracle picks a uniformly random piece of the side to move and a
// uniformly random destination square. Proposals are frequently illegal by
// construction; the engine's documented fallback substitutes a random legal
// move of the proposed piece.
type RandomOracle struct {
	randInt func(n int) int
}

func NewRandomOracle() *RandomOracle {
	return &RandomOracle{randInt: rand.Intn}
}

func (o *RandomOracle) Suggest(state model.GameState) (model.SimpleMove, error) {
	positions := []model.Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := state.Board.Board[y][x]
			if piece != nil && piece.Color == state.ToMove {
				positions = append(positions, model.Position{X: x, Y: y})
			}
		}
	}
	if len(positions) == 0 {
		return model.SimpleMove{}, ErrNoPieces
	}
	from := positions[o.randInt(len(positions))]
	to := model.Position{X: o.randInt(8), Y: o.randInt(8)}
	return model.SimpleMove{From: from, To: to}, nil
}
