// Package powerup holds the concrete rule modifiers and the selection system
// that offers one to White every third move. Modifiers plug into the engine
// through the capability interfaces in internal/model; the engine never
// branches on a specific power-up.
package powerup

import (
	"math/rand"

	"github.com/powerchess/powerchess-backend/internal/model"
)

// ForwardCapture lets pawns capture (not just advance onto) the square
// directly ahead when it holds an enemy piece.
type ForwardCapture struct{}

func (ForwardCapture) Kind() model.ModifierKind { return model.ModifierForwardCapture }

func (ForwardCapture) ExtendMoves(piece *model.Piece, board *model.BoardState, moves []model.SimpleMove) []model.SimpleMove {
	if piece.Type != model.Pawn {
		return moves
	}
	dirY := -1
	if piece.Color == model.ColorBlack {
		dirY = 1
	}
	ahead := model.Position{X: piece.Position.X, Y: piece.Position.Y + dirY}
	if target := board.At(ahead); target != nil && target.Color != piece.Color {
		moves = append(moves, model.SimpleMove{From: piece.Position, To: ahead})
	}
	return moves
}

var extendedKnightOffsets = []model.Position{
	{X: 1, Y: 3}, {X: 1, Y: -3}, {X: -1, Y: 3}, {X: -1, Y: -3},
	{X: 3, Y: 1}, {X: 3, Y: -1}, {X: -3, Y: 1}, {X: -3, Y: -1},
}

// ExtendedKnight adds a secondary offset set to knight moves, filtered by the
// same occupancy rule as the standard offsets.
type ExtendedKnight struct {
	Offsets []model.Position
}

func NewExtendedKnight() *ExtendedKnight {
	return &ExtendedKnight{Offsets: extendedKnightOffsets}
}

func (*ExtendedKnight) Kind() model.ModifierKind { return model.ModifierExtendedKnight }

func (ek *ExtendedKnight) ExtendMoves(piece *model.Piece, board *model.BoardState, moves []model.SimpleMove) []model.SimpleMove {
	if piece.Type != model.Knight {
		return moves
	}
	for _, offset := range ek.Offsets {
		target := model.Position{X: piece.Position.X + offset.X, Y: piece.Position.Y + offset.Y}
		if target.X < 0 || target.X > 7 || target.Y < 0 || target.Y > 7 {
			continue
		}
		if occupant := board.At(target); occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, model.SimpleMove{From: piece.Position, To: target})
		}
	}
	return moves
}

// RandomRemoval removes one uniformly random non-king piece when activated.
type RandomRemoval struct {
	randInt func(n int) int
}

func NewRandomRemoval() *RandomRemoval {
	return &RandomRemoval{randInt: rand.Intn}
}

func (*RandomRemoval) Kind() model.ModifierKind { return model.ModifierRandomRemoval }

func (rr *RandomRemoval) Apply(fx model.Effects) {
	candidates := []model.Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := model.Position{X: x, Y: y}
			if piece := fx.PieceAt(pos); piece != nil && piece.Type != model.King {
				candidates = append(candidates, pos)
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	fx.ClearSquare(candidates[rr.randInt(len(candidates))])
}

// DefaultFuse is how many full turn cycles a time bomb waits before
// detonating.
const DefaultFuse = 3

// TimeBomb marks a piece with a latent charge. The bomb owns its countdown:
// it burns one fuse step per tick event and, at zero, clears the 3x3 area
// around wherever the carrier has moved to. Capturing the carrier defuses it.
type TimeBomb struct {
	target  model.Position
	carrier *model.Piece
	fuse    int
}

func NewTimeBomb(target model.Position, fuse int) *TimeBomb {
	return &TimeBomb{target: target, fuse: fuse}
}

func (*TimeBomb) Kind() model.ModifierKind { return model.ModifierTimeBomb }

func (tb *TimeBomb) Apply(fx model.Effects) {
	tb.carrier = fx.MarkPiece(tb.target)
}

func (tb *TimeBomb) OnCapture(fx model.Effects, captured *model.Piece, square model.Position) {
	if captured == tb.carrier {
		tb.carrier = nil
	}
}

func (tb *TimeBomb) OnTick(fx model.Effects) {
	if tb.carrier == nil {
		return
	}
	tb.fuse--
	if tb.fuse > 0 {
		return
	}
	center := tb.carrier.Position
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			fx.ClearSquare(model.Position{X: center.X + dx, Y: center.Y + dy})
		}
	}
	tb.carrier = nil
}
