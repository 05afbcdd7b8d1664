package model

// Effects is the board-mutation surface the engine hands to modifiers while it
// notifies them. The game mutex is already held for the duration of the
// notification, so these calls must not go back through the locked Game API.
type Effects struct {
	game *Game
}

func (fx Effects) PieceAt(position Position) *Piece {
	return fx.game.state.Board.At(position)
}

// ClearSquare removes whatever piece occupies the square. The removed piece is
// tallied as captured by its opponent; removing a king resolves the game
// immediately.
func (fx Effects) ClearSquare(position Position) *Piece {
	return fx.game.clearSquare(position)
}

// MarkPiece flags the piece on the square as carrying a latent effect and
// returns it so the modifier can track the carrier as it moves.
func (fx Effects) MarkPiece(position Position) *Piece {
	piece := fx.game.state.Board.At(position)
	if piece == nil {
		return nil
	}
	piece.Marked = true
	return piece
}

// SetPowerUpOffer raises or clears the pending power-up offer flag in the
// broadcast state.
func (fx Effects) SetPowerUpOffer(pending bool) {
	fx.game.state.PowerUpOffer = pending
}
