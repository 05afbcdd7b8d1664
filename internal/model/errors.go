package model

import "errors"

// All core failures are rejections: the board is never left partially
// mutated by a call that returns one of these.
var (
	ErrGameFull    = errors.New("game is full")
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrIllegalMove = errors.New("invalid move, not legal")
	ErrOutOfBounds = errors.New("invalid move, out of bounds")

	ErrNotAuthorized = errors.New("not authorized to join this game")
)
