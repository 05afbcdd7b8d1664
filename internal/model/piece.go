package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

func (c Color) Opponent() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// Position is a board coordinate. X is the file (0 = a), Y is the rank row
// with Y 0 on Black's home edge and Y 7 on White's.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// Piece is an identity record. The board owns every piece; Position is a
// back-reference kept in sync with the grid cell that holds the piece.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	// HasMoved is monotonic: once true it never resets, including across
	// the legality filter's simulate-and-revert.
	HasMoved bool `json:"hasMoved"`
	// EnPassantVulnerable is set on a pawn immediately after its two-square
	// advance and cleared at the start of the next move's execution.
	EnPassantVulnerable bool `json:"enPassantVulnerable"`
	// Marked flags a piece carrying a latent modifier effect (e.g. a time
	// bomb charge). The modifier owns the effect's state; the board only
	// stores the mark.
	Marked bool `json:"marked"`
}
