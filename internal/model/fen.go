package model

import (
	"fmt"
	"strings"
)

var fenChars = map[PieceType]string{
	Pawn:   "p",
	Knight: "n",
	Bishop: "b",
	Rook:   "r",
	Queen:  "q",
	King:   "k",
}

// FEN renders the current position in Forsyth-Edwards notation. Halfmove
// clock and fullmove number are fixed placeholders; nothing downstream reads
// them.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.fen()
}

func (g *Game) fen() string {
	board := g.state.Board
	fenRows := make([]string, 0, 8)
	// Row 0 is Black's home edge, which FEN lists first.
	for y := 0; y < 8; y++ {
		var row strings.Builder
		empty := 0
		for x := 0; x < 8; x++ {
			piece := board.Board[y][x]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&row, "%d", empty)
				empty = 0
			}
			ch := fenChars[piece.Type]
			if piece.Color == ColorWhite {
				ch = strings.ToUpper(ch)
			}
			row.WriteString(ch)
		}
		if empty > 0 {
			fmt.Fprintf(&row, "%d", empty)
		}
		fenRows = append(fenRows, row.String())
	}

	turn := "w"
	if g.state.ToMove == ColorBlack {
		turn = "b"
	}

	castling := ""
	if g.castlingRight(ColorWhite, 7) {
		castling += "K"
	}
	if g.castlingRight(ColorWhite, 0) {
		castling += "Q"
	}
	if g.castlingRight(ColorBlack, 7) {
		castling += "k"
	}
	if g.castlingRight(ColorBlack, 0) {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	enPassant := "-"
	if g.state.EnPassantTarget != nil {
		enPassant = g.state.EnPassantTarget.getSquareNotation()
	}

	return fmt.Sprintf("%s %s %s %s 0 1", strings.Join(fenRows, "/"), turn, castling, enPassant)
}

// castlingRight mirrors the unmoved king-and-rook condition only; transit
// emptiness and attack safety are move-time concerns that FEN does not encode.
func (g *Game) castlingRight(color Color, rookFile int) bool {
	row := 0
	if color == ColorWhite {
		row = 7
	}
	board := g.state.Board
	king := board.At(Position{X: 4, Y: row})
	rook := board.At(Position{X: rookFile, Y: row})
	return king != nil && king.Type == King && king.Color == color && !king.HasMoved &&
		rook != nil && rook.Type == Rook && rook.Color == color && !rook.HasMoved
}
