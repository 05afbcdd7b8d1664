package model

// isSquareAttacked reports whether any piece of the color opposing defender
// currently threatens the square. Pawns are checked by their two capture
// diagonals only (forward pushes and en passant are not attacks) and kings by
// plain adjacency; every other piece type answers through its non-castling
// pseudo-legal set, so generation modifiers extend attack coverage too.
func (g *Game) isSquareAttacked(square Position, defender Color) bool {
	board := g.state.Board
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := board.Board[y][x]
			if piece == nil || piece.Color == defender {
				continue
			}
			switch piece.Type {
			case Pawn:
				dirY := -1
				if piece.Color == ColorBlack {
					dirY = 1
				}
				if y+dirY == square.Y && (x-1 == square.X || x+1 == square.X) {
					return true
				}
			case King:
				if abs(y-square.Y) <= 1 && abs(x-square.X) <= 1 {
					return true
				}
			default:
				for _, move := range g.pseudoMovesNoCastle(piece) {
					if move.To == square {
						return true
					}
				}
			}
		}
	}
	return false
}

// isKingInCheck is false when the king is missing from the board, a state
// that is unreachable through the move pipeline but can follow a modifier
// clearing the king's square.
func (g *Game) isKingInCheck(color Color) bool {
	kingPos, ok := g.state.Board.kingSquare(color)
	if !ok {
		return false
	}
	return g.isSquareAttacked(kingPos, color)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
