package model

import "testing"

// sq converts algebraic notation to board coordinates.
func sq(name string) Position {
	return Position{X: int(name[0] - 'a'), Y: 8 - int(name[1]-'0')}
}

func emptyBoardGame() *Game {
	g := NewGame("test")
	board := &BoardState{}
	for i := 0; i < 8; i++ {
		board.Board = append(board.Board, make([]*Piece, 8))
	}
	g.state.Board = board
	return g
}

func put(g *Game, pieceType PieceType, color Color, pos Position) *Piece {
	piece := &Piece{Type: pieceType, Color: color}
	g.state.Board.place(piece, pos)
	if pieceType == King {
		switch color {
		case ColorWhite:
			g.state.Board.WhiteKingPosition = pos
		case ColorBlack:
			g.state.Board.BlackKingPosition = pos
		}
	}
	return piece
}

func mustMove(t *testing.T, g *Game, from, to Position) {
	t.Helper()
	if err := g.MakeMove(WSMove{From: from, To: to}); err != nil {
		t.Fatalf("move %v -> %v: %v", from, to, err)
	}
}

func sameBoards(a, b *BoardState) bool {
	if a.WhiteKingPosition != b.WhiteKingPosition || a.BlackKingPosition != b.BlackKingPosition {
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pa, pb := a.Board[y][x], b.Board[y][x]
			if (pa == nil) != (pb == nil) {
				return false
			}
			if pa != nil && *pa != *pb {
				return false
			}
		}
	}
	return true
}

func containsPos(positions []Position, want Position) bool {
	for _, p := range positions {
		if p == want {
			return true
		}
	}
	return false
}

func containsDest(moves []SimpleMove, to Position) bool {
	for _, m := range moves {
		if m.To == to {
			return true
		}
	}
	return false
}

// leaperExtender is a test-only generation modifier that grafts extra leap
// offsets onto knights.
type leaperExtender struct {
	offsets []Position
}

func (leaperExtender) Kind() ModifierKind { return ModifierKind("test_leaper") }

func (le leaperExtender) ExtendMoves(piece *Piece, board *BoardState, moves []SimpleMove) []SimpleMove {
	if piece.Type != Knight {
		return moves
	}
	for _, offset := range le.offsets {
		to := Position{X: piece.Position.X + offset.X, Y: piece.Position.Y + offset.Y}
		if !boundaryCheck(to) {
			continue
		}
		if target := board.At(to); target == nil || target.Color != piece.Color {
			moves = append(moves, SimpleMove{From: piece.Position, To: to})
		}
	}
	return moves
}
