package model

// BoardState is the 8x8 grid of piece references. At most one piece occupies a
// square, and a piece's stored Position always equals the grid cell that
// references it; every mutation goes through place/remove to keep the two in
// sync. The king position fields are maintained for the client payload; attack
// queries locate kings by scanning so that a missing king degrades safely.
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition Position   `json:"blackKingPosition"`
	WhiteKingPosition Position   `json:"whiteKingPosition"`
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() *BoardState {
	board := &BoardState{}
	for i := 0; i < 8; i++ {
		board.Board = append(board.Board, make([]*Piece, 8))
	}
	for x, pt := range backRank {
		board.place(&Piece{Type: pt, Color: ColorBlack}, Position{X: x, Y: 0})
		board.place(&Piece{Type: pt, Color: ColorWhite}, Position{X: x, Y: 7})
	}
	for x := 0; x < 8; x++ {
		board.place(&Piece{Type: Pawn, Color: ColorBlack}, Position{X: x, Y: 1})
		board.place(&Piece{Type: Pawn, Color: ColorWhite}, Position{X: x, Y: 6})
	}
	board.BlackKingPosition = Position{X: 4, Y: 0}
	board.WhiteKingPosition = Position{X: 4, Y: 7}
	return board
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

func (b *BoardState) At(position Position) *Piece {
	if !boundaryCheck(position) {
		return nil
	}
	return b.Board[position.Y][position.X]
}

// place puts a piece on a square and updates its back-reference.
func (b *BoardState) place(piece *Piece, position Position) {
	b.Board[position.Y][position.X] = piece
	piece.Position = position
}

// remove empties a square and returns whatever piece occupied it.
func (b *BoardState) remove(position Position) *Piece {
	piece := b.Board[position.Y][position.X]
	b.Board[position.Y][position.X] = nil
	return piece
}

// kingSquare scans for the king of the given color. The second return is
// false when no king is on the board, which check queries treat as "not in
// check" rather than failing.
func (b *BoardState) kingSquare(color Color) (Position, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := b.Board[y][x]
			if piece != nil && piece.Color == color && piece.Type == King {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// Clone deep-copies the board for read-only snapshots.
func (b *BoardState) Clone() *BoardState {
	out := &BoardState{
		BlackKingPosition: b.BlackKingPosition,
		WhiteKingPosition: b.WhiteKingPosition,
	}
	for y := 0; y < 8; y++ {
		row := make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if b.Board[y][x] != nil {
				copied := *b.Board[y][x]
				row[x] = &copied
			}
		}
		out.Board = append(out.Board, row)
	}
	return out
}
