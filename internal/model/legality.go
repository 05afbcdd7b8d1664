package model

// undoRecord captures everything a simulated candidate move touches so the
// board can be restored bit-for-bit. Replaying the record is the only revert
// path; nothing is restored ad hoc.
type undoRecord struct {
	piece    *Piece
	from     Position
	to       Position
	captured *Piece
	hadMoved bool

	rook         *Piece
	rookFrom     Position
	rookTo       Position
	rookHadMoved bool

	whiteKing Position
	blackKing Position
}

// applyCandidate mutates the board in place for a king-safety probe. A king
// moving two files drags the corresponding rook along so the attack query
// sees the post-castle shape.
func (g *Game) applyCandidate(piece *Piece, to Position) undoRecord {
	board := g.state.Board
	u := undoRecord{
		piece:     piece,
		from:      piece.Position,
		to:        to,
		captured:  board.At(to),
		hadMoved:  piece.HasMoved,
		whiteKing: board.WhiteKingPosition,
		blackKing: board.BlackKingPosition,
	}
	if piece.Type == King && abs(to.X-u.from.X) == 2 {
		rookFrom := Position{X: 0, Y: u.from.Y}
		rookTo := Position{X: 3, Y: u.from.Y}
		if to.X == 6 {
			rookFrom = Position{X: 7, Y: u.from.Y}
			rookTo = Position{X: 5, Y: u.from.Y}
		}
		if rook := board.At(rookFrom); rook != nil {
			u.rook = rook
			u.rookFrom = rookFrom
			u.rookTo = rookTo
			u.rookHadMoved = rook.HasMoved
			board.remove(rookFrom)
			board.place(rook, rookTo)
		}
	}
	board.remove(u.from)
	board.place(piece, to)
	piece.HasMoved = true
	if piece.Type == King {
		switch piece.Color {
		case ColorWhite:
			board.WhiteKingPosition = to
		case ColorBlack:
			board.BlackKingPosition = to
		}
	}
	return u
}

// revertCandidate replays the record, restoring every touched field exactly.
func (g *Game) revertCandidate(u undoRecord) {
	board := g.state.Board
	board.Board[u.to.Y][u.to.X] = u.captured
	if u.captured != nil {
		u.captured.Position = u.to
	}
	board.place(u.piece, u.from)
	u.piece.HasMoved = u.hadMoved
	if u.rook != nil {
		board.remove(u.rookTo)
		board.place(u.rook, u.rookFrom)
		u.rook.HasMoved = u.rookHadMoved
	}
	board.WhiteKingPosition = u.whiteKing
	board.BlackKingPosition = u.blackKing
}

// causesSelfCheck simulates the move, asks whether the mover's own king is
// attacked, and reverts. The board is identical to its pre-call state on
// return for every candidate, including the king moving onto the probed
// square itself.
func (g *Game) causesSelfCheck(piece *Piece, to Position) bool {
	u := g.applyCandidate(piece, to)
	inCheck := g.isKingInCheck(piece.Color)
	g.revertCandidate(u)
	return inCheck
}

// filterLegalMoves keeps the candidates that leave the mover's own king safe.
func (g *Game) filterLegalMoves(piece *Piece, pseudoMoves []SimpleMove) []SimpleMove {
	legalMoves := []SimpleMove{}
	for _, move := range pseudoMoves {
		if !g.causesSelfCheck(piece, move.To) {
			legalMoves = append(legalMoves, move)
		}
	}
	return legalMoves
}

func (g *Game) legalMovesForPiece(piece *Piece) []SimpleMove {
	return g.filterLegalMoves(piece, g.pseudoMoves(piece))
}

func (g *Game) legalMovesForColor(color Color) []SimpleMove {
	legalMoves := []SimpleMove{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := g.state.Board.Board[y][x]
			if piece != nil && piece.Color == color {
				legalMoves = append(legalMoves, g.legalMovesForPiece(piece)...)
			}
		}
	}
	return legalMoves
}

func (g *Game) hasNoLegalMoves(color Color) bool {
	return len(g.legalMovesForColor(color)) == 0
}
