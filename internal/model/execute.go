package model

import "fmt"

// executeMove commits a move that has already passed the legality filter.
// Callers hold the game mutex. Special-move kinds are derived from piece type
// and geometry, in the original movement frame: a pawn moving diagonally onto
// an empty square is an en passant capture, a king moving two files is a
// castle, a pawn reaching the far rank promotes.
func (g *Game) executeMove(move SimpleMove) (ExecutionResult, error) {
	board := g.state.Board
	piece := board.At(move.From)
	if piece == nil {
		return ExecutionResult{}, ErrNoPiece
	}

	result := ExecutionResult{}
	enPassant := piece.Type == Pawn && move.From.X != move.To.X && board.At(move.To) == nil
	doublePush := piece.Type == Pawn && abs(move.To.Y-move.From.Y) == 2

	// En passant bookkeeping from the previous move dies here, before this
	// move's own bookkeeping is computed.
	g.clearEnPassantState()

	ply := g.makePly(move)

	if piece.Type == King && abs(move.To.X-move.From.X) == 2 {
		ply = g.castleRook(move, ply)
		result.WasCastle = true
	}

	captured := board.At(move.To)
	if enPassant {
		capturedAt := Position{X: move.To.X, Y: move.From.Y}
		captured = board.remove(capturedAt)
		ply.CapturedPiece = captured
		ply.Notation = move.From.getFileNotation() + "x" + move.To.getSquareNotation()
		result.WasEnPassant = true
	}

	board.remove(move.From)
	board.place(piece, move.To)
	piece.HasMoved = true
	if piece.Type == King {
		switch piece.Color {
		case ColorWhite:
			board.WhiteKingPosition = move.To
		case ColorBlack:
			board.BlackKingPosition = move.To
		}
	}

	if doublePush {
		piece.EnPassantVulnerable = true
		g.state.EnPassantTarget = &Position{X: move.From.X, Y: (move.From.Y + move.To.Y) / 2}
	}

	if piece.Type == Pawn && (move.To.Y == 0 || move.To.Y == 7) {
		promoted := &Piece{Type: Queen, Color: piece.Color, HasMoved: true, Marked: piece.Marked}
		board.place(promoted, move.To)
		ply.Promotion = true
		result.WasPromotion = true
	}

	if captured != nil {
		result.CapturedPiece = captured
		result.CapturedAt = captured.Position
		g.tallyCapture(piece.Color, captured)
		g.modifiers.notifyCapture(Effects{game: g}, captured, captured.Position)
	}

	g.appendHistory(piece.Color, ply)
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}

	// A completed Black move closes a full White-then-Black cycle.
	if piece.Color == ColorBlack {
		g.modifiers.notifyTick(Effects{game: g})
	}
	for _, observer := range g.moveObservers {
		observer.OnMovePlayed(Effects{game: g}, piece.Color)
	}

	return result, nil
}

// clearEnPassantState drops the target square and the vulnerability flag on
// every pawn.
func (g *Game) clearEnPassantState() {
	g.state.EnPassantTarget = nil
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := g.state.Board.Board[y][x]
			if piece != nil && piece.Type == Pawn {
				piece.EnPassantVulnerable = false
			}
		}
	}
}

func (g *Game) castleRook(move SimpleMove, ply Ply) Ply {
	board := g.state.Board
	rookFrom := Position{X: 0, Y: move.From.Y}
	rookTo := Position{X: 3, Y: move.From.Y}
	notation := "O-O-O"
	if move.To.X == 6 {
		rookFrom = Position{X: 7, Y: move.From.Y}
		rookTo = Position{X: 5, Y: move.From.Y}
		notation = "O-O"
	}
	rook := board.remove(rookFrom)
	board.place(rook, rookTo)
	rook.HasMoved = true
	ply.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
	ply.Notation = notation
	return ply
}

func (g *Game) tallyCapture(by Color, captured *Piece) {
	switch by {
	case ColorWhite:
		g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, *captured)
	case ColorBlack:
		g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, *captured)
	}
}

func (g *Game) appendHistory(mover Color, ply Ply) {
	if mover == ColorWhite {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{WhitePly: ply})
		return
	}
	if len(g.state.MoveHistory) == 0 {
		g.state.MoveHistory = append(g.state.MoveHistory, Move{BlackPly: ply})
		return
	}
	g.state.MoveHistory[len(g.state.MoveHistory)-1].BlackPly = ply
}

func (g *Game) makePly(move SimpleMove) Ply {
	return Ply{
		Piece:         g.state.Board.At(move.From),
		From:          move.From,
		To:            move.To,
		CapturedPiece: g.state.Board.At(move.To),
		Notation:      g.getNotation(move),
	}
}

func (g *Game) getNotation(move SimpleMove) string {
	board := g.state.Board
	piece := board.At(move.From)
	prefix := piece.Type.getPieceNotation()
	capture := ""
	if board.At(move.To) != nil {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type == Pawn && move.From.X != move.To.X {
		pawnFile = move.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFile, capture, move.To.getSquareNotation())
}
