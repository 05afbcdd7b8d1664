package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// pseudoMoves enumerates a piece's pseudo-legal destinations, including
// castling candidates and any extensions contributed by active generation
// modifiers. King safety is not checked here. Callers must treat the result
// as an unordered set.
func (g *Game) pseudoMoves(piece *Piece) []SimpleMove {
	return g.generateMoves(piece, true)
}

// pseudoMovesNoCastle is the same enumeration with castling excluded. It is
// the base case that breaks the recursion between castling eligibility (which
// needs attack detection) and attack detection (which must not regenerate
// castling moves). Keep every attack-detection path on this primitive.
func (g *Game) pseudoMovesNoCastle(piece *Piece) []SimpleMove {
	return g.generateMoves(piece, false)
}

func (g *Game) generateMoves(piece *Piece, includeCastling bool) []SimpleMove {
	var moves []SimpleMove
	switch piece.Type {
	case Pawn:
		moves = g.pawnMoves(piece)
	case Knight:
		moves = g.knightMoves(piece)
	case Bishop:
		moves = g.rayMoves(piece, bishopDirs)
	case Rook:
		moves = g.rayMoves(piece, rookDirs)
	case Queen:
		moves = append(g.rayMoves(piece, bishopDirs), g.rayMoves(piece, rookDirs)...)
	case King:
		moves = g.kingMoves(piece, includeCastling)
	}
	return g.modifiers.extendMoves(piece, g.state.Board, moves)
}

func (g *Game) pawnMoves(piece *Piece) []SimpleMove {
	board := g.state.Board
	pawnMoves := []SimpleMove{}
	dirY := -1
	if piece.Color == ColorBlack {
		dirY = 1
	}
	// Forward one, and two from the starting rank if both squares are empty.
	oneAhead := Position{X: piece.Position.X, Y: piece.Position.Y + dirY}
	if boundaryCheck(oneAhead) && board.At(oneAhead) == nil {
		pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: oneAhead})
		twoAhead := Position{X: piece.Position.X, Y: piece.Position.Y + 2*dirY}
		if !piece.HasMoved && boundaryCheck(twoAhead) && board.At(twoAhead) == nil {
			pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: twoAhead})
		}
	}
	// Diagonal captures, and the recorded en passant target square.
	for _, dirX := range []int{-1, 1} {
		diag := Position{X: piece.Position.X + dirX, Y: piece.Position.Y + dirY}
		if !boundaryCheck(diag) {
			continue
		}
		if target := board.At(diag); target != nil && target.Color != piece.Color {
			pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: diag})
		}
		if g.state.EnPassantTarget != nil && *g.state.EnPassantTarget == diag {
			pawnMoves = append(pawnMoves, SimpleMove{From: piece.Position, To: diag})
		}
	}
	return pawnMoves
}

func (g *Game) knightMoves(piece *Piece) []SimpleMove {
	board := g.state.Board
	knightMoves := []SimpleMove{}
	for _, dir := range knightDirs {
		targetPos := Position{X: piece.Position.X + dir.X, Y: piece.Position.Y + dir.Y}
		if boundaryCheck(targetPos) && (board.At(targetPos) == nil || board.At(targetPos).Color != piece.Color) {
			knightMoves = append(knightMoves, SimpleMove{From: piece.Position, To: targetPos})
		}
	}
	return knightMoves
}

// rayMoves casts along each direction until the board edge or the first
// occupied square, which is included only when it holds an enemy piece.
func (g *Game) rayMoves(piece *Piece, dirs []Position) []SimpleMove {
	board := g.state.Board
	moves := []SimpleMove{}
	for _, dir := range dirs {
		targetPos := Position{X: piece.Position.X + dir.X, Y: piece.Position.Y + dir.Y}
		for boundaryCheck(targetPos) {
			target := board.At(targetPos)
			if target == nil {
				moves = append(moves, SimpleMove{From: piece.Position, To: targetPos})
			} else if target.Color != piece.Color {
				moves = append(moves, SimpleMove{From: piece.Position, To: targetPos})
				break
			} else {
				break
			}
			targetPos = Position{X: targetPos.X + dir.X, Y: targetPos.Y + dir.Y}
		}
	}
	return moves
}

func (g *Game) kingMoves(piece *Piece, includeCastling bool) []SimpleMove {
	board := g.state.Board
	kingMoves := []SimpleMove{}
	for _, dir := range kingDirs {
		targetPos := Position{X: piece.Position.X + dir.X, Y: piece.Position.Y + dir.Y}
		if boundaryCheck(targetPos) && (board.At(targetPos) == nil || board.At(targetPos).Color != piece.Color) {
			kingMoves = append(kingMoves, SimpleMove{From: piece.Position, To: targetPos})
		}
	}
	if includeCastling && !piece.HasMoved && !g.isKingInCheck(piece.Color) {
		if g.canCastleKingside(piece.Color) {
			kingMoves = append(kingMoves, SimpleMove{From: piece.Position, To: Position{X: 6, Y: piece.Position.Y}})
		}
		if g.canCastleQueenside(piece.Color) {
			kingMoves = append(kingMoves, SimpleMove{From: piece.Position, To: Position{X: 2, Y: piece.Position.Y}})
		}
	}
	return kingMoves
}

// canCastleKingside reports whether the king-and-rook compound move toward
// file h is available: both unmoved on their original squares, f and g empty,
// and e, f, g all unattacked.
func (g *Game) canCastleKingside(color Color) bool {
	row := 0
	if color == ColorWhite {
		row = 7
	}
	return g.canCastle(color, row, 7, []int{5, 6}, []int{4, 5, 6})
}

// canCastleQueenside is the file-a mirror: b, c, d empty and e, d, c
// unattacked. The b file is transit for the rook only, so it need not be safe.
func (g *Game) canCastleQueenside(color Color) bool {
	row := 0
	if color == ColorWhite {
		row = 7
	}
	return g.canCastle(color, row, 0, []int{1, 2, 3}, []int{4, 3, 2})
}

func (g *Game) canCastle(color Color, row, rookFile int, emptyFiles, safeFiles []int) bool {
	board := g.state.Board
	king := board.At(Position{X: 4, Y: row})
	rook := board.At(Position{X: rookFile, Y: row})
	if king == nil || rook == nil {
		return false
	}
	if king.Type != King || rook.Type != Rook {
		return false
	}
	if king.HasMoved || rook.HasMoved {
		return false
	}
	for _, file := range emptyFiles {
		if board.At(Position{X: file, Y: row}) != nil {
			return false
		}
	}
	for _, file := range safeFiles {
		if g.isSquareAttacked(Position{X: file, Y: row}, color) {
			return false
		}
	}
	return true
}
